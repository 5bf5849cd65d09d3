package recipe

import (
	"context"
	"fmt"
	"testing"

	"lumine-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher 以固定對照表回應的 DetailFetcher，缺漏的 id 一律回傳錯誤
type fakeFetcher struct {
	recipes map[string]*common.Recipe
	calls   []string
}

func (f *fakeFetcher) GetRecipeDetails(ctx context.Context, id string) (*common.Recipe, error) {
	f.calls = append(f.calls, id)
	r, ok := f.recipes[id]
	if !ok {
		return nil, fmt.Errorf("lookup failed for %s", id)
	}
	return r, nil
}

func recipeWith(id string, names ...string) *common.Recipe {
	r := &common.Recipe{ID: id, Name: "Recipe " + id}
	for i, name := range names {
		r.Slots[i] = common.IngredientSlot{Name: name, Measure: "1"}
	}
	return r
}

func candidates(ids ...string) []common.RecipeCandidate {
	out := make([]common.RecipeCandidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, common.RecipeCandidate{ID: id})
	}
	return out
}

func TestSelectByOverlapPicksHighestCount(t *testing.T) {
	f := &fakeFetcher{recipes: map[string]*common.Recipe{
		"1": recipeWith("1", "Chicken"),
		"2": recipeWith("2", "Chicken", "Salt", "Butter"),
		"3": recipeWith("3", "Salt"),
	}}

	best, count, err := SelectByOverlap(context.Background(), f, candidates("1", "2", "3"), []string{"Chicken", "Salt", "Butter"})
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "2", best.ID)
	assert.Equal(t, 3, count)
}

func TestSelectByOverlapTieKeepsEarlier(t *testing.T) {
	f := &fakeFetcher{recipes: map[string]*common.Recipe{
		"1": recipeWith("1", "Chicken", "Salt"),
		"2": recipeWith("2", "Chicken", "Butter"),
	}}

	best, count, err := SelectByOverlap(context.Background(), f, candidates("1", "2"), []string{"Chicken", "Salt", "Butter"})
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "1", best.ID)
	assert.Equal(t, 2, count)
}

func TestSelectByOverlapZeroOverlapIsNoMatch(t *testing.T) {
	f := &fakeFetcher{recipes: map[string]*common.Recipe{
		"1": recipeWith("1", "Tofu"),
		"2": recipeWith("2", "Seaweed"),
	}}

	best, count, err := SelectByOverlap(context.Background(), f, candidates("1", "2"), []string{"Chicken"})
	require.NoError(t, err)
	assert.Nil(t, best)
	assert.Zero(t, count)
}

func TestSelectByOverlapEmptyCandidates(t *testing.T) {
	f := &fakeFetcher{}

	best, count, err := SelectByOverlap(context.Background(), f, nil, []string{"Chicken"})
	require.NoError(t, err)
	assert.Nil(t, best)
	assert.Zero(t, count)
	assert.Empty(t, f.calls)
}

func TestSelectByOverlapSkipsFailedDetailFetch(t *testing.T) {
	f := &fakeFetcher{recipes: map[string]*common.Recipe{
		"2": recipeWith("2", "Chicken"),
	}}

	best, count, err := SelectByOverlap(context.Background(), f, candidates("1", "2"), []string{"Chicken"})
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "2", best.ID)
	assert.Equal(t, 1, count)
	// id 1 的查詢失敗但不中止整個挑選
	assert.Equal(t, []string{"1", "2"}, f.calls)
}

func TestSelectByOverlapCountsSlotWithoutMeasure(t *testing.T) {
	r := &common.Recipe{ID: "1"}
	r.Slots[0] = common.IngredientSlot{Name: "Chicken"}
	f := &fakeFetcher{recipes: map[string]*common.Recipe{"1": r}}

	best, count, err := SelectByOverlap(context.Background(), f, candidates("1"), []string{"Chicken"})
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 1, count)
}

func TestSelectByOverlapStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{recipes: map[string]*common.Recipe{
		"1": recipeWith("1", "Chicken"),
	}}

	_, _, err := SelectByOverlap(ctx, f, candidates("1"), []string{"Chicken"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}

func TestSelectFirstReturnsFirstDetail(t *testing.T) {
	f := &fakeFetcher{recipes: map[string]*common.Recipe{
		"12": recipeWith("12", "Apple"),
		"34": recipeWith("34", "Pear"),
	}}

	best, err := SelectFirst(context.Background(), f, candidates("12", "34"))
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "12", best.ID)
	assert.Equal(t, []string{"12"}, f.calls)
}

func TestSelectFirstEmptyCandidates(t *testing.T) {
	f := &fakeFetcher{}

	best, err := SelectFirst(context.Background(), f, nil)
	require.NoError(t, err)
	assert.Nil(t, best)
	assert.Empty(t, f.calls)
}

func TestSelectFirstPropagatesFetchError(t *testing.T) {
	f := &fakeFetcher{}

	_, err := SelectFirst(context.Background(), f, candidates("12"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup failed for 12")
}
