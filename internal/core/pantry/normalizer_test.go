package pantry

import (
	"testing"

	"lumine-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func vocab(names ...string) []common.Ingredient {
	out := make([]common.Ingredient, 0, len(names))
	for _, name := range names {
		out = append(out, common.Ingredient{Name: name})
	}
	return out
}

func TestNormalizePartitionsInput(t *testing.T) {
	matched, unmatched := Normalize(
		[]string{"Chicken", "Chocolate Bar", "Salt"},
		vocab("Chicken", "Salt", "Butter"),
	)

	assert.Equal(t, []string{"Chicken", "Salt"}, matched)
	assert.Equal(t, []string{"Chocolate Bar"}, unmatched)
}

func TestNormalizeIsCaseSensitive(t *testing.T) {
	matched, unmatched := Normalize([]string{"chicken"}, vocab("Chicken"))

	assert.Empty(t, matched)
	assert.Equal(t, []string{"chicken"}, unmatched)
}

func TestNormalizeKeepsDuplicatesAndOrder(t *testing.T) {
	matched, unmatched := Normalize(
		[]string{"Salt", "Candy", "Salt", "Candy"},
		vocab("Salt"),
	)

	assert.Equal(t, []string{"Salt", "Salt"}, matched)
	assert.Equal(t, []string{"Candy", "Candy"}, unmatched)
}

func TestNormalizeDoesNotTrimWhitespace(t *testing.T) {
	matched, unmatched := Normalize([]string{" Chicken"}, vocab("Chicken"))

	assert.Empty(t, matched)
	assert.Equal(t, []string{" Chicken"}, unmatched)
}

func TestNormalizeEmptyInput(t *testing.T) {
	matched, unmatched := Normalize(nil, vocab("Salt"))

	assert.Empty(t, matched)
	assert.Empty(t, unmatched)
}

func TestNormalizeEmptyVocabulary(t *testing.T) {
	matched, unmatched := Normalize([]string{"Chicken"}, nil)

	assert.Empty(t, matched)
	assert.Equal(t, []string{"Chicken"}, unmatched)
}
