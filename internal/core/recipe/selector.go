package recipe

import (
	"context"

	"lumine-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// DetailFetcher 取得完整食譜內容的最小介面，由 mealdb.Client 實作
type DetailFetcher interface {
	GetRecipeDetails(ctx context.Context, id string) (*common.Recipe, error)
}

// SelectByOverlap 在候選清單中挑出與手邊食材重疊數最高的食譜。
// 依序取得每筆候選的完整內容，統計 20 個食材欄位中名稱落在
// normalized 集合內的數量；只有嚴格大於目前最佳者才取代，
// 平手保留較早出現的候選。單筆內容取得失敗時記錄警告並繼續掃描。
// 所有候選的重疊數都是 0 時回傳 (nil, 0, nil) 表示無配對
func SelectByOverlap(ctx context.Context, detail DetailFetcher, candidates []common.RecipeCandidate, normalized []string) (*common.Recipe, int, error) {
	recognized := make(map[string]bool, len(normalized))
	for _, name := range normalized {
		recognized[name] = true
	}

	var best *common.Recipe
	bestCount := 0

	for _, candidate := range candidates {
		// 候選可能很多，逐筆查詢前先確認請求還活著
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		detailRecipe, err := detail.GetRecipeDetails(ctx, candidate.ID)
		if err != nil {
			common.LogWarn("取得候選食譜內容失敗，略過",
				zap.String("meal_id", candidate.ID),
				zap.Error(err),
			)
			continue
		}

		count := 0
		for _, slot := range detailRecipe.Slots {
			if slot.Name != "" && recognized[slot.Name] {
				count++
			}
		}

		if count > bestCount {
			best = detailRecipe
			bestCount = count
		}
	}

	return best, bestCount, nil
}

// SelectFirst 無條件取候選清單的第一筆並回傳其完整內容，不做評分。
// 候選清單為空時回傳 (nil, nil)；內容取得失敗回傳錯誤，
// 呼叫端不得更新既有的選擇狀態
func SelectFirst(ctx context.Context, detail DetailFetcher, candidates []common.RecipeCandidate) (*common.Recipe, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	return detail.GetRecipeDetails(ctx, candidates[0].ID)
}
