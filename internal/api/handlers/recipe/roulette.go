package recipe

import (
	"net/http"

	recipeService "lumine-kitchen/internal/core/recipe"
	"lumine-kitchen/internal/core/session"
	"lumine-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RouletteSpinRequest 食譜輪盤請求
type RouletteSpinRequest struct {
	Category string `json:"category"` // 食譜分類，空白視同 All
	Area     string `json:"area"`     // 菜系地區，空白視同 All
}

// HandleRouletteFilters 列出分類與地區選項，各自在開頭補上 All 哨兵
func (h *Handler) HandleRouletteFilters(c *gin.Context) {
	categories, err := h.mealdb.FetchCategoryList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	areas, err := h.mealdb.FetchAreaList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": append([]string{filterAll}, categories...),
		"areas":      append([]string{filterAll}, areas...),
	})
}

// HandleRouletteSpin 依分類與地區轉一次輪盤，取結果的第一筆食譜寫入會話。
// 兩個條件都是 All 時直接拒絕，不會發出任何上游請求
func (h *Handler) HandleRouletteSpin(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req RouletteSpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	category := req.Category
	if category == "" {
		category = filterAll
	}
	area := req.Area
	if area == "" {
		area = filterAll
	}

	if category == filterAll && area == filterAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgPickFilter})
		return
	}

	state, _ := session.Resolve(c.Request.Context(), h.sessions, c.GetHeader(sessionHeader))
	c.Header(sessionHeader, state.ID)

	common.LogInfo("開始轉食譜輪盤",
		zap.String("request_id", requestID),
		zap.String("session_id", state.ID),
		zap.String("category", category),
		zap.String("area", area),
	)

	candidates, err := h.mealdb.SearchByCategoryAndArea(c.Request.Context(), category, area)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"session_id": state.ID,
			"message":    msgNoOverlap,
		})
		return
	}

	best, err := recipeService.SelectFirst(c.Request.Context(), h.mealdb, candidates)
	if err != nil {
		// 取內容失敗時不更動既有的會話狀態
		respondError(c, err)
		return
	}

	state.BestRecipe = best
	if err := h.sessions.Save(c.Request.Context(), state); err != nil {
		common.LogError("保存會話失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("session_id", state.ID),
		)
		respondError(c, err)
		return
	}

	common.LogInfo("輪盤完成",
		zap.String("request_id", requestID),
		zap.String("session_id", state.ID),
		zap.String("meal_id", best.ID),
	)

	c.JSON(http.StatusOK, gin.H{
		"session_id":  state.ID,
		"best_recipe": recipeView(best),
		"message":     msgRecipesUnlocked,
	})
}
