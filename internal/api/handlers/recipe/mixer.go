package recipe

import (
	"net/http"

	"lumine-kitchen/internal/core/pantry"
	recipeService "lumine-kitchen/internal/core/recipe"
	"lumine-kitchen/internal/core/session"
	"lumine-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleMixerMatch 處理採買清單配對：讀入品項工作簿、比對食材詞彙表、
// 依比對結果搜尋候選食譜並挑出重疊數最高者寫入會話
func (h *Handler) HandleMixerMatch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	fileHeader, err := c.FormFile("products")
	if err != nil {
		common.LogError("缺少品項檔案",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing products file"})
		return
	}

	if fileHeader.Size > h.upload.MaxSizeBytes {
		common.LogWarn("品項檔案過大",
			zap.Int64("size", fileHeader.Size),
			zap.Int64("max_size", h.upload.MaxSizeBytes),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": common.ErrUploadTooLarge.Message})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.LogError("開啟品項檔案失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read workbook"})
		return
	}
	defer file.Close()

	products, err := pantry.LoadProductNames(file, h.upload.ProductColumn)
	if err != nil {
		common.LogError("解析品項工作簿失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	vocabulary, err := h.mealdb.FetchIngredientList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	matched, unmatched := pantry.Normalize(products, vocabulary)

	state, _ := session.Resolve(c.Request.Context(), h.sessions, c.GetHeader(sessionHeader))
	c.Header(sessionHeader, state.ID)

	common.LogInfo("開始配對食譜",
		zap.String("request_id", requestID),
		zap.String("session_id", state.ID),
		zap.Int("products", len(products)),
		zap.Int("matched", len(matched)),
		zap.Int("unmatched", len(unmatched)),
	)

	candidates, err := h.mealdb.SearchByIngredients(c.Request.Context(), matched)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"session_id": state.ID,
			"matched":    matched,
			"unmatched":  unmatched,
			"message":    msgNoCandidates,
		})
		return
	}

	best, count, err := recipeService.SelectByOverlap(c.Request.Context(), h.mealdb, candidates, matched)
	if err != nil {
		respondError(c, err)
		return
	}

	if best == nil {
		c.JSON(http.StatusOK, gin.H{
			"session_id": state.ID,
			"matched":    matched,
			"unmatched":  unmatched,
			"message":    msgNoOverlap,
		})
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

	common.LogInfo("配對完成",
		zap.String("request_id", requestID),
		zap.String("session_id", state.ID),
		zap.String("meal_id", best.ID),
		zap.Int("match_count", count),
	)

	c.JSON(http.StatusOK, gin.H{
		"session_id":  state.ID,
		"matched":     matched,
		"unmatched":   unmatched,
		"match_count": count,
		"best_recipe": recipeView(best),
		"message":     msgRecipesUnlocked,
	})
}
