package recipe

import (
	"errors"
	"fmt"
	"net/http"

	"lumine-kitchen/internal/core/mealdb"
	"lumine-kitchen/internal/core/session"
	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// sessionHeader 會話識別碼標頭
const sessionHeader = "X-Session-ID"

// filterAll 選單中代表不限定的哨兵值，送往上游時不做轉換
const filterAll = "All"

// 使用者可見的結果文案
const (
	msgRecipesUnlocked = "Recipes unlocked! Head to the 'Recipe Generator' tab for the perfect match."
	msgNoOverlap       = "Oops! No recipes found with those ingredients. Time to get creative or try a different combo!"
	msgNoCandidates    = "No recipes found. Time to get creative in the kitchen!"
	msgNoRecipeYet     = "No recipe selected! Head back to the Home tab for some culinary inspiration."
	msgPickFilter      = "Pick a Food Category or Area for Recommendations."
	msgNoSourceLink    = "No link available"
)

// Handler 食譜流程處理程序
type Handler struct {
	mealdb   *mealdb.Client
	sessions session.Store
	upload   config.UploadConfig
}

// NewHandler 創建食譜流程處理程序
func NewHandler(client *mealdb.Client, sessions session.Store, upload config.UploadConfig) *Handler {
	return &Handler{
		mealdb:   client,
		sessions: sessions,
		upload:   upload,
	}
}

// respondError 依錯誤型別對應 HTTP 狀態碼回應
func respondError(c *gin.Context, err error) {
	var cerr *common.CustomError
	if errors.As(err, &cerr) {
		c.JSON(cerr.Status, gin.H{"error": cerr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// recipeView 組出顯示用的食譜結構。
// 食材只列名稱與份量皆存在的配對，來源連結缺漏時給替代文案
func recipeView(r *common.Recipe) gin.H {
	pairs := r.ValidPairs()
	ingredients := make([]gin.H, 0, len(pairs))
	for _, slot := range pairs {
		ingredients = append(ingredients, gin.H{
			"name":    slot.Name,
			"measure": slot.Measure,
			"display": fmt.Sprintf("%s %s", slot.Measure, slot.Name),
		})
	}

	sourceURL := r.SourceURL
	sourceLabel := r.SourceURL
	if sourceURL == "" {
		sourceURL = "#"
		sourceLabel = msgNoSourceLink
	}

	return gin.H{
		"id":           r.ID,
		"name":         r.Name,
		"thumbnail":    r.Thumbnail,
		"ingredients":  ingredients,
		"instructions": r.Instructions,
		"source_url":   sourceURL,
		"source_label": sourceLabel,
	}
}
