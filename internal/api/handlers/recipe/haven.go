package recipe

import (
	"net/http"

	"lumine-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleHavenView 顯示會話目前選定的食譜。
// 沒有會話或尚未選定食譜時回覆導引文案，不算錯誤
func (h *Handler) HandleHavenView(c *gin.Context) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		c.JSON(http.StatusOK, gin.H{"message": msgNoRecipeYet})
		return
	}

	state, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil || state.BestRecipe == nil {
		c.JSON(http.StatusOK, gin.H{
			"session_id": id,
			"message":    msgNoRecipeYet,
		})
		return
	}

	c.Header(sessionHeader, state.ID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": state.ID,
		"recipe":     recipeView(state.BestRecipe),
	})
}

// HandleHavenClear 清空會話的食譜欄位
func (h *Handler) HandleHavenClear(c *gin.Context) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrSessionNotFound.Message})
		return
	}

	state, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	state.BestRecipe = nil
	if err := h.sessions.Save(c.Request.Context(), state); err != nil {
		respondError(c, err)
		return
	}

	c.Header(sessionHeader, state.ID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": state.ID,
		"message":    msgNoRecipeYet,
	})
}
