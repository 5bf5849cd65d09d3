package handlers

import (
	"errors"
	"net/http"

	"lumine-kitchen/internal/core/chat"
	"lumine-kitchen/internal/core/session"
	"lumine-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHeader 會話識別碼的請求與回應標頭
const SessionHeader = "X-Session-ID"

// ChatRequest 聊天請求
type ChatRequest struct {
	Message string `json:"message" binding:"required"` // 使用者發言
	Chef    string `json:"chef,omitempty"`             // 主廚人設，可省略
}

// ChatHandler 聊天處理程序
type ChatHandler struct {
	responder *chat.Responder
	sessions  session.Store
}

// NewChatHandler 創建聊天處理程序
func NewChatHandler(responder *chat.Responder, sessions session.Store) *ChatHandler {
	return &ChatHandler{
		responder: responder,
		sessions:  sessions,
	}
}

// HandleChatTurn 處理一個聊天回合：重置聊天記錄、寫入使用者發言、
// 生成回覆後寫入回覆並保存會話。生成失敗會以訊息文字呈現，不會讓回合失敗
func (h *ChatHandler) HandleChatTurn(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	state, created := session.Resolve(c.Request.Context(), h.sessions, c.GetHeader(SessionHeader))
	c.Header(SessionHeader, state.ID)

	common.LogInfo("開始處理聊天回合",
		zap.String("request_id", requestID),
		zap.String("session_id", state.ID),
		zap.Bool("new_session", created),
		zap.String("chef", req.Chef),
	)

	state.BeginChatTurn(req.Message)
	reply := h.responder.Reply(c.Request.Context(), req.Chef, req.Message)
	state.AppendReply(reply)

	if err := h.sessions.Save(c.Request.Context(), state); err != nil {
		common.LogError("保存會話失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("session_id", state.ID),
		)
		status := http.StatusInternalServerError
		message := "Failed to save session"
		var cerr *common.CustomError
		if errors.As(err, &cerr) {
			status = cerr.Status
			message = cerr.Message
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": state.ID,
		"reply":      reply,
		"transcript": state.RenderTranscript(),
	})
}

// HandleListChefs 列出可選主廚人設與各自對應的後端
func (h *ChatHandler) HandleListChefs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"chefs": h.responder.Backends(),
	})
}
