package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// chatMessage /api/chat 對話訊息
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest /api/chat 請求本體
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatResponse /api/chat 非串流回應本體
type chatResponse struct {
	Message chatMessage `json:"message"`
}

// OrchestratedProvider 經由 Ollama 對話端點（/api/chat）呼叫模型的後端，
// 可帶系統提示詞固定人設
type OrchestratedProvider struct {
	httpClient *http.Client
	config     config.ChatConfig
}

// NewOrchestratedProvider 創建對話式後端
func NewOrchestratedProvider(cfg config.ChatConfig) *OrchestratedProvider {
	return &OrchestratedProvider{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
	}
}

// Name 後端識別名稱
func (p *OrchestratedProvider) Name() string {
	return "orchestrated"
}

// Generate 發送單輪對話請求並回傳模型輸出
func (p *OrchestratedProvider) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if p.config.SystemPrompt != "" {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: p.config.SystemPrompt,
		})
	}
	messages = append(messages, chatMessage{
		Role:    "user",
		Content: prompt,
	})

	reqBody, err := json.Marshal(chatRequest{
		Model:    p.config.OrchestratedModel,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.config.Host+"/api/chat", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	common.LogUpstreamCall("ollama/api/chat", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		common.LogError("聊天後端回應異常狀態",
			zap.Int("status_code", resp.StatusCode),
			zap.String("model", p.config.OrchestratedModel),
		)
		return "", fmt.Errorf("chat backend error (status %d): %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return response.Message.Content, nil
}
