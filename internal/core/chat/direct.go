package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// DirectProvider 直連本地 Ollama 生成端點（/api/generate）的後端
type DirectProvider struct {
	config config.ChatConfig
	client *resty.Client
}

// NewDirectProvider 創建直連後端
func NewDirectProvider(cfg config.ChatConfig) *DirectProvider {
	client := resty.New().
		SetBaseURL(cfg.Host).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &DirectProvider{
		config: cfg,
		client: client,
	}
}

// Name 後端識別名稱
func (p *DirectProvider) Name() string {
	return "direct"
}

// generateRequest /api/generate 請求本體
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse /api/generate 非串流回應本體
type generateResponse struct {
	Response string `json:"response"`
}

// Generate 發送單輪生成請求並回傳模型輸出
func (p *DirectProvider) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  p.config.DirectModel,
			Prompt: prompt,
			Stream: false,
		}).
		Post("/api/generate")

	common.LogUpstreamCall("ollama/api/generate", time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to send request to Ollama: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Ollama API returned error: %s", resp.String())
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Ollama response: %w", err)
	}

	return result.Response, nil
}
