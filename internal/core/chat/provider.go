package chat

import (
	"context"
)

// Provider 定義聊天生成後端介面
type Provider interface {
	// Generate 依提示詞生成一段回覆文字
	Generate(ctx context.Context, prompt string) (string, error)

	// Name 後端識別名稱
	Name() string
}
