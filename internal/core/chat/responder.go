package chat

import (
	"context"
	"fmt"

	"lumine-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// 前端顯示的主廚人設名稱，各自對應一個生成後端
const (
	ChefDirect       = "Chef De-Code"
	ChefOrchestrated = "Chef App-etizer"
)

// Responder 聊天回覆器。依主廚名稱挑選後端，
// 並把所有底層失敗降級為訊息文字，聊天回合永遠能完成
type Responder struct {
	direct       Provider
	orchestrated Provider
}

// NewResponder 創建聊天回覆器
func NewResponder(direct, orchestrated Provider) *Responder {
	return &Responder{
		direct:       direct,
		orchestrated: orchestrated,
	}
}

// Backends 回傳可選的主廚人設與各自對應的後端名稱
func (r *Responder) Backends() map[string]string {
	return map[string]string{
		ChefDirect:       r.direct.Name(),
		ChefOrchestrated: r.orchestrated.Name(),
	}
}

// pick 依名稱挑選後端。未知或空白名稱一律落到 orchestrated
func (r *Responder) pick(name string) Provider {
	switch name {
	case ChefDirect, "direct", "gemma:2b":
		return r.direct
	default:
		return r.orchestrated
	}
}

// Reply 執行一次生成並回傳回覆文字。
// 任何底層失敗（錯誤或 panic）都轉成
// "An error occurred: <詳情>" 字串，不回傳錯誤也不中斷回合
func (r *Responder) Reply(ctx context.Context, backendName, prompt string) (reply string) {
	provider := r.pick(backendName)

	defer func() {
		if rec := recover(); rec != nil {
			common.LogError("聊天後端 panic",
				zap.String("backend", provider.Name()),
				zap.Any("panic", rec),
			)
			reply = fmt.Sprintf("An error occurred: %v", rec)
		}
	}()

	text, err := provider.Generate(ctx, prompt)
	if err != nil {
		common.LogWarn("聊天生成失敗，降級為訊息文字",
			zap.String("backend", provider.Name()),
			zap.Error(err),
		)
		return fmt.Sprintf("An error occurred: %v", err)
	}

	return text
}
