package session

import (
	"context"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"
)

// Store 會話狀態存儲介面
type Store interface {
	// Get 讀取會話，查無資料回傳 ErrSessionNotFound
	Get(ctx context.Context, id string) (*common.SessionState, error)

	// Save 整份寫入會話狀態並重設存活時間
	Save(ctx context.Context, state *common.SessionState) error

	// Delete 移除會話
	Delete(ctx context.Context, id string)

	// Len 目前存活的會話數
	Len() int

	// Stop 停止背景工作並釋放資源
	Stop()
}

// NewStore 依設定建立會話存儲。預設使用記憶體，
// 啟用 Redis 時改用 Redis 以便跨程序共享
func NewStore(cfg config.SessionConfig) (Store, error) {
	if cfg.RedisEnabled {
		return NewRedisStore(cfg)
	}
	return NewMemoryStore(cfg), nil
}

// Resolve 依請求帶來的識別碼取回會話。
// 識別碼空白時生成新識別碼；查無會話時以該識別碼建立空白會話。
// 回傳值第二項標示會話是否為本次新建
func Resolve(ctx context.Context, store Store, id string) (*common.SessionState, bool) {
	if id != "" {
		if state, err := store.Get(ctx, id); err == nil {
			return state, false
		}
	}
	if id == "" {
		id = common.GenerateUUID()
	}
	return common.NewSessionState(id), true
}
