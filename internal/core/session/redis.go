package session

import (
	"context"
	"fmt"
	"time"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 保存會話，可跨程序共享
type RedisStore struct {
	client *redis.Client
	config config.SessionConfig
}

// NewRedisStore 創建 Redis 會話存儲並驗證連線
func NewRedisStore(cfg config.SessionConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("會話存儲已初始化(Redis)",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("存活時間", cfg.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// sessionKey 生成會話鍵
func (s *RedisStore) sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Get 讀取會話
func (s *RedisStore) Get(ctx context.Context, id string) (*common.SessionState, error) {
	data, err := s.client.Get(ctx, s.sessionKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var state common.SessionState
	if err := common.ParseJSON(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

// Save 寫入會話並重設存活時間
func (s *RedisStore) Save(ctx context.Context, state *common.SessionState) error {
	state.UpdatedAt = time.Now()

	data, err := common.ToJSON(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.sessionKey(state.ID), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Delete 移除會話
func (s *RedisStore) Delete(ctx context.Context, id string) {
	if err := s.client.Del(ctx, s.sessionKey(id)).Err(); err != nil {
		common.LogWarn("刪除會話失敗",
			zap.String("session_id", id),
			zap.Error(err),
		)
	}
}

// Len 目前資料庫內的鍵數
func (s *RedisStore) Len() int {
	n, err := s.client.DBSize(context.Background()).Result()
	if err != nil {
		return 0
	}
	return int(n)
}

// Stop 關閉 Redis 連線
func (s *RedisStore) Stop() {
	if err := s.client.Close(); err != nil {
		common.LogWarn("關閉 Redis 連線失敗",
			zap.Error(err),
		)
	}
}
