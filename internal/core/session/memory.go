package session

import (
	"context"
	"sync"
	"time"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 以記憶體映射保存會話，帶 TTL 與容量上限
type MemoryStore struct {
	config config.SessionConfig
	mu     sync.RWMutex
	store  map[string]memoryEntry
	stats  storeStats
	done   chan struct{}
}

// memoryEntry 會話條目
type memoryEntry struct {
	state      *common.SessionState
	expiresAt  time.Time
	lastAccess time.Time
}

// storeStats 存儲統計
type storeStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore 創建記憶體會話存儲並啟動過期清理協程
func NewMemoryStore(cfg config.SessionConfig) *MemoryStore {
	s := &MemoryStore{
		config: cfg,
		store:  make(map[string]memoryEntry),
		done:   make(chan struct{}),
	}

	go s.startCleanup()

	common.LogInfo("會話存儲已初始化",
		zap.Int("最大容量", cfg.MaxEntries),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return s
}

// Get 讀取會話，已過期的條目視同不存在並當場移除
func (s *MemoryStore) Get(ctx context.Context, id string) (*common.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.store[id]
	if !exists {
		s.stats.misses++
		return nil, common.ErrSessionNotFound
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.store, id)
		s.stats.evictions++
		s.stats.misses++
		return nil, common.ErrSessionNotFound
	}

	entry.lastAccess = time.Now()
	s.store[id] = entry
	s.stats.hits++
	return entry.state, nil
}

// Save 寫入會話並重設存活時間。容量滿載時先清過期條目，
// 仍滿則淘汰最久未使用的會話
func (s *MemoryStore) Save(ctx context.Context, state *common.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.store[state.ID]; !exists && len(s.store) >= s.config.MaxEntries {
		evicted := s.cleanup()
		common.LogInfo("會話清理執行",
			zap.Int("清理數量", evicted),
		)

		if len(s.store) >= s.config.MaxEntries {
			s.evictOldest()
		}

		if len(s.store) >= s.config.MaxEntries {
			common.LogWarn("會話存儲已滿",
				zap.Int("目前容量", len(s.store)),
			)
			return common.ErrSessionStoreFull
		}
	}

	now := time.Now()
	state.UpdatedAt = now
	s.store[state.ID] = memoryEntry{
		state:      state,
		expiresAt:  now.Add(s.config.TTL),
		lastAccess: now,
	}
	return nil
}

// Delete 移除會話
func (s *MemoryStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, id)
}

// Len 目前存活的會話數
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

// Stats 存儲統計資訊，供健康檢查回報
func (s *MemoryStore) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"size":      len(s.store),
		"max_size":  s.config.MaxEntries,
		"hits":      s.stats.hits,
		"misses":    s.stats.misses,
		"evictions": s.stats.evictions,
	}
}

// startCleanup 定期清理過期會話，Stop 後結束
func (s *MemoryStore) startCleanup() {
	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.cleanup()
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// cleanup 移除過期會話，呼叫端需持有寫鎖
func (s *MemoryStore) cleanup() int {
	now := time.Now()
	count := 0

	for id, entry := range s.store {
		if now.After(entry.expiresAt) {
			delete(s.store, id)
			count++
			s.stats.evictions++
		}
	}

	if count > 0 {
		common.LogInfo("清理過期會話",
			zap.Int("count", count),
			zap.Int("remaining", len(s.store)),
		)
	}

	return count
}

// evictOldest 淘汰最久未使用的會話，呼叫端需持有寫鎖
func (s *MemoryStore) evictOldest() {
	var oldestID string
	var oldestAccess time.Time

	for id, entry := range s.store {
		if oldestID == "" || entry.lastAccess.Before(oldestAccess) {
			oldestID = id
			oldestAccess = entry.lastAccess
		}
	}

	if oldestID != "" {
		delete(s.store, oldestID)
		s.stats.evictions++
		common.LogInfo("會話已淘汰(LRU)",
			zap.String("session_id", oldestID),
		)
	}
}

// Stop 停止清理協程並清空存儲
func (s *MemoryStore) Stop() {
	close(s.done)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = make(map[string]memoryEntry)

	common.LogInfo("會話存儲已關閉",
		zap.Int64("命中次數", s.stats.hits),
		zap.Int64("未命中次數", s.stats.misses),
		zap.Int64("淘汰次數", s.stats.evictions),
	)
}
