package session

import (
	"context"
	"testing"
	"time"

	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		TTL:             time.Hour,
		CleanupInterval: time.Minute,
		MaxEntries:      3,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()
	ctx := context.Background()

	state := common.NewSessionState("abc")
	state.BeginChatTurn("hello")
	require.NoError(t, s.Save(ctx, state))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	require.Len(t, got.Transcript, 1)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryStoreMissingSession(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = 10 * time.Millisecond
	s := NewMemoryStore(cfg)
	defer s.Stop()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, common.NewSessionState("abc")))
	time.Sleep(30 * time.Millisecond)

	_, err := s.Get(ctx, "abc")
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.Zero(t, s.Len())
}

func TestMemoryStoreOverwriteReplacesState(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()
	ctx := context.Background()

	first := common.NewSessionState("abc")
	first.BestRecipe = &common.Recipe{ID: "1", Name: "Old"}
	require.NoError(t, s.Save(ctx, first))

	second := common.NewSessionState("abc")
	second.BestRecipe = &common.Recipe{ID: "2", Name: "New"}
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "2", got.BestRecipe.ID)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreEvictsOldestWhenFull(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, common.NewSessionState(id)))
		time.Sleep(2 * time.Millisecond)
	}

	require.NoError(t, s.Save(ctx, common.NewSessionState("d")))
	assert.Equal(t, 3, s.Len())

	// 最久未使用的 a 被淘汰，讓位給 d
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
	_, err = s.Get(ctx, "d")
	assert.NoError(t, err)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, common.NewSessionState("abc")))
	s.Delete(ctx, "abc")

	_, err := s.Get(ctx, "abc")
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.Zero(t, s.Len())
}

func TestResolveReturnsExistingSession(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()
	ctx := context.Background()

	state := common.NewSessionState("abc")
	state.BestRecipe = &common.Recipe{ID: "52795"}
	require.NoError(t, s.Save(ctx, state))

	got, created := Resolve(ctx, s, "abc")
	assert.False(t, created)
	require.NotNil(t, got.BestRecipe)
	assert.Equal(t, "52795", got.BestRecipe.ID)
}

func TestResolveGeneratesIDWhenAbsent(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()

	got, created := Resolve(context.Background(), s, "")
	assert.True(t, created)
	assert.NotEmpty(t, got.ID)
	assert.Empty(t, got.Transcript)
	assert.Nil(t, got.BestRecipe)
}

func TestResolveKeepsPresentedIDForNewSession(t *testing.T) {
	s := NewMemoryStore(testConfig())
	defer s.Stop()

	// 客戶端帶著已過期或未知的識別碼回來，沿用同一個識別碼
	got, created := Resolve(context.Background(), s, "expired-id")
	assert.True(t, created)
	assert.Equal(t, "expired-id", got.ID)
	assert.Nil(t, got.BestRecipe)
}
