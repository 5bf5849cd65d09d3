package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubProvider 固定輸出的後端，可模擬錯誤與 panic
type stubProvider struct {
	name     string
	reply    string
	err      error
	panicMsg string
	calls    int
}

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.reply, s.err
}

func (s *stubProvider) Name() string {
	return s.name
}

func TestReplyReturnsProviderOutput(t *testing.T) {
	direct := &stubProvider{name: "direct", reply: "Salt it early."}
	orchestrated := &stubProvider{name: "orchestrated", reply: "Rest the meat."}
	r := NewResponder(direct, orchestrated)

	reply := r.Reply(context.Background(), ChefDirect, "steak tips?")
	assert.Equal(t, "Salt it early.", reply)
	assert.Equal(t, 1, direct.calls)
	assert.Zero(t, orchestrated.calls)
}

func TestReplyTurnsErrorIntoMessage(t *testing.T) {
	direct := &stubProvider{name: "direct"}
	orchestrated := &stubProvider{name: "orchestrated", err: errors.New("connection refused")}
	r := NewResponder(direct, orchestrated)

	reply := r.Reply(context.Background(), "", "hello")
	assert.Equal(t, "An error occurred: connection refused", reply)
}

func TestReplyRecoversFromPanic(t *testing.T) {
	direct := &stubProvider{name: "direct", panicMsg: "nil dereference"}
	orchestrated := &stubProvider{name: "orchestrated"}
	r := NewResponder(direct, orchestrated)

	reply := r.Reply(context.Background(), ChefDirect, "hello")
	assert.Equal(t, "An error occurred: nil dereference", reply)
}

func TestReplyRoutesDirectAliases(t *testing.T) {
	for _, alias := range []string{ChefDirect, "direct", "gemma:2b"} {
		direct := &stubProvider{name: "direct", reply: "ok"}
		orchestrated := &stubProvider{name: "orchestrated", reply: "ok"}
		r := NewResponder(direct, orchestrated)

		r.Reply(context.Background(), alias, "hello")
		assert.Equal(t, 1, direct.calls, alias)
		assert.Zero(t, orchestrated.calls, alias)
	}
}

func TestReplyDefaultsToOrchestrated(t *testing.T) {
	for _, name := range []string{"", ChefOrchestrated, "some future chef"} {
		direct := &stubProvider{name: "direct", reply: "ok"}
		orchestrated := &stubProvider{name: "orchestrated", reply: "ok"}
		r := NewResponder(direct, orchestrated)

		r.Reply(context.Background(), name, "hello")
		assert.Zero(t, direct.calls, name)
		assert.Equal(t, 1, orchestrated.calls, name)
	}
}

func TestBackendsListsBothChefs(t *testing.T) {
	r := NewResponder(
		&stubProvider{name: "direct"},
		&stubProvider{name: "orchestrated"},
	)

	backends := r.Backends()
	assert.Equal(t, "direct", backends[ChefDirect])
	assert.Equal(t, "orchestrated", backends[ChefOrchestrated])
	assert.Len(t, backends, 2)
}
