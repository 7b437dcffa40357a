// Package discordtest provides a recording Transport for tests.
package discordtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/model"
)

// Call records one transport invocation
type Call struct {
	Op      string // "send", "update", "update_interaction", "reply", "reply_embed", "defer", "remove_reaction"
	Ref     model.InteractionRef
	Channel model.ChannelID
	Message model.MessageID
	User    model.UserID
	Emoji   string
	Content string
	Request discord.Request
	Embed   discord.Embed
}

// MockTransport is a recording implementation of discord.Transport.
// Errors can be injected per operation to exercise failure paths.
type MockTransport struct {
	mu    sync.Mutex
	calls []Call
	seq   int

	// Errs maps an op name to the error its calls should return
	Errs map[string]error
}

// Ensure MockTransport implements the interface
var _ discord.Transport = (*MockTransport)(nil)

// NewMockTransport creates an empty MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{Errs: make(map[string]error)}
}

// Calls returns a copy of all recorded calls
func (m *MockTransport) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns recorded calls matching the given op
func (m *MockTransport) CallsFor(op string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// LastCall returns the most recent call, or a zero Call if none were made
func (m *MockTransport) LastCall() Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}
	}
	return m.calls[len(m.calls)-1]
}

// Reset clears recorded calls
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockTransport) record(c Call) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	return m.Errs[c.Op]
}

func (m *MockTransport) SendGame(ctx context.Context, ref model.InteractionRef, req discord.Request) (model.MessageID, error) {
	if err := m.record(Call{Op: "send", Ref: ref, Request: req}); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.seq++
	id := model.MessageID(fmt.Sprintf("msg-%d", m.seq))
	m.mu.Unlock()
	return id, nil
}

func (m *MockTransport) UpdateGame(ctx context.Context, channel model.ChannelID, msg model.MessageID, req discord.Request) error {
	return m.record(Call{Op: "update", Channel: channel, Message: msg, Request: req})
}

func (m *MockTransport) UpdateOnInteraction(ctx context.Context, ref model.InteractionRef, req discord.Request) error {
	return m.record(Call{Op: "update_interaction", Ref: ref, Request: req})
}

func (m *MockTransport) Reply(ctx context.Context, ref model.InteractionRef, content string) error {
	return m.record(Call{Op: "reply", Ref: ref, Content: content})
}

func (m *MockTransport) ReplyEmbed(ctx context.Context, ref model.InteractionRef, embed discord.Embed) error {
	return m.record(Call{Op: "reply_embed", Ref: ref, Embed: embed})
}

func (m *MockTransport) Defer(ctx context.Context, ref model.InteractionRef) error {
	return m.record(Call{Op: "defer", Ref: ref})
}

func (m *MockTransport) RemoveReaction(ctx context.Context, channel model.ChannelID, msg model.MessageID, user model.UserID, emoji string) error {
	return m.record(Call{Op: "remove_reaction", Channel: channel, Message: msg, User: user, Emoji: emoji})
}
