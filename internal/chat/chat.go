// Package chat maintains the ordered message log of an advice conversation.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/finbuzz/finbuzz/internal/model"
)

// Orchestration errors.
var (
	// ErrEmptyMessage is returned for empty or whitespace-only input; no
	// message is appended.
	ErrEmptyMessage = errors.New("empty chat message")
	// ErrBusy is returned while a previous send is still awaiting its
	// response. Only one request may be in flight per session.
	ErrBusy = errors.New("a response is still pending")
)

// failureText is appended as the bot message when advice generation fails
// outright. Remote failures never surface as errors to the log itself.
const failureText = "Sorry, I couldn't process your request. Please try again."

// Adviser produces a bot reply for a user query.
type Adviser interface {
	Advise(ctx context.Context, query string) (string, error)
}

// Orchestrator serializes one conversation: every accepted send appends
// exactly one user message immediately, and exactly one bot message when the
// response arrives. States: idle and awaiting-response.
type Orchestrator struct {
	adviser  Adviser
	messages []model.ChatMessage
	nextID   int64
	awaiting bool
	mu       sync.Mutex
}

// New creates an orchestrator over the given adviser.
func New(adviser Adviser) *Orchestrator {
	return &Orchestrator{adviser: adviser, nextID: 1}
}

// Send submits user input and blocks until the bot reply is appended.
// Whitespace-only input is refused without touching the log. Concurrent
// sends while awaiting a response are refused with ErrBusy.
func (o *Orchestrator) Send(ctx context.Context, text string) (model.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}

	o.mu.Lock()
	if o.awaiting {
		o.mu.Unlock()
		return model.ChatMessage{}, ErrBusy
	}
	o.awaiting = true
	o.appendLocked(model.SenderUser, trimmed)
	o.mu.Unlock()

	reply, err := o.adviser.Advise(ctx, trimmed)
	if err != nil {
		reply = failureText
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	msg := o.appendLocked(model.SenderBot, reply)
	o.awaiting = false
	return msg, nil
}

// Awaiting reports whether a response is currently pending.
func (o *Orchestrator) Awaiting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.awaiting
}

// Messages returns a copy of the log in insertion order.
func (o *Orchestrator) Messages() []model.ChatMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]model.ChatMessage, len(o.messages))
	copy(out, o.messages)
	return out
}

func (o *Orchestrator) appendLocked(sender model.Sender, text string) model.ChatMessage {
	msg := model.ChatMessage{ID: o.nextID, Sender: sender, Text: text}
	o.nextID++
	o.messages = append(o.messages, msg)
	return msg
}
