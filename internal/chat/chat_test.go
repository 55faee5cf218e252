package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuzz/finbuzz/internal/model"
)

type stubAdviser struct {
	adviseFunc func(ctx context.Context, query string) (string, error)

	mu      sync.Mutex
	queries []string
}

func (s *stubAdviser) Advise(ctx context.Context, query string) (string, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if s.adviseFunc != nil {
		return s.adviseFunc(ctx, query)
	}
	return "some advice", nil
}

func TestSendAppendsUserThenBot(t *testing.T) {
	orch := New(&stubAdviser{})

	reply, err := orch.Send(context.Background(), "how do I save?")
	require.NoError(t, err)
	assert.Equal(t, model.SenderBot, reply.Sender)
	assert.Equal(t, "some advice", reply.Text)

	messages := orch.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, model.SenderUser, messages[0].Sender)
	assert.Equal(t, "how do I save?", messages[0].Text)
	assert.Equal(t, model.SenderBot, messages[1].Sender)
	assert.Less(t, messages[0].ID, messages[1].ID, "ids preserve insertion order")
}

func TestSendTrimsInput(t *testing.T) {
	adviser := &stubAdviser{}
	orch := New(adviser)

	_, err := orch.Send(context.Background(), "  budgeting tips  ")
	require.NoError(t, err)

	assert.Equal(t, []string{"budgeting tips"}, adviser.queries)
	assert.Equal(t, "budgeting tips", orch.Messages()[0].Text)
}

func TestSendRejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		orch := New(&stubAdviser{})

		_, err := orch.Send(context.Background(), input)

		require.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, orch.Messages(), "refused input must not touch the log")
	}
}

func TestSendFailureAppendsApologyMessage(t *testing.T) {
	adviser := &stubAdviser{
		adviseFunc: func(context.Context, string) (string, error) {
			return "", errors.New("provider down")
		},
	}
	orch := New(adviser)

	reply, err := orch.Send(context.Background(), "help")

	// The failure is absorbed into the log, never returned.
	require.NoError(t, err)
	assert.Equal(t, model.SenderBot, reply.Sender)
	assert.Equal(t, "Sorry, I couldn't process your request. Please try again.", reply.Text)
	assert.Len(t, orch.Messages(), 2)
}

func TestSendWhileAwaitingReturnsBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	adviser := &stubAdviser{
		adviseFunc: func(context.Context, string) (string, error) {
			close(started)
			<-release
			return "late reply", nil
		},
	}
	orch := New(adviser)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := orch.Send(context.Background(), "first")
		assert.NoError(t, err)
	}()

	<-started
	assert.True(t, orch.Awaiting())

	_, err := orch.Send(context.Background(), "second")
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	<-done

	assert.False(t, orch.Awaiting())
	messages := orch.Messages()
	require.Len(t, messages, 2, "the refused send leaves no trace")
	assert.Equal(t, "first", messages[0].Text)
}
