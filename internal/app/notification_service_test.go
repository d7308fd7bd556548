package app

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework_status_bot/internal/domain/homework"
)

type recordingClient struct {
	calls []struct {
		chatID int64
		text   string
	}
	err error
}

func (c *recordingClient) SendMessage(chatID int64, text string) error {
	c.calls = append(c.calls, struct {
		chatID int64
		text   string
	}{chatID, text})
	return c.err
}

func TestTelegramNotifier_Send(t *testing.T) {
	log, _ := test.NewNullLogger()
	tc := &recordingClient{}
	n := NewTelegramNotifier(tc, 555, log.WithField("component", "notifier"))

	require.NoError(t, n.Send(context.Background(), "hello"))
	require.Len(t, tc.calls, 1)
	assert.Equal(t, int64(555), tc.calls[0].chatID)
	assert.Equal(t, "hello", tc.calls[0].text)
}

func TestTelegramNotifier_SendWrapsBotError(t *testing.T) {
	log, _ := test.NewNullLogger()
	botErr := errors.New("telegram: chat not found (400)")
	tc := &recordingClient{err: botErr}
	n := NewTelegramNotifier(tc, 555, log.WithField("component", "notifier"))

	err := n.Send(context.Background(), "hello")
	var ne *homework.NotificationError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, int64(555), ne.ChatID)
	assert.True(t, errors.Is(err, botErr))
	assert.Len(t, tc.calls, 1, "no retry")
}

func TestTelegramNotifier_SendCancelled(t *testing.T) {
	log, _ := test.NewNullLogger()
	tc := &recordingClient{}
	n := NewTelegramNotifier(tc, 1, log.WithField("component", "notifier"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.Send(ctx, "hello")
	assert.Equal(t, homework.KindNotification, homework.KindOf(err))
	assert.Empty(t, tc.calls)
}
