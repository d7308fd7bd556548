package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework_status_bot/internal/domain/homework"
)

func newBotServer(t *testing.T, reply string) (*httptest.Server, *map[string]any, *string) {
	t.Helper()
	var gotPath string
	got := map[string]any{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts, &got, &gotPath
}

func TestTelebotAdapter_SendMessage(t *testing.T) {
	ts, got, path := newBotServer(t, `{"ok":true,"result":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hello"}}`)

	b, err := NewBot(Settings{Token: "123:abc", URL: ts.URL, Offline: true})
	require.NoError(t, err)

	err = NewTelebotAdapter(b).SendMessage(42, "hello")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(*path, "/bot123:abc/sendMessage"), "path %q", *path)
	assert.Equal(t, "42", fmt.Sprint((*got)["chat_id"]))
	assert.Equal(t, "hello", (*got)["text"])
}

func TestTelebotAdapter_SendMessageAPIError(t *testing.T) {
	ts, _, _ := newBotServer(t, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)

	b, err := NewBot(Settings{Token: "123:abc", URL: ts.URL, Offline: true})
	require.NoError(t, err)

	err = NewTelebotAdapter(b).SendMessage(7, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Пока ни одного успешного опроса API.", StatusText(nil))

	cursor := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	txt := StatusText(&homework.PollState{Cursor: cursor.Unix()})
	assert.Contains(t, txt, "2024-03-01 12:00:00")
	assert.Contains(t, txt, "Уведомлений об изменении статуса ещё не было.")

	txt = StatusText(&homework.PollState{Cursor: cursor.Unix(), LastMessage: "Изменился статус", UpdatedAt: cursor})
	assert.Contains(t, txt, "Последний успешный опрос: 2024-03-01 12:00:00.")
	assert.True(t, strings.HasSuffix(txt, "\nИзменился статус"))
}
