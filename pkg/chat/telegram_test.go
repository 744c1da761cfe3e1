// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// newTestTelegram starts a fake Bot API answering by method name.
func newTestTelegram(t *testing.T, replies map[string]string) *Telegram {
	t.Helper()

	if _, ok := replies["getMe"]; !ok {
		replies["getMe"] = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Panel","username":"panel_bot"}}`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		body, ok := replies[method]
		if !ok {
			t.Errorf("unexpected Bot API call %s", method)
			body = `{"ok":false,"error_code":404,"description":"Not Found"}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	tg, err := NewTelegram(TelegramConfig{Token: "123:abc", Endpoint: srv.URL + "/bot%s/%s"})
	if err != nil {
		t.Fatalf("NewTelegram() error = %v", err)
	}
	return tg
}

func TestTelegram_Send(t *testing.T) {
	tg := newTestTelegram(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":42,"date":0,"chat":{"id":5,"type":"private"}}}`,
	})

	id, err := tg.Send(context.Background(), 5, Message{
		Text:     "<b>hi</b>",
		Keyboard: Keyboard{{{Label: "Start", Action: "start"}}},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if id != 42 {
		t.Errorf("Send() = %d, expected 42", id)
	}
}

// newSlowTelegram starts a fake Bot API whose editMessageText stalls.
func newSlowTelegram(t *testing.T, requestTimeout time.Duration) *Telegram {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if method == "editMessageText" {
			select {
			case <-time.After(3 * time.Second):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Panel","username":"panel_bot"}}`))
	}))
	t.Cleanup(func() {
		srv.CloseClientConnections()
		srv.Close()
	})

	tg, err := NewTelegram(TelegramConfig{
		Token:          "123:abc",
		Endpoint:       srv.URL + "/bot%s/%s",
		PollTimeout:    2,
		RequestTimeout: requestTimeout,
	})
	if err != nil {
		t.Fatalf("NewTelegram() error = %v", err)
	}
	return tg
}

func TestTelegram_EditBoundedByRequestTimeout(t *testing.T) {
	tg := newSlowTelegram(t, 100*time.Millisecond)

	start := time.Now()
	err := tg.Edit(context.Background(), 5, 42, Message{Text: "x"})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Edit() expected an error from a stalled API")
	}
	if elapsed > time.Second {
		t.Errorf("Edit() took %v, expected about the request timeout", elapsed)
	}
}

func TestTelegram_EditHonoursContext(t *testing.T) {
	tg := newSlowTelegram(t, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := tg.Edit(ctx, 5, 42, Message{Text: "x"})
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Edit() error = %v, expected %v", err, context.DeadlineExceeded)
	}
	if elapsed > time.Second {
		t.Errorf("Edit() took %v, expected about the context deadline", elapsed)
	}
}

func TestTelegram_EditErrors(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected error
	}{
		{
			name:  "edited",
			reply: `{"ok":true,"result":{"message_id":42,"date":0,"chat":{"id":5,"type":"private"}}}`,
		},
		{
			name:     "unchanged content",
			reply:    `{"ok":false,"error_code":400,"description":"Bad Request: message is not modified: specified new message content and reply markup are exactly the same"}`,
			expected: ErrNotModified,
		},
		{
			name:     "deleted by user",
			reply:    `{"ok":false,"error_code":400,"description":"Bad Request: message to edit not found"}`,
			expected: ErrMessageGone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestTelegram(t, map[string]string{"editMessageText": tt.reply})

			err := tg.Edit(context.Background(), 5, 42, Message{Text: "status"})
			if tt.expected == nil {
				if err != nil {
					t.Errorf("Edit() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Edit() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestTelegram_EventFromUpdate(t *testing.T) {
	tg := &Telegram{}

	start := tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     "/start",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		From:     &tgbotapi.User{ID: 11},
		Chat:     &tgbotapi.Chat{ID: 22},
	}}
	ev, ok := tg.eventFromUpdate(start)
	if !ok || ev.Kind != EventStart || ev.CallerID != 11 || ev.ChatID != 22 {
		t.Errorf("start update -> %+v, %v", ev, ok)
	}

	callback := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 11},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 22}},
		Data:    "players",
	}}
	ev, ok = tg.eventFromUpdate(callback)
	if !ok || ev.Kind != EventAction || ev.Action != "players" || ev.ChatID != 22 {
		t.Errorf("callback update -> %+v, %v", ev, ok)
	}

	text := tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "hello",
		From: &tgbotapi.User{ID: 11},
		Chat: &tgbotapi.Chat{ID: 22},
	}}
	if _, ok := tg.eventFromUpdate(text); ok {
		t.Error("plain text should not produce an event")
	}
}

func TestInlineMarkup(t *testing.T) {
	kb := Keyboard{
		{{Label: "Start", Action: "start"}, {Label: "Stop", Action: "stop"}},
		{{Label: "Log", Action: "log"}},
	}

	markup := inlineMarkup(kb)
	if len(markup.InlineKeyboard) != 2 || len(markup.InlineKeyboard[0]) != 2 {
		t.Fatalf("unexpected layout: %+v", markup.InlineKeyboard)
	}
	b := markup.InlineKeyboard[0][1]
	if b.Text != "Stop" || b.CallbackData == nil || *b.CallbackData != "stop" {
		t.Errorf("button = %+v, expected Stop/stop", b)
	}
}
