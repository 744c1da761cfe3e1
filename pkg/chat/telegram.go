// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package chat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	defaultPollTimeout    = 60
	defaultRequestTimeout = 10 * time.Second

	callbackAckText = "⏳"
)

// TelegramConfig configures the Telegram Bot API adapter.
type TelegramConfig struct {
	Token string
	// Endpoint overrides tgbotapi.APIEndpoint. Used by tests.
	Endpoint string
	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout    int
	RequestTimeout time.Duration
}

// Telegram implements Transport over the Telegram Bot API and feeds
// inbound updates to a Handler. Long polling and outbound calls use
// separate clients so every outbound call is bounded by RequestTimeout.
type Telegram struct {
	bot         *tgbotapi.BotAPI
	api         *tgbotapi.BotAPI
	pollTimeout int
	wg          sync.WaitGroup
}

// NewTelegram authenticates with the Bot API (getMe) and returns the adapter.
func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = tgbotapi.APIEndpoint
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = defaultPollTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	pollClient := &http.Client{Timeout: time.Duration(cfg.PollTimeout)*time.Second + cfg.RequestTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, cfg.Endpoint, pollClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bot API: %w", err)
	}

	api := &tgbotapi.BotAPI{
		Token:  cfg.Token,
		Buffer: bot.Buffer,
		Self:   bot.Self,
		Client: &http.Client{Timeout: cfg.RequestTimeout},
	}
	api.SetAPIEndpoint(cfg.Endpoint)

	logrus.Infof("authorized on bot account %s", bot.Self.UserName)
	return &Telegram{bot: bot, api: api, pollTimeout: cfg.PollTimeout}, nil
}

// Receive long-polls for updates and hands each supported one to h in its
// own goroutine. It returns when ctx is cancelled or Stop is called.
func (t *Telegram) Receive(ctx context.Context, h Handler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}
	updates := t.bot.GetUpdatesChan(u)

	logrus.Info("receiving bot updates")
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := t.eventFromUpdate(update)
			if !ok {
				continue
			}
			t.wg.Add(1)
			go func() {
				defer t.wg.Done()
				h.HandleEvent(ctx, ev)
			}()
		}
	}
}

// Stop ends long polling and waits for in-flight handlers.
func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
	t.wg.Wait()
	logrus.Info("stopped receiving bot updates")
}

func (t *Telegram) eventFromUpdate(update tgbotapi.Update) (Event, bool) {
	if m := update.Message; m != nil && m.From != nil && m.Chat != nil {
		if m.IsCommand() && m.Command() == "start" {
			return NewStartEvent(m.From.ID, m.Chat.ID), true
		}
		return Event{}, false
	}

	if cq := update.CallbackQuery; cq != nil && cq.From != nil && cq.Message != nil && cq.Message.Chat != nil {
		queryID := cq.ID
		ack := func(ctx context.Context) {
			if err := t.request(ctx, tgbotapi.NewCallback(queryID, callbackAckText)); err != nil {
				logrus.Debugf("failed to answer callback query: %v", err)
			}
		}
		return NewActionEvent(cq.From.ID, cq.Message.Chat.ID, cq.Data, ack), true
	}

	return Event{}, false
}

// Send posts a new message and returns its identifier.
func (t *Telegram) Send(ctx context.Context, chatID int64, msg Message) (int, error) {
	out := tgbotapi.NewMessage(chatID, msg.Text)
	out.ParseMode = tgbotapi.ModeHTML
	out.DisableWebPagePreview = true
	if len(msg.Keyboard) > 0 {
		out.ReplyMarkup = inlineMarkup(msg.Keyboard)
	}

	var sent tgbotapi.Message
	err := t.call(ctx, func() error {
		var err error
		sent, err = t.api.Send(out)
		return err
	})
	if err != nil {
		return 0, classify(err)
	}
	return sent.MessageID, nil
}

// Edit replaces the text and control surface of an existing message.
func (t *Telegram) Edit(ctx context.Context, chatID int64, messageID int, msg Message) error {
	var edit tgbotapi.EditMessageTextConfig
	if len(msg.Keyboard) > 0 {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, msg.Text, inlineMarkup(msg.Keyboard))
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, msg.Text)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true

	if err := t.request(ctx, edit); err != nil {
		return classify(err)
	}
	return nil
}

// Delete removes a message.
func (t *Telegram) Delete(ctx context.Context, chatID int64, messageID int) error {
	if err := t.request(ctx, tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return classify(err)
	}
	return nil
}

func (t *Telegram) request(ctx context.Context, c tgbotapi.Chattable) error {
	return t.call(ctx, func() error {
		_, err := t.api.Request(c)
		return err
	})
}

// call runs fn and returns early if ctx ends first. The HTTP client
// timeout bounds fn itself.
func (t *Telegram) call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func inlineMarkup(kb Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// classify maps Bot API error descriptions to package sentinels.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "message is not modified"):
		return fmt.Errorf("%w: %v", ErrNotModified, err)
	case strings.Contains(msg, "message to edit not found"),
		strings.Contains(msg, "message to delete not found"),
		strings.Contains(msg, "message can't be edited"),
		strings.Contains(msg, "message can't be deleted"):
		return fmt.Errorf("%w: %v", ErrMessageGone, err)
	}
	return err
}
