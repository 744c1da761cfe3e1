// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
	"github.com/mirvosit/mc-control-bot/pkg/mock"
	"github.com/mirvosit/mc-control-bot/pkg/power"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/mirvosit/mc-control-bot/pkg/state"
)

const (
	ownerID int64 = 1001
	chatID  int64 = 55
)

type stubOpener struct {
	chats []int64
}

func (o *stubOpener) Open(ctx context.Context, chatID int64) error {
	o.chats = append(o.chats, chatID)
	return nil
}

type fixture struct {
	transport  *mock.Transport
	power      *mock.PowerSender
	prober     *mock.Prober
	opener     *stubOpener
	events     *eventlog.Log
	session    *state.Session
	notifier   *chat.Notifier
	dispatcher *command.Dispatcher
	clock      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		transport: mock.NewTransport(),
		power:     mock.NewPowerSender(),
		prober:    mock.NewProber(mcstatus.Snapshot{Online: true, PlayersOnline: 1, PlayersMax: 20}),
		opener:    &stubOpener{},
		events:    eventlog.New(eventlog.DefaultCapacity),
		session:   state.NewSession(true, state.NewIdleTracker(0)),
		clock:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.notifier = chat.NewNotifier(f.transport, time.Hour, time.Second)
	t.Cleanup(func() { f.notifier.Close(context.Background()) })

	registry := command.NewRegistry()
	err := RegisterCommands(registry, &Dependencies{
		Power:    power.NewController(f.power, f.events),
		Prober:   f.prober,
		Notifier: f.notifier,
		Renderer: render.NewRenderer(render.DefaultTexts(), "play.example.net").WithLocation(time.UTC),
		Events:   f.events,
		Session:  f.session,
		Display:  f.opener,
	})
	if err != nil {
		t.Fatalf("RegisterCommands() error = %v", err)
	}

	f.dispatcher = command.NewDispatcher(registry, f.opener, command.DispatcherConfig{
		Owners:   []int64{ownerID},
		Cooldown: 2 * time.Second,
		Now:      func() time.Time { return f.clock },
	})
	return f
}

// press sends action as the owner, past any cooldown.
func (f *fixture) press(caller int64, action string) {
	f.clock = f.clock.Add(10 * time.Second)
	f.dispatcher.HandleEvent(context.Background(), chat.NewActionEvent(caller, chatID, action, nil))
}

func (f *fixture) lastText(t *testing.T) string {
	t.Helper()
	sent := f.transport.SentMessages()
	if len(sent) == 0 {
		t.Fatal("no notification sent")
	}
	last := sent[len(sent)-1]
	if last.ChatID != chatID {
		t.Errorf("notification sent to chat %d, expected %d", last.ChatID, chatID)
	}
	return last.Message.Text
}

func TestRegisterCommands(t *testing.T) {
	registry := command.NewRegistry()
	if err := RegisterCommands(registry, &Dependencies{}); err != nil {
		t.Fatalf("RegisterCommands() error = %v", err)
	}

	expected := []string{"auto", "ip", "log", "players", "refresh", "restart", "start", "status", "stop"}
	if got := registry.Actions(); fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("Actions() = %v, expected %v", got, expected)
	}
	if err := RegisterCommands(registry, &Dependencies{}); err == nil {
		t.Error("registering twice should fail")
	}
}

func TestPowerCommands(t *testing.T) {
	tests := []struct {
		action     string
		accept     bool
		expectText string
		expectLog  string
	}{
		{action: "start", accept: true, expectText: "starting", expectLog: "power start: accepted"},
		{action: "stop", accept: true, expectText: "stopping", expectLog: "power stop: accepted"},
		{action: "restart", accept: false, expectText: "❌ Restart failed", expectLog: "power restart: status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			f := newFixture(t)
			f.power.Accept = tt.accept

			f.press(ownerID, tt.action)

			signals := f.power.SentSignals()
			if len(signals) != 1 || string(signals[0]) != tt.action {
				t.Errorf("signals = %v, expected [%s]", signals, tt.action)
			}
			if got := f.lastText(t); !strings.Contains(got, tt.expectText) {
				t.Errorf("ack = %q, expected to contain %q", got, tt.expectText)
			}
			if f.notifier.Pending() != 1 {
				t.Errorf("Pending() = %d, ack must be scheduled for deletion", f.notifier.Pending())
			}
			entries := f.events.Recent(0)
			if len(entries) != 1 || entries[0].Message != tt.expectLog {
				t.Errorf("event log = %+v, expected %q", entries, tt.expectLog)
			}
		})
	}
}

func TestPlayersCommand(t *testing.T) {
	tests := []struct {
		name       string
		names      []string
		err        error
		expectText string
	}{
		{name: "list", names: []string{"Steve", "Alex"}, expectText: "Steve"},
		{name: "nobody", names: []string{}, expectText: "Nobody is on the server"},
		{name: "unavailable", err: fmt.Errorf("%w: query disabled", mcstatus.ErrUnavailable), expectText: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.prober.PlayerNames = tt.names
			f.prober.PlayersErr = tt.err

			f.press(ownerID, "players")

			if got := f.lastText(t); !strings.Contains(got, tt.expectText) {
				t.Errorf("players message = %q, expected to contain %q", got, tt.expectText)
			}
			if f.prober.PlayersCalls != 1 {
				t.Errorf("PlayersCalls = %d", f.prober.PlayersCalls)
			}
		})
	}
}

func TestLogCommand(t *testing.T) {
	f := newFixture(t)

	f.press(ownerID, "log")
	if got := f.lastText(t); !strings.Contains(got, "No events yet") {
		t.Errorf("empty log message = %q", got)
	}

	for i := 1; i <= 15; i++ {
		f.events.Append(fmt.Sprintf("event %02d", i))
	}
	f.press(ownerID, "log")

	got := f.lastText(t)
	if strings.Contains(got, "event 05") || !strings.Contains(got, "event 06") || !strings.Contains(got, "event 15") {
		t.Errorf("log message should hold the 10 most recent entries, got %q", got)
	}
}

func TestAddressCommand(t *testing.T) {
	f := newFixture(t)

	f.press(ownerID, "ip")

	if got := f.lastText(t); !strings.Contains(got, "<code>play.example.net</code>") {
		t.Errorf("address message = %q", got)
	}
}

func TestRefreshCommand(t *testing.T) {
	f := newFixture(t)

	f.press(ownerID, "refresh")
	f.press(ownerID, "status")

	if len(f.opener.chats) != 2 || f.opener.chats[0] != chatID {
		t.Errorf("refresh opens = %v, expected two in chat %d", f.opener.chats, chatID)
	}
	if len(f.transport.SentMessages()) != 0 {
		t.Error("refresh must not send a notification")
	}
}

func TestAutoUpdateCommand(t *testing.T) {
	f := newFixture(t)

	f.press(ownerID, "auto")
	if f.session.AutoUpdate() {
		t.Fatal("auto-update should be off after one toggle")
	}
	if got := f.lastText(t); !strings.Contains(got, "OFF") {
		t.Errorf("toggle ack = %q", got)
	}

	f.press(ownerID, "auto")
	if !f.session.AutoUpdate() {
		t.Error("auto-update should be back on")
	}

	entries := f.events.Recent(0)
	if len(entries) != 2 || entries[0].Message != "auto-update off" || entries[1].Message != "auto-update on" {
		t.Errorf("event log = %+v", entries)
	}
	if len(f.opener.chats) != 0 {
		t.Error("toggle must not refresh the display")
	}
}

func TestUnauthorizedHasNoSideEffects(t *testing.T) {
	f := newFixture(t)

	for _, action := range []string{"start", "stop", "restart", "players", "log", "ip", "refresh", "auto"} {
		f.press(666, action)
	}

	if f.transport.Outbound() != 0 {
		t.Errorf("unauthorized caller caused %d outbound messages", f.transport.Outbound())
	}
	if len(f.power.SentSignals()) != 0 || f.events.Len() != 0 || len(f.opener.chats) != 0 {
		t.Error("unauthorized caller caused side effects")
	}
	if !f.session.AutoUpdate() {
		t.Error("unauthorized caller toggled auto-update")
	}
}

func TestRapidPowerPressesSendOneSignal(t *testing.T) {
	f := newFixture(t)

	f.press(ownerID, "stop")
	for i := 0; i < 3; i++ {
		f.clock = f.clock.Add(500 * time.Millisecond)
		f.dispatcher.HandleEvent(context.Background(), chat.NewActionEvent(ownerID, chatID, "stop", nil))
	}

	if n := len(f.power.SentSignals()); n != 1 {
		t.Errorf("sent %d signals, expected 1", n)
	}
	if f.events.Len() != 1 {
		t.Errorf("event log has %d entries, expected 1", f.events.Len())
	}
}
