// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
	"github.com/mirvosit/mc-control-bot/pkg/power"
	"github.com/mirvosit/mc-control-bot/pkg/state"
)

// DefaultBarWidth is the number of cells in the player ratio bar.
const DefaultBarWidth = 10

// Action identifiers carried by the control surface.
const (
	ActionStart   = "start"
	ActionStop    = "stop"
	ActionRestart = "restart"
	ActionRefresh = "refresh"
	ActionPlayers = "players"
	ActionLog     = "log"
	ActionIP      = "ip"
	ActionAuto    = "auto"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// View is everything one display render reads.
type View struct {
	Snapshot   mcstatus.Snapshot
	Idle       state.IdleView
	AutoUpdate bool
	// PanelState is the hosting panel's reported state; empty when unknown.
	PanelState string
	UpdatedAt  time.Time
}

// Renderer turns state into chat messages. It never mutates what it reads.
type Renderer struct {
	texts    *Texts
	address  string
	barWidth int
	location *time.Location
}

// NewRenderer creates a renderer. address is the game host shown to users.
func NewRenderer(texts *Texts, address string) *Renderer {
	if texts == nil {
		texts = DefaultTexts()
	}
	return &Renderer{
		texts:    texts,
		address:  address,
		barWidth: DefaultBarWidth,
		location: time.Local,
	}
}

// WithLocation sets the zone used for timestamps.
func (r *Renderer) WithLocation(loc *time.Location) *Renderer {
	r.location = loc
	return r
}

// Bar renders floor(width*online/max) filled cells out of width.
// It returns "" when max is zero.
func Bar(online, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := width * online / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// Display renders the live display payload.
func (r *Renderer) Display(v View) chat.Message {
	t := r.texts
	snap := v.Snapshot
	var sb strings.Builder

	if snap.Online {
		fmt.Fprintf(&sb, "🟢 <b>%s</b>\n", esc(t.Title))
		fmt.Fprintf(&sb, "📡 %s\n", esc(t.Online))

		fmt.Fprintf(&sb, "👥 %s: %d/%d", esc(t.Players), snap.PlayersOnline, snap.PlayersMax)
		if bar := Bar(snap.PlayersOnline, snap.PlayersMax, r.barWidth); bar != "" {
			fmt.Fprintf(&sb, " %s", bar)
		}
		sb.WriteString("\n")

		fmt.Fprintf(&sb, "🏓 %s: %d ms\n", esc(t.Ping), snap.LatencyMs())
		if snap.Version != "" {
			fmt.Fprintf(&sb, "🧩 %s: %s\n", esc(t.Version), esc(snap.Version))
		}
		if motd := collapseNewlines(snap.MOTD); motd != "" {
			fmt.Fprintf(&sb, "📝 %s: <code>%s</code>\n", esc(t.MOTD), esc(motd))
		}
	} else {
		fmt.Fprintf(&sb, "🔴 <b>%s</b>\n", esc(t.Title))
		fmt.Fprintf(&sb, "📡 %s\n", esc(t.Offline))
		if v.PanelState != "" {
			fmt.Fprintf(&sb, "🖥 %s: %s\n", esc(t.PanelState), esc(v.PanelState))
		}
	}

	if v.Idle.Idle {
		fmt.Fprintf(&sb, "⏳ %s %s\n", esc(t.IdleShutdown), countdown(v.Idle.Remaining))
	}

	fmt.Fprintf(&sb, "🔗 <code>%s</code>", esc(r.address))
	if !v.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "\n🕒 %s %s", esc(t.Updated), v.UpdatedAt.In(r.location).Format("15:04:05"))
	}

	return chat.Message{Text: sb.String(), Keyboard: r.Keyboard(v.AutoUpdate)}
}

// Placeholder is the initial content of a newly created display.
func (r *Renderer) Placeholder(autoUpdate bool) chat.Message {
	return chat.Message{Text: esc(r.texts.Placeholder), Keyboard: r.Keyboard(autoUpdate)}
}

// Keyboard is the control surface; the auto-update label reflects its state.
func (r *Renderer) Keyboard(autoUpdate bool) chat.Keyboard {
	b := r.texts.Buttons
	auto := b.AutoOff
	if autoUpdate {
		auto = b.AutoOn
	}
	return chat.Keyboard{
		{{Label: b.Start, Action: ActionStart}, {Label: b.Stop, Action: ActionStop}, {Label: b.Restart, Action: ActionRestart}},
		{{Label: b.Refresh, Action: ActionRefresh}, {Label: b.Players, Action: ActionPlayers}},
		{{Label: b.Log, Action: ActionLog}, {Label: b.IP, Action: ActionIP}},
		{{Label: auto, Action: ActionAuto}},
	}
}

// PowerAck acknowledges a power action.
func (r *Renderer) PowerAck(signal power.Signal, ok bool) chat.Message {
	p := r.texts.Power
	var text string
	switch signal {
	case power.SignalStart:
		text = pick(ok, p.StartOK, p.StartFailed)
	case power.SignalStop:
		text = pick(ok, p.StopOK, p.StopFailed)
	case power.SignalRestart:
		text = pick(ok, p.RestartOK, p.RestartFailed)
	}
	return chat.Message{Text: esc(text)}
}

// Players renders a player query outcome. A nil error with no names is
// "nobody online"; any error is "unavailable".
func (r *Renderer) Players(names []string, err error) chat.Message {
	t := r.texts
	switch {
	case err != nil:
		return chat.Message{Text: "<b>" + esc(t.PlayersUnavailable) + "</b>"}
	case len(names) == 0:
		return chat.Message{Text: "<b>" + esc(t.NoPlayers) + "</b>"}
	}

	var sb strings.Builder
	sb.WriteString("<b>" + esc(t.PlayersList) + "</b>")
	for _, n := range names {
		fmt.Fprintf(&sb, "\n• <code>%s</code>", esc(n))
	}
	return chat.Message{Text: sb.String()}
}

// Log renders event log entries, oldest first.
func (r *Renderer) Log(entries []eventlog.Entry) chat.Message {
	if len(entries) == 0 {
		return chat.Message{Text: esc(r.texts.LogEmpty)}
	}

	var sb strings.Builder
	sb.WriteString("<b>" + esc(r.texts.LogTitle) + "</b>")
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n<code>%s</code> %s", e.Timestamp.In(r.location).Format("15:04:05"), esc(e.Message))
	}
	return chat.Message{Text: sb.String()}
}

// Address renders the configured host identifier.
func (r *Renderer) Address() chat.Message {
	return chat.Message{Text: fmt.Sprintf("%s\n<code>%s</code>", esc(r.texts.Address), esc(r.address))}
}

// AutoUpdate acknowledges an auto-update toggle with its new state.
func (r *Renderer) AutoUpdate(enabled bool) chat.Message {
	return chat.Message{Text: esc(pick(enabled, r.texts.Buttons.AutoOn, r.texts.Buttons.AutoOff))}
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func esc(s string) string {
	return html.EscapeString(s)
}

func collapseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// countdown formats a remaining duration as m:ss, rounding up.
func countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
