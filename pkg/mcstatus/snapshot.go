// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mcstatus

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Snapshot is one point-in-time read of game server liveness and population.
// The zero value is the offline snapshot.
type Snapshot struct {
	Online        bool
	PlayersOnline int
	PlayersMax    int
	Latency       time.Duration
	MOTD          string
	Version       string
}

// Offline returns the placeholder snapshot used when the server cannot be reached.
func Offline() Snapshot {
	return Snapshot{}
}

// LatencyMs returns the round trip in whole milliseconds.
func (s Snapshot) LatencyMs() int64 {
	return s.Latency.Milliseconds()
}

// Empty reports whether the server is online with nobody connected.
func (s Snapshot) Empty() bool {
	return s.Online && s.PlayersOnline == 0
}

// parseStatus reads the JSON document returned by a status request.
func parseStatus(payload string) (Snapshot, error) {
	if !gjson.Valid(payload) {
		return Snapshot{}, errMalformed
	}
	doc := gjson.Parse(payload)
	if !doc.IsObject() {
		return Snapshot{}, errMalformed
	}

	return Snapshot{
		Online:        true,
		PlayersOnline: nonNegative(doc.Get("players.online").Int()),
		PlayersMax:    nonNegative(doc.Get("players.max").Int()),
		MOTD:          stripFormatting(flattenText(doc.Get("description"))),
		Version:       stripFormatting(doc.Get("version.name").String()),
	}, nil
}

// flattenText renders a chat component (plain string, object with
// text/extra, or array of components) to plain text.
func flattenText(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.String()
	case v.IsArray():
		var sb strings.Builder
		for _, part := range v.Array() {
			sb.WriteString(flattenText(part))
		}
		return sb.String()
	case v.IsObject():
		var sb strings.Builder
		sb.WriteString(v.Get("text").String())
		for _, part := range v.Get("extra").Array() {
			sb.WriteString(flattenText(part))
		}
		return sb.String()
	}
	return ""
}

// stripFormatting removes legacy section-sign colour and style codes.
func stripFormatting(s string) string {
	if !strings.ContainsRune(s, '§') {
		return s
	}
	var sb strings.Builder
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == '§' {
			skip = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func nonNegative(v int64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
