// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mcstatus

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"strings"
)

const (
	queryTypeHandshake = 0x09
	queryTypeStat      = 0x00

	// sessionMask keeps only the bits servers echo back.
	sessionMask = 0x0F0F0F0F

	// Full-stat responses start with type, session id and the constant
	// "splitnum\x00\x80\x00" padding; the player section with "\x01player_\x00\x00".
	statHeaderLength    = 1 + 4 + 11
	playerPaddingLength = 10

	maxDatagram = 65535
)

var queryMagic = []byte{0xFE, 0xFD}

// fullQuery runs the challenge handshake followed by a full-stat request
// and returns the player list.
func (p *Prober) fullQuery(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	host, port := p.resolve(ctx)
	if p.queryPort != 0 {
		port = p.queryPort
	}
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to open query socket to %s: %w", addr, err)
	}
	defer conn.Close()
	deadline(ctx, conn)

	session := rand.Uint32() & sessionMask
	buf := make([]byte, maxDatagram)

	if _, err := conn.Write(queryRequest(queryTypeHandshake, session, nil)); err != nil {
		return nil, fmt.Errorf("failed to send query handshake: %w", err)
	}
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read query handshake: %w", err)
	}
	token, err := parseChallenge(buf[:n])
	if err != nil {
		return nil, err
	}

	var body [8]byte
	binary.BigEndian.PutUint32(body[:4], token)
	if _, err := conn.Write(queryRequest(queryTypeStat, session, body[:])); err != nil {
		return nil, fmt.Errorf("failed to send full stat request: %w", err)
	}
	n, err = conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read full stat: %w", err)
	}
	return parseFullStat(buf[:n])
}

func queryRequest(kind byte, session uint32, payload []byte) []byte {
	var b bytes.Buffer
	b.Write(queryMagic)
	b.WriteByte(kind)
	var s [4]byte
	binary.BigEndian.PutUint32(s[:], session)
	b.Write(s[:])
	b.Write(payload)
	return b.Bytes()
}

// parseChallenge extracts the numeric token from a handshake reply.
func parseChallenge(b []byte) (uint32, error) {
	if len(b) < 6 || b[0] != queryTypeHandshake {
		return 0, fmt.Errorf("%w: bad handshake reply", errMalformed)
	}
	text := strings.TrimRight(string(b[5:]), "\x00")
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: challenge token %q", errMalformed, text)
	}
	return uint32(int32(v)), nil
}

// parseFullStat skips the key/value section and returns the player names.
func parseFullStat(b []byte) ([]string, error) {
	if len(b) < statHeaderLength || b[0] != queryTypeStat {
		return nil, fmt.Errorf("%w: bad full stat reply", errMalformed)
	}
	b = b[statHeaderLength:]

	for {
		key, rest, ok := cutNull(b)
		if !ok {
			return nil, fmt.Errorf("%w: truncated key/value section", errMalformed)
		}
		b = rest
		if key == "" {
			break
		}
		if _, rest, ok = cutNull(b); !ok {
			return nil, fmt.Errorf("%w: missing value for %q", errMalformed, key)
		}
		b = rest
	}

	if len(b) < playerPaddingLength {
		return nil, fmt.Errorf("%w: truncated player section", errMalformed)
	}
	b = b[playerPaddingLength:]

	names := make([]string, 0)
	for len(b) > 0 {
		name, rest, ok := cutNull(b)
		if !ok || name == "" {
			break
		}
		names = append(names, name)
		b = rest
	}
	return names, nil
}
