// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mcstatus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	protocolVersion = 47
	stateStatus     = 1

	packetStatus = 0x00
	packetPing   = 0x01
)

// Ping performs a status handshake and returns the parsed snapshot.
// Unlike Status it reports failures to the caller.
func (p *Prober) Ping(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	host, port := p.resolve(ctx)
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()
	deadline(ctx, conn)

	var hs bytes.Buffer
	writeVarInt(&hs, packetStatus)
	writeVarInt(&hs, protocolVersion)
	writeString(&hs, host)
	putUint16(&hs, port)
	writeVarInt(&hs, stateStatus)

	sent := time.Now()
	if err := writePacket(conn, hs.Bytes()); err != nil {
		return Snapshot{}, fmt.Errorf("failed to send handshake: %w", err)
	}
	if err := writePacket(conn, []byte{packetStatus}); err != nil {
		return Snapshot{}, fmt.Errorf("failed to send status request: %w", err)
	}

	r := bufio.NewReader(conn)
	body, err := readPacket(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read status response: %w", err)
	}
	statusRTT := time.Since(sent)

	br := bytes.NewReader(body)
	id, err := readVarInt(br)
	if err != nil || id != packetStatus {
		return Snapshot{}, fmt.Errorf("%w: unexpected packet id %d", errMalformed, id)
	}
	payload, err := readString(br)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read status payload: %w", err)
	}

	snap, err := parseStatus(payload)
	if err != nil {
		return Snapshot{}, err
	}

	snap.Latency = pingRoundTrip(conn, r)
	if snap.Latency <= 0 {
		snap.Latency = statusRTT
	}
	return snap, nil
}

// pingRoundTrip measures one ping/pong exchange. It returns zero when the
// server does not answer; some servers close right after the status reply.
func pingRoundTrip(conn net.Conn, r byteReader) time.Duration {
	start := time.Now()

	var pkt bytes.Buffer
	writeVarInt(&pkt, packetPing)
	var payload [8]byte
	binary.BigEndian.PutUint64(payload[:], uint64(start.UnixMilli()))
	pkt.Write(payload[:])

	if err := writePacket(conn, pkt.Bytes()); err != nil {
		return 0
	}
	body, err := readPacket(r)
	if err != nil || len(body) == 0 || body[0] != packetPing {
		return 0
	}
	return time.Since(start)
}
