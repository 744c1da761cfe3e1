// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mcbot"

var (
	// PowerRequestsTotal counts power signals sent to the hosting API.
	PowerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "power_requests_total",
			Help:      "Total number of power signals sent to the hosting API",
		},
		[]string{"signal", "result"},
	)

	// ProbeTotal counts status probes by outcome (online/offline).
	ProbeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_total",
			Help:      "Total number of game server status probes",
		},
		[]string{"result"},
	)

	PlayersOnline = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_online",
			Help:      "Players online at the last status probe",
		},
	)

	IdleShutdownsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idle_shutdowns_total",
			Help:      "Total number of automatic stops after the idle threshold",
		},
	)

	// CommandsTotal counts inbound actions by outcome
	// (dispatched, unauthorized, rate_limited, unknown, failed).
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of inbound control actions",
		},
		[]string{"action", "outcome"},
	)

	DisplayRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "display_refresh_total",
			Help:      "Total number of live display refresh attempts",
		},
		[]string{"result"},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one probe, track, render and refresh cycle",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Collectors returns every application collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		PowerRequestsTotal,
		ProbeTotal,
		PlayersOnline,
		IdleShutdownsTotal,
		CommandsTotal,
		DisplayRefreshTotal,
		CycleDuration,
	}
}
