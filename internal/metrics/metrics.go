package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Presence
	ParticipantsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatcord_participants_connected",
			Help: "Participants currently joined",
		},
	)

	JoinsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcord_joins_rejected_total",
			Help: "Join requests rejected",
		},
		[]string{"reason"},
	)

	// Groups
	GroupsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatcord_groups_active",
			Help: "Groups currently alive",
		},
	)

	GroupsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcord_groups_deleted_total",
			Help: "Groups deleted",
		},
		[]string{"cause"}, // "creator" or "empty"
	)

	// Coordinator
	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcord_commands_handled_total",
			Help: "Inbound commands handled",
		},
		[]string{"type"},
	)

	MessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcord_messages_published_total",
			Help: "Chat messages published",
		},
		[]string{"channel_kind"}, // "room", "group" or "dm"
	)

	DeliveriesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatcord_deliveries_dropped_total",
			Help: "Outbound frames dropped on a full session buffer",
		},
	)

	// Transport
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcord_rate_limit_hits_total",
			Help: "Inbound commands refused by the rate limiter",
		},
		[]string{"type"},
	)

	ConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatcord_ws_connections_open",
			Help: "Open websocket connections",
		},
	)
)
