package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Total number of chat replies by source",
		},
		[]string{"source"},
	)

	ChatRuleMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_rule_matches_total",
			Help: "Total number of turns claimed by each router rule",
		},
		[]string{"rule"},
	)

	ChatCollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_collaborator_failures_total",
			Help: "Total number of failed collaborator calls",
		},
		[]string{"collaborator"},
	)

	ChatTurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_turn_duration_seconds",
			Help:    "Duration of chat turn handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"rule"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)
