package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

var (
	HTTPRequestsTotal = counter(SubsystemHTTP, "requests_total",
		"HTTP requests by method, route pattern and status", LabelMethod, LabelPath, LabelStatus)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: SubsystemHTTP,
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern",
		Buckets:   prometheus.ExponentialBucketsRange(0.001, 10, 12),
	}, []string{LabelMethod, LabelPath})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: SubsystemHTTP,
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served",
	})

	EventsPublished = counter(SubsystemEvents, "published_total",
		"Events seen on the bus by type", LabelType)
)

// Pet
var (
	PetActions = counter(SubsystemPet, "actions_total",
		"Care actions by kind and result", LabelAction, LabelResult)
	PetSyncs = counter(SubsystemPet, "syncs_total",
		"Pet service syncs by result and whether the local state changed", LabelResult, LabelChanged)
	PetLevelUps = counter(SubsystemPet, "level_ups_total",
		"Level ups observed after an action").WithLabelValues()
	PetsCreated = counter(SubsystemPet, "created_total",
		"Pets hatched").WithLabelValues()
	Rejections = counter(SubsystemPet, "rejections_total",
		"Commands refused before reaching the pet service", LabelCommand)
	MoodRolls = counter(SubsystemPet, "mood_rolls_total",
		"Mood rolls by mood", LabelMood)
	Coins = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: SubsystemPet,
		Name:      "coins",
		Help:      "Local coin balance after the last action",
	})
)

// Investment and challenge
var (
	InvestmentsStarted = counter(SubsystemInvestment, "started_total",
		"Investments started by duration", LabelDuration)
	InvestmentClaims = counter(SubsystemInvestment, "claims_total",
		"Claims by outcome and whether the pet service accepted the delta", LabelOutcome, LabelSettled)
	InvestmentNetCoins = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: SubsystemInvestment,
		Name:      "net_coins",
		Help:      "Running net of coins paid out by settled claims, negative after losses",
	})

	Challenges = counter(SubsystemChallenge, "resolved_total",
		"Play challenges by result", LabelResult)
	ChallengeReaction = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: SubsystemChallenge,
		Name:      "reaction_offset_seconds",
		Help:      "Distance between the hit and the challenge target",
		Buckets:   []float64{.01, .025, .05, .075, .1, .15, .25, .5, 1},
	})
)
