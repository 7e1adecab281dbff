// Package investment holds the pure rules of the coin investment mini-game.
package investment

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/utils"
)

// Option is one of the preset investments offered to the player
type Option struct {
	Amount        int64  `json:"amount"`
	DurationHours int    `json:"durationHours"`
	Label         string `json:"label"`
}

// Options are the presets in display order
var Options = []Option{
	{Amount: 100, DurationHours: 4, Label: "Short Term (4 Hours)"},
	{Amount: 500, DurationHours: 12, Label: "Medium Term (12 Hours)"},
	{Amount: 1000, DurationHours: 24, Label: "Long Term (24 Hours)"},
}

// Outcome is the resolved payout of a claim
type Outcome struct {
	Kind  string `json:"kind"`
	Final int64  `json:"final"`
	Net   int64  `json:"net"`
}

// Message renders the outcome for the player
func (o Outcome) Message(amount int64) string {
	switch o.Kind {
	case OutcomeLoss:
		return fmt.Sprintf(MsgLossFormat, -o.Net, o.Final)
	case OutcomeBreakEven:
		return fmt.Sprintf(MsgBreakEvenFormat, amount)
	default:
		return fmt.Sprintf(MsgProfitFormat, o.Net, o.Final)
	}
}

// New validates the request and opens an investment starting at now
func New(amount int64, durationHours int, now time.Time) (domain.Investment, error) {
	if amount <= 0 {
		return domain.Investment{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextInvalidAmount)
	}
	if durationHours <= 0 {
		return domain.Investment{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextInvalidDuration)
	}
	return domain.Investment{
		Amount:        amount,
		StartTime:     now,
		DurationHours: durationHours,
		IsActive:      true,
	}, nil
}

// Progress returns the elapsed share of the lock-up as a percentage capped at 100
func Progress(inv domain.Investment, now time.Time) float64 {
	total := inv.Duration()
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(inv.StartTime)
	if elapsed <= 0 {
		return 0
	}
	return math.Min(float64(elapsed)/float64(total)*100, 100)
}

// Claimable reports whether the lock-up has fully elapsed
func Claimable(inv domain.Investment, now time.Time) bool {
	return Progress(inv, now) >= 100
}

// Remaining returns the time left until maturity, never negative
func Remaining(inv domain.Investment, now time.Time) time.Duration {
	left := inv.MaturesAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// MaturesAt returns when the investment becomes claimable
func MaturesAt(inv domain.Investment) time.Time {
	return inv.MaturesAt()
}

// Resolve draws the payout for amount. The first sample picks the branch;
// the profit branch draws a second sample for the size of the gain.
func Resolve(amount int64, rng utils.RandomSource) Outcome {
	r := rng.Float64()
	switch {
	case r < LossThreshold:
		loss := int64(math.Floor(float64(amount) * LossRate))
		return Outcome{Kind: OutcomeLoss, Final: amount - loss, Net: -loss}
	case r < BreakEvenThreshold:
		return Outcome{Kind: OutcomeBreakEven, Final: amount, Net: 0}
	default:
		profit := int64(math.Floor(rng.Float64() * float64(amount) * MaxProfitRate))
		return Outcome{Kind: OutcomeProfit, Final: amount + profit, Net: profit}
	}
}

// FormatRemaining renders a duration the way the investment dialog shows it
func FormatRemaining(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf(fmtHoursMinutes, hours, minutes)
	case minutes > 0:
		return fmt.Sprintf(fmtMinutesSeconds, minutes, seconds)
	default:
		return fmt.Sprintf(fmtSeconds, seconds)
	}
}

// Status is a read-only view of an active investment at a point in time
type Status struct {
	Investment    domain.Investment `json:"investment"`
	Progress      float64           `json:"progress"`
	Claimable     bool              `json:"claimable"`
	Remaining     time.Duration     `json:"remainingNs"`
	RemainingText string            `json:"remaining"`
	MaturesAt     time.Time         `json:"maturesAt"`
}

// StatusAt derives the status of inv at now
func StatusAt(inv domain.Investment, now time.Time) Status {
	left := Remaining(inv, now)
	return Status{
		Investment:    inv,
		Progress:      Progress(inv, now),
		Claimable:     Claimable(inv, now),
		Remaining:     left,
		RemainingText: FormatRemaining(left),
		MaturesAt:     inv.MaturesAt(),
	}
}
