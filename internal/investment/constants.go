package investment

// Payout weights. One sample r in [0, 1) selects the branch.
const (
	LossThreshold      = 0.20
	BreakEvenThreshold = 0.40
	LossRate           = 0.20
	MaxProfitRate      = 0.50
)

// Outcome kinds
const (
	OutcomeLoss      = "loss"
	OutcomeBreakEven = "break_even"
	OutcomeProfit    = "profit"
)

// Result messages shown after a claim
const (
	MsgLossFormat      = "Oh no! You lost %d coins. Final amount: %d"
	MsgBreakEvenFormat = "Break even! You got your %d coins back."
	MsgProfitFormat    = "Success! You earned %d coins! Final amount: %d"
	MsgStartedFormat   = "Started investing %d coins for %d hours!"
	MsgMaturedFormat   = "Your investment of %d coins is ready to claim!"
)

// Remaining-time formats
const (
	fmtHoursMinutes   = "%dh %dm"
	fmtMinutesSeconds = "%dm %ds"
	fmtSeconds        = "%ds"
)

// Error contexts
const (
	ErrContextInvalidAmount   = "investment amount must be positive"
	ErrContextInvalidDuration = "investment duration must be positive"
)
