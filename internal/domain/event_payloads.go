package domain

import "time"

// PetSyncedPayload is the event payload for pet.synced events
type PetSyncedPayload struct {
	Owner     string `json:"owner"`
	Success   bool   `json:"success"`
	Changed   bool   `json:"changed"`
	PetExists bool   `json:"pet_exists"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PetActionPayload is the event payload for pet.action events
type PetActionPayload struct {
	Owner     string     `json:"owner"`
	Action    ActionKind `json:"action"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	Stats     PetStats   `json:"stats"`
	Coins     int64      `json:"coins"`
	Timestamp int64      `json:"timestamp"`
}

// PetLevelUpPayload is the event payload for pet.level_up events
type PetLevelUpPayload struct {
	Owner     string `json:"owner"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// PetCreatedPayload is the event payload for pet.created events
type PetCreatedPayload struct {
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	SpeciesID int    `json:"species_id"`
	Timestamp int64  `json:"timestamp"`
}

// ActionRejectedPayload is the event payload for pet.action_rejected events
type ActionRejectedPayload struct {
	Command   string `json:"command"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// MoodRolledPayload is the event payload for mood.rolled events
type MoodRolledPayload struct {
	MoodType      MoodType  `json:"mood_type"`
	Message       string    `json:"message"`
	LastMoodCheck time.Time `json:"last_mood_check"`
}

// InvestmentStartedPayload is the event payload for investment.started events
type InvestmentStartedPayload struct {
	Owner         string    `json:"owner"`
	Amount        int64     `json:"amount"`
	DurationHours int       `json:"duration_hours"`
	MaturesAt     time.Time `json:"matures_at"`
}

// InvestmentClaimedPayload is the event payload for investment.claimed events
type InvestmentClaimedPayload struct {
	Owner     string `json:"owner"`
	Outcome   string `json:"outcome"`
	Amount    int64  `json:"amount"`
	Final     int64  `json:"final"`
	Net       int64  `json:"net"`
	Settled   bool   `json:"settled"`
	Timestamp int64  `json:"timestamp"`
}

// InvestmentMaturedPayload is the event payload for investment.matured events
type InvestmentMaturedPayload struct {
	Amount    int64     `json:"amount"`
	MaturesAt time.Time `json:"matures_at"`
}

// ChallengeResolvedPayload is the event payload for challenge.resolved events
type ChallengeResolvedPayload struct {
	Result    string `json:"result"`
	ElapsedMS int64  `json:"elapsed_ms"`
	TargetMS  int64  `json:"target_ms"`
	Timestamp int64  `json:"timestamp"`
}

// IdentityChangedPayload is the event payload for identity.changed events
type IdentityChangedPayload struct {
	Identity  string `json:"identity"`
	Connected bool   `json:"connected"`
	Timestamp int64  `json:"timestamp"`
}
