package petservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/domain"
)

// ActionRule describes what an action requires and changes
type ActionRule struct {
	MinEnergy int
	Hunger    int
	Happiness int
	Energy    int
	Coins     int64
	XP        int64
}

// ActionRules holds the stat changes for each care action
var ActionRules = map[domain.ActionKind]ActionRule{
	domain.ActionFeed:     {Hunger: 30, XP: 20},
	domain.ActionPlay:     {MinEnergy: 15, Happiness: 20, Energy: -15, XP: 30},
	domain.ActionSleep:    {Energy: 40, XP: 15},
	domain.ActionWork:     {MinEnergy: 20, Energy: -20, Happiness: -10, Coins: 25, XP: 25},
	domain.ActionExercise: {MinEnergy: 25, Energy: -25, Happiness: 25, Coins: 10, XP: 35},
}

// Simulator is an in-memory pet service used for local development and tests.
// Stats decay lazily: every read or write first applies the periods elapsed since LastUpdated.
type Simulator struct {
	mu            sync.Mutex
	clock         clock.Clock
	decayInterval time.Duration
	pets          map[string]*domain.Pet
	coins         map[string]int64
}

// NewSimulator creates an empty simulator
func NewSimulator(clk clock.Clock, decayInterval time.Duration) *Simulator {
	if decayInterval <= 0 {
		decayInterval = DefaultDecayInterval
	}
	return &Simulator{
		clock:         clk,
		decayInterval: decayInterval,
		pets:          make(map[string]*domain.Pet),
		coins:         make(map[string]int64),
	}
}

func nextLevelXP(level int) int64 {
	return int64(BaseXPRequired) * int64(level)
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

// decay applies elapsed decay periods. Caller holds s.mu.
func (s *Simulator) decay(pet *domain.Pet) {
	if !pet.IsAlive {
		return
	}
	now := s.clock.Now()
	periods := int(now.Sub(pet.LastUpdated) / s.decayInterval)
	if periods <= 0 {
		return
	}

	reduction := pet.Level - 1
	if reduction > MaxDecayReduction {
		reduction = MaxDecayReduction
	}
	multiplier := 100 - reduction

	hungerLoss := max(periods*DecayHungerRate*multiplier/100, 1)
	happyLoss := max(periods*DecayHappyRate*multiplier/100, 1)

	pet.Hunger = clampStat(pet.Hunger - hungerLoss)
	pet.Happiness = clampStat(pet.Happiness - happyLoss)
	pet.LastUpdated = now

	log := slog.Default().With("owner", pet.Owner)
	log.Debug(LogMsgPetDecayed, "periods", periods, "hunger", pet.Hunger, "happiness", pet.Happiness)

	if pet.Hunger == 0 || pet.Happiness == 0 {
		pet.IsAlive = false
		log.Info(LogMsgPetDied)
	}
}

// livePet returns the decayed pet, or an error if it is missing or dead. Caller holds s.mu.
func (s *Simulator) livePet(owner string) (*domain.Pet, error) {
	pet, ok := s.pets[owner]
	if !ok {
		return nil, fmt.Errorf("%w: owner %s", domain.ErrPetNotFound, owner)
	}
	s.decay(pet)
	if !pet.IsAlive {
		return nil, domain.ErrPetDead
	}
	return pet, nil
}

func levelUp(pet *domain.Pet) {
	for pet.XP >= pet.NextLevelXP {
		pet.XP -= pet.NextLevelXP
		pet.Level++
		pet.NextLevelXP = nextLevelXP(pet.Level)
	}
}

func snapshot(pet *domain.Pet) *domain.Pet {
	c := *pet
	return &c
}

func (s *Simulator) CreatePet(_ context.Context, owner, name string) (*domain.Pet, error) {
	if owner == "" || name == "" {
		return nil, fmt.Errorf("%w: owner and name are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pets[owner]; ok {
		s.decay(existing)
		if existing.IsAlive {
			return nil, domain.ErrPetAlreadyExists
		}
	}

	now := s.clock.Now()
	pet := &domain.Pet{
		Owner:       owner,
		Name:        name,
		Birthdate:   now,
		LastUpdated: now,
		IsAlive:     true,
		Hunger:      MaxStat,
		Happiness:   MaxStat,
		Energy:      MaxStat,
		Level:       1,
		NextLevelXP: nextLevelXP(1),
		SpeciesID:   int(now.Unix() % SpeciesCount),
	}
	s.pets[owner] = pet
	s.coins[owner] = 0

	return snapshot(pet), nil
}

func (s *Simulator) GetPet(_ context.Context, owner string) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, ok := s.pets[owner]
	if !ok {
		return nil, nil
	}
	s.decay(pet)
	return snapshot(pet), nil
}

func (s *Simulator) GetCoins(_ context.Context, owner string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coins[owner], nil
}

func (s *Simulator) act(owner string, kind domain.ActionKind) (*domain.Pet, error) {
	rule, ok := ActionRules[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAction, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.livePet(owner)
	if err != nil {
		return nil, err
	}
	if pet.Energy < rule.MinEnergy {
		return nil, fmt.Errorf("%w to %s", domain.ErrNotEnoughEnergy, kind)
	}

	pet.Hunger = clampStat(pet.Hunger + rule.Hunger)
	pet.Happiness = clampStat(pet.Happiness + rule.Happiness)
	pet.Energy = clampStat(pet.Energy + rule.Energy)
	pet.XP += rule.XP
	s.coins[owner] += rule.Coins

	levelUp(pet)
	pet.LastUpdated = s.clock.Now()

	return snapshot(pet), nil
}

func (s *Simulator) Feed(_ context.Context, owner string) (*domain.Pet, error) {
	return s.act(owner, domain.ActionFeed)
}

func (s *Simulator) Play(_ context.Context, owner string) (*domain.Pet, error) {
	return s.act(owner, domain.ActionPlay)
}

func (s *Simulator) Work(_ context.Context, owner string) (*domain.Pet, error) {
	return s.act(owner, domain.ActionWork)
}

func (s *Simulator) Sleep(_ context.Context, owner string) (*domain.Pet, error) {
	return s.act(owner, domain.ActionSleep)
}

func (s *Simulator) Exercise(_ context.Context, owner string) (*domain.Pet, error) {
	return s.act(owner, domain.ActionExercise)
}

func (s *Simulator) MintGlasses(_ context.Context, owner string) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.livePet(owner)
	if err != nil {
		return nil, err
	}
	if pet.Accessories&domain.AccessoryGlasses != 0 {
		return nil, domain.ErrAccessoryOwned
	}
	if s.coins[owner] < GlassesCost {
		return nil, fmt.Errorf("%w: glasses cost %d", domain.ErrInsufficientCoins, GlassesCost)
	}

	s.coins[owner] -= GlassesCost
	pet.Accessories |= domain.AccessoryGlasses
	levelUp(pet)
	pet.LastUpdated = s.clock.Now()

	return snapshot(pet), nil
}

// UpdateCoins rejects deltas that would leave a negative balance
func (s *Simulator) UpdateCoins(_ context.Context, owner string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[owner]; !ok {
		return 0, fmt.Errorf("%w: owner %s", domain.ErrPetNotFound, owner)
	}
	next := s.coins[owner] + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: balance %d, delta %d", domain.ErrInsufficientCoins, s.coins[owner], delta)
	}
	s.coins[owner] = next
	return next, nil
}

// SetCoins overwrites a balance. Used to seed local scenarios.
func (s *Simulator) SetCoins(owner string, coins int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coins[owner] = coins
}
