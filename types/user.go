package types

import (
	"encoding/json"
	"time"
)

// ParentingStage buckets a child's age for personalization.
type ParentingStage string

const (
	StageExpecting ParentingStage = "expecting"
	StageNewborn   ParentingStage = "newborn"
	StageInfant    ParentingStage = "infant"
	StageToddler   ParentingStage = "toddler"
)

func (s ParentingStage) Valid() bool {
	switch s {
	case StageExpecting, StageNewborn, StageInfant, StageToddler:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// PasswordHash never leaves the server.
	PasswordHash string `json:"-"`
}

type UserProfile struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	BabyBirthDate  *time.Time      `json:"babyBirthDate,omitempty"`
	ParentingStage *ParentingStage `json:"parentingStage,omitempty"`
	Preferences    json.RawMessage `json:"preferences,omitempty"`
	Timezone       string          `json:"timezone"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BabyAgeDays returns the child's age in whole days, or -1 when no birth
// date is on file.
func (p *UserProfile) BabyAgeDays(now time.Time) int {
	if p == nil || p.BabyBirthDate == nil {
		return -1
	}
	days := int(now.Sub(*p.BabyBirthDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type ProfileDetailsUpdate struct {
	BabyBirthDate  *time.Time      `json:"babyBirthDate,omitempty"`
	ParentingStage *ParentingStage `json:"parentingStage,omitempty"`
	Preferences    json.RawMessage `json:"preferences,omitempty"`
	Timezone       *string         `json:"timezone,omitempty"`
}

// OnboardingRequest is the one-shot profile setup after registration.
type OnboardingRequest struct {
	BabyBirthDate  *time.Time      `json:"babyBirthDate,omitempty"`
	ParentingStage *ParentingStage `json:"parentingStage,omitempty"`
	Preferences    json.RawMessage `json:"preferences,omitempty"`
	Timezone       string          `json:"timezone,omitempty"`
}
