package types

import (
	"time"
)

// MilestoneCategory groups developmental milestones.
type MilestoneCategory string

const (
	MilestoneCategoryMotor     MilestoneCategory = "motor"
	MilestoneCategoryCognitive MilestoneCategory = "cognitive"
	MilestoneCategorySocial    MilestoneCategory = "social"
	MilestoneCategoryLanguage  MilestoneCategory = "language"
)

func (c MilestoneCategory) Valid() bool {
	switch c {
	case MilestoneCategoryMotor, MilestoneCategoryCognitive,
		MilestoneCategorySocial, MilestoneCategoryLanguage:
		return true
	}
	return false
}

// Milestone is a catalog entry. AgeRangeStart/End are inclusive days since
// birth.
type Milestone struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      MilestoneCategory `json:"category"`
	AgeRangeStart int               `json:"ageRangeStart"`
	AgeRangeEnd   int               `json:"ageRangeEnd"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// UserMilestone tracks one user's completion state for a catalog milestone.
type UserMilestone struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	MilestoneID string     `json:"milestoneId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Milestone is the joined catalog entry when the query includes it.
	Milestone *Milestone `json:"milestone,omitempty"`
}

type MilestoneCompletionUpdate struct {
	Completed bool    `json:"completed"`
	Notes     *string `json:"notes,omitempty"`
}

// MilestoneProgress summarizes a user's completion. Total counts the
// age-appropriate catalog; Completed counts all-time completions.
type MilestoneProgress struct {
	Total             int              `json:"total"`
	Completed         int              `json:"completed"`
	Percentage        float64          `json:"percentage"`
	RecentCompletions []*UserMilestone `json:"recentCompletions"`
}
