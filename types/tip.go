package types

import "time"

// DailyTip is a short piece of parenting advice surfaced once per day.
type DailyTip struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	AgeRange  string    `json:"ageRange"`
	CreatedAt time.Time `json:"createdAt"`
}
