package types

import (
	"encoding/json"
	"time"
)

// ResourceCategory groups library content by topic.
type ResourceCategory string

const (
	ResourceCategorySleep       ResourceCategory = "sleep"
	ResourceCategoryFeeding     ResourceCategory = "feeding"
	ResourceCategoryDevelopment ResourceCategory = "development"
	ResourceCategoryHealth      ResourceCategory = "health"
	ResourceCategoryGeneral     ResourceCategory = "general"
)

func (c ResourceCategory) Valid() bool {
	switch c {
	case ResourceCategorySleep, ResourceCategoryFeeding,
		ResourceCategoryDevelopment, ResourceCategoryHealth,
		ResourceCategoryGeneral:
		return true
	}
	return false
}

// Age buckets used for resource and tip personalization.
const (
	AgeRange0To3   = "0-3months"
	AgeRange3To6   = "3-6months"
	AgeRange6To12  = "6-12months"
	AgeRange1To2   = "1-2years"
	AgeRange2Plus  = "2+years"
	AgeRangeAll    = "all"
)

type Resource struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Category  ResourceCategory `json:"category"`
	AgeRange  string           `json:"ageRange"`
	Tags      json.RawMessage  `json:"tags,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

type SavedResource struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ResourceID string    `json:"resourceId"`
	SavedAt    time.Time `json:"savedAt"`

	Resource *Resource `json:"resource,omitempty"`
}

// ResourceSearchParams carries the query-string filters for searching.
type ResourceSearchParams struct {
	Query    string
	Category ResourceCategory
	AgeRange string
	Limit    int
}
