package types

import (
	"encoding/json"
	"time"
)

// Event types recorded by the services.
const (
	EventResourceViewed     = "resource_viewed"
	EventResourcesViewed    = "resources_viewed"
	EventResourceSearch     = "resource_search"
	EventResourceSaved      = "resource_saved"
	EventTipViewed          = "tip_viewed"
	EventMilestoneCompleted = "milestone_completed"
	EventChatInteraction    = "chat_interaction"
)

type AnalyticsEvent struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	EventType  string          `json:"eventType"`
	EventData  json.RawMessage `json:"eventData,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type TrackEventRequest struct {
	EventType string          `json:"eventType" binding:"required"`
	EventData json.RawMessage `json:"eventData,omitempty"`
}

// WeeklyWindow is one trailing 7-day window of activity. Window 0 ends
// today; window k ends 7k days ago. Chat interactions count conversations
// created in-window; resource and tip views count their analytics events.
type WeeklyWindow struct {
	WeekStart           string `json:"weekStart"`
	WeekEnd             string `json:"weekEnd"`
	MilestonesCompleted int    `json:"milestonesCompleted"`
	ResourcesViewed     int    `json:"resourcesViewed"`
	ChatInteractions    int    `json:"chatInteractions"`
	TipsViewed          int    `json:"tipsViewed"`
}

type WeeklyProgressReport struct {
	Weeks []WeeklyWindow `json:"weeks"`
}

// EventTypeCount pairs an event type with its occurrence count.
type EventTypeCount struct {
	EventType string `json:"eventType"`
	Count     int    `json:"count"`
}

// InsightsReport aggregates a user's activity into engagement metrics.
type InsightsReport struct {
	TotalEvents         int              `json:"totalEvents"`
	TotalConversations  int              `json:"totalConversations"`
	MilestonesCompleted int              `json:"milestonesCompleted"`
	SavedResources      int              `json:"savedResources"`
	DaysActive          int              `json:"daysActive"`
	EngagementScore     float64          `json:"engagementScore"`
	TopHours            []int            `json:"topHours"`
	TopEventTypes       []EventTypeCount `json:"topEventTypes"`
}
