package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/internal/store"
	"github.com/LittleSteps/little-steps-backend/logger"
	"github.com/LittleSteps/little-steps-backend/pkg/completion"
	"github.com/LittleSteps/little-steps-backend/types"
)

const (
	defaultHistoryLimit = 20
	contextHistorySize  = 5
	contextMilestones   = 10

	// fallbackReply is returned verbatim when the completion API fails.
	fallbackReply = "I'm sorry, I'm having trouble connecting right now. " +
		"Please try again in a moment. In the meantime, remember that " +
		"you're doing great as a parent!"
)

// topicKeywords classifies a message into a resource category. Order
// matters: the first category with a keyword hit wins.
var topicKeywords = []struct {
	category types.ResourceCategory
	keywords []string
}{
	{types.ResourceCategorySleep, []string{"sleep", "nap", "bedtime", "wake", "night", "tired"}},
	{types.ResourceCategoryFeeding, []string{"feed", "eat", "milk", "bottle", "breast", "formula", "solid"}},
	{types.ResourceCategoryDevelopment, []string{"crawl", "walk", "talk", "milestone", "develop", "learn"}},
	{types.ResourceCategoryHealth, []string{"sick", "fever", "doctor", "medicine", "health", "symptom"}},
}

var topicGuidance = map[types.ResourceCategory]string{
	types.ResourceCategorySleep:       "Focus on gentle, age-appropriate sleep guidance. Mention safe sleep practices where relevant.",
	types.ResourceCategoryFeeding:     "Focus on age-appropriate feeding guidance. Be supportive of both breastfeeding and formula feeding.",
	types.ResourceCategoryDevelopment: "Focus on developmental milestones and encourage activities that support the child's growth.",
	types.ResourceCategoryHealth:      "Offer general wellness information only and recommend consulting a pediatrician for medical concerns.",
	types.ResourceCategoryGeneral:     "Offer warm, practical parenting support.",
}

// ChatService implements the AI chat assistant: topic classification,
// context assembly, the completion call and history persistence.
type ChatService struct {
	conversations store.ConversationStore
	milestones    store.MilestoneStore
	users         store.UserStore
	analytics     store.AnalyticsStore
	client        completion.ClientInterface
}

func NewChatService(
	conversations store.ConversationStore,
	milestones store.MilestoneStore,
	users store.UserStore,
	analytics store.AnalyticsStore,
	client completion.ClientInterface,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		milestones:    milestones,
		users:         users,
		analytics:     analytics,
		client:        client,
	}
}

// classifyMessage returns the first topic whose keyword appears in the
// message, or general.
func classifyMessage(message string) types.ResourceCategory {
	lowered := strings.ToLower(message)
	for _, topic := range topicKeywords {
		for _, keyword := range topic.keywords {
			if strings.Contains(lowered, keyword) {
				return topic.category
			}
		}
	}
	return types.ResourceCategoryGeneral
}

// chatContext is the personalization bundle composed into the system prompt
// and stored alongside the conversation.
type chatContext struct {
	ParentName          string   `json:"parentName,omitempty"`
	ParentingStage      string   `json:"parentingStage,omitempty"`
	BabyAgeDays         int      `json:"babyAgeDays"`
	Category            string   `json:"category"`
	RecentMessages      []string `json:"recentMessages,omitempty"`
	CompletedMilestones []string `json:"completedMilestones,omitempty"`
}

func (s *ChatService) buildContext(ctx context.Context, userID string, category types.ResourceCategory) *chatContext {
	log := logger.GetLogger()
	bundle := &chatContext{BabyAgeDays: -1, Category: string(category)}

	if user, err := s.users.GetUserByID(ctx, userID); err == nil {
		bundle.ParentName = user.Name
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err == nil {
		bundle.BabyAgeDays = profile.BabyAgeDays(time.Now())
		if profile.ParentingStage != nil {
			bundle.ParentingStage = string(*profile.ParentingStage)
		} else if bundle.BabyAgeDays >= 0 {
			bundle.ParentingStage = string(stageForDays(bundle.BabyAgeDays))
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Warnw("Failed to load profile for chat context", "userId", userID, "error", err)
	}

	if recent, err := s.conversations.ListRecent(ctx, userID, contextHistorySize); err == nil {
		for _, conv := range recent {
			bundle.RecentMessages = append(bundle.RecentMessages, conv.Message)
		}
	}

	if recent, err := s.milestones.ListRecentCompletions(ctx, userID, contextMilestones); err == nil {
		for _, um := range recent {
			if um.Milestone != nil {
				bundle.CompletedMilestones = append(bundle.CompletedMilestones, um.Milestone.Title)
			}
		}
	}

	return bundle
}

// systemPrompt composes the assistant instruction from the context bundle.
func systemPrompt(bundle *chatContext, category types.ResourceCategory) string {
	var b strings.Builder
	b.WriteString("You are a warm, knowledgeable parenting assistant for the Little Steps app. ")
	b.WriteString("Give concise, practical advice and never present yourself as a substitute for medical care.\n")

	if bundle.ParentName != "" {
		fmt.Fprintf(&b, "The parent's name is %s.\n", bundle.ParentName)
	}
	if bundle.BabyAgeDays >= 0 {
		fmt.Fprintf(&b, "Their child is %d days old (%s bucket, %s stage).\n",
			bundle.BabyAgeDays, ageRangeForDays(bundle.BabyAgeDays), stageForDays(bundle.BabyAgeDays))
	} else if bundle.ParentingStage != "" {
		fmt.Fprintf(&b, "Their child is in the %s stage.\n", bundle.ParentingStage)
	}
	if len(bundle.CompletedMilestones) > 0 {
		fmt.Fprintf(&b, "Recently completed milestones: %s.\n", strings.Join(bundle.CompletedMilestones, ", "))
	}
	if len(bundle.RecentMessages) > 0 {
		fmt.Fprintf(&b, "Recent questions from this parent: %s.\n", strings.Join(bundle.RecentMessages, " | "))
	}

	b.WriteString(topicGuidance[category])
	return b.String()
}

// SendMessage classifies the message, calls the completion API with the
// personalized system prompt and persists the exchange. When the API fails
// the canned fallback is stored and returned instead; the conversation is
// persisted either way.
func (s *ChatService) SendMessage(ctx context.Context, userID, message string) (*types.ChatMessageResponse, error) {
	log := logger.GetLogger()

	if strings.TrimSpace(message) == "" {
		return nil, apperrors.ValidationFailed("Message is required", "")
	}

	category := classifyMessage(message)
	bundle := s.buildContext(ctx, userID, category)

	reply, err := s.client.Complete(ctx, systemPrompt(bundle, category), message)
	if err != nil {
		log.Warnw("Completion failed, using fallback reply", "userId", userID, "error", err)
		reply = fallbackReply
	}

	contextJSON, _ := json.Marshal(bundle)
	conversationID, err := s.conversations.CreateConversation(ctx, &types.Conversation{
		UserID:   userID,
		Message:  message,
		Response: reply,
		Context:  contextJSON,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.trackInteraction(ctx, userID, category, len(message))

	return &types.ChatMessageResponse{
		Response:       reply,
		Category:       category,
		ConversationID: conversationID,
	}, nil
}

func (s *ChatService) trackInteraction(ctx context.Context, userID string, category types.ResourceCategory, messageLength int) {
	data, _ := json.Marshal(map[string]any{
		"category":      string(category),
		"messageLength": messageLength,
	})
	_, err := s.analytics.TrackEvent(ctx, &types.AnalyticsEvent{
		UserID:    userID,
		EventType: types.EventChatInteraction,
		EventData: data,
	})
	if err != nil {
		logger.GetLogger().Warnw("Failed to track chat interaction", "userId", userID, "error", err)
	}
}

// History returns the user's most recent exchanges, newest first.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]*types.Conversation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	history, err := s.conversations.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return history, nil
}

// ClearHistory deletes the user's entire chat history and returns the
// number of conversations removed.
func (s *ChatService) ClearHistory(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.conversations.DeleteAll(ctx, userID)
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return deleted, nil
}
