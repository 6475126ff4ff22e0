package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
)

// MessageService handles the messaging log and its conversation read model.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	rideRepo    repository.RideRepository
	logger      *zap.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	rideRepo repository.RideRepository,
	logger *zap.Logger,
) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		rideRepo:    rideRepo,
		logger:      logger,
	}
}

// Send persists a new unread message from sender about one ride.
func (s *MessageService) Send(ctx context.Context, sender *domain.User, receiverID, rideID, content string) (*domain.Message, error) {
	if sender == nil {
		return nil, ErrNotAuthenticated
	}
	if receiverID == "" || rideID == "" || content == "" {
		return nil, ErrMissingFields
	}

	message := &domain.Message{
		ID:         uuid.New().String(),
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		RideID:     rideID,
		Content:    content,
		SentAt:     time.Now(),
		Read:       false,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// GetThread returns the full two-party conversation about one ride, oldest
// first. Fetching the thread marks the counterpart's unread messages to the
// viewer as read.
func (s *MessageService) GetThread(ctx context.Context, viewer *domain.User, otherID, rideID string) ([]*domain.Message, error) {
	if viewer == nil {
		return nil, ErrNotAuthenticated
	}
	if otherID == "" || rideID == "" {
		return nil, ErrMissingFields
	}

	messages, err := s.messageRepo.GetThread(ctx, viewer.ID, otherID, rideID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, otherID, viewer.ID, rideID); err != nil {
		return nil, err
	}

	return messages, nil
}

// ListConversations derives the inbox for a user: every message the user sent
// or received is grouped by (counterpart, ride), the chronologically latest
// message of each group becomes the thread summary, newest summaries first.
// Two users talking about two different rides yield two conversations.
func (s *MessageService) ListConversations(ctx context.Context, user *domain.User) ([]*domain.Conversation, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	messages, err := s.messageRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		otherID string
		rideID  string
	}

	latest := make(map[groupKey]*domain.Message)
	for _, msg := range messages {
		otherID := msg.SenderID
		if otherID == user.ID {
			otherID = msg.ReceiverID
		}

		key := groupKey{otherID: otherID, rideID: msg.RideID}
		if existing, ok := latest[key]; !ok || existing.SentAt.Before(msg.SentAt) {
			latest[key] = msg
		}
	}

	conversations := make([]*domain.Conversation, 0, len(latest))
	for key, msg := range latest {
		conv := &domain.Conversation{
			RideID:      key.rideID,
			LastMessage: msg.Content,
			Timestamp:   msg.SentAt,
			Unread:      msg.ReceiverID == user.ID && !msg.Read,
		}

		other, err := s.userRepo.GetByID(ctx, key.otherID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			conv.OtherUser = domain.Profile{ID: key.otherID}
		} else {
			conv.OtherUser = other.Profile()
		}

		// The ride may have been deleted since; the summary survives with
		// the ride context left blank.
		ride, err := s.rideRepo.GetByID(ctx, key.rideID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		} else {
			conv.University = ride.University
			conv.StartLocation = ride.StartLocation
		}

		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].Timestamp.After(conversations[j].Timestamp)
	})

	return conversations, nil
}
