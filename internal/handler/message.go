package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/middleware"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// MessageHandler handles HTTP requests for messaging.
type MessageHandler struct {
	messageService *service.MessageService
	logger         *zap.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, logger: logger}
}

// SendMessageRequest is the HTTP request body for sending a message.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	RideID     string `json:"ride_id"`
	Content    string `json:"content"`
}

// MessageResponse is the HTTP response for a single message.
type MessageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	RideID     string `json:"ride_id"`
	Content    string `json:"content"`
	SentAt     string `json:"sent_at"`
	Read       bool   `json:"read"`
}

// ConversationResponse is the HTTP response for an inbox entry.
type ConversationResponse struct {
	OtherUser     RiderResponse `json:"other_user"`
	RideID        string        `json:"ride_id"`
	University    string        `json:"university,omitempty"`
	StartLocation string        `json:"start_location,omitempty"`
	LastMessage   string        `json:"last_message"`
	Timestamp     string        `json:"timestamp"`
	Unread        bool          `json:"unread"`
}

func messageResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		RideID:     message.RideID,
		Content:    message.Content,
		SentAt:     message.SentAt.Format(time.RFC3339),
		Read:       message.Read,
	}
}

// Send handles POST /v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), middleware.CurrentUser(c), req.ReceiverID, req.RideID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusCreated, messageResponse(message))
}

// GetThread handles GET /v1/messages/:userId/:rideId
// Fetching a thread marks its unread messages to the viewer as read.
func (h *MessageHandler) GetThread(c *gin.Context) {
	messages, err := h.messageService.GetThread(c.Request.Context(), middleware.CurrentUser(c), c.Param("userId"), c.Param("rideId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		response = append(response, messageResponse(message))
	}

	respondJSON(c, http.StatusOK, response)
}

// ListConversations handles GET /v1/messages/conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	conversations, err := h.messageService.ListConversations(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		response = append(response, ConversationResponse{
			OtherUser: RiderResponse{
				ID:    conv.OtherUser.ID,
				Name:  conv.OtherUser.Name,
				Email: conv.OtherUser.Email,
				Phone: conv.OtherUser.Phone,
			},
			RideID:        conv.RideID,
			University:    conv.University,
			StartLocation: conv.StartLocation,
			LastMessage:   conv.LastMessage,
			Timestamp:     conv.Timestamp.Format(time.RFC3339),
			Unread:        conv.Unread,
		})
	}

	respondJSON(c, http.StatusOK, response)
}
