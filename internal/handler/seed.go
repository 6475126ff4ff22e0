package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// SeedHandler handles the demo account bootstrap endpoint.
type SeedHandler struct {
	seedService *service.SeedService
	logger      *zap.Logger
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService *service.SeedService, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{seedService: seedService, logger: logger}
}

// SeedResponse reports the demo credentials after a seed run.
type SeedResponse struct {
	Message           string `json:"message"`
	RiderEmail        string `json:"rider_email"`
	RiderPassword     string `json:"rider_password"`
	PassengerEmail    string `json:"passenger_email"`
	PassengerPassword string `json:"passenger_password"`
}

// Seed handles POST /v1/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seedService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "demo users already exist"
	if result.RiderCreated || result.PassengerCreated {
		message = "demo users created"
	}

	respondJSON(c, http.StatusOK, SeedResponse{
		Message:           message,
		RiderEmail:        result.RiderEmail,
		RiderPassword:     result.Password,
		PassengerEmail:    result.PassengerEmail,
		PassengerPassword: result.Password,
	})
}
