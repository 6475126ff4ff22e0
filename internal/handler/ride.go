package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/middleware"
	"github.com/CaptainFAHIM/uni-ride/internal/repository"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
	logger      *zap.Logger
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, logger *zap.Logger) *RideHandler {
	return &RideHandler{rideService: rideService, logger: logger}
}

// CreateRideRequest is the HTTP request body for posting a ride.
type CreateRideRequest struct {
	University     string  `json:"university"`
	StartLocation  string  `json:"start_location"`
	DepartureTime  string  `json:"departure_time"` // RFC 3339
	AvailableSeats int     `json:"available_seats"`
	Fare           float64 `json:"fare"`
	Description    string  `json:"description,omitempty"`
}

// RideResponse is the HTTP response for a ride.
type RideResponse struct {
	ID             string  `json:"id"`
	RiderID        string  `json:"rider_id"`
	University     string  `json:"university"`
	StartLocation  string  `json:"start_location"`
	DepartureTime  string  `json:"departure_time"`
	AvailableSeats int     `json:"available_seats"`
	Fare           float64 `json:"fare"`
	Status         string  `json:"status"`
	Description    string  `json:"description,omitempty"`
}

// RiderResponse is the rider identity attached to search and detail results.
type RiderResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// RideWithRiderResponse pairs a ride with its owner's identity.
type RideWithRiderResponse struct {
	RideResponse
	Rider RiderResponse `json:"rider"`
}

func rideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:             ride.ID,
		RiderID:        ride.RiderID,
		University:     ride.University,
		StartLocation:  ride.StartLocation,
		DepartureTime:  ride.DepartureTime.Format(time.RFC3339),
		AvailableSeats: ride.AvailableSeats,
		Fare:           ride.Fare,
		Status:         string(ride.Status),
		Description:    ride.Description,
	}
}

func rideWithRiderResponse(result *domain.RideWithRider) RideWithRiderResponse {
	return RideWithRiderResponse{
		RideResponse: rideResponse(&result.Ride),
		Rider: RiderResponse{
			ID:    result.Rider.ID,
			Name:  result.Rider.Name,
			Email: result.Rider.Email,
			Phone: result.Rider.Phone,
		},
	}
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	departureTime, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "departure_time must be RFC 3339"})
		return
	}

	ride, err := h.rideService.AddRide(c.Request.Context(), middleware.CurrentUser(c), service.AddRideRequest{
		University:     req.University,
		StartLocation:  req.StartLocation,
		DepartureTime:  departureTime,
		AvailableSeats: req.AvailableSeats,
		Fare:           req.Fare,
		Description:    req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusCreated, rideResponse(ride))
}

// ListOwned handles GET /v1/rides
func (h *RideHandler) ListOwned(c *gin.Context) {
	rides, err := h.rideService.ListOwnedRides(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		response = append(response, rideResponse(ride))
	}

	respondJSON(c, http.StatusOK, response)
}

// Search handles GET /v1/rides/search
func (h *RideHandler) Search(c *gin.Context) {
	filter := repository.RideFilter{
		University:    c.Query("university"),
		StartLocation: c.Query("start_location"),
	}

	results, err := h.rideService.SearchRides(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]RideWithRiderResponse, 0, len(results))
	for _, result := range results {
		response = append(response, rideWithRiderResponse(result))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	result, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusOK, rideWithRiderResponse(result))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *RideHandler) CompleteRide(c *gin.Context) {
	ride, err := h.rideService.CompleteRide(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusOK, rideResponse(ride))
}

// DeleteRide handles DELETE /v1/rides/:id
func (h *RideHandler) DeleteRide(c *gin.Context) {
	if err := h.rideService.DeleteRide(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "deleted"})
}
