package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/interfaces/http/middleware"
	"garagesale.backend/internal/interfaces/http/response"
	"garagesale.backend/internal/usecases"
)

// DonationHandler handles the donation request lifecycle endpoints
type DonationHandler struct {
	donationUsecase *usecases.DonationUsecase
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationUsecase *usecases.DonationUsecase) *DonationHandler {
	return &DonationHandler{donationUsecase: donationUsecase}
}

// Request creates a donation request for an item
// POST /api/v1/donations/items/:itemId/request
func (h *DonationHandler) Request(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	input := &entities.CreateDonationRequestInput{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	request, err := h.donationUsecase.Request(c.Request.Context(), itemID, userID, input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": request})
}

// RankedRequests returns an item's requests in priority order
// GET /api/v1/donations/items/:itemId/requests-priority
func (h *DonationHandler) RankedRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	ranked, err := h.donationUsecase.RankedRequests(c.Request.Context(), itemID, userID, role)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": ranked})
}

// MyRequests lists the requests the caller has made as a receiver
// GET /api/v1/donations/my-requests
func (h *DonationHandler) MyRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	requests, err := h.donationUsecase.ListByReceiver(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// MyDonations lists requests against the caller's own listings
// GET /api/v1/donations/my-donations
func (h *DonationHandler) MyDonations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	requests, err := h.donationUsecase.ListByDonor(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// GetByID returns one request
// GET /api/v1/donations/:id
func (h *DonationHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request ID"))
		return
	}

	request, err := h.donationUsecase.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": request})
}

// Accept approves a request and fixes the meeting details
// PUT /api/v1/donations/:id/accept
func (h *DonationHandler) Accept(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request ID"))
		return
	}

	var input entities.AcceptDonationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.donationUsecase.Accept(c.Request.Context(), id, userID, &input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": request})
}

// Reject declines a request. The body is optional; a reason only becomes
// mandatory once a proof has been submitted.
// PUT /api/v1/donations/:id/reject
func (h *DonationHandler) Reject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request ID"))
		return
	}

	var input entities.RejectDonationInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	request, err := h.donationUsecase.Reject(c.Request.Context(), id, userID, &input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": request})
}

// Cancel withdraws the caller's own pending request
// DELETE /api/v1/donations/:id
func (h *DonationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request ID"))
		return
	}

	if err := h.donationUsecase.Cancel(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Request cancelled"})
}
