package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/interfaces/http/middleware"
	"garagesale.backend/internal/interfaces/http/response"
	"garagesale.backend/internal/usecases"
)

// VerificationHandler handles the receiver verification endpoints
type VerificationHandler struct {
	verificationUsecase *usecases.VerificationUsecase
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationUsecase *usecases.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{verificationUsecase: verificationUsecase}
}

// Submit records a verification submission for admin review
// POST /api/v1/verification/submit
func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.VerificationSubmission
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.verificationUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"verificationStatus": user.VerificationStatus,
	})
}

// Status returns the caller's current verification state
// GET /api/v1/verification/status
func (h *VerificationHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	// reuse the usecase's repo through a profile read
	user, err := h.verificationUsecase.Profile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	body := gin.H{
		"verificationStatus": user.VerificationStatus,
		"priorityScore":      user.PriorityScore,
		"priorityLevel":      user.PriorityLevel,
	}
	if user.RejectionReason != "" {
		body["rejectionReason"] = user.RejectionReason
	}
	response.Success(c, http.StatusOK, body)
}
