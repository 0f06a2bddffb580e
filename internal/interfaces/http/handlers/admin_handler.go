package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/interfaces/http/middleware"
	"garagesale.backend/internal/interfaces/http/response"
	"garagesale.backend/internal/usecases"
)

// AdminHandler handles platform administration endpoints
type AdminHandler struct {
	adminUsecase        *usecases.AdminUsecase
	verificationUsecase *usecases.VerificationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase, verificationUsecase *usecases.VerificationUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		verificationUsecase: verificationUsecase,
	}
}

// Dashboard returns platform-wide counters
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminUsecase.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListUsers lists users with an optional search
// GET /api/v1/admin/users?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// SetUserStatus enables or disables an account
// PUT /api/v1/admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.SetUserActive(c.Request.Context(), targetID, actorID, *input.Active); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User status updated"})
}

// DeleteUser soft deletes an account
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	if err := h.adminUsecase.DeleteUser(c.Request.Context(), targetID, actorID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// ListVerifications lists submissions awaiting review, oldest first
// GET /api/v1/admin/verifications
func (h *AdminHandler) ListVerifications(c *gin.Context) {
	pending, err := h.verificationUsecase.ListPending(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verifications": pending})
}

// VerificationAction approves or rejects a pending submission
// PUT /api/v1/admin/verifications/:userId/action
func (h *AdminHandler) VerificationAction(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	var input struct {
		Action        string `json:"action" binding:"required,oneof=approve reject"`
		Reason        string `json:"reason"`
		PriorityLevel *int   `json:"priorityLevel"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	var user interface{}
	switch input.Action {
	case "approve":
		user, err = h.verificationUsecase.Approve(c.Request.Context(), targetID, input.PriorityLevel)
	case "reject":
		user, err = h.verificationUsecase.Reject(c.Request.Context(), targetID, input.Reason)
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
