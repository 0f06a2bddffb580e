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

// PhotoProofHandler handles proof-of-receipt endpoints
type PhotoProofHandler struct {
	proofUsecase *usecases.PhotoProofUsecase
}

// NewPhotoProofHandler creates a new photo proof handler
func NewPhotoProofHandler(proofUsecase *usecases.PhotoProofUsecase) *PhotoProofHandler {
	return &PhotoProofHandler{proofUsecase: proofUsecase}
}

// Upload stores the receiver's proof photo for an accepted donation
// POST /api/v1/photo-proof/upload/:donationId (multipart, field "image", optional "message")
func (h *PhotoProofHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	donationID, err := uuid.Parse(c.Param("donationId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid donation ID"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("proof image is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("could not read uploaded file"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	message := c.PostForm("message")

	proof, err := h.proofUsecase.Upload(c.Request.Context(), donationID, userID, file, fileHeader.Size, contentType, fileHeader.Filename, message)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"proof": proof})
}

// Get returns the proof for a donation with a resolved image URL
// GET /api/v1/photo-proof/:donationId
func (h *PhotoProofHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	donationID, err := uuid.Parse(c.Param("donationId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid donation ID"))
		return
	}

	proof, err := h.proofUsecase.Get(c.Request.Context(), donationID, userID, role)
	if err != nil {
		fail(c, err)
		return
	}

	url, err := h.proofUsecase.ImageURL(c.Request.Context(), proof)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"proof":    proof,
		"imageUrl": url,
	})
}

// Verify records the donor's approve/reject decision
// PUT /api/v1/photo-proof/verify/:donationId
func (h *PhotoProofHandler) Verify(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	donationID, err := uuid.Parse(c.Param("donationId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid donation ID"))
		return
	}

	var input entities.VerifyProofInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	proof, err := h.proofUsecase.Verify(c.Request.Context(), donationID, userID, &input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"proof": proof})
}
