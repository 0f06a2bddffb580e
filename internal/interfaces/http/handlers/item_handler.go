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

// ItemHandler handles marketplace listing endpoints
type ItemHandler struct {
	itemUsecase *usecases.ItemUsecase
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemUsecase *usecases.ItemUsecase) *ItemHandler {
	return &ItemHandler{itemUsecase: itemUsecase}
}

// List returns listings matching the query filters
// GET /api/v1/items?type=&category=&condition=&search=&page=&limit=
func (h *ItemHandler) List(c *gin.Context) {
	var filter entities.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	items, meta, err := h.itemUsecase.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items":      items,
		"pagination": meta,
	})
}

// Categories returns the fixed category enumeration
// GET /api/v1/items/categories
func (h *ItemHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": entities.ItemCategories})
}

// Conditions returns the fixed condition enumeration
// GET /api/v1/items/conditions
func (h *ItemHandler) Conditions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"conditions": entities.ItemConditions})
}

// MyItems returns the caller's own listings
// GET /api/v1/items/my-items
func (h *ItemHandler) MyItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	items, err := h.itemUsecase.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetByID returns one listing with resolved image URLs
// GET /api/v1/items/:id
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	item, err := h.itemUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	urls, err := h.itemUsecase.ImageURLs(c.Request.Context(), item)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"item":      item,
		"imageUrls": urls,
	})
}

// Create stores a new listing
// POST /api/v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	item, err := h.itemUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

// Update applies owner edits to a listing
// PUT /api/v1/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	var input entities.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	item, err := h.itemUsecase.Update(c.Request.Context(), id, userID, role, &input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

// Delete removes a listing
// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	if err := h.itemUsecase.Delete(c.Request.Context(), id, userID, role); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Item deleted"})
}

// UploadImage attaches a photo to a listing
// POST /api/v1/items/:id/images (multipart, field "image")
func (h *ItemHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("could not read uploaded file"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	item, err := h.itemUsecase.AttachImage(c.Request.Context(), id, userID, file, fileHeader.Size, contentType, fileHeader.Filename)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}
