package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ItemType represents the kind of listing
type ItemType string

const (
	ItemTypeDonate ItemType = "Donate"
	ItemTypeSwap   ItemType = "Swap"
	ItemTypeSell   ItemType = "Sell"
)

// ItemStatus represents listing availability
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "Available"
	ItemStatusReserved  ItemStatus = "Reserved"
	ItemStatusCompleted ItemStatus = "Completed"
)

// ItemCategories is the fixed category enumeration offered to listers.
var ItemCategories = []string{
	"Clothing",
	"Electronics",
	"Furniture",
	"Books",
	"Toys",
	"Kitchen",
	"Sports",
	"Other",
}

// ItemConditions is the fixed condition enumeration offered to listers.
var ItemConditions = []string{
	"New",
	"Like New",
	"Good",
	"Fair",
	"Poor",
}

// Item represents a marketplace listing
type Item struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ItemType    ItemType   `json:"itemType"`
	Category    string     `json:"category"`
	Condition   string     `json:"condition"`
	Location    string     `json:"location"`
	ImageKeys   []string   `json:"imageKeys"`
	AskingPrice null.Int64 `json:"askingPrice,omitempty"` // meaningful only for Sell
	Status      ItemStatus `json:"status"`
	ExpiresAt   null.Time  `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsValidItemType reports whether t is a known listing type.
func IsValidItemType(t ItemType) bool {
	switch t {
	case ItemTypeDonate, ItemTypeSwap, ItemTypeSell:
		return true
	}
	return false
}

// CreateItemInput represents input for creating a listing
type CreateItemInput struct {
	Title       string   `json:"title" binding:"required,min=3,max=120"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	ItemType    ItemType `json:"itemType" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Condition   string   `json:"condition" binding:"required"`
	Location    string   `json:"location" binding:"omitempty,max=200"`
	AskingPrice *int64   `json:"askingPrice" binding:"omitempty,min=0"`
	ExpiresAt   *string  `json:"expiresAt"` // RFC3339, optional
}

// UpdateItemInput represents owner edits to a listing
type UpdateItemInput struct {
	Title       *string  `json:"title" binding:"omitempty,min=3,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	Location    *string  `json:"location" binding:"omitempty,max=200"`
	AskingPrice *int64   `json:"askingPrice" binding:"omitempty,min=0"`
	ExpiresAt   *string  `json:"expiresAt"`
}

// ItemFilter narrows item listings
type ItemFilter struct {
	ItemType  ItemType `form:"type"`
	Category  string   `form:"category"`
	Condition string   `form:"condition"`
	Search    string   `form:"search"`
	Page      int      `form:"page"`
	Limit     int      `form:"limit"`
}
