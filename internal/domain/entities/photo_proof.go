package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProofStatus is the verification outcome of an uploaded proof photo.
type ProofStatus string

const (
	ProofPending  ProofStatus = "Pending"
	ProofApproved ProofStatus = "Approved"
	ProofRejected ProofStatus = "Rejected"
)

// MaxProofImageSize is the upload size ceiling for proof photos (5 MB).
const MaxProofImageSize = 5 * 1024 * 1024

// PhotoProof is the receiver's photographic confirmation of physical
// receipt, attached to a donation request and subject to donor review.
type PhotoProof struct {
	ID              uuid.UUID   `json:"id"`
	DonationID      uuid.UUID   `json:"donationId"`
	UploaderID      uuid.UUID   `json:"uploaderId"`
	ImageKey        string      `json:"imageKey"`
	Message         string      `json:"message,omitempty"`
	Status          ProofStatus `json:"status"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	UploadedAt      time.Time   `json:"uploadedAt"`
	VerifiedAt      null.Time   `json:"verifiedAt,omitempty"`
}

// ValidateImageUpload enforces the upload rules shared by listing photos and
// proof photos before any storage or network work: a file must be present,
// at most 5 MB, and carry an image MIME type.
func ValidateImageUpload(size int64, contentType string) error {
	if size <= 0 {
		return ErrProofImageRequired
	}
	if size > MaxProofImageSize {
		return ErrProofImageTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrProofImageNotImage
	}
	return nil
}

// ValidateProofUpload applies the image upload rules to a proof photo.
func ValidateProofUpload(size int64, contentType string) error {
	return ValidateImageUpload(size, contentType)
}

// Proof upload validation errors
var (
	ErrProofImageRequired = validationError("proof image is required")
	ErrProofImageTooLarge = validationError("proof image must be 5MB or smaller")
	ErrProofImageNotImage = validationError("proof file must be an image")
)

type validationError string

func (e validationError) Error() string { return string(e) }

// VerifyProofInput drives the donor's approve/reject decision.
type VerifyProofInput struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Reason string `json:"reason"`
}
