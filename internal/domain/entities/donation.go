package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DonationStatus represents the state of a donation request
type DonationStatus string

const (
	DonationRequested      DonationStatus = "Requested"
	DonationAccepted       DonationStatus = "Accepted"
	DonationProofSubmitted DonationStatus = "ProofSubmitted"
	DonationCompleted      DonationStatus = "Completed"
	DonationRejected       DonationStatus = "Rejected"
)

// donationTransitions is the valid transition table. Transitions are
// monotonic; Completed and Rejected are terminal.
var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationRequested:      {DonationAccepted, DonationRejected},
	DonationAccepted:       {DonationProofSubmitted, DonationRejected},
	DonationProofSubmitted: {DonationCompleted, DonationRejected},
}

// CanTransition reports whether a donation request may move from one status
// to another.
func CanTransition(from, to DonationStatus) bool {
	for _, next := range donationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s.
func (s DonationStatus) IsTerminal() bool {
	return len(donationTransitions[s]) == 0
}

// DonationRequest represents a receiver's expressed interest in a Donate
// item. The priority score is snapshotted at request time so ordering stays
// stable while the request is pending.
type DonationRequest struct {
	ID              uuid.UUID      `json:"id"`
	ItemID          uuid.UUID      `json:"itemId"`
	ReceiverID      uuid.UUID      `json:"receiverId"`
	DonorID         uuid.UUID      `json:"donorId"` // via item ownership
	Message         string         `json:"message,omitempty"`
	Status          DonationStatus `json:"status"`
	PriorityScore   int            `json:"priorityScore"`
	MeetingDate     null.Time      `json:"meetingDate,omitempty"`
	MeetingLocation string         `json:"meetingLocation,omitempty"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	CompletedAt     null.Time      `json:"completedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// RankedRequest is a donation request decorated for the donor's priority
// view: 1-based display rank, tier label, receiver identity and badges.
type RankedRequest struct {
	*DonationRequest
	Rank                   int            `json:"rank"`
	Tier                   PriorityTier   `json:"tier"`
	ReceiverName           string         `json:"receiverName"`
	Badges                 PriorityBadges `json:"badges"`
	FamilySize             int            `json:"familySize"`
	ItemsReceivedThisMonth int            `json:"itemsReceivedThisMonth"`
}

// CreateDonationRequestInput carries the receiver's optional message.
type CreateDonationRequestInput struct {
	Message string `json:"message" binding:"omitempty,max=500"`
}

// AcceptDonationInput carries the meeting details fixed at acceptance.
type AcceptDonationInput struct {
	MeetingDate     string `json:"meetingDate" binding:"required"` // RFC3339
	MeetingLocation string `json:"meetingLocation" binding:"required,max=200"`
}

// RejectDonationInput carries the donor's rejection reason.
type RejectDonationInput struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
