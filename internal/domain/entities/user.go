package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// VerificationStatus represents a receiver's verification state, which gates
// the ability to request donations.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "Unverified"
	VerificationPending    VerificationStatus = "Pending"
	VerificationVerified   VerificationStatus = "Verified"
	VerificationRejected   VerificationStatus = "Rejected"
)

// IncomeBracket is the fixed enumeration of monthly income ranges collected
// during verification.
type IncomeBracket string

const (
	IncomeBelow30k IncomeBracket = "<30k"
	Income30kTo50k IncomeBracket = "30k-50k"
	Income50kTo1L  IncomeBracket = "50k-100k"
	IncomeAbove1L  IncomeBracket = ">100k"
)

// MonthlyItemLimit is the number of donated items a receiver may be granted
// per calendar month.
const MonthlyItemLimit = 2

// User represents a user entity
type User struct {
	ID                     uuid.UUID          `json:"id"`
	Email                  string             `json:"email"`
	Name                   string             `json:"name"`
	PasswordHash           string             `json:"-"`
	Role                   UserRole           `json:"role"`
	IsActive               bool               `json:"isActive"`
	VerificationStatus     VerificationStatus `json:"verificationStatus"`
	PriorityLevel          int                `json:"priorityLevel"` // 0-10, nonzero only when Verified
	PriorityScore          int                `json:"priorityScore"` // 0-100
	IsSingleMother         bool               `json:"isSingleMother"`
	IsDisabled             bool               `json:"isDisabled"`
	IsOrphanage            bool               `json:"isOrphanage"`
	FamilySize             int                `json:"familySize"`
	MonthlyIncomeRange     IncomeBracket      `json:"monthlyIncomeRange,omitempty"`
	ItemsReceivedThisMonth int                `json:"itemsReceivedThisMonth"`
	EcoScore               int                `json:"ecoScore"`
	CNIC                   string             `json:"-"`
	IDFrontKey             string             `json:"-"`
	IDBackKey              string             `json:"-"`
	SelfieWithIDKey        string             `json:"-"`
	NeedsDescription       string             `json:"needsDescription,omitempty"`
	RejectionReason        string             `json:"rejectionReason,omitempty"` // set when verification is rejected
	VerifiedAt             null.Time          `json:"verifiedAt,omitempty"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

// CanRequestDonation reports whether this user may request donation items.
// Only Verified receivers may request; admins are exempt from the flow and
// always pass. The returned reason matches the blocking status.
func (u *User) CanRequestDonation() (bool, string) {
	if u.Role == UserRoleAdmin {
		return true, ""
	}
	if u.VerificationStatus == VerificationVerified {
		return true, ""
	}
	status := u.VerificationStatus
	if status == "" {
		status = VerificationUnverified
	}
	return false, string(status)
}

// NormalizeRole maps the historical role spellings from older token issuers
// and cached profiles (admin/Admin/ADMIN) onto the canonical enum. Anything
// unrecognized is a regular user.
func NormalizeRole(raw string) UserRole {
	if strings.EqualFold(strings.TrimSpace(raw), string(UserRoleAdmin)) {
		return UserRoleAdmin
	}
	return UserRoleUser
}

// RoleFromClaims extracts and normalizes a role from an untyped claim map,
// tolerating the property-name casings legacy clients produced. It runs once
// at the trust boundary; everything downstream sees only UserRole.
func RoleFromClaims(claims map[string]interface{}) UserRole {
	for _, key := range []string{"role", "Role", "userType", "UserType"} {
		if v, ok := claims[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return NormalizeRole(s)
			}
		}
	}
	return UserRoleUser
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileInput represents editable profile fields.
type UpdateProfileInput struct {
	Name             string `json:"name" binding:"omitempty,min=2,max=100"`
	NeedsDescription string `json:"needsDescription" binding:"omitempty,max=1000"`
}

// VerificationSubmission carries the attributes a receiver submits for
// admin review. Images arrive as already-uploaded object keys.
type VerificationSubmission struct {
	CNIC               string        `json:"cnicNicop" binding:"required"`
	IDFrontKey         string        `json:"idFrontImage" binding:"required"`
	IDBackKey          string        `json:"idBackImage" binding:"required"`
	SelfieWithIDKey    string        `json:"selfieWithId" binding:"required"`
	MonthlyIncomeRange IncomeBracket `json:"monthlyIncomeRange" binding:"required"`
	FamilySize         int           `json:"familySize" binding:"required,min=1,max=20"`
	IsSingleMother     bool          `json:"isSingleMother"`
	IsDisabled         bool          `json:"isDisabled"`
	IsOrphanage        bool          `json:"isOrphanage"`
	NeedsDescription   string        `json:"needsDescription" binding:"omitempty,max=1000"`
}

// UserStats summarizes a user's marketplace activity for the dashboard.
type UserStats struct {
	EcoScore               int `json:"ecoScore"`
	ItemsListed            int `json:"itemsListed"`
	DonationsCompleted     int `json:"donationsCompleted"`
	ItemsReceivedThisMonth int `json:"itemsReceivedThisMonth"`
}
