package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update persists profile, verification and counter fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":                      user.Name,
		"role":                      string(user.Role),
		"is_active":                 user.IsActive,
		"verification_status":       string(user.VerificationStatus),
		"priority_level":            user.PriorityLevel,
		"priority_score":            user.PriorityScore,
		"is_single_mother":          user.IsSingleMother,
		"is_disabled":               user.IsDisabled,
		"is_orphanage":              user.IsOrphanage,
		"family_size":               user.FamilySize,
		"monthly_income_range":      string(user.MonthlyIncomeRange),
		"items_received_this_month": user.ItemsReceivedThisMonth,
		"eco_score":                 user.EcoScore,
		"cnic":                      user.CNIC,
		"id_front_key":              user.IDFrontKey,
		"id_back_key":               user.IDBackKey,
		"selfie_with_id_key":        user.SelfieWithIDKey,
		"needs_description":         user.NeedsDescription,
		"rejection_reason":          user.RejectionReason,
		"updated_at":                time.Now(),
	}
	if user.VerifiedAt.Valid {
		updates["verified_at"] = user.VerifiedAt.Time
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": passwordHash, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetActive enables or disables an account
func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional search filter
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	var userModels []models.User
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if search != "" {
		searchTerm := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// ListByVerificationStatus lists users in a given verification state,
// oldest submission first so admins review in order.
func (r *UserRepository) ListByVerificationStatus(ctx context.Context, status entities.VerificationStatus) ([]*entities.User, error) {
	var userModels []models.User
	err := r.db.WithContext(ctx).
		Where("verification_status = ?", string(status)).
		Order("updated_at ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// IncrementItemsReceived bumps the monthly allotment counter. It joins an
// open unit-of-work transaction when one is in the context.
func (r *UserRepository) IncrementItemsReceived(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("items_received_this_month", gorm.Expr("items_received_this_month + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AddEcoScore awards gamification points. It joins an open unit-of-work
// transaction when one is in the context.
func (r *UserRepository) AddEcoScore(ctx context.Context, id uuid.UUID, points int) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("eco_score", gorm.Expr("eco_score + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ResetMonthlyAllotments zeroes every user's items-received counter and
// returns the number of rows touched.
func (r *UserRepository) ResetMonthlyAllotments(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("items_received_this_month > 0").
		Update("items_received_this_month", 0)
	return result.RowsAffected, result.Error
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func userToModel(e *entities.User) *models.User {
	return &models.User{
		ID:                     e.ID,
		Email:                  e.Email,
		Name:                   e.Name,
		PasswordHash:           e.PasswordHash,
		Role:                   string(e.Role),
		IsActive:               e.IsActive,
		VerificationStatus:     string(e.VerificationStatus),
		PriorityLevel:          e.PriorityLevel,
		PriorityScore:          e.PriorityScore,
		IsSingleMother:         e.IsSingleMother,
		IsDisabled:             e.IsDisabled,
		IsOrphanage:            e.IsOrphanage,
		FamilySize:             e.FamilySize,
		MonthlyIncomeRange:     string(e.MonthlyIncomeRange),
		ItemsReceivedThisMonth: e.ItemsReceivedThisMonth,
		EcoScore:               e.EcoScore,
		CNIC:                   e.CNIC,
		IDFrontKey:             e.IDFrontKey,
		IDBackKey:              e.IDBackKey,
		SelfieWithIDKey:        e.SelfieWithIDKey,
		NeedsDescription:       e.NeedsDescription,
		RejectionReason:        e.RejectionReason,
		VerifiedAt:             e.VerifiedAt.Ptr(),
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                     m.ID,
		Email:                  m.Email,
		Name:                   m.Name,
		PasswordHash:           m.PasswordHash,
		Role:                   entities.NormalizeRole(m.Role),
		IsActive:               m.IsActive,
		VerificationStatus:     entities.VerificationStatus(m.VerificationStatus),
		PriorityLevel:          m.PriorityLevel,
		PriorityScore:          m.PriorityScore,
		IsSingleMother:         m.IsSingleMother,
		IsDisabled:             m.IsDisabled,
		IsOrphanage:            m.IsOrphanage,
		FamilySize:             m.FamilySize,
		MonthlyIncomeRange:     entities.IncomeBracket(m.MonthlyIncomeRange),
		ItemsReceivedThisMonth: m.ItemsReceivedThisMonth,
		EcoScore:               m.EcoScore,
		CNIC:                   m.CNIC,
		IDFrontKey:             m.IDFrontKey,
		IDBackKey:              m.IDBackKey,
		SelfieWithIDKey:        m.SelfieWithIDKey,
		NeedsDescription:       m.NeedsDescription,
		RejectionReason:        m.RejectionReason,
		VerifiedAt:             null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}
