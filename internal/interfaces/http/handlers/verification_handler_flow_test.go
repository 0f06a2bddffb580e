package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"garagesale.backend/internal/domain/entities"
	"garagesale.backend/internal/usecases"
)

const submissionBody = `{
	"cnicNicop": "35202-1234567-1",
	"idFrontImage": "verification/front.jpg",
	"idBackImage": "verification/back.jpg",
	"selfieWithId": "verification/selfie.jpg",
	"monthlyIncomeRange": "<30k",
	"familySize": 4,
	"isSingleMother": true
}`

func TestVerificationHandler_SubmitAndStatusFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	user := &entities.User{ID: userID, VerificationStatus: entities.VerificationUnverified}

	repo := userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			require.Equal(t, userID, id)
			return user, nil
		},
		updateFn: func(_ context.Context, u *entities.User) error {
			user = u
			return nil
		},
	}
	h := NewVerificationHandler(usecases.NewVerificationUsecase(repo))

	r := gin.New()
	r.POST("/verification/submit", withUser(userID, h.Submit))
	r.GET("/verification/status", withUser(userID, h.Status))

	w := doJSON(t, r, http.MethodPost, "/verification/submit", submissionBody)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), string(entities.VerificationPending))
	require.Equal(t, entities.VerificationPending, user.VerificationStatus)

	// resubmitting while pending conflicts
	w = doJSON(t, r, http.MethodPost, "/verification/submit", submissionBody)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/verification/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "verificationStatus")
	require.Contains(t, w.Body.String(), "priorityScore")
}

func TestVerificationHandler_StatusIncludesRejectionReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	repo := userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{
				ID:                 userID,
				VerificationStatus: entities.VerificationRejected,
				RejectionReason:    "id photo unreadable",
			}, nil
		},
	}
	h := NewVerificationHandler(usecases.NewVerificationUsecase(repo))

	r := gin.New()
	r.GET("/verification/status", withUser(userID, h.Status))

	w := doJSON(t, r, http.MethodGet, "/verification/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "id photo unreadable")
}

func TestAdminHandler_VerificationActionFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	adminID := uuid.New()
	targetID := uuid.New()
	user := &entities.User{
		ID:                 targetID,
		VerificationStatus: entities.VerificationPending,
		FamilySize:         6,
		IsSingleMother:     true,
		MonthlyIncomeRange: entities.IncomeBelow30k,
	}

	repo := userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			require.Equal(t, targetID, id)
			return user, nil
		},
		updateFn: func(_ context.Context, u *entities.User) error {
			user = u
			return nil
		},
	}
	h := &AdminHandler{verificationUsecase: usecases.NewVerificationUsecase(repo)}

	r := gin.New()
	r.PUT("/admin/verifications/:userId/action", withUser(adminID, h.VerificationAction))

	w := doJSON(t, r, http.MethodPut, "/admin/verifications/"+targetID.String()+"/action", `{"action":"approve"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, entities.VerificationVerified, user.VerificationStatus)
	require.Greater(t, user.PriorityScore, 0)

	// approving twice conflicts
	w = doJSON(t, r, http.MethodPut, "/admin/verifications/"+targetID.String()+"/action", `{"action":"approve"}`)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminHandler_VerificationReject_RequiresReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	targetID := uuid.New()

	repo := userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: targetID, VerificationStatus: entities.VerificationPending}, nil
		},
	}
	h := &AdminHandler{verificationUsecase: usecases.NewVerificationUsecase(repo)}

	r := gin.New()
	r.PUT("/admin/verifications/:userId/action", withUser(uuid.New(), h.VerificationAction))

	w := doJSON(t, r, http.MethodPut, "/admin/verifications/"+targetID.String()+"/action", `{"action":"reject","reason":"  "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "rejection reason is required")
}
