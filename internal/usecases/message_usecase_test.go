package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/usecases"
)

func TestMessageSend(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	sender := uuid.New()
	recipient := &entities.User{ID: uuid.New(), Name: "Bilal"}
	userRepo.On("GetByID", mock.Anything, recipient.ID).Return(recipient, nil)
	messageRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Message")).Return(nil)

	itemID := uuid.New()
	message, err := uc.Send(context.Background(), sender, &entities.SendMessageInput{
		RecipientID: recipient.ID.String(),
		ItemID:      itemID.String(),
		Content:     "is this still available?",
	})
	require.NoError(t, err)
	require.Equal(t, sender, message.SenderID)
	require.Equal(t, recipient.ID, message.RecipientID)
	require.True(t, message.ItemID.Valid)
}

func TestMessageSend_Validation(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)
	sender := uuid.New()

	_, err := uc.Send(context.Background(), sender, &entities.SendMessageInput{RecipientID: "garbage", Content: "hi"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = uc.Send(context.Background(), sender, &entities.SendMessageInput{RecipientID: sender.String(), Content: "hi"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	ghost := uuid.New()
	userRepo.On("GetByID", mock.Anything, ghost).Return(nil, domainerrors.ErrNotFound)
	_, err = uc.Send(context.Background(), sender, &entities.SendMessageInput{RecipientID: ghost.String(), Content: "hi"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMessageConversations_GroupsByPeer(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	me := uuid.New()
	bilal := &entities.User{ID: uuid.New(), Name: "Bilal"}
	carol := &entities.User{ID: uuid.New(), Name: "Carol"}
	now := time.Now()

	// newest first, as the repository returns them
	messages := []*entities.Message{
		{ID: uuid.New(), SenderID: carol.ID, RecipientID: me, Content: "newest from carol", CreatedAt: now},
		{ID: uuid.New(), SenderID: me, RecipientID: bilal.ID, Content: "to bilal", CreatedAt: now.Add(-time.Minute)},
		{ID: uuid.New(), SenderID: bilal.ID, RecipientID: me, Content: "from bilal unread", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: uuid.New(), SenderID: carol.ID, RecipientID: me, Content: "older from carol", CreatedAt: now.Add(-3 * time.Minute)},
	}

	messageRepo.On("ListForUser", mock.Anything, me).Return(messages, nil)
	userRepo.On("GetByID", mock.Anything, bilal.ID).Return(bilal, nil)
	userRepo.On("GetByID", mock.Anything, carol.ID).Return(carol, nil)

	conversations, err := uc.Conversations(context.Background(), me)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// order follows most recent message
	require.Equal(t, carol.ID, conversations[0].PeerID)
	require.Equal(t, "Carol", conversations[0].PeerName)
	require.Equal(t, "newest from carol", conversations[0].LastMessage.Content)
	require.Equal(t, 2, conversations[0].UnreadCount)

	require.Equal(t, bilal.ID, conversations[1].PeerID)
	require.Equal(t, 1, conversations[1].UnreadCount)
}

func TestMessageThread_MarksRead(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	me := uuid.New()
	peer := uuid.New()
	thread := []*entities.Message{{ID: uuid.New(), SenderID: peer, RecipientID: me, Content: "hello"}}

	messageRepo.On("ListBetween", mock.Anything, me, peer).Return(thread, nil)
	messageRepo.On("MarkConversationRead", mock.Anything, me, peer).Return(nil)

	got, err := uc.Thread(context.Background(), me, peer)
	require.NoError(t, err)
	require.Len(t, got, 1)
	messageRepo.AssertExpectations(t)
}

func TestMessageSearchAndUnread(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)
	me := uuid.New()

	// empty query short-circuits without touching the repo
	results, err := uc.Search(context.Background(), me, "")
	require.NoError(t, err)
	require.Empty(t, results)
	messageRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)

	messageRepo.On("Search", mock.Anything, me, "jacket").Return([]*entities.Message{{ID: uuid.New()}}, nil)
	results, err = uc.Search(context.Background(), me, "jacket")
	require.NoError(t, err)
	require.Len(t, results, 1)

	messageRepo.On("UnreadCount", mock.Anything, me).Return(int64(3), nil)
	count, err := uc.UnreadCount(context.Background(), me)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestMessageMarkRead_RecipientOnly(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	recipient := uuid.New()
	message := &entities.Message{ID: uuid.New(), SenderID: uuid.New(), RecipientID: recipient}
	messageRepo.On("GetByID", mock.Anything, message.ID).Return(message, nil)
	messageRepo.On("MarkRead", mock.Anything, message.ID).Return(nil)

	require.NoError(t, uc.MarkRead(context.Background(), message.ID, recipient))
	require.ErrorIs(t, uc.MarkRead(context.Background(), message.ID, message.SenderID), domainerrors.ErrForbidden)
}

func TestMessageDelete_SenderOnly(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	sender := uuid.New()
	message := &entities.Message{ID: uuid.New(), SenderID: sender, RecipientID: uuid.New()}
	messageRepo.On("GetByID", mock.Anything, message.ID).Return(message, nil)
	messageRepo.On("Delete", mock.Anything, message.ID).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), message.ID, sender))
	require.ErrorIs(t, uc.Delete(context.Background(), message.ID, uuid.New()), domainerrors.ErrForbidden)
}
