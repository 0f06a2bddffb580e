package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/domain/repositories"
)

// MessageUsecase handles chat between users. Conversations are not stored;
// they are derived by grouping a user's messages by peer.
type MessageUsecase struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageUsecase {
	return &MessageUsecase{messageRepo: messageRepo, userRepo: userRepo}
}

// Send delivers a message to another user, optionally anchored to an item
func (u *MessageUsecase) Send(ctx context.Context, senderID uuid.UUID, input *entities.SendMessageInput) (*entities.Message, error) {
	recipientID, err := uuid.Parse(input.RecipientID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid recipient id")
	}
	if recipientID == senderID {
		return nil, domainerrors.BadRequest("cannot message yourself")
	}

	if _, err := u.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	message := &entities.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     input.Content,
	}
	if input.ItemID != "" {
		message.ItemID = null.StringFrom(input.ItemID)
	}

	if err := u.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversations groups the user's messages by peer, newest conversation
// first, with per-peer unread counts. The message list arrives newest first,
// so the first message seen for a peer is that conversation's latest.
func (u *MessageUsecase) Conversations(ctx context.Context, userID uuid.UUID) ([]*entities.Conversation, error) {
	messages, err := u.messageRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPeer := make(map[uuid.UUID]*entities.Conversation)
	order := make([]uuid.UUID, 0)

	for _, message := range messages {
		peerID := message.SenderID
		if peerID == userID {
			peerID = message.RecipientID
		}

		conv, ok := byPeer[peerID]
		if !ok {
			conv = &entities.Conversation{PeerID: peerID, LastMessage: message}
			byPeer[peerID] = conv
			order = append(order, peerID)
		}
		if message.RecipientID == userID && !message.IsRead {
			conv.UnreadCount++
		}
	}

	conversations := make([]*entities.Conversation, 0, len(order))
	for _, peerID := range order {
		conv := byPeer[peerID]
		if peer, err := u.userRepo.GetByID(ctx, peerID); err == nil {
			conv.PeerName = peer.Name
		}
		conversations = append(conversations, conv)
	}
	return conversations, nil
}

// Thread returns the full exchange with one peer, oldest first, and marks
// the peer's messages as read.
func (u *MessageUsecase) Thread(ctx context.Context, userID, peerID uuid.UUID) ([]*entities.Message, error) {
	messages, err := u.messageRepo.ListBetween(ctx, userID, peerID)
	if err != nil {
		return nil, err
	}
	if err := u.messageRepo.MarkConversationRead(ctx, userID, peerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// ItemThread returns the user's messages about a specific item
func (u *MessageUsecase) ItemThread(ctx context.Context, userID, itemID uuid.UUID) ([]*entities.Message, error) {
	return u.messageRepo.ListByItem(ctx, userID, itemID)
}

// UnreadCount returns how many unread messages await the user
func (u *MessageUsecase) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return u.messageRepo.UnreadCount(ctx, userID)
}

// MarkRead marks a single message as read. Only the recipient may do so.
func (u *MessageUsecase) MarkRead(ctx context.Context, messageID, actorID uuid.UUID) error {
	message, err := u.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.RecipientID != actorID {
		return domainerrors.ErrForbidden
	}
	return u.messageRepo.MarkRead(ctx, messageID)
}

// Search finds the user's messages matching a content query
func (u *MessageUsecase) Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Message, error) {
	if query == "" {
		return []*entities.Message{}, nil
	}
	return u.messageRepo.Search(ctx, userID, query)
}

// Delete removes the user's own message
func (u *MessageUsecase) Delete(ctx context.Context, messageID, actorID uuid.UUID) error {
	message, err := u.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != actorID {
		return domainerrors.ErrForbidden
	}
	return u.messageRepo.Delete(ctx, messageID)
}
