package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Message is a single chat message between two users, optionally anchored to
// an item.
type Message struct {
	ID          uuid.UUID   `json:"id"`
	SenderID    uuid.UUID   `json:"senderId"`
	RecipientID uuid.UUID   `json:"recipientId"`
	ItemID      null.String `json:"itemId,omitempty"`
	Content     string      `json:"content"`
	IsRead      bool        `json:"isRead"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Conversation is the derived grouping of messages with one peer. It is not
// stored; it is computed from the message list.
type Conversation struct {
	PeerID      uuid.UUID `json:"peerId"`
	PeerName    string    `json:"peerName"`
	LastMessage *Message  `json:"lastMessage"`
	UnreadCount int       `json:"unreadCount"`
}

// SendMessageInput represents input for sending a message
type SendMessageInput struct {
	RecipientID string `json:"recipientId" binding:"required,uuid"`
	ItemID      string `json:"itemId" binding:"omitempty,uuid"`
	Content     string `json:"content" binding:"required,min=1,max=2000"`
}
