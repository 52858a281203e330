package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request channels. One collection carries support threads, contact
// messages and newsletter signups, discriminated by Channel.
const (
	ChannelSupport    = "support"
	ChannelContact    = "contact"
	ChannelNewsletter = "newsletter"
)

// Message is one entry in a support thread.
type Message struct {
	Sender     string    `bson:"sender" json:"sender"` // "user" or "support"
	SenderName string    `bson:"senderName" json:"senderName"`
	Message    string    `bson:"message" json:"message"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// Request is a customer-facing ticket. TicketID is a human-facing sequence
// starting at 10001. Contact and newsletter entries carry no messages and
// no linked user.
type Request struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TicketID     int64               `bson:"ticketId" json:"ticketId"`
	Channel      string              `bson:"channel" json:"channel"`
	ContactName  string              `bson:"contactName" json:"contactName"`
	ContactEmail string              `bson:"contactEmail" json:"contactEmail"`
	UserID       *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Subject      string              `bson:"subject,omitempty" json:"subject,omitempty"`
	OrderID      *primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Status       string              `bson:"status" json:"status"`
	Messages     []Message           `bson:"messages" json:"messages"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
