package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Return is a per-order-line return request. ReturnID is a human-facing
// sequence starting at 50001, allocated from the counters collection.
type Return struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReturnID    int64              `bson:"returnId" json:"returnId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	OrderID     primitive.ObjectID `bson:"orderId" json:"orderId"`
	OrderItemID primitive.ObjectID `bson:"orderItemId" json:"orderItemId"`
	ProductID   string             `bson:"productId" json:"productId"`
	Reason      string             `bson:"reason" json:"reason"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
