package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type createRequestBody struct {
	Channel      string `json:"channel" binding:"required"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	UserID       string `json:"userId"`
	Subject      string `json:"subject"`
	OrderID      string `json:"orderId"`
	Message      string `json:"message"`
}

type addMessageBody struct {
	Sender     string `json:"sender" binding:"required,oneof=user support"`
	SenderName string `json:"senderName" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

type updateTicketStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// CreateRequest handles all three channels of the unified requests
// collection. Support threads need an existing user and a seed message;
// contact entries are plain triage records; newsletter signups are
// deduplicated by (channel, contactEmail).
func CreateRequest(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/requests"
		defer handlePanic(c, route)

		var req createRequestBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		channel := strings.ToLower(strings.TrimSpace(req.Channel))
		email := strings.ToLower(strings.TrimSpace(req.ContactEmail))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		ticket := models.Request{
			Channel:      channel,
			ContactName:  strings.TrimSpace(req.ContactName),
			ContactEmail: email,
			Subject:      strings.TrimSpace(req.Subject),
			Status:       TicketOpen,
			Messages:     []models.Message{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		switch channel {
		case models.ChannelSupport:
			if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Message) == "" {
				respondWithError(c, http.StatusBadRequest, route, "userId and message are required")
				return
			}
			userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
			if err != nil {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}

			var user models.User
			err = db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			if err != nil {
				respondServerError(c, route, err)
				return
			}

			ticket.UserID = &userID
			ticket.ContactName = strings.TrimSpace(user.FirstName + " " + user.LastName)
			ticket.ContactEmail = user.Email
			ticket.Messages = []models.Message{{
				Sender:     "user",
				SenderName: ticket.ContactName,
				Message:    strings.TrimSpace(req.Message),
				Timestamp:  now,
			}}

			if orderID := strings.TrimSpace(req.OrderID); orderID != "" {
				id, err := primitive.ObjectIDFromHex(orderID)
				if err != nil {
					respondWithError(c, http.StatusNotFound, route, "order not found")
					return
				}
				ticket.OrderID = &id
			}

		case models.ChannelContact:
			if ticket.ContactName == "" || ticket.Subject == "" || email == "" {
				respondWithError(c, http.StatusBadRequest, route, "contactName, contactEmail and subject are required")
				return
			}

		case models.ChannelNewsletter:
			if email == "" {
				respondWithError(c, http.StatusBadRequest, route, "contactEmail is required")
				return
			}
			count, err := db.Collection("requests").CountDocuments(ctx, bson.M{
				"channel":      models.ChannelNewsletter,
				"contactEmail": email,
			})
			if err != nil {
				respondServerError(c, route, err)
				return
			}
			if count > 0 {
				respondWithError(c, http.StatusBadRequest, route, "already subscribed")
				return
			}

		default:
			respondWithError(c, http.StatusBadRequest, route, "invalid channel")
			return
		}

		seq, err := nextSequence(ctx, db, ticketSeqName)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		ticket.TicketID = seq

		res, err := db.Collection("requests").InsertOne(ctx, ticket)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		ticket.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Printf("[REQUEST] [INFO] %s request %d created", channel, ticket.TicketID)
		c.JSON(http.StatusCreated, ticket)
	}
}

// ListRequests returns tickets for the admin dashboard, newest first, with
// an optional ?channel= filter.
func ListRequests(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/requests"
		defer handlePanic(c, route)

		filter := bson.M{}
		if channel := strings.ToLower(strings.TrimSpace(c.Query("channel"))); channel != "" {
			filter["channel"] = channel
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("requests").Find(ctx, filter, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		tickets := make([]models.Request, 0)
		if err := cursor.All(ctx, &tickets); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, tickets)
	}
}

func GetRequest(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/requests/:id"
		defer handlePanic(c, route)

		ticketID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "request not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var ticket models.Request
		err = db.Collection("requests").FindOne(ctx, bson.M{"_id": ticketID}).Decode(&ticket)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "request not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}

// AddRequestMessage appends to the thread. A user reply reopens the ticket;
// a support reply parks it pending the user's response. Closing is only
// ever explicit via the status endpoint.
func AddRequestMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/requests/:id/messages"
		defer handlePanic(c, route)

		ticketID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "request not found")
			return
		}

		var req addMessageBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status := TicketOpen
		if req.Sender == "support" {
			status = TicketPending
		}

		message := models.Message{
			Sender:     req.Sender,
			SenderName: strings.TrimSpace(req.SenderName),
			Message:    strings.TrimSpace(req.Message),
			Timestamp:  time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Request
		err = db.Collection("requests").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": ticketID},
				bson.M{
					"$push": bson.M{"messages": message},
					"$set":  bson.M{"status": status, "updatedAt": message.Timestamp},
				},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "request not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func UpdateRequestStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/requests/:id/status"
		defer handlePanic(c, route)

		ticketID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "request not found")
			return
		}

		var req updateTicketStatusBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status := strings.TrimSpace(req.Status)
		if !validTicketStatus(status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Request
		err = db.Collection("requests").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": ticketID},
				bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "request not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
