package handlers

import (
	"context"
	"errors"
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

type createOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
}

type createOrderRequest struct {
	UserID          string                   `json:"userId" binding:"required"`
	Items           []createOrderItemRequest `json:"items" binding:"required"`
	ShippingAddress string                   `json:"shippingAddress" binding:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type orderProductNotFoundError struct {
	ProductID string
}

func (e orderProductNotFoundError) Error() string {
	return "product not found: " + e.ProductID
}

// CreateOrder snapshots the cart lines into an immutable order at status
// Pending. Product name and price are denormalized at creation time, so
// later product edits never change past orders. The order insert and the
// cart delete run in one session transaction.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if len(req.Items) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "at least one item is required")
			return
		}

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer session.EndSession(ctx)

		order := models.Order{
			UserID:          userID,
			ShippingAddress: strings.TrimSpace(req.ShippingAddress),
			Status:          OrderPending,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			items := make([]models.OrderItem, 0, len(req.Items))
			total := 0.0

			for _, line := range req.Items {
				productID := strings.TrimSpace(line.ProductID)

				var product models.Product
				err := db.Collection("products").
					FindOne(sessCtx, bson.M{"productId": productID}).
					Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, orderProductNotFoundError{ProductID: productID}
				}
				if err != nil {
					return nil, err
				}

				items = append(items, models.OrderItem{
					ID:        primitive.NewObjectID(),
					ProductID: productID,
					Name:      product.Name,
					Quantity:  line.Quantity,
					Price:     product.Price,
					Size:      strings.TrimSpace(line.Size),
				})
				total += product.Price * float64(line.Quantity)
			}

			order.Items = items
			order.TotalAmount = total

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}

			if _, err := db.Collection("carts").DeleteOne(sessCtx, bson.M{"userId": userID}); err != nil {
				return nil, err
			}
			return nil, nil
		})
		if err != nil {
			var notFound orderProductNotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusNotFound, route, notFound.Error())
				return
			}
			respondServerError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		c.JSON(http.StatusCreated, order)
	}
}

// ListOrders returns all orders for the admin dashboard, newest first, each
// joined with a user summary.
func ListOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := ordersWithUser(ctx, db, bson.M{})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// ListUserOrders returns one user's orders, newest first.
func ListUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/user/:userId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("userId")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatus validates the value against the fixed allow-list and the
// transition table, then overwrites the status and returns the post-update
// document with its user join.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status := strings.TrimSpace(req.Status)
		if !validOrderStatus(status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if !canTransitionOrder(order.Status, status) {
			respondWithError(c, http.StatusBadRequest, route,
				"cannot move order from "+order.Status+" to "+status)
			return
		}

		_, err = db.Collection("orders").UpdateByID(ctx, orderID, bson.M{
			"$set": bson.M{"status": status, "updatedAt": time.Now()},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		updated, err := ordersWithUser(ctx, db, bson.M{"_id": orderID})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if len(updated) == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		log.Printf("[ORDER] [INFO] order %s moved to %s", orderID.Hex(), status)
		c.JSON(http.StatusOK, updated[0])
	}
}

// ordersWithUser joins orders against the users collection and sorts newest
// first.
func ordersWithUser(ctx context.Context, db *mongo.Database, match bson.M) ([]models.OrderWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$user",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.OrderWithUser, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
