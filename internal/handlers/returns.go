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

type createReturnRequest struct {
	UserID      string `json:"userId" binding:"required"`
	OrderID     string `json:"orderId" binding:"required"`
	OrderItemID string `json:"orderItemId" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

type updateReturnStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReturnWithDetails is the list shape: the return plus its product and
// parent order, joined application-side because productId is a secondary
// key, not the store's native id.
type ReturnWithDetails struct {
	models.Return `bson:",inline"`
	Product       *models.Product `json:"product,omitempty"`
	Order         *models.Order   `json:"order,omitempty"`
}

// CreateReturn files a return against one order line. The order must belong
// to the requesting user and the line must not already carry a
// returnStatus. The Return insert and the order-item mark run in one
// session transaction.
func CreateReturn(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/returns"
		defer handlePanic(c, route)

		var req createReturnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.OrderID))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		orderItemID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.OrderItemID))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "order item not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").
			FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).
			Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		var item *models.OrderItem
		for i := range order.Items {
			if order.Items[i].ID == orderItemID {
				item = &order.Items[i]
				break
			}
		}
		if item == nil {
			respondWithError(c, http.StatusNotFound, route, "order item not found")
			return
		}
		if item.ReturnStatus != "" {
			respondWithError(c, http.StatusBadRequest, route, "a return already exists for this item")
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer session.EndSession(ctx)

		ret := models.Return{
			UserID:      userID,
			OrderID:     orderID,
			OrderItemID: orderItemID,
			ProductID:   item.ProductID,
			Reason:      strings.TrimSpace(req.Reason),
			Description: strings.TrimSpace(req.Description),
			Status:      ReturnPendingApproval,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			seq, err := nextSequence(sessCtx, db, returnSeqName)
			if err != nil {
				return nil, err
			}
			ret.ReturnID = seq

			res, err := db.Collection("returns").InsertOne(sessCtx, ret)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				ret.ID = id
			}

			_, err = db.Collection("orders").UpdateOne(
				sessCtx,
				bson.M{"_id": orderID, "items._id": orderItemID},
				bson.M{"$set": bson.M{
					"items.$.returnStatus": returnRequestedMark,
					"updatedAt":            time.Now(),
				}},
			)
			return nil, err
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		log.Printf("[RETURN] [INFO] return %d filed for order %s", ret.ReturnID, orderID.Hex())
		c.JSON(http.StatusCreated, ret)
	}
}

// ListUserReturns returns one user's returns with product and order details.
func ListUserReturns(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/returns/user/:userId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("userId")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		returns, err := returnsWithDetails(ctx, db, bson.M{"userId": userID})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, returns)
	}
}

// ListReturns returns every return for the admin dashboard.
func ListReturns(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/returns/admin"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		returns, err := returnsWithDetails(ctx, db, bson.M{})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, returns)
	}
}

// UpdateReturnStatus moves a return along its lifecycle and propagates the
// new status onto the parent order's embedded item, both writes inside one
// session transaction.
func UpdateReturnStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/returns/:id/status"
		defer handlePanic(c, route)

		returnID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "return not found")
			return
		}

		var req updateReturnStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status := strings.TrimSpace(req.Status)
		if !validReturnStatus(status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var ret models.Return
		err = db.Collection("returns").FindOne(ctx, bson.M{"_id": returnID}).Decode(&ret)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "return not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		if !canTransitionReturn(ret.Status, status) {
			respondWithError(c, http.StatusBadRequest, route,
				"cannot move return from "+ret.Status+" to "+status)
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			now := time.Now()
			_, err := db.Collection("returns").UpdateByID(sessCtx, returnID, bson.M{
				"$set": bson.M{"status": status, "updatedAt": now},
			})
			if err != nil {
				return nil, err
			}

			_, err = db.Collection("orders").UpdateOne(
				sessCtx,
				bson.M{"_id": ret.OrderID, "items._id": ret.OrderItemID},
				bson.M{"$set": bson.M{
					"items.$.returnStatus": status,
					"updatedAt":            now,
				}},
			)
			return nil, err
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		ret.Status = status
		log.Printf("[RETURN] [INFO] return %d moved to %s", ret.ReturnID, status)
		c.JSON(http.StatusOK, ret)
	}
}

// returnsWithDetails reads returns newest first, then joins each against its
// product (by the application-level productId) and its order in application
// code.
func returnsWithDetails(ctx context.Context, db *mongo.Database, match bson.M) ([]ReturnWithDetails, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection("returns").Find(ctx, match, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	returns := make([]models.Return, 0)
	if err := cursor.All(ctx, &returns); err != nil {
		return nil, err
	}

	detailed := make([]ReturnWithDetails, 0, len(returns))
	for _, ret := range returns {
		entry := ReturnWithDetails{Return: ret}

		var product models.Product
		if err := db.Collection("products").
			FindOne(ctx, bson.M{"productId": ret.ProductID}).
			Decode(&product); err == nil {
			entry.Product = &product
		}

		var order models.Order
		if err := db.Collection("orders").
			FindOne(ctx, bson.M{"_id": ret.OrderID}).
			Decode(&order); err == nil {
			entry.Order = &order
		}

		detailed = append(detailed, entry)
	}
	return detailed, nil
}
