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

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size" binding:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func cartUserIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("userId")))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "cart not found"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetCart returns the user's cart, or a synthesized empty shape when none
// exists. The empty shape is never persisted.
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart/:userId"
		defer handlePanic(c, route)

		userID, ok := cartUserIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "items": []models.CartItem{}})
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// AddCartItem loads or creates the cart and merges the requested line by
// (productId, size). No stock check happens here.
func AddCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart/:userId/items"
		defer handlePanic(c, route)

		userID, ok := cartUserIDParam(c)
		if !ok {
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
		if err == mongo.ErrNoDocuments {
			cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
		} else if err != nil {
			respondServerError(c, route, err)
			return
		}

		items, err := mergeCartItem(cart.Items, strings.TrimSpace(req.ProductID), strings.TrimSpace(req.Size), req.Quantity)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		cart.Items = items
		cart.UpdatedAt = time.Now()

		_, err = db.Collection("carts").UpdateOne(
			ctx,
			bson.M{"userId": userID},
			bson.M{"$set": bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		log.Println("[CART] [INFO] item added for user:", userID.Hex())
		c.JSON(http.StatusOK, cart)
	}
}

// UpdateCartItem sets an absolute quantity on one line.
func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/:userId/items/:itemId"
		defer handlePanic(c, route)

		userID, ok := cartUserIDParam(c)
		if !ok {
			return
		}
		itemID := strings.TrimSpace(c.Param("itemId"))

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "cart not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		items, found := setItemQuantity(cart.Items, itemID, req.Quantity)
		if !found {
			respondWithError(c, http.StatusNotFound, route, "cart item not found")
			return
		}
		cart.Items = items
		cart.UpdatedAt = time.Now()

		_, err = db.Collection("carts").UpdateByID(ctx, cart.ID, bson.M{
			"$set": bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// RemoveCartItem pulls one line. A missing cart is 404; a missing line
// within an existing cart is a no-op success.
func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/:userId/items/:itemId"
		defer handlePanic(c, route)

		userID, ok := cartUserIDParam(c)
		if !ok {
			return
		}
		itemID := strings.TrimSpace(c.Param("itemId"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "cart not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		cart.Items = removeItem(cart.Items, itemID)
		cart.UpdatedAt = time.Now()

		_, err = db.Collection("carts").UpdateByID(ctx, cart.ID, bson.M{
			"$set": bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}
