package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type productCreateRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Category         string   `json:"category" binding:"required"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	StrikeoutPrice   float64  `json:"strikeoutPrice"`
	Images           []string `json:"images"`
	Bestseller       bool     `json:"bestseller"`
	Sizes            []string `json:"sizes"`
	Specifications   string   `json:"specifications"`
	WashInstructions string   `json:"washInstructions"`
	Quantity         int      `json:"quantity"`
}

type productUpdateRequest struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	Category         *string   `json:"category"`
	Price            *float64  `json:"price"`
	StrikeoutPrice   *float64  `json:"strikeoutPrice"`
	Images           *[]string `json:"images"`
	Bestseller       *bool     `json:"bestseller"`
	Sizes            *[]string `json:"sizes"`
	Specifications   *string   `json:"specifications"`
	WashInstructions *string   `json:"washInstructions"`
	Quantity         *int      `json:"quantity"`
}

type productBatchRequest struct {
	ProductIDs []string `json:"productIds" binding:"required"`
}

// GetProducts lists the catalog, optionally filtered by category or
// bestseller flag, newest first.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if v := strings.TrimSpace(c.Query("bestseller")); v != "" {
			filter["bestseller"] = v == "true"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GetProduct looks up a single product by its short productId.
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
		defer handlePanic(c, route)

		productID := strings.TrimSpace(c.Param("id"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").
			FindOne(ctx, bson.M{"productId": productID}).
			Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// BatchProducts resolves a list of productIds in one call; unknown ids are
// silently skipped.
func BatchProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products/batch"
		defer handlePanic(c, route)

		var req productBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{
			"productId": bson.M{"$in": req.ProductIDs},
		})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0, len(req.ProductIDs))
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := newProductID()
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		now := time.Now()
		product := models.Product{
			ProductID:        productID,
			Name:             strings.TrimSpace(req.Name),
			Description:      strings.TrimSpace(req.Description),
			Category:         strings.TrimSpace(req.Category),
			Price:            req.Price,
			StrikeoutPrice:   req.StrikeoutPrice,
			Images:           req.Images,
			Bestseller:       req.Bestseller,
			Sizes:            req.Sizes,
			Specifications:   strings.TrimSpace(req.Specifications),
			WashInstructions: strings.TrimSpace(req.WashInstructions),
			Quantity:         req.Quantity,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if product.Images == nil {
			product.Images = []string{}
		}
		if product.Sizes == nil {
			product.Sizes = []string{}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("products").InsertOne(ctx, product); err != nil {
			respondServerError(c, route, err)
			return
		}

		log.Println("[PRODUCT] [INFO] product created:", productID)
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct applies field-level upsert semantics: only the fields
// present in the body are overwritten.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"
		defer handlePanic(c, route)

		productID := strings.TrimSpace(c.Param("id"))

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		update := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			update["name"] = name
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			update["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must be greater than 0")
				return
			}
			update["price"] = *req.Price
		}
		if req.StrikeoutPrice != nil {
			update["strikeoutPrice"] = *req.StrikeoutPrice
		}
		if req.Images != nil {
			update["images"] = *req.Images
		}
		if req.Bestseller != nil {
			update["bestseller"] = *req.Bestseller
		}
		if req.Sizes != nil {
			update["sizes"] = *req.Sizes
		}
		if req.Specifications != nil {
			update["specifications"] = strings.TrimSpace(*req.Specifications)
		}
		if req.WashInstructions != nil {
			update["washInstructions"] = strings.TrimSpace(*req.WashInstructions)
		}
		if req.Quantity != nil {
			update["quantity"] = *req.Quantity
		}
		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		update["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Product
		err := db.Collection("products").
			FindOneAndUpdate(
				ctx,
				bson.M{"productId": productID},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondServerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"
		defer handlePanic(c, route)

		productID := strings.TrimSpace(c.Param("id"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"productId": productID})
		if err != nil {
			respondServerError(c, route, err)
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		log.Println("[PRODUCT] [INFO] product deleted:", productID)
		c.JSON(http.StatusOK, gin.H{"msg": "product deleted"})
	}
}
