package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"fashionstore/models"
	"fashionstore/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductStore interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductController struct {
	products ProductStore
	log      *zap.Logger
}

func NewProductController(products ProductStore, log *zap.Logger) *ProductController {
	return &ProductController{products: products, log: log}
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := pc.products.List(ctx, strings.TrimSpace(c.Query("category")))
	if err != nil {
		internalError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	objID, ok := productID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.products.FindByID(ctx, objID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		internalError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func productID(c *gin.Context) (primitive.ObjectID, bool) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return primitive.NilObjectID, false
	}
	return objID, true
}
