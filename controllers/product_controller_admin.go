package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fashionstore/middleware"
	"fashionstore/models"
	"fashionstore/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := pc.products.Create(ctx, &product); err != nil {
		internalError(c, pc.log, err)
		return
	}

	pc.log.Info("product created", zap.String("product_id", product.ID.Hex()), zap.String("by", c.GetString(middleware.UserIDKey)))
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	objID, ok := productID(c)
	if !ok {
		return
	}
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	updated, err := pc.products.Update(ctx, objID, &product)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		internalError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	objID, ok := productID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := pc.products.Delete(ctx, objID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		internalError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
