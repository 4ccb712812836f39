package controllers

import (
	"context"
	"net/http"
	"time"

	"fashionstore/models"
	"fashionstore/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderService interface {
	Create(ctx context.Context, in services.CreateOrderInput) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Confirm(ctx context.Context, id string) (*models.Order, error)
	Cancel(ctx context.Context, id string) (*models.Order, error)
	Ship(ctx context.Context, id string) (*models.Order, error)
	Deliver(ctx context.Context, id string) (*models.Order, error)
}

type OrderController struct {
	orders OrderService
	log    *zap.Logger
}

func NewOrderController(orders OrderService, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, log: log}
}

// CreateOrder places a guest checkout order. No account is required.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := oc.orders.Create(ctx, input)
	if err != nil {
		respondOrderError(c, oc.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}
