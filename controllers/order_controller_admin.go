package controllers

import (
	"context"
	"net/http"
	"time"

	"fashionstore/models"

	"github.com/gin-gonic/gin"
)

func (oc *OrderController) GetOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.orders.List(ctx)
	if err != nil {
		respondOrderError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := oc.orders.Get(ctx, c.Param("id"))
	if err != nil {
		respondOrderError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) ConfirmOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Confirm, "Order confirmed")
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Cancel, "Order cancelled")
}

func (oc *OrderController) ShipOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Ship, "Order shipped")
}

func (oc *OrderController) DeliverOrder(c *gin.Context) {
	oc.transition(c, oc.orders.Deliver, "Order delivered")
}

func (oc *OrderController) transition(c *gin.Context, op func(context.Context, string) (*models.Order, error), message string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := op(ctx, c.Param("id"))
	if err != nil {
		respondOrderError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "order": order})
}
