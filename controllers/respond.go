package controllers

import (
	"errors"
	"net/http"

	"fashionstore/logger"
	"fashionstore/services"
	"fashionstore/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bindJSON decodes the body into dst and validates it. It writes the 400
// response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := validation.Struct(dst); err != nil {
		respondValidation(c, err)
		return false
	}
	return true
}

func respondValidation(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "details": verr.Fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondOrderError maps order lifecycle errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without internals.
func respondOrderError(c *gin.Context, log *zap.Logger, err error) {
	var verr *validation.Error
	var terr *services.TransitionError
	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr)
	case errors.Is(err, services.ErrInvalidOrderID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
	case errors.As(err, &terr):
		c.JSON(http.StatusBadRequest, gin.H{"error": terr.Error(), "status": terr.Current})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	default:
		internalError(c, log, err)
	}
}

func internalError(c *gin.Context, log *zap.Logger, err error) {
	logger.FromGin(c, log).Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
