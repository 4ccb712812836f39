package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"fashionstore/logger"
	"fashionstore/mailer"
	"fashionstore/models"
	"fashionstore/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriberStore interface {
	Add(ctx context.Context, sub *models.Subscriber) error
	List(ctx context.Context) ([]models.Subscriber, error)
}

type NewsletterController struct {
	subscribers SubscriberStore
	mail        mailer.Sender
	log         *zap.Logger
}

func NewNewsletterController(subscribers SubscriberStore, mail mailer.Sender, log *zap.Logger) *NewsletterController {
	return &NewsletterController{subscribers: subscribers, mail: mail, log: log}
}

type subscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (nc *NewsletterController) Subscribe(c *gin.Context) {
	var input subscribeInput
	if !bindJSON(c, &input) {
		return
	}

	sub := &models.Subscriber{
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := nc.subscribers.Add(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already subscribed"})
			return
		}
		internalError(c, nc.log, err)
		return
	}

	welcome := mailer.Message{
		To:      sub.Email,
		Subject: "Welcome to our newsletter",
		Body:    "Thanks for subscribing. You will be the first to hear about new collections and offers.\n",
	}
	if err := nc.mail.Send(ctx, welcome); err != nil {
		logger.FromGin(c, nc.log).Warn("welcome email failed", zap.String("to", sub.Email), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully", "subscriber": sub})
}

func (nc *NewsletterController) GetSubscribers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	subs, err := nc.subscribers.List(ctx)
	if err != nil {
		internalError(c, nc.log, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}
