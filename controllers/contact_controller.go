package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fashionstore/logger"
	"fashionstore/mailer"
	"fashionstore/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactStore interface {
	Insert(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type ContactController struct {
	messages ContactStore
	mail     mailer.Sender
	inbox    string
	log      *zap.Logger
}

// NewContactController forwards every stored message to inbox. An empty inbox
// disables forwarding.
func NewContactController(messages ContactStore, mail mailer.Sender, inbox string, log *zap.Logger) *ContactController {
	return &ContactController{messages: messages, mail: mail, inbox: inbox, log: log}
}

func (cc *ContactController) SubmitMessage(c *gin.Context) {
	var msg models.ContactMessage
	if !bindJSON(c, &msg) {
		return
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := cc.messages.Insert(ctx, &msg); err != nil {
		internalError(c, cc.log, err)
		return
	}

	if cc.inbox != "" {
		subject := msg.Subject
		if subject == "" {
			subject = "New message"
		}
		forward := mailer.Message{
			To:      cc.inbox,
			Subject: "[Contact] " + subject,
			Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message),
		}
		if err := cc.mail.Send(ctx, forward); err != nil {
			logger.FromGin(c, cc.log).Warn("contact forward failed", zap.String("message_id", msg.ID.Hex()), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": msg.ID.Hex()})
}

func (cc *ContactController) GetMessages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	msgs, err := cc.messages.List(ctx)
	if err != nil {
		internalError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
