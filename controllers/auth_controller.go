package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"fashionstore/auth"
	"fashionstore/middleware"
	"fashionstore/models"
	"fashionstore/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

type AuthController struct {
	users   UserStore
	tokens  TokenIssuer
	revoker TokenRevoker
	log     *zap.Logger
}

func NewAuthController(users UserStore, tokens TokenIssuer, revoker TokenRevoker, log *zap.Logger) *AuthController {
	return &AuthController{users: users, tokens: tokens, revoker: revoker, log: log}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a customer account. Staff roles are provisioned out of
// band and cannot be self-assigned.
func (ac *AuthController) Register(c *gin.Context) {
	var input registerInput
	if !bindJSON(c, &input) {
		return
	}
	if input.Role != "" && input.Role != models.RoleCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role cannot be self-assigned"})
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		internalError(c, ac.log, err)
		return
	}

	user := &models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hashed,
		Role:      models.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := ac.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		internalError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := ac.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		internalError(c, ac.log, err)
		return
	}
	if !auth.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := ac.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		internalError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
			"token": token,
		},
	})
}

// Logout revokes the bearer token that authenticated the request until the
// token would have expired anyway.
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	expiresAt := c.GetTime(middleware.TokenExpKey)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := ac.revoker.Revoke(ctx, token, expiresAt); err != nil {
		internalError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
