package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fashionstore/auth"
	"fashionstore/mailer"
	"fashionstore/middleware"
	"fashionstore/models"
	"fashionstore/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func withAuth(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	return withAuthBody(r, method, path, token, "")
}

func withAuthBody(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type memProducts struct {
	items map[primitive.ObjectID]models.Product
}

func (m *memProducts) List(_ context.Context, category string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range m.items {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error) {
	if _, ok := m.items[id]; !ok {
		return nil, repository.ErrNotFound
	}
	p.ID = id
	m.items[id] = *p
	return p, nil
}

func (m *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func catalogRouter(t *testing.T) (*gin.Engine, *memProducts, map[string]string) {
	t.Helper()
	products := &memProducts{items: map[primitive.ObjectID]models.Product{}}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	pc := NewProductController(products, zap.NewNop())

	r := gin.New()
	r.GET("/products", pc.GetProducts)
	r.GET("/products/:id", pc.GetProductByID)
	staff := r.Group("/products",
		middleware.Authenticate(tokens, &memRevoker{tokens: map[string]time.Time{}}, zap.NewNop()),
		middleware.RequireRoles(models.RoleAdmin, models.RoleProductManager),
	)
	staff.POST("", pc.CreateProduct)
	staff.PUT("/:id", pc.UpdateProduct)
	staff.DELETE("/:id", pc.DeleteProduct)

	issued := map[string]string{}
	for _, role := range []string{models.RoleAdmin, models.RoleProductManager, models.RoleCustomer} {
		tok, err := tokens.Issue(primitive.NewObjectID().Hex(), role)
		require.NoError(t, err)
		issued[role] = tok
	}
	return r, products, issued
}

const dressJSON = `{"name":"Summer dress","description":"Cotton","price":89.5,"category":"women","sizes":["S","M"],"stock":4}`

func TestProductCRUD(t *testing.T) {
	r, products, tokens := catalogRouter(t)

	w := withAuthBody(r, http.MethodPost, "/products", tokens[models.RoleCustomer], dressJSON)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = withAuthBody(r, http.MethodPost, "/products", tokens[models.RoleProductManager], dressJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["product"].(map[string]any)["id"].(string)

	w = withAuthBody(r, http.MethodPost, "/products", tokens[models.RoleAdmin], `{"name":"Name only"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["details"])

	w = perform(r, http.MethodGet, "/products?category=women", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Summer dress")

	w = perform(r, http.MethodGet, "/products?category=men", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = perform(r, http.MethodGet, "/products/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	updated := strings.Replace(dressJSON, "89.5", "70", 1)
	w = withAuthBody(r, http.MethodPut, "/products/"+id, tokens[models.RoleAdmin], updated)
	require.Equal(t, http.StatusOK, w.Code)
	oid, _ := primitive.ObjectIDFromHex(id)
	assert.Equal(t, 70.0, products.items[oid].Price)

	w = withAuth(r, http.MethodDelete, "/products/"+id, tokens[models.RoleAdmin])
	require.Equal(t, http.StatusOK, w.Code)
	w = withAuth(r, http.MethodDelete, "/products/"+id, tokens[models.RoleAdmin])
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_Price(t *testing.T) {
	r, products, tokens := catalogRouter(t)

	free := strings.Replace(dressJSON, `"price":89.5`, `"price":0`, 1)
	w := withAuthBody(r, http.MethodPost, "/products", tokens[models.RoleAdmin], free)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, products.items, 1)

	negative := strings.Replace(dressJSON, `"price":89.5`, `"price":-1`, 1)
	w = withAuthBody(r, http.MethodPost, "/products", tokens[models.RoleAdmin], negative)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "price")
	assert.Len(t, products.items, 1)
}

func TestGetProductByID_Errors(t *testing.T) {
	r, _, _ := catalogRouter(t)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/products/not-an-id", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), "").Code)
}

type memSubscribers struct {
	subs []models.Subscriber
}

func (m *memSubscribers) Add(_ context.Context, sub *models.Subscriber) error {
	for _, s := range m.subs {
		if s.Email == sub.Email {
			return repository.ErrDuplicate
		}
	}
	sub.ID = primitive.NewObjectID()
	m.subs = append(m.subs, *sub)
	return nil
}

func (m *memSubscribers) List(context.Context) ([]models.Subscriber, error) {
	return m.subs, nil
}

type captureMailer struct {
	sent []mailer.Message
	err  error
}

func (c *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func TestNewsletterSubscribe(t *testing.T) {
	subs := &memSubscribers{}
	mail := &captureMailer{err: errors.New("mail service returned status 502")}
	nc := NewNewsletterController(subs, mail, zap.NewNop())
	r := gin.New()
	r.POST("/newsletter", nc.Subscribe)
	r.GET("/newsletter", nc.GetSubscribers)

	w := perform(r, http.MethodPost, "/newsletter", `{"email":"Fan@Example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, "welcome email failure must not fail the subscription")
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "fan@example.com", mail.sent[0].To)

	w = perform(r, http.MethodPost, "/newsletter", `{"email":"fan@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(r, http.MethodPost, "/newsletter", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/newsletter", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fan@example.com")
}

type memContact struct {
	msgs []models.ContactMessage
}

func (m *memContact) Insert(_ context.Context, msg *models.ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memContact) List(context.Context) ([]models.ContactMessage, error) {
	return m.msgs, nil
}

func TestContactSubmit(t *testing.T) {
	store := &memContact{}
	mail := &captureMailer{}
	cc := NewContactController(store, mail, "hello@store.example", zap.NewNop())
	r := gin.New()
	r.POST("/contact", cc.SubmitMessage)
	r.GET("/contact", cc.GetMessages)

	w := perform(r, http.MethodPost, "/contact", `{"name":"Sami","email":"sami@example.com","subject":"Sizing","message":"Does the dress run small?"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.msgs, 1)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "hello@store.example", mail.sent[0].To)
	assert.Equal(t, "[Contact] Sizing", mail.sent[0].Subject)
	assert.Contains(t, mail.sent[0].Body, "Does the dress run small?")

	w = perform(r, http.MethodPost, "/contact", `{"name":"Sami","email":"sami@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "message: is required")

	w = perform(r, http.MethodGet, "/contact", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sizing")
}
