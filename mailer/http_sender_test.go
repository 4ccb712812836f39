package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPSender_Send(t *testing.T) {
	t.Run("posts message to /send", func(t *testing.T) {
		var got Message
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/send", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"sent"}`))
		}))
		defer server.Close()

		sender := NewHTTPSender(server.URL, server.Client())
		err := sender.Send(context.Background(), Message{To: "amira@example.com", Subject: "Hi", Body: "Hello"})

		require.NoError(t, err)
		assert.Equal(t, Message{To: "amira@example.com", Subject: "Hi", Body: "Hello"}, got)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		err := NewHTTPSender(server.URL, server.Client()).Send(context.Background(), Message{To: "a@b.co"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("unreachable service is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		err := NewHTTPSender(url, &http.Client{}).Send(context.Background(), Message{To: "a@b.co"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mail service unreachable")
	})

	t.Run("missing recipient", func(t *testing.T) {
		err := NewHTTPSender("http://unused", http.DefaultClient).Send(context.Background(), Message{})
		assert.ErrorIs(t, err, ErrNoRecipient)
	})
}

func TestLogSender_Send(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := NewLogSender(zap.New(core))

	require.NoError(t, sender.Send(context.Background(), Message{To: "a@b.co", Subject: "s", Body: "body"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "a@b.co", logs.All()[0].ContextMap()["to"])

	assert.ErrorIs(t, sender.Send(context.Background(), Message{}), ErrNoRecipient)
}
