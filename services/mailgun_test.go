package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail.example.com/messages", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "a@b.com", r.PostFormValue("to"))
		assert.Equal(t, "Your order is on its way!", r.PostFormValue("subject"))
		assert.Contains(t, r.PostFormValue("from"), "mail.example.com")
		json.NewEncoder(w).Encode(map[string]string{"id": "<msg@example>"})
	}))
	defer server.Close()

	mailgun := NewMailgun("mail.example.com", "key-test", server.URL)
	id, err := mailgun.Send(context.Background(), "a@b.com", "Your order is on its way!", "receipt body")
	require.NoError(t, err)
	assert.Equal(t, "<msg@example>", id)
}

func TestSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Forbidden"})
	}))
	defer server.Close()

	mailgun := NewMailgun("mail.example.com", "bad-key", server.URL)
	_, err := mailgun.Send(context.Background(), "a@b.com", "subject", "body")

	var mailErr *MailError
	require.True(t, errors.As(err, &mailErr))
	assert.Equal(t, "Forbidden", mailErr.Message)
}
