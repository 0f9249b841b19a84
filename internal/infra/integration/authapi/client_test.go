package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		json.NewEncoder(w).Encode(User{ID: "user-1", Email: "ana@example.com"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")

	user, err := client.GetUser(context.Background(), "valid-token")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestGetUserRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")

	_, err := client.GetUser(context.Background(), "expired-token")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestGetUserEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")

	_, err := client.GetUser(context.Background(), "weird-token")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no user")
}
