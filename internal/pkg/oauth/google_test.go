package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestGoogleService(t *testing.T, userInfoURL string) *GoogleServiceImpl {
	t.Helper()
	svc, ok := NewGoogleService("client-id", "client-secret", "http://localhost/callback", []string{"email"}).(*GoogleServiceImpl)
	require.True(t, ok)
	if userInfoURL != "" {
		svc.userInfoURL = userInfoURL
	}
	return svc
}

func TestGenerateState_Unique(t *testing.T) {
	svc := newTestGoogleService(t, "")

	first := svc.GenerateState("Mozilla/5.0")
	second := svc.GenerateState("Mozilla/5.0")

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestRedirectURL_CarriesState(t *testing.T) {
	svc := newTestGoogleService(t, "")

	url := svc.RedirectURL("the-state")

	assert.Contains(t, url, "state=the-state")
	assert.Contains(t, url, "client_id=client-id")
}

func TestVerifyUser_VerifiedEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"g-123","email":"worker@example.com","verified_email":true}`))
	}))
	defer server.Close()

	svc := newTestGoogleService(t, server.URL)

	info, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "token"})

	require.NoError(t, err)
	assert.Equal(t, "g-123", info.GoogleID)
	assert.Equal(t, "worker@example.com", info.Email)
}

func TestVerifyUser_UnverifiedEmailRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"g-123","email":"worker@example.com","verified_email":false}`))
	}))
	defer server.Close()

	svc := newTestGoogleService(t, server.URL)

	_, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "token"})

	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestVerifyUser_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestGoogleService(t, server.URL)

	_, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "token"})

	assert.ErrorContains(t, err, "status 500")
}
