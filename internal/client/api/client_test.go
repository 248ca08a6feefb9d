package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("localhost:8080")
	assert.Error(t, err)
	_, err = New("://")
	assert.Error(t, err)
}

func TestLoginSendsJSONAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "draftctl/test", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req authmodels.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","role":"admin","displayName":"Admin"},"token":"tok"}`))
	}, WithUserAgent("draftctl/test"))

	res, err := c.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "admin", res.User.Role)
}

func TestTokenSourceIsSentPerRequest(t *testing.T) {
	token := "first"
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"u1"}`))
	}, WithTokenSource(func() string { return token }))

	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	token = ""
	_, err = c.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer first", ""}, seen)
}

func TestErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"invalid email or password"}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "unauthorized", apiErr.Code)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNetwork(err))
}

func TestNonJSONErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Permissions(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad_gateway", apiErr.Code)
}

func TestNetworkFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Equal(t, MessageNetwork, err.Error(), "raw transport text stays out of the message")
}

func TestRedirectsAreNotFollowed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		_, _ = w.Write([]byte(`{"login":"/api/auth/login"}`))
	})

	_, err := c.Dashboard(context.Background())
	assert.Equal(t, http.StatusSeeOther, StatusOf(err))
}

func TestParticipantsSectionScope(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"items":[{"id":"7","name":"Jane Smith","status":"Available"}],"total":1,"of":1,"page":1,"page_size":15,"total_pages":1}`))
	})

	query := url.Values{"search": {"jane"}}
	res, err := c.AvailableParticipants(context.Background(), id.SectionID(42), query)
	require.NoError(t, err)

	assert.Equal(t, "42", got.Get("sectionId"))
	assert.Equal(t, "jane", got.Get("search"))
	assert.Empty(t, query.Get("sectionId"), "caller's query is not mutated")
	require.Len(t, res.Items, 1)
	assert.Equal(t, id.ParticipantID(7), res.Items[0].ID)
}

func TestDeleteTeamNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/teams/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DeleteTeam(context.Background(), id.TeamID(5)))
}

func TestStartAuctionSendsCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auctions/9/start", r.URL.Path)
		var req models.AccessCodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "K3Y9QZ2M", req.AccessCode)
		_, _ = w.Write([]byte(`{"id":"9","name":"Junior draft","status":"live"}`))
	})

	a, err := c.StartAuction(context.Background(), id.AuctionID(9), "K3Y9QZ2M")
	require.NoError(t, err)
	assert.Equal(t, models.AuctionLive, a.Status)
}
