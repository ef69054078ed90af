package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/client"
	"github.com/muhammadheryan/mogadishu-rentals/cmd/config"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/backend"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, code, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func newClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return backend.New(config.BackendConfig{
		BaseURL:        server.URL + "/",
		Timeout:        5 * time.Second,
		BreakerTimeout: time.Minute,
	}, nil)
}

func loginHandler(expiresAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeEnvelope(w, http.StatusBadRequest, "0006", "invalid password", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "0000", "success", model.Session{
			AccessToken: "tok-1",
			ExpiresAt:   expiresAt,
			User:        model.User{ID: "user-1", Email: req.Email},
		})
	}
}

func TestClient_SignInCarriesToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(time.Now().Add(time.Hour)))
	mux.HandleFunc("/wishlist", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeEnvelope(w, http.StatusUnauthorized, "0004", "please sign in", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "0000", "success", model.WishlistResponse{ListingIDs: []string{"l1", "l2"}})
	})
	c := newClient(t, mux)

	var events []client.AuthEvent
	unsubscribe := c.OnAuthStateChange(func(_ context.Context, event client.AuthEvent, _ *model.Session) {
		events = append(events, event)
	})
	defer unsubscribe()

	ctx := context.Background()
	_, err := c.ListWishlist(ctx, "user-1")
	require.Error(t, err)
	assert.True(t, backend.IsStatus(err, http.StatusUnauthorized))

	session, err := c.SignInWithPassword(ctx, "amina@example.so", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, []client.AuthEvent{client.AuthSignedIn}, events)

	ids, err := c.ListWishlist(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2"}, ids)

	current, err := c.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", current.AccessToken)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(time.Now().Add(time.Hour)))
	c := newClient(t, mux)

	_, err := c.SignInWithPassword(context.Background(), "amina@example.so", "wrong")

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "0006", apiErr.Code)
	assert.Equal(t, "invalid password", err.Error())
}

func TestClient_ExpiredSessionIsDropped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(time.Now().Add(-time.Minute)))
	c := newClient(t, mux)

	var last *model.Session
	lastEvent := client.AuthEvent("")
	c.OnAuthStateChange(func(_ context.Context, event client.AuthEvent, s *model.Session) {
		lastEvent = event
		last = s
	})

	_, err := c.SignInWithPassword(context.Background(), "amina@example.so", "secret")
	require.NoError(t, err)

	session, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, client.AuthSignedOut, lastEvent)
	assert.Nil(t, last)
}

func TestClient_CompleteOAuth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-google" {
			writeEnvelope(w, http.StatusUnauthorized, "0004", "please sign in", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "0000", "success", model.User{ID: "user-9", Email: "hodan@example.so"})
	})
	c := newClient(t, mux)

	var events []client.AuthEvent
	c.OnAuthStateChange(func(_ context.Context, event client.AuthEvent, _ *model.Session) {
		events = append(events, event)
	})

	ctx := context.Background()
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	redirect := "http://localhost:5173/listings#access_token=jwt-google&expires_at=" + url.QueryEscape(expires.Format(time.RFC3339))

	session, err := c.CompleteOAuth(ctx, redirect)
	require.NoError(t, err)
	assert.Equal(t, "user-9", session.User.ID)
	assert.True(t, expires.Equal(session.ExpiresAt))
	assert.Equal(t, []client.AuthEvent{client.AuthSignedIn}, events)

	current, err := c.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-google", current.AccessToken)

	_, err = c.CompleteOAuth(ctx, "http://localhost:5173/listings")
	assert.Error(t, err)

	// a token the server rejects leaves the client signed out
	c = newClient(t, mux)
	_, err = c.CompleteOAuth(ctx, "http://localhost:5173/#access_token=stale&expires_at="+url.QueryEscape(expires.Format(time.RFC3339)))
	require.Error(t, err)
	assert.True(t, backend.IsStatus(err, http.StatusUnauthorized))
	current, err = c.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestClient_SignOut(t *testing.T) {
	var logoutCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(time.Now().Add(time.Hour)))
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		logoutCalls.Add(1)
		writeEnvelope(w, http.StatusOK, "0000", "success", nil)
	})
	c := newClient(t, mux)
	ctx := context.Background()

	require.NoError(t, c.SignOut(ctx))
	assert.Equal(t, int32(0), logoutCalls.Load())

	_, err := c.SignInWithPassword(ctx, "amina@example.so", "secret")
	require.NoError(t, err)
	require.NoError(t, c.SignOut(ctx))
	assert.Equal(t, int32(1), logoutCalls.Load())

	session, err := c.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestClient_Listings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/listings", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "0000", "success", []model.Listing{
			{
				ListingEntity: model.ListingEntity{ID: "l1", Title: "Sea view", Price: 700},
				Photos:        []model.ListingPhoto{{ListingID: "l1", PhotoURL: "https://img/1.jpg", IsPrimary: true}},
			},
		})
	})
	mux.HandleFunc("/listings/missing", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "0002", "data not found", nil)
	})
	c := newClient(t, mux)

	listings, err := c.ListVisibleListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Sea view", listings[0].Title)
	assert.True(t, listings[0].Photos[0].IsPrimary)

	_, err = c.GetListing(context.Background(), "missing")
	assert.True(t, backend.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "data not found", err.Error())
}

func TestClient_SoftDeleteNeedsMatchingSession(t *testing.T) {
	var deletes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(time.Now().Add(time.Hour)))
	mux.HandleFunc("/listings/l1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		writeEnvelope(w, http.StatusOK, "0000", "success", nil)
	})
	c := newClient(t, mux)
	ctx := context.Background()

	err := c.SoftDeleteListing(ctx, "l1", "user-1")
	assert.True(t, backend.IsStatus(err, http.StatusUnauthorized))

	_, err = c.SignInWithPassword(ctx, "amina@example.so", "secret")
	require.NoError(t, err)
	require.NoError(t, c.SoftDeleteListing(ctx, "l1", "user-1"))
	assert.Equal(t, int32(1), deletes.Load())
}

func TestClient_UploadPhoto(t *testing.T) {
	var gotPath, gotType, gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		writeEnvelope(w, http.StatusOK, "0000", "success", model.UploadPhotoResponse{
			Path:      "user-1/l1/1-0-front door.jpg",
			PublicURL: "http://cdn/listing-photos/user-1/l1/1-0-front%20door.jpg",
		})
	})
	c := newClient(t, handler)

	url, err := c.UploadPhoto(context.Background(), "user-1/l1/1-0-front door.jpg", client.PhotoFile{
		Name:        "front door.jpg",
		ContentType: "image/jpeg",
		Size:        4,
		Data:        strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	assert.Equal(t, "http://cdn/listing-photos/user-1/l1/1-0-front%20door.jpg", url)
	assert.Equal(t, "/storage/listing-photos/user-1/l1/1-0-front%20door.jpg", gotPath)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "jpeg", gotBody)
}

func TestClient_BreakerTripsOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, http.StatusInternalServerError, "0001", "error internal", nil)
	}))

	for i := 0; i < 5; i++ {
		_, err := c.ListVisibleListings(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.ListVisibleListings(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	assert.Equal(t, int32(5), hits.Load())
}

func TestClient_ClientErrorsDoNotTrip(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, "0007", "forbidden", nil)
	}))

	for i := 0; i < 8; i++ {
		err := c.InsertWishlist(context.Background(), "user-1", "l1")
		require.Error(t, err)
		assert.True(t, backend.IsStatus(err, http.StatusForbidden))
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}
