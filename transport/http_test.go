package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	listingapp "github.com/muhammadheryan/mogadishu-rentals/application/listing"
	userapp "github.com/muhammadheryan/mogadishu-rentals/application/user"
	wishlistapp "github.com/muhammadheryan/mogadishu-rentals/application/wishlist"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/storage"
	cerr "github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserApp struct {
	userapp.UserApp
	tokens     map[string]string
	redirectTo string
}

func (f *fakeUserApp) ValidateToken(_ context.Context, token string) (string, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid token")
}

func (f *fakeUserApp) OAuthCallback(_ context.Context, provider, state, code string) (*model.OAuthCallbackResult, error) {
	if state != "nonce" || code != "good" {
		return nil, cerr.SetCustomError(constant.ErrForbidden)
	}
	return &model.OAuthCallbackResult{
		Session: &model.Session{
			AccessToken: "jwt-token",
			ExpiresAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			User:        model.User{ID: "user-9"},
		},
		RedirectTo: f.redirectTo,
	}, nil
}

type fakeWishlistApp struct {
	wishlistapp.WishlistApp
}

func (f *fakeWishlistApp) List(_ context.Context, userID string) (*model.WishlistResponse, error) {
	return &model.WishlistResponse{ListingIDs: []string{"saved-by-" + userID}}, nil
}

type fakeListingApp struct {
	listingapp.ListingApp
	viewer   string
	uploaded *listingapp.UploadPhotoInput
}

func (f *fakeListingApp) Get(_ context.Context, id, viewerID string) (*model.Listing, error) {
	f.viewer = viewerID
	if id == "missing" {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return &model.Listing{ListingEntity: model.ListingEntity{ID: id}}, nil
}

func (f *fakeListingApp) UploadPhoto(_ context.Context, userID string, req *listingapp.UploadPhotoInput) (*model.UploadPhotoResponse, error) {
	f.uploaded = req
	return &model.UploadPhotoResponse{Path: req.Path, PublicURL: "http://cdn/" + req.Path}, nil
}

func (f *fakeListingApp) RefreshFeed(context.Context) error { return nil }

func newTestHandler() (http.Handler, *fakeListingApp) {
	listings := &fakeListingApp{}
	handler := NewTransport(&RestHandler{
		UserApp:     &fakeUserApp{tokens: map[string]string{"good": "user-1"}},
		ListingApp:  listings,
		WishlistApp: &fakeWishlistApp{},
	}, Options{InternalAPIKey: "internal-key", MaxPhotoBytes: 8})
	return handler, listings
}

func decodeResponse(t *testing.T, body io.Reader) Response {
	t.Helper()
	var res Response
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestIsPublicPath(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/listings", true},
		{http.MethodGet, "/listings/l1", true},
		{http.MethodPost, "/listings", false},
		{http.MethodDelete, "/listings/l1", false},
		{http.MethodPost, "/auth/login", true},
		{http.MethodPost, "/auth/signup", true},
		{http.MethodGet, "/auth/oauth/google", true},
		{http.MethodGet, "/auth/user", false},
		{http.MethodGet, "/wishlist", false},
		{http.MethodGet, "/assets/index.css", true},
		{http.MethodPost, "/internal/v1/listing/feed/refresh", true},
		{http.MethodGet, "/metrics", true},
		{http.MethodGet, "/storage/listing-photos/user-1/l1/0-a.jpg", true},
		{http.MethodPut, "/storage/listing-photos/user-1/l1/0-a.jpg", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isPublicPath(tt.method, tt.path), "%s %s", tt.method, tt.path)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, cerr.SetCustomError(constant.ErrForbidden))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	res := decodeResponse(t, rec.Body)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrForbidden], res.Code)
	assert.Equal(t, "forbidden", res.Message)

	rec = httptest.NewRecorder()
	writeError(rec, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrInternal], decodeResponse(t, rec.Body).Code)
}

func TestAuthMiddleware(t *testing.T) {
	handler, listings := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishlist", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "saved-by-user-1")

	// public detail route still learns who is asking
	req = httptest.NewRequest(http.MethodGet, "/listings/l1", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", listings.viewer)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "", listings.viewer)
}

func TestInternalMiddleware(t *testing.T) {
	handler, _ := newTestHandler()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing key", "", http.StatusForbidden},
		{"wrong key", "Bearer nope", http.StatusForbidden},
		{"right key", "Bearer internal-key", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal/v1/listing/feed/refresh", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	unset := InternalMiddleware("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler reached without a configured key")
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	unset.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadPhotoHandler(t *testing.T) {
	handler, listings := newTestHandler()

	req := httptest.NewRequest(http.MethodPut, "/storage/listing-photos/user-1/l1/0-a.jpg", strings.NewReader("tiny"))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "image/jpeg")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1/l1/0-a.jpg", listings.uploaded.Path)
	assert.Equal(t, "image/jpeg", listings.uploaded.ContentType)

	req = httptest.NewRequest(http.MethodPut, "/storage/listing-photos/user-1/l1/1-b.jpg", strings.NewReader("far too large"))
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPhotoFileHandler(t *testing.T) {
	store := storage.NewMemoryStore("http://localhost:8080/storage")
	require.NoError(t, store.Upload(context.Background(), &storage.UploadInput{
		Bucket:       constant.PhotoBucket,
		Key:          "user-1/l1/0-a.jpg",
		ContentType:  "image/jpeg",
		CacheSeconds: 60,
		Data:         strings.NewReader("jpeg-bytes"),
	}))

	handler := NewTransport(&RestHandler{
		UserApp:     &fakeUserApp{},
		ListingApp:  &fakeListingApp{},
		WishlistApp: &fakeWishlistApp{},
	}, Options{PhotoReader: store})

	url := store.PublicURL(constant.PhotoBucket, "user-1/l1/0-a.jpg")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(url, "http://localhost:8080"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/listing-photos/user-1/l1/9-z.jpg", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// without an in-process store nothing is served
	plain, _ := newTestHandler()
	rec = httptest.NewRecorder()
	plain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/listing-photos/user-1/l1/0-a.jpg", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestOAuthCallbackHandler(t *testing.T) {
	tests := []struct {
		name         string
		redirectTo   string
		query        string
		wantCode     int
		wantLocation string
	}{
		{
			name:         "redirects back with the session in the fragment",
			redirectTo:   "http://localhost:5173/listings#old",
			query:        "?state=nonce&code=good",
			wantCode:     http.StatusFound,
			wantLocation: "http://localhost:5173/listings#access_token=jwt-token&expires_at=2024-05-01T12%3A00%3A00Z",
		},
		{
			name:     "no redirect target answers with the session",
			query:    "?state=nonce&code=good",
			wantCode: http.StatusOK,
		},
		{
			name:       "non http redirect target is not followed",
			redirectTo: "javascript:alert(1)",
			query:      "?state=nonce&code=good",
			wantCode:   http.StatusOK,
		},
		{
			name:     "provider reported an error",
			query:    "?error=access_denied&state=nonce",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "bad state",
			query:    "?state=forged&code=good",
			wantCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransport(&RestHandler{
				UserApp:     &fakeUserApp{redirectTo: tt.redirectTo},
				ListingApp:  &fakeListingApp{},
				WishlistApp: &fakeWishlistApp{},
			}, Options{})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback"+tt.query, nil))
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantCode == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "jwt-token")
			}
		})
	}
}
