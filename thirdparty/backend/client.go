package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/client"
	"github.com/muhammadheryan/mogadishu-rentals/cmd/config"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerName = "rentals-backend"

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "rentals_backend_breaker_state",
		Help: "Backend circuit breaker state (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the rentals REST API. The session token lives in memory
// only.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	now     func() time.Time

	mu        sync.RWMutex
	session   *model.Session
	listeners map[int]client.AuthListener
	nextID    int
}

var _ client.Remote = (*Client)(nil)

// New builds a Client. A nil httpClient gets one with cfg.Timeout.
func New(cfg config.BackendConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
	breakerState.WithLabelValues(breakerName).Set(0)

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		breaker:   gobreaker.NewCircuitBreaker[[]byte](settings),
		now:       time.Now,
		listeners: make(map[int]client.AuthListener),
	}
}

// State returns the breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

func (c *Client) setSession(ctx context.Context, event client.AuthEvent, session *model.Session) {
	c.mu.Lock()
	c.session = session
	listeners := make([]client.AuthListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(ctx, event, session)
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.doRaw(ctx, method, path, body, "application/json", -1, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, size int64, out interface{}) error {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("create %s request: %w", method, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", contentType)
		}
		if size >= 0 {
			req.ContentLength = size
		}
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		var env envelope
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < http.StatusBadRequest {
				return nil, fmt.Errorf("decode response: %w", err)
			}
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
		}
		return env.Data, nil
	})
	if err != nil {
		return breakerError(err)
	}

	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// GetSession returns the in-memory session, dropping it once expired.
func (c *Client) GetSession(ctx context.Context) (*model.Session, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		return nil, nil
	}
	if !session.ExpiresAt.IsZero() && c.now().After(session.ExpiresAt) {
		c.setSession(ctx, client.AuthSignedOut, nil)
		return nil, nil
	}
	s := *session
	return &s, nil
}

func (c *Client) GetUser(ctx context.Context) (*model.User, error) {
	if c.token() == "" {
		return nil, nil
	}
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	var session model.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", model.LoginRequest{Email: email, Password: password}, &session); err != nil {
		return nil, err
	}
	c.setSession(ctx, client.AuthSignedIn, &session)
	return &session, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*model.Session, error) {
	var session model.Session
	req := model.RegisterRequest{Email: email, Password: password, FullName: fullName}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &session); err != nil {
		return nil, err
	}
	c.setSession(ctx, client.AuthSignedIn, &session)
	return &session, nil
}

func (c *Client) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	path := "/auth/oauth/" + url.PathEscape(provider)
	if redirectTo != "" {
		path += "?" + url.Values{"redirect_to": {redirectTo}}.Encode()
	}
	var res model.OAuthResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

// CompleteOAuth reads the session the server put in the fragment of the
// callback redirect and resolves its user before signing in.
func (c *Client) CompleteOAuth(ctx context.Context, redirectURL string) (*model.Session, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("parse redirect: %w", err)
	}
	values, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return nil, fmt.Errorf("parse redirect fragment: %w", err)
	}
	token := values.Get("access_token")
	if token == "" {
		return nil, fmt.Errorf("redirect carries no access token")
	}
	expiresAt, err := time.Parse(time.RFC3339, values.Get("expires_at"))
	if err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}

	c.mu.Lock()
	c.session = &model.Session{AccessToken: token, ExpiresAt: expiresAt}
	c.mu.Unlock()

	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &user); err != nil {
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
		return nil, err
	}

	session := &model.Session{AccessToken: token, ExpiresAt: expiresAt, User: user}
	c.setSession(ctx, client.AuthSignedIn, session)
	s := *session
	return &s, nil
}

// SignOut drops the local session even when the server call fails.
func (c *Client) SignOut(ctx context.Context) error {
	var err error
	if c.token() != "" {
		err = c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	}
	c.setSession(ctx, client.AuthSignedOut, nil)
	return err
}

func (c *Client) OnAuthStateChange(listener client.AuthListener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) ListVisibleListings(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	if err := c.do(ctx, http.MethodGet, "/listings", nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *Client) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	if err := c.do(ctx, http.MethodGet, "/listings/"+url.PathEscape(id), nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *Client) InsertListing(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error) {
	var listing model.Listing
	if err := c.do(ctx, http.MethodPost, "/listings", req, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// SoftDeleteListing deletes as the signed in user; the server enforces
// ownership, ownerID only guards against a stale session.
func (c *Client) SoftDeleteListing(ctx context.Context, id, ownerID string) error {
	if s, _ := c.GetSession(ctx); s == nil || s.User.ID != ownerID {
		return &APIError{Status: http.StatusUnauthorized, Code: constant.ErrorTypeCode[constant.ErrUnauthenticated], Message: constant.ErrorTypeMessage[constant.ErrUnauthenticated]}
	}
	return c.do(ctx, http.MethodDelete, "/listings/"+url.PathEscape(id), nil, nil)
}

func (c *Client) InsertListingPhotos(ctx context.Context, listingID string, photos []model.PhotoInput) error {
	return c.do(ctx, http.MethodPost, "/listings/"+url.PathEscape(listingID)+"/photos", model.AddPhotosRequest{Photos: photos}, nil)
}

// UploadPhoto streams the file to object storage and returns its public URL.
func (c *Client) UploadPhoto(ctx context.Context, objectPath string, file client.PhotoFile) (string, error) {
	segments := strings.Split(objectPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	size := file.Size
	if size <= 0 {
		size = -1
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var res model.UploadPhotoResponse
	path := "/storage/" + constant.PhotoBucket + "/" + strings.Join(segments, "/")
	if err := c.doRaw(ctx, http.MethodPut, path, file.Data, contentType, size, &res); err != nil {
		return "", err
	}
	return res.PublicURL, nil
}

func (c *Client) ListWishlist(ctx context.Context, _ string) ([]string, error) {
	var res model.WishlistResponse
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &res); err != nil {
		return nil, err
	}
	return res.ListingIDs, nil
}

func (c *Client) InsertWishlist(ctx context.Context, _, listingID string) error {
	return c.do(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(listingID), nil, nil)
}

func (c *Client) DeleteWishlist(ctx context.Context, _, listingID string) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(listingID), nil, nil)
}

func (c *Client) GetProfile(ctx context.Context, _ string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, _, fullName string) error {
	return c.do(ctx, http.MethodPut, "/profile", model.UpdateProfileRequest{FullName: fullName}, nil)
}
