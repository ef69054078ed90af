package transport

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	assetapp "github.com/muhammadheryan/mogadishu-rentals/application/asset"
	listingapp "github.com/muhammadheryan/mogadishu-rentals/application/listing"
	userapp "github.com/muhammadheryan/mogadishu-rentals/application/user"
	wishlistapp "github.com/muhammadheryan/mogadishu-rentals/application/wishlist"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/storage"
	utilsContext "github.com/muhammadheryan/mogadishu-rentals/utils/context"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	validatorx "github.com/muhammadheryan/mogadishu-rentals/utils/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	ListingApp  listingapp.ListingApp
	WishlistApp wishlistapp.WishlistApp
	AssetApp    assetapp.AssetApp
}

type Options struct {
	InternalAPIKey string
	MaxPhotoBytes  int64
	// PhotoReader serves uploaded photos back over GET; nil leaves that to the object store.
	PhotoReader PhotoReader
}

// PhotoReader is implemented by stores that keep photos in process.
type PhotoReader interface {
	Open(bucket, key string) (*storage.Object, bool)
}

func NewTransport(rh *RestHandler, opts Options) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI and metrics
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	mux.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Auth
	mux.HandleFunc("/auth/signup", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/auth/oauth/{provider}", rh.OAuth).Methods(http.MethodGet)
	mux.HandleFunc("/auth/oauth/{provider}/callback", rh.OAuthCallback).Methods(http.MethodGet)
	mux.HandleFunc("/auth/logout", rh.Logout).Methods(http.MethodPost)
	mux.HandleFunc("/auth/user", rh.GetUser).Methods(http.MethodGet)

	// Profile
	mux.HandleFunc("/profile", rh.GetProfile).Methods(http.MethodGet)
	mux.HandleFunc("/profile", rh.UpdateProfile).Methods(http.MethodPut)

	// Listings
	mux.HandleFunc("/listings", rh.ListListings).Methods(http.MethodGet)
	mux.HandleFunc("/listings", rh.CreateListing).Methods(http.MethodPost)
	mux.HandleFunc("/listings/{id}", rh.GetListing).Methods(http.MethodGet)
	mux.HandleFunc("/listings/{id}", rh.DeleteListing).Methods(http.MethodDelete)
	mux.HandleFunc("/listings/{id}/visibility", rh.SetVisibility).Methods(http.MethodPatch)
	mux.HandleFunc("/listings/{id}/photos", rh.AddPhotos).Methods(http.MethodPost)
	mux.HandleFunc("/me/listings", rh.MyListings).Methods(http.MethodGet)
	mux.Handle("/storage/"+constant.PhotoBucket+"/{path:.+}", rh.uploadPhotoHandler(opts.MaxPhotoBytes)).Methods(http.MethodPut)
	if opts.PhotoReader != nil {
		mux.Handle("/storage/{bucket}/{path:.+}", photoFileHandler(opts.PhotoReader)).Methods(http.MethodGet)
	}

	// Wishlist
	mux.HandleFunc("/wishlist", rh.ListWishlist).Methods(http.MethodGet)
	mux.HandleFunc("/wishlist/{listing_id}", rh.AddWishlist).Methods(http.MethodPost)
	mux.HandleFunc("/wishlist/{listing_id}", rh.RemoveWishlist).Methods(http.MethodDelete)

	// Front-end assets
	mux.HandleFunc("/assets/{path:.+}", rh.Asset).Methods(http.MethodGet)

	// Internal routes
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(opts.InternalAPIKey))
	internal.HandleFunc("/listing/feed/refresh", rh.RefreshFeed).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}

func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

// Register handler
// @Summary Sign up
// @Description Create an account and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Sign up request"
// @Success 200 {object} model.Session
// @Failure 400 {object} Response
// @Router /auth/signup [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Sign in with password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login request"
// @Success 200 {object} model.Session
// @Failure 400 {object} Response
// @Router /auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// OAuth handler
// @Summary OAuth authorize URL
// @Tags Auth
// @Produce json
// @Param provider path string true "Provider, only google"
// @Param redirect_to query string false "Where to return after sign in"
// @Success 200 {object} model.OAuthResponse
// @Router /auth/oauth/{provider} [get]
func (s *RestHandler) OAuth(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.OAuthURL(r.Context(), mux.Vars(r)["provider"], r.URL.Query().Get("redirect_to"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// OAuthCallback handler
// @Summary OAuth provider callback
// @Description Spends the state, opens a session and sends the browser back
// @Description to where sign in started, with the session in the URL fragment.
// @Tags Auth
// @Param provider path string true "Provider, only google"
// @Param state query string true "State issued by /auth/oauth/{provider}"
// @Param code query string true "Authorization code"
// @Success 302
// @Success 200 {object} model.Session
// @Failure 403 {object} Response
// @Router /auth/oauth/{provider}/callback [get]
func (s *RestHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("error") != "" {
		writeError(w, errors.SetCustomError(constant.ErrUnauthenticated))
		return
	}

	res, err := s.UserApp.OAuthCallback(r.Context(), mux.Vars(r)["provider"], q.Get("state"), q.Get("code"))
	if err != nil {
		writeError(w, err)
		return
	}

	target, err := url.Parse(res.RedirectTo)
	if res.RedirectTo == "" || err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		writeSuccess(w, res.Session)
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", res.Session.AccessToken)
	fragment.Set("expires_at", res.Session.ExpiresAt.UTC().Format(time.RFC3339))
	target.Fragment = ""
	target.RawFragment = ""
	http.Redirect(w, r, target.String()+"#"+fragment.Encode(), http.StatusFound)
}

// Logout handler
// @Summary Sign out
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /auth/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	if err := s.UserApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// GetUser handler
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /auth/user [get]
func (s *RestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	res, err := s.UserApp.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProfile handler
// @Summary Current profile
// @Tags Profile
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Router /profile [get]
func (s *RestHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	res, err := s.UserApp.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateProfile handler
// @Summary Update display name
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Param request body model.UpdateProfileRequest true "Profile"
// @Success 200 {object} model.Profile
// @Router /profile [put]
func (s *RestHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := utilsContext.GetUserID(r.Context())
	res, err := s.UserApp.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
