package client

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"go.uber.org/zap"
)

const (
	msgSignInToSave       = "Please sign in to save properties."
	msgSignInToList       = "Please sign in to list a property."
	msgCreateFailed       = "Unable to create listing"
	msgPhotosNotSavedFmt  = "Listing created but photos could not be saved: %s"
	providerGoogle        = "google"
	defaultPhotoName      = "photo"
	maxPhotoNameRuneCount = 120
)

// Navigator moves the UI to another route.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Option func(*Controller)

func WithNavigator(n Navigator) Option {
	return func(c *Controller) {
		c.nav = n
	}
}

// WithClock replaces time.Now, used for upload paths.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewListing is what the listing form submits. Nil and empty fields take
// the defaults applied in CreateListing.
type NewListing struct {
	Title       string
	Price       float64
	Category    string
	Description string
	Location    string
	Address     string
	City        string
	State       *string
	Bedrooms    *int
	Bathrooms   *int
	AreaSqft    *float64
	IsVisible   *bool
}

// Controller holds the local view state for one signed in (or anonymous)
// user and applies mutations against the Remote. Membership changes are
// optimistic; deletes and creates wait for the remote.
type Controller struct {
	remote  Remote
	nav     Navigator
	now     func() time.Time
	toggles *keyLock

	mu          sync.RWMutex
	products    []Product
	wishlist    map[string]struct{}
	session     *model.Session
	profileName string
	errMsg      string
	authErr     string
	saving      bool
	unsubscribe func()
}

func NewController(remote Remote, opts ...Option) *Controller {
	c := &Controller{
		remote:   remote,
		nav:      NavigatorFunc(func(string) {}),
		now:      time.Now,
		toggles:  newKeyLock(),
		wishlist: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start restores the current session, subscribes to session changes and
// loads the feed. It returns the first failure but always attempts every
// step.
func (c *Controller) Start(ctx context.Context) error {
	var firstErr error

	session, err := c.remote.GetSession(ctx)
	if err != nil {
		logger.Warn("[Start] err remote.GetSession", zap.String("error", err.Error()))
		firstErr = errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	c.handleAuthChange(ctx, AuthInitialSession, session)

	unsubscribe := c.remote.OnAuthStateChange(c.handleAuthChange)
	c.mu.Lock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	if err := c.LoadListings(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Close drops the session-change subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) handleAuthChange(ctx context.Context, _ AuthEvent, session *model.Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	if session == nil {
		c.mu.Lock()
		c.profileName = ""
		c.wishlist = make(map[string]struct{})
		c.mu.Unlock()
		return
	}

	c.fetchProfile(ctx, session.User.ID)
	_ = c.LoadWishlists(ctx, session.User.ID)
}

func (c *Controller) fetchProfile(ctx context.Context, userID string) {
	name := ""
	profile, err := c.remote.GetProfile(ctx, userID)
	if err != nil {
		logger.Warn("[fetchProfile] err remote.GetProfile", zap.String("error", err.Error()))
	} else if profile != nil {
		name = profile.FullName
	}

	c.mu.Lock()
	c.profileName = name
	c.mu.Unlock()
}

// LoadListings replaces the feed with the visible listings, newest first.
// On failure the previous feed is kept and the banner is set.
func (c *Controller) LoadListings(ctx context.Context) error {
	c.setError("")

	listings, err := c.remote.ListVisibleListings(ctx)
	if err != nil {
		c.setError(err.Error())
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}

	products := make([]Product, 0, len(listings))
	for _, l := range listings {
		products = append(products, ProductFromListing(l))
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return nil
}

// LoadWishlists replaces the saved set for userID. A failed load clears the
// set rather than keeping stale memberships.
func (c *Controller) LoadWishlists(ctx context.Context, userID string) error {
	ids, err := c.remote.ListWishlist(ctx, userID)
	set := make(map[string]struct{}, len(ids))
	if err != nil {
		logger.Warn("[LoadWishlists] unable to load wishlist", zap.String("user_id", userID), zap.String("error", err.Error()))
	} else {
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}

	c.mu.Lock()
	c.wishlist = set
	c.mu.Unlock()

	if err != nil {
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	return nil
}

// ToggleSave flips membership of listingID in the saved set before the
// remote call and reverts it if the call fails. Toggles of the same id run
// one after another.
func (c *Controller) ToggleSave(ctx context.Context, listingID string) error {
	userID := c.userID()
	if userID == "" {
		c.setError(msgSignInToSave)
		return errors.SetCustomError(constant.ErrUnauthenticated)
	}

	unlock, err := c.toggles.Lock(ctx, listingID)
	if err != nil {
		c.setError(err.Error())
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	defer unlock()

	c.mu.Lock()
	_, wasSaved := c.wishlist[listingID]
	if wasSaved {
		delete(c.wishlist, listingID)
	} else {
		c.wishlist[listingID] = struct{}{}
	}
	c.mu.Unlock()

	if wasSaved {
		err = c.remote.DeleteWishlist(ctx, userID, listingID)
	} else {
		err = c.remote.InsertWishlist(ctx, userID, listingID)
	}
	if err == nil {
		return nil
	}

	c.mu.Lock()
	if wasSaved {
		c.wishlist[listingID] = struct{}{}
	} else {
		delete(c.wishlist, listingID)
	}
	c.errMsg = err.Error()
	c.mu.Unlock()

	logger.Warn("[ToggleSave] reverted", zap.String("listing_id", listingID), zap.Bool("was_saved", wasSaved), zap.String("error", err.Error()))
	return errors.Wrap(constant.ErrRemoteRequestFailed, err)
}

// DeleteListing soft deletes an owned listing and drops it from the feed
// once the remote confirms.
func (c *Controller) DeleteListing(ctx context.Context, listingID string) error {
	userID := c.userID()
	if userID == "" {
		return errors.SetCustomError(constant.ErrUnauthenticated)
	}

	if err := c.remote.SoftDeleteListing(ctx, listingID, userID); err != nil {
		c.setError(err.Error())
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}

	c.mu.Lock()
	kept := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.ID != listingID {
			kept = append(kept, p)
		}
	}
	c.products = kept
	c.mu.Unlock()
	return nil
}

// CreateListing inserts the listing, uploads photos best effort, records the
// photo rows and opens the new listing's page. At most MaxListingPhotos
// files are uploaded.
func (c *Controller) CreateListing(ctx context.Context, payload NewListing, files []PhotoFile) (*Product, error) {
	userID := c.userID()
	if userID == "" {
		if user, err := c.remote.GetUser(ctx); err == nil && user != nil {
			userID = user.ID
		}
	}
	if userID == "" {
		c.setError(msgSignInToList)
		return nil, errors.SetCustomError(constant.ErrUnauthenticated)
	}

	c.mu.Lock()
	c.saving = true
	c.errMsg = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	listing, err := c.remote.InsertListing(ctx, newListingRequest(userID, payload))
	if err != nil {
		c.setError(err.Error())
		return nil, errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	if listing == nil {
		c.setError(msgCreateFailed)
		return nil, errors.SetCustomError(constant.ErrRemoteRequestFailed)
	}

	if len(files) > constant.MaxListingPhotos {
		files = files[:constant.MaxListingPhotos]
	}

	urls := make([]string, 0, len(files))
	for idx, f := range files {
		objectPath := fmt.Sprintf("%s/%s/%d-%d-%s", userID, listing.ID, c.now().UnixMilli(), idx, photoName(f.Name))
		url, err := c.remote.UploadPhoto(ctx, objectPath, f)
		if err != nil {
			logger.Warn("[CreateListing] photo upload skipped", zap.String("path", objectPath), zap.String("error", err.Error()))
			continue
		}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		urls = []string{PlaceholderURL(listing.ID)}
	}

	inputs := make([]model.PhotoInput, len(urls))
	photos := make([]model.ListingPhoto, len(urls))
	for idx, url := range urls {
		inputs[idx] = model.PhotoInput{PhotoURL: url, IsPrimary: idx == 0}
		photos[idx] = model.ListingPhoto{ListingID: listing.ID, PhotoURL: url, IsPrimary: idx == 0, Position: idx}
	}
	photoErr := c.remote.InsertListingPhotos(ctx, listing.ID, inputs)

	created := *listing
	created.Photos = photos
	product := ProductFromListing(created)

	c.mu.Lock()
	c.products = append([]Product{product}, c.products...)
	if photoErr != nil {
		c.errMsg = fmt.Sprintf(msgPhotosNotSavedFmt, photoErr.Error())
	}
	c.mu.Unlock()

	if photoErr != nil {
		logger.Warn("[CreateListing] err remote.InsertListingPhotos", zap.String("listing_id", listing.ID), zap.String("error", photoErr.Error()))
	}

	c.nav.Navigate(fmt.Sprintf(constant.PropertyPathFormat, product.ID))
	return &product, nil
}

// ProductDetail resolves a listing for the detail route, from the feed first
// and then the remote. A missing listing sends the UI home.
func (c *Controller) ProductDetail(ctx context.Context, listingID string) (*Product, error) {
	c.mu.RLock()
	for _, p := range c.products {
		if p.ID == listingID {
			_, p.Saved = c.wishlist[p.ID]
			c.mu.RUnlock()
			return &p, nil
		}
	}
	c.mu.RUnlock()

	listing, err := c.remote.GetListing(ctx, listingID)
	if err != nil || listing == nil {
		c.nav.Navigate(constant.HomePath)
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	p := ProductFromListing(*listing)
	c.mu.RLock()
	_, p.Saved = c.wishlist[p.ID]
	c.mu.RUnlock()
	return &p, nil
}

func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	c.setAuthError("")
	session, err := c.remote.SignInWithPassword(ctx, email, password)
	return c.finishSignIn(session, err)
}

func (c *Controller) SignUp(ctx context.Context, email, password, fullName string) error {
	c.setAuthError("")
	session, err := c.remote.SignUp(ctx, email, password, fullName)
	return c.finishSignIn(session, err)
}

func (c *Controller) finishSignIn(session *model.Session, err error) error {
	if err != nil {
		c.setAuthError(err.Error())
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	if session != nil {
		c.mu.Lock()
		c.session = session
		c.mu.Unlock()
	}
	return nil
}

// SignInWithGoogle returns the provider URL the browser should open.
func (c *Controller) SignInWithGoogle(ctx context.Context, redirectTo string) (string, error) {
	c.setAuthError("")
	url, err := c.remote.SignInWithOAuth(ctx, providerGoogle, redirectTo)
	if err != nil {
		c.setAuthError(err.Error())
		return "", errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	return url, nil
}

// FinishGoogleSignIn completes SignInWithGoogle from the URL the browser was
// sent back to.
func (c *Controller) FinishGoogleSignIn(ctx context.Context, redirectURL string) error {
	c.setAuthError("")
	session, err := c.remote.CompleteOAuth(ctx, redirectURL)
	return c.finishSignIn(session, err)
}

// SignOut always clears the local session, even when the remote call fails.
func (c *Controller) SignOut(ctx context.Context) error {
	err := c.remote.SignOut(ctx)

	c.mu.Lock()
	c.session = nil
	c.profileName = ""
	c.wishlist = make(map[string]struct{})
	c.mu.Unlock()

	if err != nil {
		logger.Warn("[SignOut] err remote.SignOut", zap.String("error", err.Error()))
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}
	return nil
}

func (c *Controller) UpdateProfile(ctx context.Context, fullName string) error {
	userID := c.userID()
	if userID == "" {
		return errors.SetCustomError(constant.ErrUnauthenticated)
	}

	c.setAuthError("")
	if err := c.remote.UpdateProfile(ctx, userID, fullName); err != nil {
		c.setAuthError(err.Error())
		return errors.Wrap(constant.ErrRemoteRequestFailed, err)
	}

	c.mu.Lock()
	c.profileName = fullName
	c.mu.Unlock()
	return nil
}

// Products is a snapshot of the feed with Saved filled in.
func (c *Controller) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot(func(Product) bool { return true })
}

func (c *Controller) SavedProducts() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot(func(p Product) bool {
		_, ok := c.wishlist[p.ID]
		return ok
	})
}

// MyListings is the part of the feed owned by the signed in user.
func (c *Controller) MyListings() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return []Product{}
	}
	owner := c.session.User.ID
	return c.snapshot(func(p Product) bool { return p.OwnerID == owner })
}

// snapshot must be called with c.mu held.
func (c *Controller) snapshot(keep func(Product) bool) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if !keep(p) {
			continue
		}
		_, p.Saved = c.wishlist[p.ID]
		p.Photos = append([]string(nil), p.Photos...)
		out = append(out, p)
	}
	return out
}

func (c *Controller) IsSaved(listingID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.wishlist[listingID]
	return ok
}

func (c *Controller) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Controller) DismissError() {
	c.setError("")
}

func (c *Controller) AuthError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authErr
}

func (c *Controller) ProfileName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profileName
}

// Session returns a copy of the mirrored session, nil when signed out.
func (c *Controller) Session() *model.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Saving reports whether a CreateListing call is in flight.
func (c *Controller) Saving() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saving
}

func (c *Controller) userID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.User.ID
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Controller) setAuthError(msg string) {
	c.mu.Lock()
	c.authErr = msg
	c.mu.Unlock()
}

func newListingRequest(userID string, payload NewListing) *model.CreateListingRequest {
	category := payload.Category
	if category == "" {
		category = constant.DefaultCategory
	}
	description := payload.Description
	if description == "" {
		description = constant.DefaultDescription
	}
	address := payload.Address
	if address == "" {
		address = payload.Location
	}
	if address == "" {
		address = constant.DefaultCity
	}
	city := payload.City
	if city == "" {
		city = constant.DefaultCity
	}
	bedrooms := constant.DefaultBedrooms
	if payload.Bedrooms != nil {
		bedrooms = *payload.Bedrooms
	}
	bathrooms := constant.DefaultBathrooms
	if payload.Bathrooms != nil {
		bathrooms = *payload.Bathrooms
	}
	visible := true
	if payload.IsVisible != nil {
		visible = *payload.IsVisible
	}

	return &model.CreateListingRequest{
		UserID:       userID,
		Title:        payload.Title,
		Price:        payload.Price,
		Address:      address,
		City:         city,
		State:        payload.State,
		PropertyType: category,
		Description:  description,
		Bedrooms:     &bedrooms,
		Bathrooms:    &bathrooms,
		AreaSqft:     payload.AreaSqft,
		IsVisible:    &visible,
	}
}

// photoName keeps the file's base name usable as one path segment.
func photoName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return defaultPhotoName
	}
	name = strings.ReplaceAll(name, " ", "-")
	if r := []rune(name); len(r) > maxPhotoNameRuneCount {
		name = string(r[len(r)-maxPhotoNameRuneCount:])
	}
	return name
}
