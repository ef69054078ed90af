package client

import (
	"context"
	"io"

	"github.com/muhammadheryan/mogadishu-rentals/model"
)

type AuthEvent string

const (
	AuthInitialSession AuthEvent = "INITIAL_SESSION"
	AuthSignedIn       AuthEvent = "SIGNED_IN"
	AuthSignedOut      AuthEvent = "SIGNED_OUT"
)

// AuthListener receives session changes. session is nil after sign out.
type AuthListener func(ctx context.Context, event AuthEvent, session *model.Session)

// PhotoFile is one file picked for upload.
type PhotoFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Remote is the hosted backend as seen by the controller: auth, CRUD over
// listings, photos, wishlists and profiles, and object storage. Every call
// may fail; none is retried.
type Remote interface {
	GetSession(ctx context.Context) (*model.Session, error)
	GetUser(ctx context.Context) (*model.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
	SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error)
	// CompleteOAuth adopts the session handed back in the provider redirect.
	CompleteOAuth(ctx context.Context, redirectURL string) (*model.Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (*model.Session, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(listener AuthListener) (unsubscribe func())

	ListVisibleListings(ctx context.Context) ([]model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	InsertListing(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error)
	SoftDeleteListing(ctx context.Context, id, ownerID string) error
	InsertListingPhotos(ctx context.Context, listingID string, photos []model.PhotoInput) error
	UploadPhoto(ctx context.Context, path string, file PhotoFile) (string, error)

	ListWishlist(ctx context.Context, userID string) ([]string, error)
	InsertWishlist(ctx context.Context, userID, listingID string) error
	DeleteWishlist(ctx context.Context, userID, listingID string) error

	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID, fullName string) error
}
