package client_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/client"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	clientmocks "github.com/muhammadheryan/mogadishu-rentals/mocks/client"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	cerr "github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testUserID = "user-1"
	testEmail  = "amina@example.so"
)

func TestMain(m *testing.M) {
	restore := logger.Replace(zap.NewNop())
	code := m.Run()
	restore()
	os.Exit(code)
}

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func newListing(id, owner string, price float64, created time.Time, photos ...model.ListingPhoto) model.Listing {
	return model.Listing{
		ListingEntity: model.ListingEntity{
			ID:           id,
			UserID:       owner,
			Title:        "Listing " + id,
			Price:        price,
			Address:      "Maka Al Mukarama",
			City:         "Mogadishu",
			PropertyType: "Apartments",
			Description:  "Two rooms",
			Bedrooms:     2,
			Bathrooms:    1,
			IsVisible:    true,
			CreatedAt:    created,
		},
		Photos: photos,
	}
}

// signedIn returns a controller whose session belongs to testUserID.
func signedIn(t *testing.T, opts ...client.Option) (*client.Controller, *clientmocks.Remote) {
	t.Helper()
	remote := clientmocks.NewRemote(t)
	ctrl := client.NewController(remote, opts...)

	remote.On("SignInWithPassword", mock.Anything, testEmail, "secret").
		Return(&model.Session{AccessToken: "token", User: model.User{ID: testUserID, Email: testEmail}}, nil).
		Once()
	require.NoError(t, ctrl.SignIn(context.Background(), testEmail, "secret"))
	return ctrl, remote
}

func withFeed(t *testing.T, ctrl *client.Controller, remote *clientmocks.Remote, listings ...model.Listing) {
	t.Helper()
	remote.On("ListVisibleListings", mock.Anything).Return(listings, nil).Once()
	require.NoError(t, ctrl.LoadListings(context.Background()))
}

func withSaved(t *testing.T, ctrl *client.Controller, remote *clientmocks.Remote, ids ...string) {
	t.Helper()
	remote.On("ListWishlist", mock.Anything, testUserID).Return(ids, nil).Once()
	require.NoError(t, ctrl.LoadWishlists(context.Background(), testUserID))
}

func TestController_ToggleSave(t *testing.T) {
	tests := []struct {
		name      string
		saved     bool
		mockCall  func(r *clientmocks.Remote)
		wantSaved bool
		wantErr   constant.ErrorType
		wantMsg   string
	}{
		{
			name:  "success: save",
			saved: false,
			mockCall: func(r *clientmocks.Remote) {
				r.On("InsertWishlist", mock.Anything, testUserID, "l1").Return(nil).Once()
			},
			wantSaved: true,
		},
		{
			name:  "success: unsave",
			saved: true,
			mockCall: func(r *clientmocks.Remote) {
				r.On("DeleteWishlist", mock.Anything, testUserID, "l1").Return(nil).Once()
			},
			wantSaved: false,
		},
		{
			name:  "error: insert fails and reverts",
			saved: false,
			mockCall: func(r *clientmocks.Remote) {
				r.On("InsertWishlist", mock.Anything, testUserID, "l1").Return(errors.New("network down")).Once()
			},
			wantSaved: false,
			wantErr:   constant.ErrRemoteRequestFailed,
			wantMsg:   "network down",
		},
		{
			name:  "error: delete fails and reverts",
			saved: true,
			mockCall: func(r *clientmocks.Remote) {
				r.On("DeleteWishlist", mock.Anything, testUserID, "l1").Return(errors.New("permission denied")).Once()
			},
			wantSaved: true,
			wantErr:   constant.ErrRemoteRequestFailed,
			wantMsg:   "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, remote := signedIn(t)
			withFeed(t, ctrl, remote, newListing("l1", "owner", 700, time.Now()))
			if tt.saved {
				withSaved(t, ctrl, remote, "l1")
			} else {
				withSaved(t, ctrl, remote)
			}
			tt.mockCall(remote)

			err := ctrl.ToggleSave(context.Background(), "l1")
			if tt.wantErr != constant.Successful {
				require.Error(t, err)
				assert.True(t, cerr.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantSaved, ctrl.IsSaved("l1"))
			assert.Equal(t, tt.wantSaved, ctrl.Products()[0].Saved)
			assert.Equal(t, tt.wantMsg, ctrl.Error())
		})
	}
}

func TestController_ToggleSave_Unauthenticated(t *testing.T) {
	remote := clientmocks.NewRemote(t)
	ctrl := client.NewController(remote)

	err := ctrl.ToggleSave(context.Background(), "l1")

	require.Error(t, err)
	assert.True(t, cerr.Is(err, constant.ErrUnauthenticated))
	assert.Equal(t, "Please sign in to save properties.", ctrl.Error())
	assert.False(t, ctrl.IsSaved("l1"))
	remote.AssertNotCalled(t, "InsertWishlist", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_ToggleSave_VisibleBeforeRemoteAnswers(t *testing.T) {
	ctrl, remote := signedIn(t)
	withFeed(t, ctrl, remote, newListing("l1", "owner", 700, time.Now()))

	var savedDuringCall, listedDuringCall bool
	remote.On("InsertWishlist", mock.Anything, testUserID, "l1").
		Run(func(mock.Arguments) {
			savedDuringCall = ctrl.IsSaved("l1")
			listedDuringCall = len(ctrl.SavedProducts()) == 1
		}).
		Return(nil).
		Once()

	require.NoError(t, ctrl.ToggleSave(context.Background(), "l1"))
	assert.True(t, savedDuringCall)
	assert.True(t, listedDuringCall)
}

func TestController_ToggleSave_RoundTrip(t *testing.T) {
	ctrl, remote := signedIn(t)
	withFeed(t, ctrl, remote, newListing("l1", "owner", 700, time.Now()))
	remote.On("InsertWishlist", mock.Anything, testUserID, "l1").Return(nil).Once()
	remote.On("DeleteWishlist", mock.Anything, testUserID, "l1").Return(nil).Once()

	before := ctrl.Products()
	require.NoError(t, ctrl.ToggleSave(context.Background(), "l1"))
	require.NoError(t, ctrl.ToggleSave(context.Background(), "l1"))

	assert.Equal(t, before, ctrl.Products())
	assert.Empty(t, ctrl.SavedProducts())
}

func TestController_ToggleSave_SameIDRunsInOrder(t *testing.T) {
	ctrl, remote := signedIn(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var deleteCalled atomic.Bool

	remote.On("InsertWishlist", mock.Anything, testUserID, "l1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).
		Once()
	remote.On("DeleteWishlist", mock.Anything, testUserID, "l1").
		Run(func(mock.Arguments) { deleteCalled.Store(true) }).
		Return(nil).
		Once()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, ctrl.ToggleSave(context.Background(), "l1"))
	}()
	<-started
	go func() {
		defer wg.Done()
		assert.NoError(t, ctrl.ToggleSave(context.Background(), "l1"))
	}()

	assert.Never(t, deleteCalled.Load, 50*time.Millisecond, 5*time.Millisecond)
	close(release)
	wg.Wait()

	assert.True(t, deleteCalled.Load())
	assert.False(t, ctrl.IsSaved("l1"))
}

func TestController_ToggleSave_DifferentIDsDoNotWait(t *testing.T) {
	ctrl, remote := signedIn(t)

	started := make(chan struct{})
	release := make(chan struct{})
	remote.On("InsertWishlist", mock.Anything, testUserID, "l1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).
		Once()
	remote.On("InsertWishlist", mock.Anything, testUserID, "l2").Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.ToggleSave(context.Background(), "l1")
	}()
	<-started

	require.NoError(t, ctrl.ToggleSave(context.Background(), "l2"))
	assert.True(t, ctrl.IsSaved("l2"))

	close(release)
	require.NoError(t, <-done)
	assert.True(t, ctrl.IsSaved("l1"))
}

func TestController_ToggleSave_CancelledWhileWaiting(t *testing.T) {
	ctrl, remote := signedIn(t)

	started := make(chan struct{})
	release := make(chan struct{})
	remote.On("InsertWishlist", mock.Anything, testUserID, "l1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).
		Once()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.ToggleSave(context.Background(), "l1")
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ctrl.ToggleSave(ctx, "l1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, cerr.Is(err, constant.ErrRemoteRequestFailed))
	assert.Equal(t, context.Canceled.Error(), ctrl.Error())

	close(release)
	require.NoError(t, <-done)
	assert.True(t, ctrl.IsSaved("l1"))
}

func TestController_DeleteListing(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		mockErr error
		wantIDs []string
		wantMsg string
	}{
		{
			name:    "success: removed after remote confirms",
			wantIDs: []string{"l2"},
		},
		{
			name:    "error: not the owner",
			mockErr: errors.New("you do not have access to this resource"),
			wantIDs: []string{"l1", "l2"},
			wantMsg: "you do not have access to this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, remote := signedIn(t)
			withFeed(t, ctrl, remote,
				newListing("l1", "someone-else", 900, now),
				newListing("l2", testUserID, 400, now.Add(-time.Hour)),
			)
			remote.On("SoftDeleteListing", mock.Anything, "l1", testUserID).Return(tt.mockErr).Once()

			err := ctrl.DeleteListing(context.Background(), "l1")
			if tt.mockErr != nil {
				require.Error(t, err)
				assert.True(t, cerr.Is(err, constant.ErrRemoteRequestFailed))
			} else {
				require.NoError(t, err)
			}

			var ids []string
			for _, p := range ctrl.Products() {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantMsg, ctrl.Error())
		})
	}
}

func TestController_DeleteListing_Unauthenticated(t *testing.T) {
	remote := clientmocks.NewRemote(t)
	ctrl := client.NewController(remote)

	err := ctrl.DeleteListing(context.Background(), "l1")

	assert.True(t, cerr.Is(err, constant.ErrUnauthenticated))
	assert.Empty(t, ctrl.Error())
	remote.AssertNotCalled(t, "SoftDeleteListing", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_CreateListing_NoPhotosUsesPlaceholder(t *testing.T) {
	nav := &navRecorder{}
	ctrl, remote := signedIn(t, client.WithNavigator(nav))
	withFeed(t, ctrl, remote, newListing("old", "owner", 800, time.Now().Add(-time.Hour)))

	remote.On("InsertListing", mock.Anything, mock.MatchedBy(func(req *model.CreateListingRequest) bool {
		return req.UserID == testUserID &&
			req.Title == "Test Flat" &&
			req.Price == 500 &&
			req.Description == "No description provided." &&
			*req.Bedrooms == 1 &&
			*req.Bathrooms == 1 &&
			req.Address == "Mogadishu" &&
			req.City == "Mogadishu" &&
			req.PropertyType == "Apartments" &&
			*req.IsVisible
	})).Return(&model.Listing{ListingEntity: model.ListingEntity{
		ID:           "new-1",
		UserID:       testUserID,
		Title:        "Test Flat",
		Price:        500,
		Address:      "Mogadishu",
		City:         "Mogadishu",
		PropertyType: "Apartments",
		Description:  "No description provided.",
		Bedrooms:     1,
		Bathrooms:    1,
		IsVisible:    true,
		CreatedAt:    time.Now(),
	}}, nil).Once()
	remote.On("InsertListingPhotos", mock.Anything, "new-1", []model.PhotoInput{
		{PhotoURL: "https://picsum.photos/seed/new-1/400/300", IsPrimary: true},
	}).Return(nil).Once()

	product, err := ctrl.CreateListing(context.Background(), client.NewListing{Title: "Test Flat", Price: 500}, nil)
	require.NoError(t, err)

	assert.Equal(t, "new-1", product.ID)
	assert.Equal(t, "https://picsum.photos/seed/new-1/400/300", product.Image)
	assert.Equal(t, []string{"https://picsum.photos/seed/new-1/400/300"}, product.Photos)
	assert.Equal(t, []string{"/property/new-1"}, nav.Paths())

	products := ctrl.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "new-1", products[0].ID)
	assert.Empty(t, ctrl.Error())
	assert.False(t, ctrl.Saving())
}

func TestController_CreateListing_UploadsBestEffort(t *testing.T) {
	clock := func() time.Time { return time.UnixMilli(1700000000000) }
	ctrl, remote := signedIn(t, client.WithClock(clock))

	remote.On("InsertListing", mock.Anything, mock.MatchedBy(func(req *model.CreateListingRequest) bool {
		return req.Address == "Hodan" && req.PropertyType == "Houses" && *req.Bedrooms == 3
	})).Return(&model.Listing{ListingEntity: model.ListingEntity{ID: "l9", UserID: testUserID, Title: "Villa", Price: 1500}}, nil).Once()

	remote.On("UploadPhoto", mock.Anything, "user-1/l9/1700000000000-0-front.jpg", mock.Anything).
		Return("", errors.New("bucket full")).Once()
	remote.On("UploadPhoto", mock.Anything, "user-1/l9/1700000000000-1-garden-view.png", mock.Anything).
		Return("https://cdn.example.so/listing-photos/user-1/l9/garden.png", nil).Once()
	remote.On("InsertListingPhotos", mock.Anything, "l9", []model.PhotoInput{
		{PhotoURL: "https://cdn.example.so/listing-photos/user-1/l9/garden.png", IsPrimary: true},
	}).Return(nil).Once()

	bedrooms := 3
	product, err := ctrl.CreateListing(context.Background(), client.NewListing{
		Title:    "Villa",
		Price:    1500,
		Category: "Houses",
		Location: "Hodan",
		Bedrooms: &bedrooms,
	}, []client.PhotoFile{
		{Name: "front.jpg", ContentType: "image/jpeg", Data: bytes.NewReader([]byte("a"))},
		{Name: "garden view.png", ContentType: "image/png", Data: bytes.NewReader([]byte("b"))},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.so/listing-photos/user-1/l9/garden.png", product.Image)
}

func TestController_CreateListing_PhotoRowsFail(t *testing.T) {
	ctrl, remote := signedIn(t)

	remote.On("InsertListing", mock.Anything, mock.Anything).
		Return(&model.Listing{ListingEntity: model.ListingEntity{ID: "l3", UserID: testUserID, Title: "Room", Price: 200}}, nil).Once()
	remote.On("InsertListingPhotos", mock.Anything, "l3", mock.Anything).Return(errors.New("timeout")).Once()

	product, err := ctrl.CreateListing(context.Background(), client.NewListing{Title: "Room", Price: 200}, nil)
	require.NoError(t, err)

	assert.Equal(t, "l3", product.ID)
	assert.Equal(t, "Listing created but photos could not be saved: timeout", ctrl.Error())
	require.Len(t, ctrl.Products(), 1)
}

func TestController_CreateListing_InsertFails(t *testing.T) {
	nav := &navRecorder{}
	ctrl, remote := signedIn(t, client.WithNavigator(nav))
	remote.On("InsertListing", mock.Anything, mock.Anything).Return(nil, errors.New("price must be positive")).Once()

	product, err := ctrl.CreateListing(context.Background(), client.NewListing{Title: "Bad", Price: -1}, nil)

	require.Error(t, err)
	assert.Nil(t, product)
	assert.Equal(t, "price must be positive", ctrl.Error())
	assert.Empty(t, ctrl.Products())
	assert.Empty(t, nav.Paths())
	remote.AssertNotCalled(t, "InsertListingPhotos", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_CreateListing_Identity(t *testing.T) {
	t.Run("error: no session and no user", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		remote.On("GetUser", mock.Anything).Return(nil, nil).Once()

		_, err := ctrl.CreateListing(context.Background(), client.NewListing{Title: "Flat", Price: 300}, nil)

		assert.True(t, cerr.Is(err, constant.ErrUnauthenticated))
		assert.Equal(t, "Please sign in to list a property.", ctrl.Error())
	})

	t.Run("success: falls back to the remote user", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		remote.On("GetUser", mock.Anything).Return(&model.User{ID: "user-9"}, nil).Once()
		remote.On("InsertListing", mock.Anything, mock.MatchedBy(func(req *model.CreateListingRequest) bool {
			return req.UserID == "user-9"
		})).Return(&model.Listing{ListingEntity: model.ListingEntity{ID: "l4", UserID: "user-9"}}, nil).Once()
		remote.On("InsertListingPhotos", mock.Anything, "l4", mock.Anything).Return(nil).Once()

		_, err := ctrl.CreateListing(context.Background(), client.NewListing{Title: "Flat", Price: 300}, nil)
		require.NoError(t, err)
	})
}

func TestController_LoadListings(t *testing.T) {
	now := time.Now()
	ctrl, remote := signedIn(t)
	feed := []model.Listing{
		newListing("l2", "owner", 650, now),
		newListing("l1", testUserID, 450, now.Add(-time.Minute)),
	}

	remote.On("ListVisibleListings", mock.Anything).Return(feed, nil).Twice()
	require.NoError(t, ctrl.LoadListings(context.Background()))
	first := ctrl.Products()
	require.NoError(t, ctrl.LoadListings(context.Background()))
	assert.Equal(t, first, ctrl.Products())

	assert.Len(t, ctrl.MyListings(), 1)
	assert.Equal(t, "l1", ctrl.MyListings()[0].ID)

	remote.On("ListVisibleListings", mock.Anything).Return(nil, errors.New("service unavailable")).Once()
	err := ctrl.LoadListings(context.Background())
	require.Error(t, err)
	assert.Equal(t, first, ctrl.Products())
	assert.Equal(t, "service unavailable", ctrl.Error())

	ctrl.DismissError()
	assert.Empty(t, ctrl.Error())
}

func TestController_LoadWishlists_FailureClearsSet(t *testing.T) {
	ctrl, remote := signedIn(t)
	withSaved(t, ctrl, remote, "l1", "l2")
	require.True(t, ctrl.IsSaved("l1"))

	remote.On("ListWishlist", mock.Anything, testUserID).Return(nil, errors.New("boom")).Once()
	err := ctrl.LoadWishlists(context.Background(), testUserID)

	require.Error(t, err)
	assert.False(t, ctrl.IsSaved("l1"))
	assert.False(t, ctrl.IsSaved("l2"))
	assert.Empty(t, ctrl.Error())
}

func TestController_ProductDetail(t *testing.T) {
	now := time.Now()

	t.Run("success: from the feed", func(t *testing.T) {
		ctrl, remote := signedIn(t)
		withFeed(t, ctrl, remote, newListing("l1", "owner", 700, now))
		withSaved(t, ctrl, remote, "l1")

		p, err := ctrl.ProductDetail(context.Background(), "l1")
		require.NoError(t, err)
		assert.True(t, p.Saved)
		remote.AssertNotCalled(t, "GetListing", mock.Anything, mock.Anything)
	})

	t.Run("success: from the remote", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		l := newListing("l5", "owner", 1200, now)
		remote.On("GetListing", mock.Anything, "l5").Return(&l, nil).Once()

		p, err := ctrl.ProductDetail(context.Background(), "l5")
		require.NoError(t, err)
		assert.Equal(t, "l5", p.ID)
	})

	t.Run("error: missing listing goes home", func(t *testing.T) {
		nav := &navRecorder{}
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote, client.WithNavigator(nav))
		remote.On("GetListing", mock.Anything, "gone").Return(nil, errors.New("data not found")).Once()

		p, err := ctrl.ProductDetail(context.Background(), "gone")
		assert.Nil(t, p)
		assert.True(t, cerr.Is(err, constant.ErrNotFound))
		assert.Equal(t, []string{"/"}, nav.Paths())
		assert.Empty(t, ctrl.Error())
	})
}

func TestController_StartFollowsSessionChanges(t *testing.T) {
	remote := clientmocks.NewRemote(t)
	ctrl := client.NewController(remote)
	session := &model.Session{AccessToken: "t", User: model.User{ID: testUserID}}

	var listener client.AuthListener
	unsubscribed := false
	remote.On("GetSession", mock.Anything).Return(session, nil).Once()
	remote.On("GetProfile", mock.Anything, testUserID).Return(&model.Profile{ID: testUserID, FullName: "Amina Warsame"}, nil).Twice()
	remote.On("ListWishlist", mock.Anything, testUserID).Return([]string{"l1"}, nil).Twice()
	remote.On("OnAuthStateChange", mock.Anything).
		Run(func(args mock.Arguments) { listener = args.Get(0).(client.AuthListener) }).
		Return(func() { unsubscribed = true }).
		Once()
	remote.On("ListVisibleListings", mock.Anything).Return([]model.Listing{newListing("l1", "owner", 700, time.Now())}, nil).Once()

	require.NoError(t, ctrl.Start(context.Background()))
	assert.Equal(t, "Amina Warsame", ctrl.ProfileName())
	assert.Len(t, ctrl.SavedProducts(), 1)
	require.NotNil(t, listener)

	listener(context.Background(), client.AuthSignedOut, nil)
	assert.Nil(t, ctrl.Session())
	assert.Empty(t, ctrl.ProfileName())
	assert.Empty(t, ctrl.SavedProducts())

	listener(context.Background(), client.AuthSignedIn, session)
	assert.Equal(t, testUserID, ctrl.Session().User.ID)
	assert.Equal(t, "Amina Warsame", ctrl.ProfileName())
	assert.True(t, ctrl.IsSaved("l1"))

	ctrl.Close()
	assert.True(t, unsubscribed)
}

func TestController_Auth(t *testing.T) {
	t.Run("error: sign in failure goes to the auth slot", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		remote.On("SignInWithPassword", mock.Anything, testEmail, "wrong").Return(nil, errors.New("invalid password")).Once()

		err := ctrl.SignIn(context.Background(), testEmail, "wrong")
		require.Error(t, err)
		assert.Equal(t, "invalid password", ctrl.AuthError())
		assert.Empty(t, ctrl.Error())
		assert.Nil(t, ctrl.Session())
	})

	t.Run("success: sign up", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		remote.On("SignUp", mock.Anything, testEmail, "secret1", "Amina").
			Return(&model.Session{User: model.User{ID: testUserID}}, nil).Once()

		require.NoError(t, ctrl.SignUp(context.Background(), testEmail, "secret1", "Amina"))
		assert.Equal(t, testUserID, ctrl.Session().User.ID)
	})

	t.Run("success: google returns the provider url", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		remote.On("SignInWithOAuth", mock.Anything, "google", "http://localhost:5173").
			Return("https://accounts.google.com/o/oauth2/v2/auth?client_id=x", nil).Once()

		url, err := ctrl.SignInWithGoogle(context.Background(), "http://localhost:5173")
		require.NoError(t, err)
		assert.Contains(t, url, "accounts.google.com")
	})

	t.Run("success: google redirect opens the session", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		redirect := "http://localhost:5173/#access_token=jwt&expires_at=2030-01-01T00%3A00%3A00Z"
		remote.On("CompleteOAuth", mock.Anything, redirect).
			Return(&model.Session{AccessToken: "jwt", User: model.User{ID: testUserID}}, nil).Once()

		require.NoError(t, ctrl.FinishGoogleSignIn(context.Background(), redirect))
		assert.Equal(t, testUserID, ctrl.Session().User.ID)
		assert.Empty(t, ctrl.AuthError())
	})

	t.Run("error: google redirect without a token", func(t *testing.T) {
		remote := clientmocks.NewRemote(t)
		ctrl := client.NewController(remote)
		remote.On("CompleteOAuth", mock.Anything, "http://localhost:5173/").
			Return(nil, errors.New("redirect carries no access token")).Once()

		err := ctrl.FinishGoogleSignIn(context.Background(), "http://localhost:5173/")
		require.Error(t, err)
		assert.True(t, cerr.Is(err, constant.ErrRemoteRequestFailed))
		assert.Nil(t, ctrl.Session())
		assert.Equal(t, "redirect carries no access token", ctrl.AuthError())
	})

	t.Run("success: sign out clears local state even on failure", func(t *testing.T) {
		ctrl, remote := signedIn(t)
		withSaved(t, ctrl, remote, "l1")
		remote.On("SignOut", mock.Anything).Return(errors.New("offline")).Once()

		require.Error(t, ctrl.SignOut(context.Background()))
		assert.Nil(t, ctrl.Session())
		assert.False(t, ctrl.IsSaved("l1"))
	})

	t.Run("update profile", func(t *testing.T) {
		ctrl, remote := signedIn(t)
		remote.On("UpdateProfile", mock.Anything, testUserID, "Amina W.").Return(nil).Once()
		remote.On("UpdateProfile", mock.Anything, testUserID, "").Return(errors.New("full name required")).Once()

		require.NoError(t, ctrl.UpdateProfile(context.Background(), "Amina W."))
		assert.Equal(t, "Amina W.", ctrl.ProfileName())

		require.Error(t, ctrl.UpdateProfile(context.Background(), ""))
		assert.Equal(t, "Amina W.", ctrl.ProfileName())
		assert.Equal(t, "full name required", ctrl.AuthError())
	})
}
