package listing

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mogadishu-rentals/cmd/config"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	listingrepo "github.com/muhammadheryan/mogadishu-rentals/repository/listing"
	photorepo "github.com/muhammadheryan/mogadishu-rentals/repository/photo"
	redisrepo "github.com/muhammadheryan/mogadishu-rentals/repository/redis"
	txrepo "github.com/muhammadheryan/mogadishu-rentals/repository/tx"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/rabbitmq"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/storage"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"go.uber.org/zap"
)

const (
	feedCacheKey = "listing:feed"
	// bumped on every mutation; the feed cache is only written back while it is unchanged
	feedVersionKey = "listing:feed:ver"
)

type ListingApp interface {
	ListVisible(ctx context.Context) ([]model.Listing, error)
	Get(ctx context.Context, id, viewerID string) (*model.Listing, error)
	ListByOwner(ctx context.Context, userID string) ([]model.Listing, error)
	Create(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error)
	SoftDelete(ctx context.Context, id, userID string) error
	SetVisibility(ctx context.Context, id, userID string, visible bool) error
	AddPhotos(ctx context.Context, listingID, userID string, req *model.AddPhotosRequest) ([]model.ListingPhoto, error)
	UploadPhoto(ctx context.Context, userID string, req *UploadPhotoInput) (*model.UploadPhotoResponse, error)
	RefreshFeed(ctx context.Context) error
}

type UploadPhotoInput struct {
	Path        string
	ContentType string
	Size        int64
	Data        io.Reader
}

type listingAppImpl struct {
	config      *config.Config
	listingRepo listingrepo.ListingRepository
	photoRepo   photorepo.PhotoRepository
	txRepo      txrepo.TxRepository
	redisRepo   redisrepo.Repository
	storage     storage.ObjectStorage
	publisher   rabbitmq.Publisher
	now         func() time.Time
}

// NewListingApp wires the listing use cases. publisher may be nil when
// messaging is disabled.
func NewListingApp(
	config *config.Config,
	listingRepo listingrepo.ListingRepository,
	photoRepo photorepo.PhotoRepository,
	txRepo txrepo.TxRepository,
	redisRepo redisrepo.Repository,
	store storage.ObjectStorage,
	publisher rabbitmq.Publisher,
) ListingApp {
	return &listingAppImpl{
		config:      config,
		listingRepo: listingRepo,
		photoRepo:   photoRepo,
		txRepo:      txRepo,
		redisRepo:   redisRepo,
		storage:     store,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *listingAppImpl) ListVisible(ctx context.Context) ([]model.Listing, error) {
	if cached, err := s.redisRepo.Get(ctx, feedCacheKey); err == nil {
		var items []model.Listing
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
		logger.Warn("[ListVisible] dropping unreadable feed cache")
	} else if err != redisrepo.ErrKeyNotFound {
		logger.Warn("[ListVisible] err redisRepo.Get", zap.String("error", err.Error()))
	}

	version, verErr := s.redisRepo.Get(ctx, feedVersionKey)
	if verErr == redisrepo.ErrKeyNotFound {
		version, verErr = "", nil
	} else if verErr != nil {
		logger.Warn("[ListVisible] err redisRepo.Get version", zap.String("error", verErr.Error()))
	}

	entities, err := s.listingRepo.ListVisible(ctx)
	if err != nil {
		logger.Error("[ListVisible] err listingRepo.ListVisible", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.withPhotos(ctx, entities)
	if err != nil {
		logger.Error("[ListVisible] err photoRepo.ListByListingIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if verErr != nil {
		return items, nil
	}
	if raw, err := json.Marshal(items); err == nil {
		stored, err := s.redisRepo.SetIfUnchanged(ctx, feedCacheKey, string(raw), s.config.Listing.FeedCacheTTL, feedVersionKey, version)
		if err != nil {
			logger.Warn("[ListVisible] err redisRepo.SetIfUnchanged", zap.String("error", err.Error()))
		} else if !stored {
			logger.Info("[ListVisible] feed changed while loading, not cached")
		}
	}

	return items, nil
}

// Get hides drafts from everyone but their owner; deleted listings are never returned.
func (s *listingAppImpl) Get(ctx context.Context, id, viewerID string) (*model.Listing, error) {
	entity, err := s.listingRepo.Get(ctx, &model.ListingFilter{ID: id})
	if err != nil {
		logger.Error("[Get] err listingRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil || (!entity.IsVisible && entity.UserID != viewerID) {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	items, err := s.withPhotos(ctx, []model.ListingEntity{*entity})
	if err != nil {
		logger.Error("[Get] err photoRepo.ListByListingIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return &items[0], nil
}

func (s *listingAppImpl) ListByOwner(ctx context.Context, userID string) ([]model.Listing, error) {
	entities, err := s.listingRepo.ListByOwner(ctx, userID)
	if err != nil {
		logger.Error("[ListByOwner] err listingRepo.ListByOwner", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.withPhotos(ctx, entities)
	if err != nil {
		logger.Error("[ListByOwner] err photoRepo.ListByListingIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *listingAppImpl) Create(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error) {
	if req.UserID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthenticated)
	}

	entity := &model.ListingEntity{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		Title:        strings.TrimSpace(req.Title),
		Price:        req.Price,
		Address:      firstNonEmpty(req.Address, constant.DefaultCity),
		City:         firstNonEmpty(req.City, constant.DefaultCity),
		State:        req.State,
		PropertyType: firstNonEmpty(req.PropertyType, constant.DefaultCategory),
		Description:  firstNonEmpty(req.Description, constant.DefaultDescription),
		Bedrooms:     intOr(req.Bedrooms, constant.DefaultBedrooms),
		Bathrooms:    intOr(req.Bathrooms, constant.DefaultBathrooms),
		AreaSqft:     req.AreaSqft,
		IsVisible:    req.IsVisible == nil || *req.IsVisible,
		IsDeleted:    false,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.listingRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[Create] err listingRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.listingChanged(ctx, constant.ListingEventCreated, created.ID, created.UserID)

	return &model.Listing{ListingEntity: *created, Photos: []model.ListingPhoto{}}, nil
}

func (s *listingAppImpl) SoftDelete(ctx context.Context, id, userID string) error {
	affected, err := s.listingRepo.SoftDelete(ctx, id, userID)
	if err != nil {
		logger.Error("[SoftDelete] err listingRepo.SoftDelete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if affected == 0 {
		return s.ownershipError(ctx, "[SoftDelete]", id)
	}

	s.listingChanged(ctx, constant.ListingEventDeleted, id, userID)
	return nil
}

// SetVisibility moves a listing between draft and visible. Deleted listings
// stay deleted.
func (s *listingAppImpl) SetVisibility(ctx context.Context, id, userID string, visible bool) error {
	affected, err := s.listingRepo.UpdateVisibility(ctx, id, userID, visible)
	if err != nil {
		logger.Error("[SetVisibility] err listingRepo.UpdateVisibility", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if affected == 0 {
		return s.ownershipError(ctx, "[SetVisibility]", id)
	}

	s.listingChanged(ctx, constant.ListingEventUpdated, id, userID)
	return nil
}

// AddPhotos appends photos in one transaction so a listing never ends up
// with part of a batch. At most one photo of the batch is primary; when the
// listing has no photos yet and none is flagged, the first one becomes primary.
func (s *listingAppImpl) AddPhotos(ctx context.Context, listingID, userID string, req *model.AddPhotosRequest) ([]model.ListingPhoto, error) {
	if len(req.Photos) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	owned, err := s.listingRepo.Get(ctx, &model.ListingFilter{ID: listingID, UserID: userID})
	if err != nil {
		logger.Error("[AddPhotos] err listingRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if owned == nil {
		return nil, s.ownershipError(ctx, "[AddPhotos]", listingID)
	}

	primaryIdx := -1
	for i, p := range req.Photos {
		if p.IsPrimary {
			primaryIdx = i
			break
		}
	}

	var photos []model.ListingPhoto
	err = txrepo.Run(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		next, err := s.photoRepo.NextPositionTx(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if primaryIdx < 0 && next == 0 {
			primaryIdx = 0
		}
		if primaryIdx >= 0 && next > 0 {
			if err := s.photoRepo.ClearPrimaryTx(ctx, tx, listingID); err != nil {
				return err
			}
		}

		photos = make([]model.ListingPhoto, 0, len(req.Photos))
		for i, p := range req.Photos {
			photos = append(photos, model.ListingPhoto{
				ListingID: listingID,
				PhotoURL:  p.PhotoURL,
				IsPrimary: i == primaryIdx,
				Position:  next + i,
			})
		}
		return s.photoRepo.InsertTx(ctx, tx, photos)
	})
	if err != nil {
		logger.Error("[AddPhotos] err insert photos", zap.String("listing_id", listingID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.listingChanged(ctx, constant.ListingEventUpdated, listingID, userID)
	return photos, nil
}

// UploadPhoto stores a file under the caller's own namespace and returns its
// public URL. Existing objects are never overwritten.
func (s *listingAppImpl) UploadPhoto(ctx context.Context, userID string, req *UploadPhotoInput) (*model.UploadPhotoResponse, error) {
	if !validPhotoPath(userID, req.Path) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if limit := s.config.Storage.MaxPhotoBytes; limit > 0 && req.Size > limit {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	err := s.storage.Upload(ctx, &storage.UploadInput{
		Bucket:       constant.PhotoBucket,
		Key:          req.Path,
		ContentType:  req.ContentType,
		Size:         req.Size,
		CacheSeconds: constant.PhotoCacheSeconds,
		Data:         req.Data,
	})
	if err == storage.ErrObjectExists {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err != nil {
		logger.Error("[UploadPhoto] err storage.Upload", zap.String("path", req.Path), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.UploadPhotoResponse{
		Path:      req.Path,
		PublicURL: s.storage.PublicURL(constant.PhotoBucket, req.Path),
	}, nil
}

// RefreshFeed drops the cached feed and rebuilds it from the database.
func (s *listingAppImpl) RefreshFeed(ctx context.Context) error {
	if err := s.redisRepo.Delete(ctx, feedCacheKey); err != nil {
		logger.Error("[RefreshFeed] err redisRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	_, err := s.ListVisible(ctx)
	return err
}

func (s *listingAppImpl) withPhotos(ctx context.Context, entities []model.ListingEntity) ([]model.Listing, error) {
	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}

	photos, err := s.photoRepo.ListByListingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]model.Listing, 0, len(entities))
	for _, e := range entities {
		p := photos[e.ID]
		if p == nil {
			p = []model.ListingPhoto{}
		}
		items = append(items, model.Listing{ListingEntity: e, Photos: p})
	}
	return items, nil
}

// ownershipError tells a missing listing apart from one owned by someone else.
func (s *listingAppImpl) ownershipError(ctx context.Context, method, id string) error {
	existing, err := s.listingRepo.Get(ctx, &model.ListingFilter{ID: id})
	if err != nil {
		logger.Error(method+" err listingRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return errors.SetCustomError(constant.ErrForbidden)
}

func (s *listingAppImpl) listingChanged(ctx context.Context, eventType constant.ListingEventType, listingID, ownerID string) {
	if _, err := s.redisRepo.Incr(ctx, feedVersionKey); err != nil {
		logger.Warn("[listingChanged] err redisRepo.Incr", zap.String("error", err.Error()))
	}
	if err := s.redisRepo.Delete(ctx, feedCacheKey); err != nil {
		logger.Warn("[listingChanged] err redisRepo.Delete", zap.String("error", err.Error()))
	}

	if s.publisher == nil {
		return
	}
	msg := rabbitmq.ListingEventMessage{
		Type:       eventType,
		ListingID:  listingID,
		OwnerID:    ownerID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishListingEvent(ctx, msg); err != nil {
		logger.Error("[listingChanged] publish listing event", zap.String("listing_id", listingID), zap.String("error", err.Error()))
	}
}

func validPhotoPath(userID, path string) bool {
	if userID == "" || !strings.HasPrefix(path, userID+"/") {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
