package wishlist

import (
	"context"

	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	listingrepo "github.com/muhammadheryan/mogadishu-rentals/repository/listing"
	wishlistrepo "github.com/muhammadheryan/mogadishu-rentals/repository/wishlist"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"go.uber.org/zap"
)

type WishlistApp interface {
	List(ctx context.Context, userID string) (*model.WishlistResponse, error)
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
}

type wishlistAppImpl struct {
	wishlistRepo wishlistrepo.WishlistRepository
	listingRepo  listingrepo.ListingRepository
}

func NewWishlistApp(wishlistRepo wishlistrepo.WishlistRepository, listingRepo listingrepo.ListingRepository) WishlistApp {
	return &wishlistAppImpl{
		wishlistRepo: wishlistRepo,
		listingRepo:  listingRepo,
	}
}

func (s *wishlistAppImpl) List(ctx context.Context, userID string) (*model.WishlistResponse, error) {
	ids, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[List] err wishlistRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return &model.WishlistResponse{ListingIDs: ids}, nil
}

// Add is idempotent: saving an already saved listing keeps the single row.
// Only visible listings can be saved.
func (s *wishlistAppImpl) Add(ctx context.Context, userID, listingID string) error {
	listing, err := s.listingRepo.Get(ctx, &model.ListingFilter{ID: listingID, OnlyVisible: true})
	if err != nil {
		logger.Error("[Add] err listingRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if listing == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.wishlistRepo.Upsert(ctx, userID, listingID); err != nil {
		logger.Error("[Add] err wishlistRepo.Upsert", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// Remove succeeds whether or not the membership existed.
func (s *wishlistAppImpl) Remove(ctx context.Context, userID, listingID string) error {
	if _, err := s.wishlistRepo.Delete(ctx, userID, listingID); err != nil {
		logger.Error("[Remove] err wishlistRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
