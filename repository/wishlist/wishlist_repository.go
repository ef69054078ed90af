package wishlist

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]string, error)
	Upsert(ctx context.Context, userID, listingID string) error
	Delete(ctx context.Context, userID, listingID string) (int64, error)
}

func NewWishlistRepository(conn *sqlx.DB) WishlistRepository {
	return &SQL{conn: conn}
}

// The unique (user_id, listing_id) key turns a repeated save into a no-op.
const (
	listWishlistQuery   = `SELECT listing_id FROM wishlist WHERE user_id = ? ORDER BY created_at DESC`
	upsertWishlistQuery = `INSERT INTO wishlist (user_id, listing_id, created_at) VALUES (?, ?, NOW()) ON DUPLICATE KEY UPDATE listing_id = listing_id`
	deleteWishlistQuery = `DELETE FROM wishlist WHERE user_id = ? AND listing_id = ?`
)

func (s *SQL) ListByUser(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	if err := s.conn.SelectContext(ctx, &ids, listWishlistQuery, userID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *SQL) Upsert(ctx context.Context, userID, listingID string) error {
	_, err := s.conn.ExecContext(ctx, upsertWishlistQuery, userID, listingID)
	return err
}

func (s *SQL) Delete(ctx context.Context, userID, listingID string) (int64, error) {
	res, err := s.conn.ExecContext(ctx, deleteWishlistQuery, userID, listingID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
