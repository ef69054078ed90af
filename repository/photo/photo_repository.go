package photo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mogadishu-rentals/model"
)

type SQL struct {
	conn *sqlx.DB
}

type PhotoRepository interface {
	ListByListingIDs(ctx context.Context, listingIDs []string) (map[string][]model.ListingPhoto, error)
	ClearPrimaryTx(ctx context.Context, tx *sqlx.Tx, listingID string) error
	NextPositionTx(ctx context.Context, tx *sqlx.Tx, listingID string) (int, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, photos []model.ListingPhoto) error
}

func NewPhotoRepository(conn *sqlx.DB) PhotoRepository {
	return &SQL{conn: conn}
}

const (
	listPhotosQuery   = `SELECT id, listing_id, photo_url, is_primary, position FROM listing_photos WHERE listing_id IN (?) ORDER BY is_primary DESC, position ASC, id ASC`
	clearPrimaryQuery = `UPDATE listing_photos SET is_primary = false WHERE listing_id = ?`
	nextPositionQuery = `SELECT MAX(position) FROM listing_photos WHERE listing_id = ? FOR UPDATE`
	insertPhotoQuery  = `INSERT INTO listing_photos (listing_id, photo_url, is_primary, position) VALUES (?, ?, ?, ?)`
)

// ListByListingIDs groups photos by listing, primary first then upload order.
func (s *SQL) ListByListingIDs(ctx context.Context, listingIDs []string) (map[string][]model.ListingPhoto, error) {
	res := make(map[string][]model.ListingPhoto, len(listingIDs))
	if len(listingIDs) == 0 {
		return res, nil
	}

	query, args, err := sqlx.In(listPhotosQuery, listingIDs)
	if err != nil {
		return nil, err
	}
	query = s.conn.Rebind(query)

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.ListingPhoto
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		res[p.ListingID] = append(res[p.ListingID], p)
	}
	return res, rows.Err()
}

func (s *SQL) ClearPrimaryTx(ctx context.Context, tx *sqlx.Tx, listingID string) error {
	_, err := tx.ExecContext(ctx, clearPrimaryQuery, listingID)
	return err
}

// NextPositionTx locks the listing's photo rows and returns the next free position.
func (s *SQL) NextPositionTx(ctx context.Context, tx *sqlx.Tx, listingID string) (int, error) {
	var maxPos sql.NullInt64
	if err := tx.GetContext(ctx, &maxPos, nextPositionQuery, listingID); err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, photos []model.ListingPhoto) error {
	for _, p := range photos {
		if _, err := tx.ExecContext(ctx, insertPhotoQuery, p.ListingID, p.PhotoURL, p.IsPrimary, p.Position); err != nil {
			return err
		}
	}
	return nil
}
