package listing

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mogadishu-rentals/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ListingRepository interface {
	ListVisible(ctx context.Context) ([]model.ListingEntity, error)
	ListByOwner(ctx context.Context, userID string) ([]model.ListingEntity, error)
	Get(ctx context.Context, filter *model.ListingFilter) (*model.ListingEntity, error)
	Create(ctx context.Context, data *model.ListingEntity) (*model.ListingEntity, error)
	SoftDelete(ctx context.Context, id, userID string) (int64, error)
	UpdateVisibility(ctx context.Context, id, userID string, visible bool) (int64, error)
}

func NewListingRepository(conn *sqlx.DB) ListingRepository {
	return &SQL{conn: conn}
}

const (
	listingColumns = `id, user_id, title, price, address, city, state, property_type, description, bedrooms, bathrooms, area_sqft, is_visible, is_deleted, created_at`

	listVisibleQuery = `SELECT ` + listingColumns + ` FROM listing WHERE is_visible = true AND is_deleted = false ORDER BY created_at DESC, id DESC`
	listByOwnerQuery = `SELECT ` + listingColumns + ` FROM listing WHERE user_id = ? AND is_deleted = false ORDER BY created_at DESC, id DESC`
	getListingBase   = `SELECT ` + listingColumns + ` FROM listing WHERE true`

	insertListingQuery = `INSERT INTO listing (id, user_id, title, price, address, city, state, property_type, description, bedrooms, bathrooms, area_sqft, is_visible, is_deleted, created_at)
VALUES (:id, :user_id, :title, :price, :address, :city, :state, :property_type, :description, :bedrooms, :bathrooms, :area_sqft, :is_visible, :is_deleted, :created_at)`

	softDeleteQuery       = `UPDATE listing SET is_visible = false, is_deleted = true WHERE id = ? AND user_id = ? AND is_deleted = false`
	updateVisibilityQuery = `UPDATE listing SET is_visible = ? WHERE id = ? AND user_id = ? AND is_deleted = false`
)

func (s *SQL) ListVisible(ctx context.Context) ([]model.ListingEntity, error) {
	items := make([]model.ListingEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, listVisibleQuery); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) ListByOwner(ctx context.Context, userID string) ([]model.ListingEntity, error) {
	items := make([]model.ListingEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, listByOwnerQuery, userID); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns nil, nil when nothing matches.
func (s *SQL) Get(ctx context.Context, filter *model.ListingFilter) (*model.ListingEntity, error) {
	query := getListingBase
	args := make([]any, 0, 2)

	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.OnlyVisible {
		query += " AND is_visible = true"
	}
	if !filter.IncludeDeleted {
		query += " AND is_deleted = false"
	}
	query += " LIMIT 1"

	var entity model.ListingEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Create(ctx context.Context, data *model.ListingEntity) (*model.ListingEntity, error) {
	if _, err := s.conn.NamedExecContext(ctx, insertListingQuery, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SoftDelete hides and flags the listing. Rows are never removed.
func (s *SQL) SoftDelete(ctx context.Context, id, userID string) (int64, error) {
	res, err := s.conn.ExecContext(ctx, softDeleteQuery, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQL) UpdateVisibility(ctx context.Context, id, userID string, visible bool) (int64, error) {
	res, err := s.conn.ExecContext(ctx, updateVisibilityQuery, visible, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
