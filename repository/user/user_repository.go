package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/mogadishu-rentals/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	UpdateFullName(ctx context.Context, id, fullName string) (int64, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery     = `INSERT INTO user (id, email, full_name, password_hash, created_at) VALUES (?, ?, ?, ?, NOW())`
	getUserBase         = `SELECT id, email, full_name, password_hash, created_at, updated_at FROM user WHERE true`
	updateFullNameQuery = `UPDATE user SET full_name = ?, updated_at = NOW() WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	if _, err := s.conn.ExecContext(ctx, insertUserQuery, data.ID, data.Email, data.FullName, data.PasswordHash); err != nil {
		return nil, err
	}
	return data, nil
}

// Get returns nil, nil when no user matches.
func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// UpdateFullName reports matched rows (the DSN sets clientFoundRows).
func (s *SQL) UpdateFullName(ctx context.Context, id, fullName string) (int64, error) {
	res, err := s.conn.ExecContext(ctx, updateFullNameQuery, fullName, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
