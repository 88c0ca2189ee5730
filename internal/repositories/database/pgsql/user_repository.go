package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_backoffice_app/internal/models"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const FULL_USER_SELECT_QUERY = `
SELECT u.id, u.user_name, u.first_name, u.last_name, u.email, u.phone_number, u.password_hash,
	u.created_at, u.refresh_token_hash, u.refresh_token_expiry_time,
	ARRAY(
		SELECT ro.name FROM user_roles ur JOIN roles ro ON ro.id = ur.role_id
		WHERE ur.user_id = u.id ORDER BY ro.name
	) AS roles
FROM users u
`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// getUser private func to get one user from the select query filters
func (r *PgxUserRepository) getUser(ctx context.Context, filterQuery string, args ...any) (*domain.User, error) {
	var m models.User
	var roles []string
	err := r.Pool.QueryRow(ctx, FULL_USER_SELECT_QUERY+filterQuery, args...).Scan(
		&m.ID, &m.UserName, &m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber, &m.PasswordHash,
		&m.CreatedAt, &m.RefreshTokenHash, &m.RefreshTokenExpiryTime, &roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return mapping.ToDomainUser(m, roles), nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.getUser(ctx, "WHERE u.id = $1", userID)
}

func (r *PgxUserRepository) FindUserByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.getUser(ctx, "WHERE u.user_name = $1", userName)
}

func (r *PgxUserRepository) RoleExists(ctx context.Context, role domain.Role) (bool, error) {
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, string(role)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role %s: %w", role, err)
	}
	return exists, nil
}

// SaveUser inserts the user and its role grants in one transaction.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	m := mapping.ToModelUser(user)
	err = tx.QueryRow(ctx, `
		INSERT INTO users (user_name, first_name, last_name, email, phone_number, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`, m.UserName, m.FirstName, m.LastName, m.Email, m.PhoneNumber, m.PasswordHash, m.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: Username '%s' is already taken", apperrors.ErrDuplicate, user.UserName)
		}
		return fmt.Errorf("failed to insert user %s: %w", user.UserName, err)
	}

	if err := insertUserRoles(ctx, tx, user.ID, user.Roles); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceUserRoles swaps all role grants of a user atomically.
func (r *PgxUserRepository) ReplaceUserRoles(ctx context.Context, userID int64, roles []domain.Role) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear roles of user %d: %w", userID, err)
	}
	if err := insertUserRoles(ctx, tx, userID, roles); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertUserRoles(ctx context.Context, tx pgx.Tx, userID int64, roles []domain.Role) error {
	batch := &pgx.Batch{}
	for _, role := range roles {
		batch.Queue(`
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
			ON CONFLICT DO NOTHING;
		`, userID, string(role))
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for _, role := range roles {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to grant role %s to user %d: %w", role, userID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close role grant batch: %w", err)
	}
	return batchErr
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshTokenHash string, expiry time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users SET refresh_token_hash = $1, refresh_token_expiry_time = $2
		WHERE id = $3;
	`, refreshTokenHash, expiry, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
