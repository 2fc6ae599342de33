package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, organization_id, role_id, email, password_hash, full_name,
			is_super_admin, oauth_provider, oauth_provider_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	u.ID = newUUID()
	err := q.QueryRow(ctx, query,
		u.ID, u.OrganizationID, u.RoleID, u.Email, u.PasswordHash, u.FullName,
		u.IsSuperAdmin, u.OAuthProvider, u.OAuthProviderID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "u.email = $1", email)
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.organization_id, u.role_id, u.email, u.password_hash, u.full_name,
			   u.is_super_admin, u.oauth_provider, u.oauth_provider_id,
			   u.created_at, u.updated_at,
			   r.name as role_name
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE ` + where

	var u user.User
	err := q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.OrganizationID, &u.RoleID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.IsSuperAdmin, &u.OAuthProvider, &u.OAuthProviderID,
		&u.CreatedAt, &u.UpdatedAt,
		&u.RoleName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.organization_id, u.role_id, u.email, u.password_hash, u.full_name,
			   u.is_super_admin, u.oauth_provider, u.oauth_provider_id,
			   u.created_at, u.updated_at,
			   r.name as role_name
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by ids: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *userRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.organization_id, u.role_id, u.email, u.password_hash, u.full_name,
			   u.is_super_admin, u.oauth_provider, u.oauth_provider_id,
			   u.created_at, u.updated_at,
			   r.name as role_name
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.organization_id = $1
		ORDER BY u.full_name ASC
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *userRepositoryImpl) Update(ctx context.Context, fields user.UpdateUserFields) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if fields.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *fields.FullName)
		argIdx++
	}
	if fields.RoleID != nil {
		updates = append(updates, fmt.Sprintf("role_id = $%d", argIdx))
		args = append(args, *fields.RoleID)
		argIdx++
	}
	if fields.PasswordHash != nil {
		updates = append(updates, fmt.Sprintf("password_hash = $%d", argIdx))
		args = append(args, *fields.PasswordHash)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for user update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, fields.ID)

	sql := "UPDATE users SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user with id %s: %w", fields.ID, err)
	}
	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]user.User, error) {
	var users []user.User
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID, &u.OrganizationID, &u.RoleID, &u.Email, &u.PasswordHash, &u.FullName,
			&u.IsSuperAdmin, &u.OAuthProvider, &u.OAuthProviderID,
			&u.CreatedAt, &u.UpdatedAt,
			&u.RoleName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}
