package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) access.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

func (r *roleRepositoryImpl) Create(ctx context.Context, role access.Role) (access.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (id, organization_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	role.ID = newUUID()
	err := q.QueryRow(ctx, query,
		role.ID, role.OrganizationID, role.Name, role.Description,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return access.Role{}, access.ErrRoleNameExists
		}
		return access.Role{}, fmt.Errorf("failed to insert role: %w", err)
	}
	return role, nil
}

func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (access.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, description, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var role access.Role
	err := q.QueryRow(ctx, query, id).Scan(
		&role.ID, &role.OrganizationID, &role.Name, &role.Description,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return access.Role{}, access.ErrRoleNotFound
		}
		return access.Role{}, err
	}

	permissions, err := r.GetPermissions(ctx, role.ID)
	if err != nil {
		return access.Role{}, err
	}
	role.Permissions = permissions

	return role, nil
}

func (r *roleRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string) ([]access.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, description, created_at, updated_at
		FROM roles
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []access.Role
	for rows.Next() {
		var role access.Role
		err := rows.Scan(
			&role.ID, &role.OrganizationID, &role.Name, &role.Description,
			&role.CreatedAt, &role.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return roles, nil
}

func (r *roleRepositoryImpl) Update(ctx context.Context, req access.UpdateRoleRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for role update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	sql := "UPDATE roles SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return access.ErrRoleNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return access.ErrRoleNameExists
		}
		return fmt.Errorf("failed to update role with id %s: %w", req.ID, err)
	}
	return nil
}

func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return access.ErrRoleNotFound
	}
	return nil
}

func (r *roleRepositoryImpl) GetPermissions(ctx context.Context, roleID string) ([]access.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.tag, p.action, p.name, p.description, p.created_at, p.updated_at
		FROM role_permissions rp
		JOIN permissions p ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.tag ASC, p.action ASC
	`

	rows, err := q.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role permissions: %w", err)
	}
	defer rows.Close()

	var permissions []access.Permission
	for rows.Next() {
		var p access.Permission
		if err := rows.Scan(&p.ID, &p.Tag, &p.Action, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return permissions, nil
}

func (r *roleRepositoryImpl) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}

	insert := `
		INSERT INTO role_permissions (role_id, permission_id, created_at)
		VALUES ($1, $2, NOW())
	`
	for _, permissionID := range permissionIDs {
		if _, err := q.Exec(ctx, insert, roleID, permissionID); err != nil {
			return fmt.Errorf("failed to insert role permission: %w", err)
		}
	}
	return nil
}
