package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) access.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

func (r *permissionRepositoryImpl) List(ctx context.Context, filter access.ListPermissionsFilter) ([]access.Permission, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `FROM permissions WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (name ILIKE $%d OR tag ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count permissions: %w", err)
	}

	selectQuery := `SELECT id, tag, action, name, description, created_at, updated_at ` + baseQuery

	orderBy := "tag"
	switch filter.SortBy {
	case "name":
		orderBy = "name"
	case "action":
		orderBy = "action"
	}
	if strings.ToLower(filter.SortOrder) == "desc" {
		orderBy += " DESC"
	} else {
		orderBy += " ASC"
	}
	selectQuery += " ORDER BY " + orderBy + ", action ASC"

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer rows.Close()

	var permissions []access.Permission
	for rows.Next() {
		var p access.Permission
		if err := rows.Scan(&p.ID, &p.Tag, &p.Action, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return permissions, total, nil
}

// ListAll fetches the whole catalogue. The catalogue is small and fixed, so
// resolvers read it without pagination.
func (r *permissionRepositoryImpl) ListAll(ctx context.Context) ([]access.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tag, action, name, description, created_at, updated_at
		FROM permissions
		ORDER BY tag ASC, action ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query permission catalogue: %w", err)
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

func (r *permissionRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]access.Permission, error) {
	if len(ids) == 0 {
		return []access.Permission{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tag, action, name, description, created_at, updated_at
		FROM permissions
		WHERE id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions by ids: %w", err)
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

func (r *permissionRepositoryImpl) EnsureCatalogue(ctx context.Context, permissions []access.Permission) error {
	q := GetQuerier(ctx, r.db)

	upsert := `
		INSERT INTO permissions (id, tag, action, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (tag, action) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, updated_at = NOW()
	`

	for _, p := range permissions {
		if _, err := q.Exec(ctx, upsert, newUUID(), p.Tag, p.Action, p.Name, p.Description); err != nil {
			return fmt.Errorf("failed to upsert permission %s:%s: %w", p.Tag, p.Action, err)
		}
	}
	return nil
}
