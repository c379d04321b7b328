// Package projects stores projects and their member assignments.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/verischol/internal/common"
	"github.com/dmitrijs2005/verischol/internal/dbx"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	query :=
		`INSERT INTO projects (name, description, created_by)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.CreatedBy).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT id, name, description, created_by, created_at FROM projects WHERE id = $1`

	p := &models.Project{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	return r.list(ctx, `SELECT id, name, description, created_by, created_at FROM projects ORDER BY created_at`)
}

func (r *PostgresRepository) ListForPrincipal(ctx context.Context, principalID string) ([]*models.Project, error) {
	query := `
		SELECT p.id, p.name, p.description, p.created_by, p.created_at
		FROM projects p
		JOIN project_assignments a ON a.project_id = p.id
		WHERE a.principal_id = $1
		ORDER BY p.created_at`
	return r.list(ctx, query, principalID)
}

func (r *PostgresRepository) Assign(ctx context.Context, projectID, principalID string, role access.Role) error {
	query := `
		INSERT INTO project_assignments (project_id, principal_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, principal_id) DO UPDATE SET role = EXCLUDED.role`

	if _, err := r.db.ExecContext(ctx, query, projectID, principalID, role.String()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Assignment(ctx context.Context, projectID, principalID string) (*models.ProjectAssignment, error) {
	query := `
		SELECT project_id, principal_id, role, created_at
		FROM project_assignments
		WHERE project_id = $1 AND principal_id = $2`

	a := &models.ProjectAssignment{}
	var role string
	if err := r.db.QueryRowContext(ctx, query, projectID, principalID).Scan(&a.ProjectID, &a.PrincipalID, &role, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	parsed, err := access.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.Role = parsed
	return a, nil
}

func (r *PostgresRepository) ClearMismatchedAssignments(ctx context.Context, principalID string, role access.Role) (int64, error) {
	query := `DELETE FROM project_assignments WHERE principal_id = $1 AND role <> $2`

	res, err := r.db.ExecContext(ctx, query, principalID, role.String())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) VerifierOf(ctx context.Context, projectID string) (string, error) {
	query := `
		SELECT principal_id
		FROM project_assignments
		WHERE project_id = $1 AND role = 'verifier'
		ORDER BY created_at
		LIMIT 1`

	var id string
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
