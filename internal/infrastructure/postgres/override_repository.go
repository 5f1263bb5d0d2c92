package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/internal/domain/repository"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

var _ repository.OverrideRepository = (*OverrideRepo)(nil)

// OverrideRepo persistencia de company_module_overrides.
type OverrideRepo struct {
	pool *pgxpool.Pool
}

// NewOverrideRepository construye el adaptador.
func NewOverrideRepository(pool *pgxpool.Pool) *OverrideRepo {
	return &OverrideRepo{pool: pool}
}

// ListByCompany devuelve todos los overrides de la empresa, incluidos los vencidos:
// el filtro de vigencia lo aplica el Resolver.
func (r *OverrideRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.CompanyModuleOverride, error) {
	const query = `
		SELECT id, company_id, module_name, is_enabled, reason, expires_at, created_at, updated_at
		  FROM company_module_overrides
		 WHERE company_id = $1
		 ORDER BY module_name`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	var list []entity.CompanyModuleOverride
	for rows.Next() {
		var o entity.CompanyModuleOverride
		var name string
		if err := rows.Scan(&o.ID, &o.CompanyID, &name, &o.IsEnabled, &o.Reason, &o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		o.Module = modules.ModuleName(name)
		list = append(list, o)
	}
	return list, rows.Err()
}

// Upsert crea o reemplaza la fila (company_id, module_name). Conserva id y created_at
// de la fila existente y los devuelve en o.
func (r *OverrideRepo) Upsert(ctx context.Context, o *entity.CompanyModuleOverride) error {
	const query = `
		INSERT INTO company_module_overrides
		       (id, company_id, module_name, is_enabled, reason, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, module_name) DO UPDATE
		   SET is_enabled = EXCLUDED.is_enabled,
		       reason     = EXCLUDED.reason,
		       expires_at = EXCLUDED.expires_at,
		       updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		o.ID, o.CompanyID, string(o.Module), o.IsEnabled, o.Reason, o.ExpiresAt, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case codeForeignKeyViolation:
			// la empresa se borró entre la validación y el insert
			return fmt.Errorf("upsert override: empresa %s: %w", o.CompanyID, domain.ErrNotFound)
		case codeCheckViolation:
			return fmt.Errorf("upsert override: módulo %q: %w", o.Module, domain.ErrInvalidInput)
		}
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// Delete elimina el override; domain.ErrNotFound si no existía.
func (r *OverrideRepo) Delete(ctx context.Context, companyID string, module modules.ModuleName) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM company_module_overrides WHERE company_id = $1 AND module_name = $2`,
		companyID, string(module))
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
