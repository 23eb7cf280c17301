package repo

import (
	"context"

	dom "fieldmate/internal/domain"

	"github.com/jackc/pgx/v5"
)

type CategoryRepo interface {
	List(ctx context.Context, companyID int64) ([]dom.Category, error)
	GetByID(ctx context.Context, id int64) (dom.Category, error)
	Create(ctx context.Context, c dom.Category) (dom.Category, error)
	Update(ctx context.Context, c dom.Category) (dom.Category, error)
	// DeleteMany deletes the given categories of one company and returns how
	// many rows went away.
	DeleteMany(ctx context.Context, companyID int64, ids []int64) (int64, error)
}

const categoryColumns = `id, company_id, name, color, created_at`

type PGCategoryRepo struct {
	db DB
}

func NewPGCategoryRepo(db DB) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func scanCategory(row pgx.Row) (dom.Category, error) {
	var c dom.Category
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Color, &c.CreatedAt)
	return c, err
}

func (r *PGCategoryRepo) List(ctx context.Context, companyID int64) ([]dom.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM task_categories WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCategory)
}

func (r *PGCategoryRepo) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	return scanCategory(r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM task_categories WHERE id = $1`, id))
}

func (r *PGCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	return scanCategory(r.db.QueryRow(ctx,
		`INSERT INTO task_categories (company_id, name, color) VALUES ($1, $2, $3) RETURNING `+categoryColumns,
		c.CompanyID, c.Name, c.Color))
}

func (r *PGCategoryRepo) Update(ctx context.Context, c dom.Category) (dom.Category, error) {
	return scanCategory(r.db.QueryRow(ctx,
		`UPDATE task_categories SET name = $3, color = $4 WHERE id = $1 AND company_id = $2 RETURNING `+categoryColumns,
		c.ID, c.CompanyID, c.Name, c.Color))
}

func (r *PGCategoryRepo) DeleteMany(ctx context.Context, companyID int64, ids []int64) (int64, error) {
	var n int64
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM task_categories WHERE company_id = $1 AND id = ANY($2)`, companyID, ids)
		if err != nil {
			return err
		}
		n = tag.RowsAffected()
		return nil
	})
	return n, err
}
