package repo

import (
	"context"

	dom "fieldmate/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ClientRepo interface {
	Create(ctx context.Context, c dom.Client) (dom.Client, error)
	GetByID(ctx context.Context, id int64) (dom.Client, error)
	List(ctx context.Context, companyID int64, q dom.ClientQuery) ([]dom.Client, error)
	Update(ctx context.Context, c dom.Client) (dom.Client, error)
	SoftDelete(ctx context.Context, companyID, id int64) error
}

const clientColumns = `id, company_id, name, phone, sr_name, sr_phone, sr_department, created_at, updated_at, deleted_at`

type PGClientRepo struct {
	db DB
}

func NewPGClientRepo(db DB) *PGClientRepo {
	return &PGClientRepo{db: db}
}

func scanClient(row pgx.Row) (dom.Client, error) {
	var c dom.Client
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Phone,
		&c.SalesRep.Name, &c.SalesRep.Phone, &c.SalesRep.Department,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	return c, err
}

func (r *PGClientRepo) Create(ctx context.Context, c dom.Client) (dom.Client, error) {
	query := `
		INSERT INTO clients (company_id, name, phone, sr_name, sr_phone, sr_department)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + clientColumns
	return scanClient(r.db.QueryRow(ctx, query, c.CompanyID, c.Name, c.Phone,
		c.SalesRep.Name, c.SalesRep.Phone, c.SalesRep.Department))
}

func (r *PGClientRepo) GetByID(ctx context.Context, id int64) (dom.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND deleted_at IS NULL`
	return scanClient(r.db.QueryRow(ctx, query, id))
}

func (r *PGClientRepo) List(ctx context.Context, companyID int64, q dom.ClientQuery) ([]dom.Client, error) {
	order := "created_at DESC, id DESC"
	if q.Sort == dom.ClientSortName {
		order = "name ASC, id ASC"
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE company_id = $1 AND deleted_at IS NULL AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY ` + order
	rows, err := r.db.Query(ctx, query, companyID, q.Name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanClient)
}

func (r *PGClientRepo) Update(ctx context.Context, c dom.Client) (dom.Client, error) {
	query := `
		UPDATE clients
		SET name = $3, phone = $4, sr_name = $5, sr_phone = $6, sr_department = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING ` + clientColumns
	return scanClient(r.db.QueryRow(ctx, query, c.ID, c.CompanyID, c.Name, c.Phone,
		c.SalesRep.Name, c.SalesRep.Phone, c.SalesRep.Department))
}

func (r *PGClientRepo) SoftDelete(ctx context.Context, companyID, id int64) error {
	return affectedOrNoRows(r.db.Exec(ctx,
		`UPDATE clients SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`,
		id, companyID))
}
