package repo

import (
	"context"

	dom "fieldmate/internal/domain"

	"github.com/jackc/pgx/v5"
)

type BusinessRepo interface {
	Create(ctx context.Context, b dom.Business) (dom.Business, error)
	GetByID(ctx context.Context, id int64) (dom.Business, error)
	ListByClient(ctx context.Context, clientID int64) ([]dom.Business, error)
	Update(ctx context.Context, b dom.Business) (dom.Business, error)
	SoftDelete(ctx context.Context, id int64) error
	ReplaceMembers(ctx context.Context, businessID int64, memberIDs []int64) error
	Members(ctx context.Context, businessID int64) ([]dom.Member, error)
}

// company_id comes from the owning client.
const businessSelect = `
	SELECT b.id, b.client_id, c.company_id, b.name, b.description, b.revenue, b.start_date, b.end_date,
		COALESCE((SELECT array_agg(bm.member_id ORDER BY bm.member_id) FROM business_members bm WHERE bm.business_id = b.id), '{}'),
		b.created_at, b.updated_at, b.deleted_at
	FROM businesses b JOIN clients c ON c.id = b.client_id`

type PGBusinessRepo struct {
	db DB
}

func NewPGBusinessRepo(db DB) *PGBusinessRepo {
	return &PGBusinessRepo{db: db}
}

func scanBusiness(row pgx.Row) (dom.Business, error) {
	var b dom.Business
	err := row.Scan(&b.ID, &b.ClientID, &b.CompanyID, &b.Name, &b.Description, &b.Revenue,
		&b.StartDate, &b.EndDate, &b.MemberIDs, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt)
	return b, err
}

func (r *PGBusinessRepo) Create(ctx context.Context, b dom.Business) (dom.Business, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO businesses (client_id, name, description, revenue, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			b.ClientID, b.Name, b.Description, b.Revenue, b.StartDate, b.EndDate,
		).Scan(&id)
		if err != nil {
			return err
		}
		return insertBusinessMembers(ctx, tx, id, b.MemberIDs)
	})
	if err != nil {
		return dom.Business{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGBusinessRepo) GetByID(ctx context.Context, id int64) (dom.Business, error) {
	query := businessSelect + ` WHERE b.id = $1 AND b.deleted_at IS NULL AND c.deleted_at IS NULL`
	return scanBusiness(r.db.QueryRow(ctx, query, id))
}

func (r *PGBusinessRepo) ListByClient(ctx context.Context, clientID int64) ([]dom.Business, error) {
	query := businessSelect + `
		WHERE b.client_id = $1 AND b.deleted_at IS NULL AND c.deleted_at IS NULL
		ORDER BY b.start_date DESC, b.id DESC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBusiness)
}

func (r *PGBusinessRepo) Update(ctx context.Context, b dom.Business) (dom.Business, error) {
	err := affectedOrNoRows(r.db.Exec(ctx, `
		UPDATE businesses
		SET name = $2, description = $3, revenue = $4, start_date = $5, end_date = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		b.ID, b.Name, b.Description, b.Revenue, b.StartDate, b.EndDate))
	if err != nil {
		return dom.Business{}, err
	}
	return r.GetByID(ctx, b.ID)
}

func (r *PGBusinessRepo) SoftDelete(ctx context.Context, id int64) error {
	return affectedOrNoRows(r.db.Exec(ctx,
		`UPDATE businesses SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id))
}

// ReplaceMembers swaps the member set of a business atomically.
func (r *PGBusinessRepo) ReplaceMembers(ctx context.Context, businessID int64, memberIDs []int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM business_members WHERE business_id = $1`, businessID); err != nil {
			return err
		}
		if err := insertBusinessMembers(ctx, tx, businessID, memberIDs); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE businesses SET updated_at = NOW() WHERE id = $1`, businessID)
		return err
	})
}

func insertBusinessMembers(ctx context.Context, tx pgx.Tx, businessID int64, memberIDs []int64) error {
	if len(memberIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO business_members (business_id, member_id)
		SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		businessID, memberIDs)
	return err
}

func (r *PGBusinessRepo) Members(ctx context.Context, businessID int64) ([]dom.Member, error) {
	query := `
		SELECT m.id, m.company_id, m.name, m.login_id, m.password_hash, m.role, m.phone, m.staff_rank, m.staff_number, m.created_at, m.updated_at
		FROM business_members bm JOIN members m ON m.id = bm.member_id
		WHERE bm.business_id = $1
		ORDER BY m.name`
	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMember)
}
