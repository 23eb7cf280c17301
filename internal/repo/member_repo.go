package repo

import (
	"context"

	dom "fieldmate/internal/domain"

	"github.com/jackc/pgx/v5"
)

// MemberRepo provides company and member persistence.
type MemberRepo interface {
	CreateCompany(ctx context.Context, name string, leader dom.Member) (dom.Company, dom.Member, error)
	GetCompany(ctx context.Context, id int64) (dom.Company, error)
	Create(ctx context.Context, m dom.Member) (dom.Member, error)
	GetByID(ctx context.Context, id int64) (dom.Member, error)
	GetByLoginID(ctx context.Context, loginID string) (dom.Member, error)
	List(ctx context.Context, companyID int64, name string) ([]dom.Member, error)
	Update(ctx context.Context, m dom.Member) (dom.Member, error)
	Delete(ctx context.Context, companyID, id int64) error
	// CountInCompany counts how many of ids are members of the company.
	CountInCompany(ctx context.Context, companyID int64, ids []int64) (int, error)
}

const memberColumns = `id, company_id, name, login_id, password_hash, role, phone, staff_rank, staff_number, created_at, updated_at`

// PGMemberRepo implements MemberRepo with Postgres.
type PGMemberRepo struct {
	db DB
}

func NewPGMemberRepo(db DB) *PGMemberRepo {
	return &PGMemberRepo{db: db}
}

func scanMember(row pgx.Row) (dom.Member, error) {
	var m dom.Member
	err := row.Scan(&m.ID, &m.CompanyID, &m.Name, &m.LoginID, &m.PasswordHash, &m.Role,
		&m.Phone, &m.StaffRank, &m.StaffNumber, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateCompany inserts the company and its first member in one transaction.
func (r *PGMemberRepo) CreateCompany(ctx context.Context, name string, leader dom.Member) (dom.Company, dom.Member, error) {
	var (
		company dom.Company
		member  dom.Member
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO companies (name) VALUES ($1) RETURNING id, name, created_at`, name,
		).Scan(&company.ID, &company.Name, &company.CreatedAt)
		if err != nil {
			return err
		}
		leader.CompanyID = company.ID
		member, err = insertMember(ctx, tx, leader)
		return err
	})
	if err != nil {
		return dom.Company{}, dom.Member{}, err
	}
	return company, member, nil
}

func (r *PGMemberRepo) GetCompany(ctx context.Context, id int64) (dom.Company, error) {
	var c dom.Company
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

func (r *PGMemberRepo) Create(ctx context.Context, m dom.Member) (dom.Member, error) {
	return insertMember(ctx, r.db, m)
}

func insertMember(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, m dom.Member) (dom.Member, error) {
	query := `
		INSERT INTO members (company_id, name, login_id, password_hash, role, phone, staff_rank, staff_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + memberColumns
	return scanMember(q.QueryRow(ctx, query, m.CompanyID, m.Name, m.LoginID, m.PasswordHash,
		m.Role, m.Phone, m.StaffRank, m.StaffNumber))
}

func (r *PGMemberRepo) GetByID(ctx context.Context, id int64) (dom.Member, error) {
	return scanMember(r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
}

func (r *PGMemberRepo) GetByLoginID(ctx context.Context, loginID string) (dom.Member, error) {
	return scanMember(r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE login_id = $1`, loginID))
}

func (r *PGMemberRepo) List(ctx context.Context, companyID int64, name string) ([]dom.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members WHERE company_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY role, name`
	rows, err := r.db.Query(ctx, query, companyID, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMember)
}

func (r *PGMemberRepo) Update(ctx context.Context, m dom.Member) (dom.Member, error) {
	query := `
		UPDATE members SET name = $3, phone = $4, staff_rank = $5, staff_number = $6, password_hash = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + memberColumns
	return scanMember(r.db.QueryRow(ctx, query, m.ID, m.CompanyID, m.Name, m.Phone,
		m.StaffRank, m.StaffNumber, m.PasswordHash))
}

func (r *PGMemberRepo) Delete(ctx context.Context, companyID, id int64) error {
	return affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM members WHERE id = $1 AND company_id = $2`, id, companyID))
}

func (r *PGMemberRepo) CountInCompany(ctx context.Context, companyID int64, ids []int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM members WHERE company_id = $1 AND id = ANY($2)`,
		companyID, ids,
	).Scan(&n)
	return n, err
}
