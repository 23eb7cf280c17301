package repo

import (
	"context"
	"time"

	dom "fieldmate/internal/domain"

	"github.com/jackc/pgx/v5"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	GetDetail(ctx context.Context, id int64) (dom.TaskDetail, error)
	ListByDate(ctx context.Context, companyID int64, day time.Time, memberID int64, scope dom.TaskScope) ([]dom.TaskDetail, error)
	// Update rewrites the task fields, inserts t.Images that have no ID yet and
	// deletes the images in removeImageIDs. Paths of removed images are returned.
	Update(ctx context.Context, t dom.Task, removeImageIDs []int64) (dom.Task, []string, error)
	SoftDelete(ctx context.Context, id int64) error
	GetImage(ctx context.Context, id int64) (dom.Image, error)
	// PurgeDeleted hard-deletes soft-deleted tasks and returns their image paths.
	PurgeDeleted(ctx context.Context, olderThan time.Time) ([]string, error)
	// ImagePaths returns every image path that has a row.
	ImagePaths(ctx context.Context) (map[string]struct{}, error)
}

// company_id and client_id come from the owning business and client.
const taskSelect = `
	SELECT t.id, c.company_id, c.id, t.business_id, t.author_id, t.category_id, t.title, t.description, t.task_date,
		t.created_at, t.updated_at, t.deleted_at,
		c.name, b.name, m.name, COALESCE(tc.name, ''), COALESCE(tc.color, '')
	FROM tasks t
	JOIN businesses b ON b.id = t.business_id
	JOIN clients c ON c.id = b.client_id
	JOIN members m ON m.id = t.author_id
	LEFT JOIN task_categories tc ON tc.id = t.category_id`

// liveTask keeps tasks whose business or client was soft-deleted out of reads.
const liveTask = `t.deleted_at IS NULL AND b.deleted_at IS NULL AND c.deleted_at IS NULL`

const imageColumns = `id, task_id, path, content_type, size_bytes, created_at`

type PGTaskRepo struct {
	db DB
}

func NewPGTaskRepo(db DB) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func scanTaskDetail(row pgx.Row) (dom.TaskDetail, error) {
	var d dom.TaskDetail
	err := row.Scan(&d.ID, &d.CompanyID, &d.ClientID, &d.BusinessID, &d.AuthorID, &d.CategoryID,
		&d.Title, &d.Description, &d.Date, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		&d.ClientName, &d.BusinessName, &d.AuthorName, &d.CategoryName, &d.CategoryColor)
	return d, err
}

func scanImage(row pgx.Row) (dom.Image, error) {
	var img dom.Image
	err := row.Scan(&img.ID, &img.TaskID, &img.Path, &img.ContentType, &img.Size, &img.CreatedAt)
	return img, err
}

// Create inserts the task and its image rows in one transaction.
func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	out := t
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO tasks (business_id, author_id, category_id, title, description, task_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`,
			t.BusinessID, t.AuthorID, t.CategoryID, t.Title, t.Description, t.Date,
		).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
		if err != nil {
			return err
		}
		out.Images, err = insertImages(ctx, tx, out.ID, t.Images)
		return err
	})
	if err != nil {
		return dom.Task{}, err
	}
	return out, nil
}

func insertImages(ctx context.Context, tx pgx.Tx, taskID int64, images []dom.Image) ([]dom.Image, error) {
	out := make([]dom.Image, 0, len(images))
	for _, img := range images {
		if img.ID != 0 {
			continue
		}
		saved, err := scanImage(tx.QueryRow(ctx, `
			INSERT INTO task_images (task_id, path, content_type, size_bytes)
			VALUES ($1, $2, $3, $4) RETURNING `+imageColumns,
			taskID, img.Path, img.ContentType, img.Size))
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	d, err := r.GetDetail(ctx, id)
	return d.Task, err
}

func (r *PGTaskRepo) GetDetail(ctx context.Context, id int64) (dom.TaskDetail, error) {
	d, err := scanTaskDetail(r.db.QueryRow(ctx, taskSelect+` WHERE t.id = $1 AND `+liveTask, id))
	if err != nil {
		return dom.TaskDetail{}, err
	}
	d.Images, err = r.images(ctx, id)
	return d, err
}

func (r *PGTaskRepo) images(ctx context.Context, taskID int64) ([]dom.Image, error) {
	rows, err := r.db.Query(ctx, `SELECT `+imageColumns+` FROM task_images WHERE task_id = $1 ORDER BY id`, taskID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanImage)
}

func (r *PGTaskRepo) ListByDate(ctx context.Context, companyID int64, day time.Time, memberID int64, scope dom.TaskScope) ([]dom.TaskDetail, error) {
	authorCond := `t.author_id = $3`
	if scope == dom.TaskScopeOthers {
		authorCond = `t.author_id <> $3`
	}
	query := taskSelect + `
		WHERE c.company_id = $1 AND t.task_date = $2 AND ` + liveTask + ` AND ` + authorCond + `
		ORDER BY t.created_at DESC, t.id DESC`
	rows, err := r.db.Query(ctx, query, companyID, day, memberID)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows, scanTaskDetail)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, len(list))
	byID := make(map[int64]int, len(list))
	for i, d := range list {
		ids[i] = d.ID
		byID[d.ID] = i
	}
	rows, err = r.db.Query(ctx,
		`SELECT `+imageColumns+` FROM task_images WHERE task_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	images, err := collect(rows, scanImage)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		i := byID[img.TaskID]
		list[i].Images = append(list[i].Images, img)
	}
	return list, nil
}

func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task, removeImageIDs []int64) (dom.Task, []string, error) {
	var removed []string
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := affectedOrNoRows(tx.Exec(ctx, `
			UPDATE tasks
			SET business_id = $2, category_id = $3, title = $4, description = $5, task_date = $6, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL`,
			t.ID, t.BusinessID, t.CategoryID, t.Title, t.Description, t.Date))
		if err != nil {
			return err
		}
		if len(removeImageIDs) > 0 {
			rows, err := tx.Query(ctx,
				`DELETE FROM task_images WHERE task_id = $1 AND id = ANY($2) RETURNING path`, t.ID, removeImageIDs)
			if err != nil {
				return err
			}
			removed, err = collect(rows, scanString)
			if err != nil {
				return err
			}
		}
		_, err = insertImages(ctx, tx, t.ID, t.Images)
		return err
	})
	if err != nil {
		return dom.Task{}, nil, err
	}
	out, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return dom.Task{}, nil, err
	}
	return out, removed, nil
}

func (r *PGTaskRepo) SoftDelete(ctx context.Context, id int64) error {
	return affectedOrNoRows(r.db.Exec(ctx,
		`UPDATE tasks SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id))
}

// GetImage returns an image whose task is still live.
func (r *PGTaskRepo) GetImage(ctx context.Context, id int64) (dom.Image, error) {
	return scanImage(r.db.QueryRow(ctx, `
		SELECT i.id, i.task_id, i.path, i.content_type, i.size_bytes, i.created_at
		FROM task_images i
		JOIN tasks t ON t.id = i.task_id
		JOIN businesses b ON b.id = t.business_id
		JOIN clients c ON c.id = b.client_id
		WHERE i.id = $1 AND `+liveTask, id))
}

func (r *PGTaskRepo) PurgeDeleted(ctx context.Context, olderThan time.Time) ([]string, error) {
	var paths []string
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT i.path FROM task_images i JOIN tasks t ON t.id = i.task_id
			WHERE t.deleted_at IS NOT NULL AND t.deleted_at < $1`, olderThan)
		if err != nil {
			return err
		}
		paths, err = collect(rows, scanString)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM tasks WHERE deleted_at IS NOT NULL AND deleted_at < $1`, olderThan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *PGTaskRepo) ImagePaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT path FROM task_images`)
	if err != nil {
		return nil, err
	}
	paths, err := collect(rows, scanString)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set, nil
}

func scanString(row pgx.Row) (string, error) {
	var s string
	if err := row.Scan(&s); err != nil {
		return "", err
	}
	return s, nil
}
