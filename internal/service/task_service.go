package service

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/events"
	"fieldmate/internal/metrics"
	"fieldmate/internal/repo"
	"fieldmate/internal/storage"
	"fieldmate/internal/utils"

	"go.uber.org/zap"
)

// ImageStore is the part of storage.Store the task service uses.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader) (storage.Stored, error)
	Open(rel string) (*os.File, error)
	Remove(rel string) error
	MaxBytes() int64
}

// Upload is one image file of a multipart request.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type TaskInput struct {
	BusinessID  int64
	CategoryID  *int64
	Date        time.Time
	Title       string
	Description string
}

// TaskPatch is a partial update. ClearCategory unsets the category.
type TaskPatch struct {
	BusinessID     *int64
	CategoryID     *int64
	ClearCategory  bool
	Date           *time.Time
	Title          *string
	Description    *string
	RemoveImageIDs []int64
}

type TaskService struct {
	tasks      repo.TaskRepo
	businesses repo.BusinessRepo
	categories repo.CategoryRepo
	store      ImageStore
	events     events.Publisher
	logger     *zap.Logger
	maxImages  int
}

func NewTaskService(
	tasks repo.TaskRepo,
	businesses repo.BusinessRepo,
	categories repo.CategoryRepo,
	store ImageStore,
	pub events.Publisher,
	logger *zap.Logger,
	maxImages int,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		businesses: businesses,
		categories: categories,
		store:      store,
		events:     pub,
		logger:     logger,
		maxImages:  maxImages,
	}
}

// Create validates every upload before writing anything, stores the files,
// then inserts the task with its image rows. Stored files are removed again
// if the insert fails.
func (s *TaskService) Create(ctx context.Context, actor dom.Actor, in TaskInput, uploads []Upload) (dom.Task, error) {
	t := dom.Task{
		CompanyID:  actor.CompanyID,
		AuthorID:   actor.MemberID,
		CategoryID: in.CategoryID,
		Date:       in.Date,
	}
	var err error
	if t.Title, err = requireText("title", in.Title, 100); err != nil {
		return dom.Task{}, err
	}
	if t.Description, err = optionalText("description", in.Description, 2000); err != nil {
		return dom.Task{}, err
	}
	if t.Date.IsZero() {
		return dom.Task{}, invalid("date is required")
	}
	b, err := s.business(ctx, actor, in.BusinessID)
	if err != nil {
		return dom.Task{}, err
	}
	t.BusinessID, t.ClientID = b.ID, b.ClientID
	if err := s.checkCategory(ctx, actor, t.CategoryID); err != nil {
		return dom.Task{}, err
	}
	if len(uploads) > s.maxImages {
		return dom.Task{}, ErrTooManyImages
	}
	if err := s.checkUploads(uploads); err != nil {
		return dom.Task{}, err
	}

	t.Images, err = s.saveUploads(ctx, uploads)
	if err != nil {
		return dom.Task{}, err
	}
	out, err := s.tasks.Create(ctx, t)
	if err != nil {
		s.removeFiles(imagePaths(t.Images))
		return dom.Task{}, writeErr(err)
	}
	s.events.Publish(dom.EventTaskCreated, out.CompanyID, out.ID)
	return out, nil
}

// Get returns the task with the names of its client, business, author and category.
func (s *TaskService) Get(ctx context.Context, actor dom.Actor, id int64) (dom.TaskDetail, error) {
	d, err := s.tasks.GetDetail(ctx, id)
	if err != nil {
		return dom.TaskDetail{}, notFound(err)
	}
	if d.CompanyID != actor.CompanyID {
		return dom.TaskDetail{}, ErrNotFound
	}
	return d, nil
}

// ListByDate lists the actor's own tasks (TASK) or the rest of the company's
// tasks (OTHER) on one day.
func (s *TaskService) ListByDate(ctx context.Context, actor dom.Actor, companyID int64, day time.Time, scope dom.TaskScope) ([]dom.TaskDetail, error) {
	if companyID != actor.CompanyID {
		return nil, ErrForbidden
	}
	if !scope.Valid() {
		return nil, invalid("type must be TASK or OTHER")
	}
	if day.IsZero() {
		return nil, invalid("date is required")
	}
	return s.tasks.ListByDate(ctx, companyID, day, actor.MemberID, scope)
}

// Update applies p and the new uploads. Only the author or a leader may
// update a task.
func (s *TaskService) Update(ctx context.Context, actor dom.Actor, id int64, p TaskPatch, uploads []Upload) (dom.Task, error) {
	t, err := s.editable(ctx, actor, id)
	if err != nil {
		return dom.Task{}, err
	}
	if p.Title != nil {
		if t.Title, err = requireText("title", *p.Title, 100); err != nil {
			return dom.Task{}, err
		}
	}
	if p.Description != nil {
		if t.Description, err = optionalText("description", *p.Description, 2000); err != nil {
			return dom.Task{}, err
		}
	}
	if p.Date != nil {
		if p.Date.IsZero() {
			return dom.Task{}, invalid("date is required")
		}
		t.Date = *p.Date
	}
	if p.BusinessID != nil {
		b, err := s.business(ctx, actor, *p.BusinessID)
		if err != nil {
			return dom.Task{}, err
		}
		t.BusinessID, t.ClientID = b.ID, b.ClientID
	}
	switch {
	case p.ClearCategory:
		t.CategoryID = nil
	case p.CategoryID != nil:
		if err := s.checkCategory(ctx, actor, p.CategoryID); err != nil {
			return dom.Task{}, err
		}
		t.CategoryID = p.CategoryID
	}

	remove := make(map[int64]struct{})
	for _, imgID := range uniqueIDs(p.RemoveImageIDs) {
		remove[imgID] = struct{}{}
	}
	kept := 0
	for _, img := range t.Images {
		if _, ok := remove[img.ID]; !ok {
			kept++
		}
	}
	if kept+len(uploads) > s.maxImages {
		return dom.Task{}, ErrTooManyImages
	}
	if err := s.checkUploads(uploads); err != nil {
		return dom.Task{}, err
	}

	added, err := s.saveUploads(ctx, uploads)
	if err != nil {
		return dom.Task{}, err
	}
	t.Images = added
	out, removed, err := s.tasks.Update(ctx, t, uniqueIDs(p.RemoveImageIDs))
	if err != nil {
		s.removeFiles(imagePaths(added))
		return dom.Task{}, writeErr(err)
	}
	s.removeFiles(removed)
	s.events.Publish(dom.EventTaskUpdated, actor.CompanyID, out.ID)
	return out, nil
}

// Delete soft-deletes a task. Its files stay until the orphan sweep purges them.
func (s *TaskService) Delete(ctx context.Context, actor dom.Actor, id int64) error {
	t, err := s.editable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.tasks.SoftDelete(ctx, t.ID); err != nil {
		return notFound(err)
	}
	s.events.Publish(dom.EventTaskDeleted, actor.CompanyID, t.ID)
	return nil
}

// OpenImage returns an image of a live task of the actor's company. The
// caller closes the file.
func (s *TaskService) OpenImage(ctx context.Context, actor dom.Actor, imageID int64) (dom.Image, *os.File, error) {
	img, err := s.tasks.GetImage(ctx, imageID)
	if err != nil {
		return dom.Image{}, nil, notFound(err)
	}
	if _, err := s.Get(ctx, actor, img.TaskID); err != nil {
		return dom.Image{}, nil, err
	}
	f, err := s.store.Open(img.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dom.Image{}, nil, ErrNotFound
		}
		return dom.Image{}, nil, err
	}
	return img, f, nil
}

func (s *TaskService) editable(ctx context.Context, actor dom.Actor, id int64) (dom.Task, error) {
	d, err := s.Get(ctx, actor, id)
	if err != nil {
		return dom.Task{}, err
	}
	if d.AuthorID != actor.MemberID && !actor.IsLeader() {
		return dom.Task{}, ErrForbidden
	}
	return d.Task, nil
}

func (s *TaskService) business(ctx context.Context, actor dom.Actor, id int64) (dom.Business, error) {
	if id <= 0 {
		return dom.Business{}, invalid("businessId is required")
	}
	b, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return dom.Business{}, invalid("business %d does not exist", id)
		}
		return dom.Business{}, err
	}
	if b.CompanyID != actor.CompanyID {
		return dom.Business{}, invalid("business %d does not exist", id)
	}
	return b, nil
}

func (s *TaskService) checkCategory(ctx context.Context, actor dom.Actor, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := s.categories.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return invalid("category %d does not exist", *id)
		}
		return err
	}
	if c.CompanyID != actor.CompanyID {
		return invalid("category %d does not exist", *id)
	}
	return nil
}

// checkUploads rejects oversized or non-image uploads without storing anything.
func (s *TaskService) checkUploads(uploads []Upload) error {
	for _, u := range uploads {
		if u.Size > s.store.MaxBytes() {
			return ErrImageTooLarge
		}
		rc, err := u.Open()
		if err != nil {
			return err
		}
		_, _, err = storage.Sniff(rc)
		rc.Close()
		if err != nil {
			return imageErr(err)
		}
	}
	return nil
}

func (s *TaskService) saveUploads(ctx context.Context, uploads []Upload) ([]dom.Image, error) {
	images := make([]dom.Image, 0, len(uploads))
	for _, u := range uploads {
		img, err := s.saveUpload(ctx, u)
		if err != nil {
			s.removeFiles(imagePaths(images))
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *TaskService) saveUpload(ctx context.Context, u Upload) (dom.Image, error) {
	rc, err := u.Open()
	if err != nil {
		return dom.Image{}, err
	}
	defer rc.Close()
	st, err := s.store.Save(ctx, rc)
	if err != nil {
		return dom.Image{}, imageErr(err)
	}
	metrics.RecordImageStored(st.Size)
	return dom.Image{Path: st.Path, ContentType: st.ContentType, Size: st.Size}, nil
}

func (s *TaskService) removeFiles(paths []string) {
	for _, p := range paths {
		if err := s.store.Remove(p); err != nil {
			s.logger.Warn("remove image file", zap.String("path", p), zap.Error(err))
		}
	}
}

// writeErr maps a reference that vanished between the checks and the write.
func writeErr(err error) error {
	if !utils.IsPGForeignKeyViolation(err) {
		return notFound(err)
	}
	switch utils.PGConstraint(err) {
	case "tasks_category_id_fkey":
		return invalid("category no longer exists")
	case "tasks_business_id_fkey":
		return invalid("business no longer exists")
	case "tasks_author_id_fkey":
		return conflict("author no longer exists")
	}
	return invalid("a referenced record no longer exists")
}

func imageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return ErrImageTooLarge
	case errors.Is(err, storage.ErrUnsupported):
		return ErrUnsupportedImage
	}
	return err
}

func imagePaths(images []dom.Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.Path)
	}
	return out
}
