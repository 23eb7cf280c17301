package service

import (
	"context"
	"strings"
	"sync"
	"time"

	dom "fieldmate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var uniqueViolation = &pgconn.PgError{Code: "23505"}

type published struct {
	Kind      dom.EventKind
	CompanyID int64
	EntityID  int64
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(kind dom.EventKind, companyID, entityID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{kind, companyID, entityID})
}

func (r *recorder) kinds() []dom.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type fakeMembers struct {
	companies map[int64]dom.Company
	members   map[int64]dom.Member
	nextID    int64
	// authors have tasks; deleting them trips the tasks.author_id reference.
	authors map[int64]bool
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{companies: map[int64]dom.Company{}, members: map[int64]dom.Member{}}
}

func (f *fakeMembers) id() int64 { f.nextID++; return f.nextID }

func (f *fakeMembers) CreateCompany(_ context.Context, name string, leader dom.Member) (dom.Company, dom.Member, error) {
	for _, m := range f.members {
		if m.LoginID == leader.LoginID {
			return dom.Company{}, dom.Member{}, uniqueViolation
		}
	}
	c := dom.Company{ID: f.id(), Name: name}
	f.companies[c.ID] = c
	leader.CompanyID = c.ID
	leader.ID = f.id()
	f.members[leader.ID] = leader
	return c, leader, nil
}

func (f *fakeMembers) GetCompany(_ context.Context, id int64) (dom.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return dom.Company{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeMembers) Create(_ context.Context, m dom.Member) (dom.Member, error) {
	for _, o := range f.members {
		if o.LoginID == m.LoginID {
			return dom.Member{}, uniqueViolation
		}
	}
	m.ID = f.id()
	f.members[m.ID] = m
	return m, nil
}

func (f *fakeMembers) GetByID(_ context.Context, id int64) (dom.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return dom.Member{}, pgx.ErrNoRows
	}
	return m, nil
}

func (f *fakeMembers) GetByLoginID(_ context.Context, loginID string) (dom.Member, error) {
	for _, m := range f.members {
		if m.LoginID == loginID {
			return m, nil
		}
	}
	return dom.Member{}, pgx.ErrNoRows
}

func (f *fakeMembers) List(_ context.Context, companyID int64, name string) ([]dom.Member, error) {
	var out []dom.Member
	for _, m := range f.members {
		if m.CompanyID == companyID && strings.Contains(m.Name, name) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) Update(_ context.Context, m dom.Member) (dom.Member, error) {
	if _, ok := f.members[m.ID]; !ok {
		return dom.Member{}, pgx.ErrNoRows
	}
	f.members[m.ID] = m
	return m, nil
}

func (f *fakeMembers) Delete(_ context.Context, companyID, id int64) error {
	m, ok := f.members[id]
	if !ok || m.CompanyID != companyID {
		return pgx.ErrNoRows
	}
	if f.authors[id] {
		return &pgconn.PgError{Code: "23503", ConstraintName: "tasks_author_id_fkey"}
	}
	delete(f.members, id)
	return nil
}

func (f *fakeMembers) CountInCompany(_ context.Context, companyID int64, ids []int64) (int, error) {
	n := 0
	for _, id := range ids {
		if m, ok := f.members[id]; ok && m.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeClients struct {
	mu      sync.Mutex
	clients map[int64]dom.Client
	lists   int
	// onceAfterList runs once, after a List has taken its snapshot.
	onceAfterList func()
}

func newFakeClients(cs ...dom.Client) *fakeClients {
	f := &fakeClients{clients: map[int64]dom.Client{}}
	for _, c := range cs {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClients) Create(_ context.Context, c dom.Client) (dom.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = int64(len(f.clients) + 1)
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeClients) GetByID(_ context.Context, id int64) (dom.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return dom.Client{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeClients) List(_ context.Context, companyID int64, q dom.ClientQuery) ([]dom.Client, error) {
	f.mu.Lock()
	f.lists++
	out := []dom.Client{}
	for _, c := range f.clients {
		if c.CompanyID == companyID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(q.Name)) {
			out = append(out, c)
		}
	}
	hook := f.onceAfterList
	f.onceAfterList = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, nil
}

func (f *fakeClients) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeClients) Update(_ context.Context, c dom.Client) (dom.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeClients) SoftDelete(_ context.Context, companyID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok || c.CompanyID != companyID {
		return pgx.ErrNoRows
	}
	delete(f.clients, id)
	return nil
}

type fakeBusinesses struct {
	businesses map[int64]dom.Business
	members    *fakeMembers
}

func newFakeBusinesses(members *fakeMembers, bs ...dom.Business) *fakeBusinesses {
	f := &fakeBusinesses{businesses: map[int64]dom.Business{}, members: members}
	for _, b := range bs {
		f.businesses[b.ID] = b
	}
	return f
}

func (f *fakeBusinesses) Create(_ context.Context, b dom.Business) (dom.Business, error) {
	b.ID = int64(len(f.businesses) + 1)
	f.businesses[b.ID] = b
	return b, nil
}

func (f *fakeBusinesses) GetByID(_ context.Context, id int64) (dom.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return dom.Business{}, pgx.ErrNoRows
	}
	return b, nil
}

func (f *fakeBusinesses) ListByClient(_ context.Context, clientID int64) ([]dom.Business, error) {
	var out []dom.Business
	for _, b := range f.businesses {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBusinesses) Update(_ context.Context, b dom.Business) (dom.Business, error) {
	f.businesses[b.ID] = b
	return b, nil
}

func (f *fakeBusinesses) SoftDelete(_ context.Context, id int64) error {
	if _, ok := f.businesses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.businesses, id)
	return nil
}

func (f *fakeBusinesses) ReplaceMembers(_ context.Context, businessID int64, memberIDs []int64) error {
	b := f.businesses[businessID]
	b.MemberIDs = memberIDs
	f.businesses[businessID] = b
	return nil
}

func (f *fakeBusinesses) Members(_ context.Context, businessID int64) ([]dom.Member, error) {
	var out []dom.Member
	for _, id := range f.businesses[businessID].MemberIDs {
		out = append(out, f.members.members[id])
	}
	return out, nil
}

type fakeCategories struct {
	mu         sync.Mutex
	categories map[int64]dom.Category
	lists      int
}

func newFakeCategories(cs ...dom.Category) *fakeCategories {
	f := &fakeCategories{categories: map[int64]dom.Category{}}
	for _, c := range cs {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeCategories) List(_ context.Context, companyID int64) ([]dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := []dom.Category{}
	for _, c := range f.categories {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return dom.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCategories) Create(_ context.Context, c dom.Category) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.categories {
		if o.CompanyID == c.CompanyID && o.Name == c.Name {
			return dom.Category{}, uniqueViolation
		}
	}
	c.ID = int64(len(f.categories) + 100)
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategories) Update(_ context.Context, c dom.Category) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategories) DeleteMany(_ context.Context, companyID int64, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if c, ok := f.categories[id]; ok && c.CompanyID == companyID {
			delete(f.categories, id)
			n++
		}
	}
	return n, nil
}

type fakeTasks struct {
	tasks     map[int64]dom.TaskDetail
	nextImage int64
	failWrite error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: map[int64]dom.TaskDetail{}}
}

func (f *fakeTasks) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	if f.failWrite != nil {
		return dom.Task{}, f.failWrite
	}
	t.ID = int64(len(f.tasks) + 1)
	for i := range t.Images {
		f.nextImage++
		t.Images[i].ID = f.nextImage
		t.Images[i].TaskID = t.ID
	}
	f.tasks[t.ID] = dom.TaskDetail{Task: t}
	return t, nil
}

func (f *fakeTasks) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	d, err := f.GetDetail(ctx, id)
	return d.Task, err
}

func (f *fakeTasks) GetDetail(_ context.Context, id int64) (dom.TaskDetail, error) {
	d, ok := f.tasks[id]
	if !ok || d.DeletedAt != nil {
		return dom.TaskDetail{}, pgx.ErrNoRows
	}
	return d, nil
}

func (f *fakeTasks) ListByDate(_ context.Context, companyID int64, day time.Time, memberID int64, scope dom.TaskScope) ([]dom.TaskDetail, error) {
	out := []dom.TaskDetail{}
	for _, d := range f.tasks {
		if d.CompanyID != companyID || !d.Date.Equal(day) || d.DeletedAt != nil {
			continue
		}
		if (d.AuthorID == memberID) == (scope == dom.TaskScopeMine) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, t dom.Task, removeImageIDs []int64) (dom.Task, []string, error) {
	if f.failWrite != nil {
		return dom.Task{}, nil, f.failWrite
	}
	d, ok := f.tasks[t.ID]
	if !ok {
		return dom.Task{}, nil, pgx.ErrNoRows
	}
	remove := map[int64]bool{}
	for _, id := range removeImageIDs {
		remove[id] = true
	}
	var (
		images  []dom.Image
		removed []string
	)
	for _, img := range d.Images {
		if remove[img.ID] {
			removed = append(removed, img.Path)
			continue
		}
		images = append(images, img)
	}
	for _, img := range t.Images {
		f.nextImage++
		img.ID = f.nextImage
		img.TaskID = t.ID
		images = append(images, img)
	}
	t.Images = images
	d.Task = t
	f.tasks[t.ID] = d
	return t, removed, nil
}

func (f *fakeTasks) SoftDelete(_ context.Context, id int64) error {
	d, ok := f.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	d.DeletedAt = &now
	f.tasks[id] = d
	return nil
}

func (f *fakeTasks) GetImage(_ context.Context, id int64) (dom.Image, error) {
	for _, d := range f.tasks {
		if d.DeletedAt != nil {
			continue
		}
		for _, img := range d.Images {
			if img.ID == id {
				return img, nil
			}
		}
	}
	return dom.Image{}, pgx.ErrNoRows
}

func (f *fakeTasks) PurgeDeleted(context.Context, time.Time) ([]string, error) { return nil, nil }

func (f *fakeTasks) ImagePaths(context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}
