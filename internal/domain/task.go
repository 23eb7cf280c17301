package domain

import "time"

// Task is a field visit or other activity recorded against a business.
// Date is a calendar day stored as UTC midnight.
type Task struct {
	ID          int64
	CompanyID   int64
	ClientID    int64
	BusinessID  int64
	AuthorID    int64
	CategoryID  *int64
	Title       string
	Description string
	Date        time.Time
	Images      []Image

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// TaskDetail is a task joined with the names the detail screen shows.
type TaskDetail struct {
	Task
	ClientName    string
	BusinessName  string
	AuthorName    string
	CategoryName  string
	CategoryColor string
}

// TaskScope selects whose tasks a date listing returns.
type TaskScope string

const (
	// TaskScopeMine lists tasks written by the requesting member.
	TaskScopeMine TaskScope = "TASK"
	// TaskScopeOthers lists tasks written by everyone else in the company.
	TaskScopeOthers TaskScope = "OTHER"
)

func (s TaskScope) Valid() bool { return s == TaskScopeMine || s == TaskScopeOthers }

// Image is a photo attached to a task. Path is relative to the storage root.
type Image struct {
	ID          int64
	TaskID      int64
	Path        string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
