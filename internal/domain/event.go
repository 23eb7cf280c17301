package domain

import "time"

type EventKind string

const (
	EventClientCreated   EventKind = "client.created"
	EventClientUpdated   EventKind = "client.updated"
	EventClientDeleted   EventKind = "client.deleted"
	EventBusinessCreated EventKind = "business.created"
	EventBusinessUpdated EventKind = "business.updated"
	EventBusinessDeleted EventKind = "business.deleted"
	EventCategoryChanged EventKind = "category.changed"
	EventTaskCreated     EventKind = "task.created"
	EventTaskUpdated     EventKind = "task.updated"
	EventTaskDeleted     EventKind = "task.deleted"
	EventMemberCreated   EventKind = "member.created"
	EventMemberUpdated   EventKind = "member.updated"
	EventMemberDeleted   EventKind = "member.deleted"
)

// Event tells the screens of one company that an entity changed.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	CompanyID int64     `json:"company_id"`
	EntityID  int64     `json:"entity_id"`
	At        time.Time `json:"at"`
}
