package domain

import "time"

type Role string

const (
	RoleLeader Role = "LEADER"
	RoleStaff  Role = "STAFF"
)

func (r Role) Valid() bool { return r == RoleLeader || r == RoleStaff }

// Company owns every other entity; all reads are scoped by CompanyID.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Member is an employee of a company who can log into the app.
type Member struct {
	ID           int64
	CompanyID    int64
	Name         string
	LoginID      string
	PasswordHash string
	Role         Role
	Phone        string
	StaffRank    string
	StaffNumber  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Member) IsLeader() bool { return m.Role == RoleLeader }

// Actor is the member on whose behalf a service call runs.
type Actor struct {
	MemberID  int64
	CompanyID int64
	Role      Role
}

func (a Actor) IsLeader() bool { return a.Role == RoleLeader }
