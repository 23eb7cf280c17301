package domain

import "time"

// Category classifies tasks. Color is "#RRGGBB".
type Category struct {
	ID        int64
	CompanyID int64
	Name      string
	Color     string
	CreatedAt time.Time
}
