package entity

import "time"

// Task belongs to exactly one user, referenced by OwnerID.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      bool      `json:"status"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Sortable task fields, keyed by their public (JSON) name.
const (
	SortCreatedAt   = "createdAt"
	SortUpdatedAt   = "updatedAt"
	SortDescription = "description"
	SortStatus      = "status"
)

// TaskSortFields lists the fields a task listing may be ordered by.
var TaskSortFields = map[string]bool{
	SortCreatedAt:   true,
	SortUpdatedAt:   true,
	SortDescription: true,
	SortStatus:      true,
}

// ListOptions narrows and orders a task listing. Zero Limit and Skip mean "no limit" and "no offset".
type ListOptions struct {
	Status    *bool
	Query     string
	SortField string
	SortDesc  bool
	Limit     int
	Skip      int
}
