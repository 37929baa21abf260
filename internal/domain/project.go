package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerID     string        `json:"ownerId"`
	StartDate   *time.Time    `json:"startDate"`
	DueDate     *time.Time    `json:"dueDate"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Validate checks the only hard invariant a project carries: it must have
// a name and an owner.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("project owner is required")
	}
	return nil
}

// Overdue reports whether the project is past its due date and not completed.
func (p *Project) Overdue(now time.Time) bool {
	if p.DueDate == nil || p.Status == ProjectCompleted {
		return false
	}
	return now.After(*p.DueDate)
}
