package domain

import "time"

// User is the identity record mirrored from the external auth provider.
// TaskFlow never manages credentials; rows are upserted from session data.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectMember is a membership row linking a user to a project with a role.
type ProjectMember struct {
	ProjectID string     `json:"projectId"`
	UserID    string     `json:"userId"`
	Role      MemberRole `json:"role"`
	AddedAt   time.Time  `json:"addedAt"`
}
