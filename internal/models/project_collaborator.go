package models

import "time"

// ProjectCollaborator grants a user access to a project they do not own.
// The owner never holds a collaborator row; owner access is implicit.
type ProjectCollaborator struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	AddedAt   time.Time `json:"added_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
