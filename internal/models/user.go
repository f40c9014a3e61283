package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	OwnedProjects  []Project             `gorm:"foreignKey:OwnerID" json:"-"`
	Collaborations []ProjectCollaborator `gorm:"foreignKey:UserID" json:"-"`
	CreatedTasks   []Task                `gorm:"foreignKey:CreatedBy" json:"-"`
	AssignedTasks  []Task                `gorm:"foreignKey:AssignedTo" json:"-"`
}
