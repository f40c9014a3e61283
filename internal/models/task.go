package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	ProjectID   uint64       `gorm:"not null;index" json:"project_id"`
	AssignedTo  *uint64      `gorm:"index" json:"assigned_to"`
	CreatedBy   uint64       `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Creator  User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
