package repository

import "gorm.io/gorm"

// GormStatisticsRepository is a GORM implementation of StatisticsRepository
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

type projectCounts struct {
	OwnedProjects         int64
	CollaboratingProjects int64
	TotalProjects         int64
}

type taskCounts struct {
	TotalTasks        int64
	Pending           int64
	InProgress        int64
	Completed         int64
	TasksAssignedToMe int64
	TasksCreatedByMe  int64
}

// Collect aggregates the per-user counters in two grouped queries. Every
// count is deduplicated by primary id since the collaborator join fans out.
func (r *GormStatisticsRepository) Collect(userID uint64) (*UserStatistics, error) {
	var pc projectCounts
	err := r.db.Raw(`
		SELECT
			COUNT(DISTINCT CASE WHEN p.owner_id = ? THEN p.id END) AS owned_projects,
			COUNT(DISTINCT CASE WHEN pc.user_id = ? THEN pc.project_id END) AS collaborating_projects,
			COUNT(DISTINCT p.id) AS total_projects
		FROM projects p
		LEFT JOIN project_collaborators pc ON p.id = pc.project_id
		WHERE p.owner_id = ? OR pc.user_id = ?`,
		userID, userID, userID, userID,
	).Scan(&pc).Error
	if err != nil {
		return nil, err
	}

	var tc taskCounts
	err = r.db.Raw(`
		SELECT
			COUNT(DISTINCT t.id) AS total_tasks,
			COUNT(DISTINCT CASE WHEN t.status = 'pending' THEN t.id END) AS pending,
			COUNT(DISTINCT CASE WHEN t.status = 'in_progress' THEN t.id END) AS in_progress,
			COUNT(DISTINCT CASE WHEN t.status = 'completed' THEN t.id END) AS completed,
			COUNT(DISTINCT CASE WHEN t.assigned_to = ? THEN t.id END) AS tasks_assigned_to_me,
			COUNT(DISTINCT CASE WHEN t.created_by = ? THEN t.id END) AS tasks_created_by_me
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		LEFT JOIN project_collaborators pc ON p.id = pc.project_id
		WHERE p.owner_id = ? OR pc.user_id = ?`,
		userID, userID, userID, userID,
	).Scan(&tc).Error
	if err != nil {
		return nil, err
	}

	return &UserStatistics{
		TotalProjects:         pc.TotalProjects,
		OwnedProjects:         pc.OwnedProjects,
		CollaboratingProjects: pc.CollaboratingProjects,
		TotalTasks:            tc.TotalTasks,
		TasksByStatus: TasksByStatus{
			Pending:    tc.Pending,
			InProgress: tc.InProgress,
			Completed:  tc.Completed,
		},
		TasksAssignedToMe: tc.TasksAssignedToMe,
		TasksCreatedByMe:  tc.TasksCreatedByMe,
	}, nil
}
