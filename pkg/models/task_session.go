package model

// TaskSession records when a task's detail view was open. It is presence,
// not billable time, until converted into a TimeEntry.
type TaskSession struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TaskID   int64   `gorm:"column:task_id;not null" json:"task_id"`
	OpenedAt string  `gorm:"column:opened_at;not null" json:"opened_at"`
	ClosedAt *string `gorm:"column:closed_at" json:"closed_at"`
	LastSeen *string `gorm:"column:last_seen" json:"last_seen"`
}

func (TaskSession) TableName() string { return "task_sessions" }

func (s *TaskSession) IsOpen() bool {
	return s.ClosedAt == nil
}
