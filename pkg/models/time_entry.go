package model

// TimeEntry is a billable interval. A nil EndedAt means the entry is still
// running.
type TimeEntry struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TaskID    int64   `gorm:"column:task_id;not null" json:"task_id"`
	StartedAt string  `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt   *string `gorm:"column:ended_at" json:"ended_at"`
	Source    *string `gorm:"column:source" json:"source"`
}

func (TimeEntry) TableName() string { return "time_entries" }

func (e *TimeEntry) IsOpen() bool {
	return e.EndedAt == nil
}
