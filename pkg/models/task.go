package model

// Task is a unit of work that time is tracked against.
type Task struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"column:title;not null" json:"title"`
	Comment     *string `gorm:"column:comment" json:"comment"`
	CompletedAt *string `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   string  `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   string  `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updated_at"`
	IsService   bool    `gorm:"column:is_service;not null;default:0" json:"is_service"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}
