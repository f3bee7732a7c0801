package dto

type CreateTimeEntryRequest struct {
	TaskID    int64   `json:"task_id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
	Source    *string `json:"source"`
}

type UpdateTimeEntryRequest struct {
	StartedAt *string `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
}
