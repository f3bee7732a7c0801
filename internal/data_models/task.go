package dto

type CreateTaskRequest struct {
	Title   string  `json:"title"`
	Comment *string `json:"comment"`
}

// UpdateTaskRequest leaves absent fields untouched.
type UpdateTaskRequest struct {
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}
