package dto

// CloseSessionRequest closes at the current time when ClosedAt is absent.
type CloseSessionRequest struct {
	ClosedAt *string `json:"closed_at"`
}
