package dto

type SetSettingRequest struct {
	Value string `json:"value"`
}
