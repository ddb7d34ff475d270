package dto

type UpdateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
}
