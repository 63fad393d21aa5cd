package user

type CreateUserRequest struct {
	Username   string  `json:"username" validate:"required"`
	Email      *string `json:"email,omitempty"`
	ReferredBy *string `json:"referred_by,omitempty"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}
