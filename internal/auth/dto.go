package auth

// RegisterUserRequest is the reporter sign-up form.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Age      int    `json:"age" validate:"gte=0"`
	City     string `json:"city"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterVolunteerRequest is the volunteer sign-up form.
type RegisterVolunteerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest captures the credentials typed on a login screen.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
