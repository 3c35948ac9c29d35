package request

type AdminLoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	SecureKey string `json:"secure_key" validate:"required"`
}

type AdminSetupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=12"`
	SecureKey string `json:"secure_key" validate:"required,min=12"`
}
