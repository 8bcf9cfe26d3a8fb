package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	FullName  string `json:"fullName"  validate:"required"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

// Response-only types owned by the transport layer. The password hash is
// never part of any outward shape.

type registerResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type userResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}
