package response_models

type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
	Token   string      `json:"token,omitempty"`
}
