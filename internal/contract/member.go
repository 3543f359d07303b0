package contract

type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

type MeResponse struct {
	LoginID string `json:"loginId"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ErrorBody is the backend's error envelope.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
