package inbound

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserType    string `json:"user_type"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out"
}

type ProfileTab struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type MeResponse struct {
	Authenticated bool         `json:"authenticated"`
	UserID        int64        `json:"user_id,string"`
	UserType      string       `json:"user_type"`
	Email         string       `json:"email"`
	DisplayName   string       `json:"display_name"`
	Tabs          []ProfileTab `json:"tabs,omitempty"`
}
