package models

// Credentials are the reviewer's username and password. They live in memory
// for the lifetime of a session and are never persisted.
type Credentials struct {
	Username string
	Password string
}

// Empty reports whether no credentials are held.
func (c Credentials) Empty() bool {
	return c.Username == "" && c.Password == ""
}

// Session is the derived authentication state.
//
// Token is the bearer token returned by the last successful login; it may be
// seeded from storage at start-up without Authenticated being set.
type Session struct {
	Authenticated bool
	Username      string
	Token         string
}

// LoginResponse is the body returned by the login endpoint.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}
