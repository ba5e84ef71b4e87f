package models

// TokenResponse is printed by "blobd -issue-token" in JSON mode.
type TokenResponse struct {
	Client    string `json:"client"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
