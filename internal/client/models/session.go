package models

import "time"

// User is the operator identity returned by login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is the data payload of POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is an authenticated operator. ExpiresAt is zero when the token
// carries no exp claim.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// UploadCredential is a short-lived write grant for one storage container.
// Azure grants carry a SAS token; S3-compatible grants carry temporary keys.
type UploadCredential struct {
	Provider        string `json:"provider,omitempty"`
	Token           string `json:"token,omitempty"`
	SASToken        string `json:"sasToken,omitempty"`
	AccountName     string `json:"accountName"`
	ContainerName   string `json:"containerName"`
	ExpiresOn       string `json:"expiresOn,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	Region          string `json:"region,omitempty"`
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
	SessionToken    string `json:"sessionToken,omitempty"`
}

// SAS returns the SAS query string without a leading '?'. Older backends
// name the field sasToken.
func (c UploadCredential) SAS() string {
	t := c.Token
	if t == "" {
		t = c.SASToken
	}
	if len(t) > 0 && t[0] == '?' {
		t = t[1:]
	}
	return t
}

// Expiry parses ExpiresOn. ok is false when the field is absent or malformed.
func (c UploadCredential) Expiry() (t time.Time, ok bool) {
	if c.ExpiresOn == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, c.ExpiresOn)
	return t, err == nil
}
