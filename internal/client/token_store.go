package client

// TokenStore persists the session's access and refresh tokens.
// Implementations can keep tokens in memory, files, redis, etc. An absent
// token is reported as an empty string with a nil error.
type TokenStore interface {
	// GetAccessToken returns the current access token
	GetAccessToken() (token string, err error)

	// GetRefreshToken returns the refresh token used to obtain new access tokens
	GetRefreshToken() (token string, err error)

	// SetAccessToken replaces the access token, leaving the refresh token untouched
	SetAccessToken(token string) error

	// SetSession stores both tokens, overwriting any previous session
	SetSession(access, refresh string) error

	// Clear removes both tokens
	Clear() error
}
