// Package auth implements the login gate: a static credential table
// checked on each login, yielding the actor identity stamped onto every
// persisted ledger record. There is no hashing, lockout or backoff; a
// bad credential is surfaced inline and the user simply retries.
package auth

import "strings"

// Identity is the authenticated actor.
type Identity struct {
	Username string `json:"username"`
}

// Authenticator validates credentials against a static table.
type Authenticator interface {
	Authenticate(username, password string) (*Identity, bool)
}

// StaticAuthenticator holds the configured credential table in memory.
type StaticAuthenticator struct {
	credentials map[string]string
}

// NewStaticAuthenticator parses a "user:pass,user:pass" credential
// string from configuration. Malformed segments are ignored.
func NewStaticAuthenticator(raw string) *StaticAuthenticator {
	credentials := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		user, pass, found := strings.Cut(strings.TrimSpace(pair), ":")
		if !found || user == "" {
			continue
		}
		credentials[user] = pass
	}
	return &StaticAuthenticator{credentials: credentials}
}

// Authenticate checks the credential pair and returns the actor
// identity on success.
func (a *StaticAuthenticator) Authenticate(username, password string) (*Identity, bool) {
	stored, ok := a.credentials[username]
	if !ok || stored != password {
		return nil, false
	}
	return &Identity{Username: username}, true
}

// Users returns the number of configured credentials.
func (a *StaticAuthenticator) Users() int {
	return len(a.credentials)
}
