// internal/ticket/store.go
package ticket

import (
	"net/http"
)

// DefaultCookieName is the cookie used for the session ticket when no name is
// configured
const DefaultCookieName = "apiTicket"

// Store reads and writes the session ticket cookie. It performs no freshness
// checks; a stored ticket may be long expired on the platform side, and it is
// the validator's job to find that out.
type Store struct {
	cookieName string
	secure     bool
}

// NewStore creates a cookie-backed ticket store. An empty cookieName falls
// back to DefaultCookieName.
func NewStore(cookieName string, secure bool) *Store {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Store{
		cookieName: cookieName,
		secure:     secure,
	}
}

// CookieName returns the name of the cookie this store operates on
func (s *Store) CookieName() string {
	return s.cookieName
}

// Read returns the ticket carried by the request, or nil when the cookie is
// missing or empty. Absence is an expected steady state, not an error.
func (s *Store) Read(r *http.Request) *Ticket {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return &Ticket{Value: cookie.Value}
}

// Write sets the ticket cookie on the outgoing response, overwriting any
// existing value.
func (s *Store) Write(w http.ResponseWriter, t Ticket) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    t.Value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the ticket cookie. Clearing an absent cookie is harmless.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
	})
}
