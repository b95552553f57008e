// internal/ticket/ticket.go
package ticket

// Ticket is an opaque credential representing an authenticated session with
// the identity platform. The value is issued by the platform during token
// exchange and is not locally decodable; only the platform can tell whether
// it is still valid.
type Ticket struct {
	// Value is the raw serialized ticket as issued by the platform
	Value string
}

// String returns the raw ticket value
func (t Ticket) String() string {
	return t.Value
}

// IsZero reports whether the ticket carries no value
func (t Ticket) IsZero() bool {
	return t.Value == ""
}
