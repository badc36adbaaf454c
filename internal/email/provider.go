// Package email abstracts the outbound email transport behind a small
// capability interface with interchangeable provider implementations.
package email

// Message is one outbound email. At least one of Text/HTML should be set;
// From falls back to the provider's configured sender when empty.
type Message struct {
	To      string
	From    string
	Subject string
	Text    string
	HTML    string
}

// Response is the normalized transport acknowledgment.
type Response struct {
	Accepted  []string
	Rejected  []string
	MessageID string
}

// Provider is the transport capability contract. Implementations return an
// error when the provider rejects the send outright or the connection fails.
type Provider interface {
	Send(msg Message) (*Response, error)
	VerifyConnection() error
}
