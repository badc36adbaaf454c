package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/consolenews/newsletter-service/internal/config"
	"github.com/google/uuid"
)

// SMTPProvider sends through a plain SMTP relay, with optional AUTH PLAIN.
type SMTPProvider struct {
	host     string
	port     int
	username string
	password string
	from     string

	// send is swapped in tests; defaults to smtp.SendMail.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.From,
		send:     smtp.SendMail,
	}
}

func (p *SMTPProvider) Send(msg Message) (*Response, error) {
	from := msg.From
	if from == "" {
		from = p.from
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), p.host)
	raw := buildMessage(from, msg, messageID)

	if err := p.send(p.addr(), p.auth(), envelopeAddress(from), []string{msg.To}, raw); err != nil {
		return nil, fmt.Errorf("smtp send: %w", err)
	}

	return &Response{
		Accepted:  []string{msg.To},
		Rejected:  []string{},
		MessageID: messageID,
	}, nil
}

// VerifyConnection opens a session and greets the server without sending.
func (p *SMTPProvider) VerifyConnection() error {
	client, err := smtp.Dial(p.addr())
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp hello: %w", err)
	}
	return client.Quit()
}

func (p *SMTPProvider) addr() string {
	return fmt.Sprintf("%s:%d", p.host, p.port)
}

func (p *SMTPProvider) auth() smtp.Auth {
	if p.username == "" {
		return nil
	}
	return smtp.PlainAuth("", p.username, p.password, p.host)
}

func buildMessage(from string, msg Message, messageID string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")

	body := msg.Text
	contentType := "text/plain; charset=UTF-8"
	if msg.HTML != "" {
		body = msg.HTML
		contentType = "text/html; charset=UTF-8"
	}
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// envelopeAddress strips a display name from "Name <addr>" for MAIL FROM.
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		return strings.TrimRight(from[i+1:], ">")
	}
	return from
}

var _ Provider = (*SMTPProvider)(nil)
