package email

import "fmt"

// NewsletterEmailData is the per-recipient payload for a newsletter send.
type NewsletterEmailData struct {
	UserEmail         string
	UserName          string
	NewsletterTitle   string
	NewsletterContent string
}

// WelcomeEmailData is the payload for the sign-up welcome email.
type WelcomeEmailData struct {
	UserEmail string
	UserName  string
}

// Service renders the canned Console.News emails on top of a Provider.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) SendNewsletterEmail(data NewsletterEmailData) error {
	msg := Message{
		To:      data.UserEmail,
		Subject: data.NewsletterTitle,
		Text:    fmt.Sprintf("Hello %s, %s", data.UserName, data.NewsletterContent),
		HTML: fmt.Sprintf(
			"<h1>%s</h1><p>Hello <strong>%s</strong>,</p><div>%s</div><p>The Console.News team</p>",
			data.NewsletterTitle, data.UserName, data.NewsletterContent,
		),
	}
	_, err := s.provider.Send(msg)
	return err
}

func (s *Service) SendWelcomeEmail(data WelcomeEmailData) error {
	msg := Message{
		To:      data.UserEmail,
		Subject: "Welcome to the Console.News newsletter!",
		Text:    fmt.Sprintf("Hello %s, welcome to our newsletter!", data.UserName),
		HTML: fmt.Sprintf(
			"<h1>Welcome to the Console.News newsletter!</h1><p>Hello <strong>%s</strong>,</p><p>Thanks for subscribing! You will get the best tech news straight to your inbox.</p><p>The Console.News team</p>",
			data.UserName,
		),
	}
	_, err := s.provider.Send(msg)
	return err
}

func (s *Service) SendCustomEmail(msg Message) error {
	_, err := s.provider.Send(msg)
	return err
}

func (s *Service) VerifyConnection() error {
	return s.provider.VerifyConnection()
}
