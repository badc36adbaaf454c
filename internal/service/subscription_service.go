package service

import (
	"fmt"
	"strings"

	"github.com/consolenews/newsletter-service/internal/email"
	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// WelcomeMailer is the slice of the email service sign-up needs.
type WelcomeMailer interface {
	SendWelcomeEmail(data email.WelcomeEmailData) error
}

type SubscriptionService struct {
	Subscriptions repository.SubscriptionRepositoryInterface
	Users         repository.UserRepositoryInterface
	Mailer        WelcomeMailer
}

func (s *SubscriptionService) List(page, pageSize int, status string, isActive *bool) ([]*model.Subscription, Pagination, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	subscriptions, total, err := s.Subscriptions.List(offset, pageSize, status, isActive)
	if err != nil {
		return nil, Pagination{}, err
	}
	return subscriptions, paginationOf(page, pageSize, total), nil
}

func (s *SubscriptionService) Get(id int) (*model.Subscription, error) {
	return s.Subscriptions.FindByID(id)
}

// Create signs a subscriber up: it reuses or creates the owning user, rejects
// a second active subscription for the same user (pre-check, not a database
// constraint), and sends the welcome email before the subscription row is
// written — a failed welcome email aborts the sign-up.
func (s *SubscriptionService) Create(name, emailAddr string) (*model.Subscription, error) {
	user, err := s.Users.FindByEmail(emailAddr)
	if err != nil {
		return nil, err
	}

	if user == nil {
		password := strings.ToLower(strings.TrimSpace(emailAddr + name))
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}

		user = &model.User{Name: name, Email: emailAddr, Password: string(hash)}
		if err := s.Users.Create(user); err != nil {
			return nil, err
		}
	}

	existing, err := s.Subscriptions.FindActiveByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrActiveSubscriptionExists
	}

	if err := s.Mailer.SendWelcomeEmail(email.WelcomeEmailData{
		UserName:  user.Name,
		UserEmail: user.Email,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWelcomeEmailFailed, err)
	}

	subscription := &model.Subscription{UserID: user.ID}
	if err := s.Subscriptions.Create(subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}

func (s *SubscriptionService) Update(id int, status string, isActive *bool) (*model.Subscription, error) {
	existing, err := s.Subscriptions.FindByID(id)
	if err != nil {
		return nil, err
	}

	if status != "" {
		existing.Status = status
	}
	if isActive != nil {
		existing.IsActive = *isActive
	}

	if err := s.Subscriptions.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *SubscriptionService) Delete(id int) error {
	if _, err := s.Subscriptions.FindByID(id); err != nil {
		return err
	}
	return s.Subscriptions.Delete(id)
}

func (s *SubscriptionService) Activate(id int) (*model.Subscription, error) {
	return s.setActive(id, true)
}

func (s *SubscriptionService) Deactivate(id int) (*model.Subscription, error) {
	return s.setActive(id, false)
}

func (s *SubscriptionService) setActive(id int, active bool) (*model.Subscription, error) {
	existing, err := s.Subscriptions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Subscriptions.SetActive(id, active); err != nil {
		return nil, err
	}
	existing.IsActive = active
	return existing, nil
}

func (s *SubscriptionService) FindByEmail(emailAddr string) ([]*model.Subscription, error) {
	return s.Subscriptions.FindByEmail(emailAddr)
}
