// Package apperrors holds sentinel errors shared across the service layer.
package apperrors

import "errors"

var (
	ErrNewsletterNotFound   = errors.New("newsletter not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrShipmentNotFound     = errors.New("shipment not found")

	// ErrActiveSubscriptionExists is returned by the sign-up pre-check:
	// a user may hold at most one subscription with is_active = true.
	ErrActiveSubscriptionExists = errors.New("user already has an active subscription")

	// ErrWelcomeEmailFailed aborts subscription sign-up when the welcome
	// email cannot be delivered.
	ErrWelcomeEmailFailed = errors.New("failed to send welcome email")

	// ErrCycleRunning means a dispatch cycle is already in progress; the
	// trigger that observed it should skip, not wait.
	ErrCycleRunning = errors.New("dispatch cycle already running")

	ErrUnsupportedProvider = errors.New("unsupported email provider")
)
