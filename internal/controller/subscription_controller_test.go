package controller_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/consolenews/newsletter-service/internal/controller"
	"github.com/consolenews/newsletter-service/internal/email"
	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/model"
	"github.com/consolenews/newsletter-service/internal/service"
)

type mockUserRepo struct {
	nextID int
	users  map[string]*model.User
}

func (m *mockUserRepo) FindByEmail(emailAddr string) (*model.User, error) {
	return m.users[emailAddr], nil
}

func (m *mockUserRepo) FindByID(id int) (*model.User, error) { return nil, nil }

func (m *mockUserRepo) Create(u *model.User) error {
	m.nextID++
	u.ID = m.nextID
	m.users[u.Email] = u
	return nil
}

type mockSubscriptionRepo struct {
	nextID int
	subs   map[int]*model.Subscription
}

func (m *mockSubscriptionRepo) List(offset, limit int, status string, isActive *bool) ([]*model.Subscription, int, error) {
	return nil, 0, nil
}

func (m *mockSubscriptionRepo) FindByID(id int) (*model.Subscription, error) {
	s, ok := m.subs[id]
	if !ok {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	return s, nil
}

func (m *mockSubscriptionRepo) FindByUserID(userID int) ([]*model.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) FindActiveByUserID(userID int) (*model.Subscription, error) {
	for _, s := range m.subs {
		if s.UserID == userID && s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) FindByEmail(emailAddr string) ([]*model.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) FindActiveWithUsers() ([]model.ActiveSubscriber, error) {
	return nil, nil
}

func (m *mockSubscriptionRepo) Create(s *model.Subscription) error {
	m.nextID++
	s.ID = m.nextID
	s.IsActive = true
	m.subs[s.ID] = s
	return nil
}

func (m *mockSubscriptionRepo) Update(s *model.Subscription) error { return nil }

func (m *mockSubscriptionRepo) SetActive(id int, active bool) error {
	s, ok := m.subs[id]
	if !ok {
		return apperrors.ErrSubscriptionNotFound
	}
	s.IsActive = active
	return nil
}

func (m *mockSubscriptionRepo) Delete(id int) error { return nil }

type mockWelcomeMailer struct {
	err error
}

func (m *mockWelcomeMailer) SendWelcomeEmail(data email.WelcomeEmailData) error {
	return m.err
}

func subscriptionRouter(mailer *mockWelcomeMailer) http.Handler {
	svc := &service.SubscriptionService{
		Subscriptions: &mockSubscriptionRepo{subs: map[int]*model.Subscription{}},
		Users:         &mockUserRepo{users: map[string]*model.User{}},
		Mailer:        mailer,
	}
	ctrl := &controller.SubscriptionController{SubscriptionService: svc}

	r := chi.NewRouter()
	r.Post("/subscriptions", ctrl.Create)
	r.Get("/subscriptions/{id}", ctrl.Get)
	r.Patch("/subscriptions/{id}/deactivate", ctrl.Deactivate)
	return r
}

func signUp(t *testing.T, router http.Handler, name, emailAddr string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name, "email": emailAddr})
	req := httptest.NewRequest("POST", "/subscriptions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUp(t *testing.T) {
	router := subscriptionRouter(&mockWelcomeMailer{})

	w := signUp(t, router, "Ana", "ana@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var res struct {
		Data model.Subscription `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.Data.IsActive {
		t.Error("expected new subscription to be active")
	}
}

func TestSignUpMissingFields(t *testing.T) {
	router := subscriptionRouter(&mockWelcomeMailer{})

	w := signUp(t, router, "", "ana@example.com")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSignUpDuplicateActive(t *testing.T) {
	router := subscriptionRouter(&mockWelcomeMailer{})

	if w := signUp(t, router, "Ana", "ana@example.com"); w.Code != http.StatusCreated {
		t.Fatalf("first sign-up failed with %d", w.Code)
	}

	w := signUp(t, router, "Ana", "ana@example.com")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestSignUpWelcomeEmailFailure(t *testing.T) {
	router := subscriptionRouter(&mockWelcomeMailer{err: errors.New("provider down")})

	w := signUp(t, router, "Ana", "ana@example.com")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestGetSubscriptionNotFound(t *testing.T) {
	router := subscriptionRouter(&mockWelcomeMailer{})

	req := httptest.NewRequest("GET", "/subscriptions/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeactivateSubscription(t *testing.T) {
	router := subscriptionRouter(&mockWelcomeMailer{})

	if w := signUp(t, router, "Ana", "ana@example.com"); w.Code != http.StatusCreated {
		t.Fatalf("sign-up failed with %d", w.Code)
	}

	req := httptest.NewRequest("PATCH", "/subscriptions/1/deactivate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res struct {
		Data model.Subscription `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Data.IsActive {
		t.Error("expected subscription to be inactive")
	}
}
