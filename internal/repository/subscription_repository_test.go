package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consolenews/newsletter-service/internal/model"
)

func TestSubscriptionFindActiveWithUsers(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email"}).
		AddRow(1, 10, "Ana", "ana@example.com").
		AddRow(2, 11, "Bruno", "bruno@example.com")

	mock.ExpectQuery(`SELECT s.id, s.user_id, u.name, u.email\s+FROM subscriptions s`).
		WillReturnRows(rows)

	repo := &SubscriptionRepository{DB: db}
	subscribers, err := repo.FindActiveWithUsers()
	require.NoError(t, err)
	require.Len(t, subscribers, 2)
	assert.Equal(t, model.ActiveSubscriber{SubscriptionID: 1, UserID: 10, Name: "Ana", Email: "ana@example.com"}, subscribers[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionFindActiveByUserIDNoRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE user_id=\$1 AND is_active=TRUE LIMIT 1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "is_active", "created_at", "updated_at"}))

	repo := &SubscriptionRepository{DB: db}
	sub, err := repo.FindActiveByUserID(7)
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO subscriptions`).
		WithArgs(4, "A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
			AddRow(12, true, time.Now(), time.Now()))

	repo := &SubscriptionRepository{DB: db}
	s := &model.Subscription{UserID: 4}
	require.NoError(t, repo.Create(s))
	assert.Equal(t, 12, s.ID)
	assert.Equal(t, model.SubscriptionActive, s.Status)
	assert.True(t, s.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionListFilters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	active := true
	rows := sqlmock.NewRows([]string{"id", "user_id", "status", "is_active", "created_at", "updated_at"}).
		AddRow(2, 1, "A", true, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT .+ FROM subscriptions WHERE 1=1 AND status=\$1 AND is_active=\$2 ORDER BY id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("A", true, 20, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subscriptions WHERE 1=1 AND status=\$1 AND is_active=\$2`).
		WithArgs("A", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := &SubscriptionRepository{DB: db}
	subs, total, err := repo.List(0, 20, "A", &active)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionSetActive(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE subscriptions SET is_active=\$1, updated_at=NOW\(\) WHERE id=\$2`).
		WithArgs(false, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &SubscriptionRepository{DB: db}
	require.NoError(t, repo.SetActive(9, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
