package testutil

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/taebin/travelsay/internal/domain"
)

// Credential options
type CredentialOption func(*domain.Credential)

func WithLoginID(id string) CredentialOption {
	return func(c *domain.Credential) {
		c.LoginID = id
	}
}

func WithToken(token string) CredentialOption {
	return func(c *domain.Credential) {
		c.AccessToken = token
	}
}

func WithExpiry(t time.Time) CredentialOption {
	return func(c *domain.Credential) {
		c.ExpiresAt = &t
	}
}

func NewTestCredential(server string, opts ...CredentialOption) *domain.Credential {
	c := &domain.Credential{
		Server:      server,
		AccessToken: "tok-" + uuid.NewString(),
		LoginID:     "tester",
		SavedAt:     time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlanRow options
type PlanRowOption func(*domain.PlanRow)

func WithStartDate(date string) PlanRowOption {
	return func(r *domain.PlanRow) {
		d, err := domain.ParseDate(date)
		if err != nil {
			panic(err)
		}
		r.StartDate = &d
	}
}

func WithCompleted() PlanRowOption {
	return func(r *domain.PlanRow) {
		r.IsCompleted = true
	}
}

func NewTestPlanRow(id int64, title string, opts ...PlanRowOption) domain.PlanRow {
	r := domain.PlanRow{PlanID: id, Title: title}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewTestPlanRows returns n rows with ids 1..n titled "Plan N".
func NewTestPlanRows(n int) []domain.PlanRow {
	rows := make([]domain.PlanRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, domain.PlanRow{PlanID: int64(i), Title: "Plan " + strconv.Itoa(i)})
	}
	return rows
}

// NewTestItem builds an item with the given order and optional "HH:MM" start.
func NewTestItem(id int64, title string, orderNo int, start string) domain.Item {
	it := domain.Item{ID: id, Title: title, OrderNo: orderNo}
	if start != "" {
		it.StartTime = &start
	}
	return it
}
