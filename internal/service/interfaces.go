package service

import (
	"context"

	"github.com/taebin/travelsay/internal/domain"
)

type SessionService interface {
	// Login exchanges credentials for a token and stores it. Any remembered
	// active plan is forgotten since it may belong to another member.
	Login(ctx context.Context, loginID, password string) (*domain.Credential, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*domain.Credential, error)

	// Token and Purge satisfy api.CredentialSource.
	Token(ctx context.Context) (string, error)
	Purge(ctx context.Context) error

	ActivePlan(ctx context.Context) (int64, error)
	// UseActivePlan remembers planID; zero forgets the current choice.
	UseActivePlan(ctx context.Context, planID int64) error
}

type PlanService interface {
	ListMine(ctx context.Context) ([]domain.PlanRow, error)
	Page(ctx context.Context, page0 int) (*PlanPage, error)
	Detail(ctx context.Context, planID int64) (*domain.PlanDetail, error)
	Delete(ctx context.Context, planID int64) error
}

// Authenticator performs the unauthenticated login exchange.
type Authenticator interface {
	Login(ctx context.Context, loginID, password string) (string, error)
}

// PlanAPI is the slice of the backend client PlanService needs.
type PlanAPI interface {
	MyPlans(ctx context.Context) ([]domain.PlanRow, error)
	GetPlan(ctx context.Context, planID int64) (*domain.Plan, error)
	GetPlanDetail(ctx context.Context, planID int64) (*domain.PlanDetail, error)
	ListDays(ctx context.Context, planID int64) ([]domain.Day, error)
	ListItems(ctx context.Context, dayID int64) ([]domain.Item, error)
	DeletePlan(ctx context.Context, planID int64) error
}
