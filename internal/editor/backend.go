// Package editor holds the client-side state of the plan editor: the
// selected plan, its days, the items of the current day and the progress
// stage. The backend is the only writer; every mutation is followed by a
// reload instead of a local patch.
package editor

import (
	"context"

	"github.com/taebin/travelsay/internal/domain"
)

type ItemAPI interface {
	ListItems(ctx context.Context, dayID int64) ([]domain.Item, error)
	CreateItem(ctx context.Context, dayID int64, f domain.ItemFields, orderNo *int) (*domain.Item, error)
	UpdateItem(ctx context.Context, itemID int64, f domain.ItemFields) error
	ReorderItem(ctx context.Context, itemID int64, newOrderNo int) error
	MoveItem(ctx context.Context, itemID, targetDayID int64, newOrderNo *int) error
	DeleteItem(ctx context.Context, itemID int64) error
	ShiftItems(ctx context.Context, dayID int64, offset string) ([]domain.Item, error)
}

type DayAPI interface {
	ListDays(ctx context.Context, planID int64) ([]domain.Day, error)
	CreateDay(ctx context.Context, planID int64, date string) (*domain.Day, error)
	DeleteDay(ctx context.Context, dayID int64) error
}

type PlanAPI interface {
	GetPlan(ctx context.Context, planID int64) (*domain.Plan, error)
	CreatePlan(ctx context.Context, title string, isPublic bool) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, p domain.Plan) error
}

// Backend is everything the controller calls. *api.Client satisfies it.
type Backend interface {
	ItemAPI
	DayAPI
	PlanAPI
}
