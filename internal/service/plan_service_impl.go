package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/domain"
	"github.com/taebin/travelsay/internal/pagination"
)

// PlanPage is one page of the member's plans plus the selector around it.
type PlanPage struct {
	Rows       []domain.PlanRow
	Page       int
	TotalPages int
	TotalRows  int
	Selector   []pagination.Token
}

type planService struct {
	api      PlanAPI
	fanOut   int
	observer UseCaseObserver
}

// NewPlanService builds plan queries over the backend. fanOut bounds the
// concurrent per-day item requests of the detail fallback.
func NewPlanService(planAPI PlanAPI, fanOut int, observers ...UseCaseObserver) PlanService {
	if fanOut <= 0 {
		fanOut = 1
	}
	return &planService{api: planAPI, fanOut: fanOut, observer: useCaseObserverOrNoop(observers)}
}

func (s *planService) ListMine(ctx context.Context) ([]domain.PlanRow, error) {
	return s.api.MyPlans(ctx)
}

func (s *planService) Page(ctx context.Context, page0 int) (*PlanPage, error) {
	rows, err := s.api.MyPlans(ctx)
	if err != nil {
		return nil, err
	}
	total := pagination.TotalPages(len(rows), pagination.DefaultPageSize)
	page0 = pagination.Clamp(page0, total)
	return &PlanPage{
		Rows:       pagination.Slice(rows, page0, pagination.DefaultPageSize),
		Page:       page0,
		TotalPages: total,
		TotalRows:  len(rows),
		Selector:   pagination.Window(total, page0, pagination.DefaultWindow),
	}, nil
}

// Detail prefers the single-call endpoint. When it fails for any reason
// other than authentication, the plan is assembled from its days and a
// bounded fan-out of per-day item requests. A failed item request degrades
// that day to no items rather than failing the whole view.
func (s *planService) Detail(ctx context.Context, planID int64) (detail *domain.PlanDetail, err error) {
	fields := map[string]any{"plan_id": planID}
	defer observe(ctx, s.observer, "plan-detail", time.Now(), fields, &err)

	detail, err = s.api.GetPlanDetail(ctx, planID)
	if err == nil {
		fields["source"] = "detail"
		return detail, nil
	}
	if isAuthFailure(err) {
		return nil, err
	}
	fields["source"] = "fallback"
	fields["detail_error"] = err.Error()

	plan, err := s.api.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	days, err := s.api.ListDays(ctx, planID)
	if err != nil {
		return nil, err
	}

	items := make([][]domain.Item, len(days))
	failed := make([]bool, len(days))
	var g errgroup.Group
	g.SetLimit(s.fanOut)
	for i, day := range days {
		g.Go(func() error {
			list, err := s.api.ListItems(ctx, day.ID)
			if err != nil {
				failed[i] = true
				list = []domain.Item{}
			}
			items[i] = list
			return nil
		})
	}
	_ = g.Wait()

	degraded := 0
	detail = &domain.PlanDetail{
		PlanID:      plan.ID,
		Title:       plan.Title,
		IsPublic:    plan.IsPublic,
		IsCompleted: plan.IsCompleted,
		Days:        make([]domain.DayDetail, len(days)),
	}
	for i, day := range days {
		detail.Days[i] = domain.DayDetail{DayID: day.ID, TripDate: day.TripDate, Items: items[i]}
		if failed[i] {
			degraded++
		}
	}
	fields["degraded_days"] = degraded
	return detail, nil
}

func (s *planService) Delete(ctx context.Context, planID int64) (err error) {
	defer observe(ctx, s.observer, "plan-delete", time.Now(), map[string]any{"plan_id": planID}, &err)
	return s.api.DeletePlan(ctx, planID)
}

func isAuthFailure(err error) bool {
	return errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNoCredential)
}
