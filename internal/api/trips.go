package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taebin/travelsay/internal/contract"
	"github.com/taebin/travelsay/internal/domain"
)

const tripsPrefix = "/api/trips"

func planPath(id int64) string { return fmt.Sprintf("%s/plans/%d", tripsPrefix, id) }
func dayPath(id int64) string  { return fmt.Sprintf("%s/days/%d", tripsPrefix, id) }
func itemPath(id int64) string { return fmt.Sprintf("%s/items/%d", tripsPrefix, id) }

// ── Plans ────────────────────────────────────────────────────────────────────

func (c *Client) MyPlans(ctx context.Context) ([]domain.PlanRow, error) {
	var rows []contract.MyPlanRow
	if err := c.do(ctx, call{method: http.MethodGet, path: tripsPrefix + "/plans/my", out: &rows, auth: true}); err != nil {
		return nil, err
	}
	out := make([]domain.PlanRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

func (c *Client) GetPlan(ctx context.Context, planID int64) (*domain.Plan, error) {
	var resp contract.PlanResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: planPath(planID), out: &resp, auth: true}); err != nil {
		return nil, err
	}
	p := resp.ToDomain()
	return &p, nil
}

func (c *Client) GetPlanDetail(ctx context.Context, planID int64) (*domain.PlanDetail, error) {
	var resp contract.PlanDetailResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: planPath(planID) + "/detail", out: &resp, auth: true}); err != nil {
		return nil, err
	}
	d := resp.ToDomain()
	return &d, nil
}

func (c *Client) CreatePlan(ctx context.Context, title string, isPublic bool) (*domain.Plan, error) {
	var resp contract.PlanResponse
	body := contract.CreatePlanRequest{Title: title, IsPublic: isPublic}
	if err := c.do(ctx, call{method: http.MethodPost, path: tripsPrefix + "/plans", body: body, out: &resp, auth: true}); err != nil {
		return nil, err
	}
	p := resp.ToDomain()
	return &p, nil
}

func (c *Client) UpdatePlan(ctx context.Context, p domain.Plan) error {
	body := contract.UpdatePlanRequest{Title: p.Title, IsPublic: p.IsPublic, IsCompleted: p.IsCompleted}
	return c.do(ctx, call{method: http.MethodPatch, path: planPath(p.ID), body: body, auth: true})
}

func (c *Client) DeletePlan(ctx context.Context, planID int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: planPath(planID), auth: true})
}

// ── Days ─────────────────────────────────────────────────────────────────────

func (c *Client) ListDays(ctx context.Context, planID int64) ([]domain.Day, error) {
	var days []contract.DayResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: planPath(planID) + "/days", out: &days, auth: true}); err != nil {
		return nil, err
	}
	return contract.DaysToDomain(days), nil
}

func (c *Client) CreateDay(ctx context.Context, planID int64, date string) (*domain.Day, error) {
	var resp contract.DayResponse
	body := contract.CreateDayRequest{TripDate: date}
	if err := c.do(ctx, call{method: http.MethodPost, path: planPath(planID) + "/days", body: body, out: &resp, auth: true}); err != nil {
		return nil, err
	}
	d := resp.ToDomain()
	return &d, nil
}

func (c *Client) DeleteDay(ctx context.Context, dayID int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: dayPath(dayID), auth: true})
}

// ── Items ────────────────────────────────────────────────────────────────────

func (c *Client) ListItems(ctx context.Context, dayID int64) ([]domain.Item, error) {
	var items []contract.ItemResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: dayPath(dayID) + "/items", out: &items, auth: true}); err != nil {
		return nil, err
	}
	return contract.ItemsToDomain(items), nil
}

func (c *Client) CreateItem(ctx context.Context, dayID int64, f domain.ItemFields, orderNo *int) (*domain.Item, error) {
	var resp contract.ItemResponse
	body := contract.CreateItemRequest{ItemFieldsRequest: contract.NewItemFieldsRequest(f), OrderNo: orderNo}
	if err := c.do(ctx, call{method: http.MethodPost, path: dayPath(dayID) + "/items", body: body, out: &resp, auth: true}); err != nil {
		return nil, err
	}
	it := resp.ToDomain()
	return &it, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, f domain.ItemFields) error {
	body := contract.NewItemFieldsRequest(f)
	return c.do(ctx, call{method: http.MethodPatch, path: itemPath(itemID), body: body, auth: true})
}

func (c *Client) ReorderItem(ctx context.Context, itemID int64, newOrderNo int) error {
	body := contract.ReorderItemRequest{NewOrderNo: newOrderNo}
	return c.do(ctx, call{method: http.MethodPatch, path: itemPath(itemID) + "/order", body: body, auth: true})
}

func (c *Client) MoveItem(ctx context.Context, itemID, targetDayID int64, newOrderNo *int) error {
	body := contract.MoveItemRequest{TargetDayID: targetDayID, NewOrderNo: newOrderNo}
	return c.do(ctx, call{method: http.MethodPatch, path: itemPath(itemID) + "/move", body: body, auth: true})
}

func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: itemPath(itemID), auth: true})
}

func (c *Client) ShiftItems(ctx context.Context, dayID int64, offset string) ([]domain.Item, error) {
	var items []contract.ItemResponse
	body := contract.ShiftItemsRequest{Offset: offset}
	if err := c.do(ctx, call{method: http.MethodPatch, path: dayPath(dayID) + "/items/shift-time", body: body, out: &items, auth: true}); err != nil {
		return nil, err
	}
	return contract.ItemsToDomain(items), nil
}
