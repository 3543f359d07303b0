package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/taebin/travelsay/internal/editor"
)

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

// resolvePlanID returns explicit when set, otherwise the plan chosen with "use".
func resolvePlanID(ctx context.Context, app *App, explicit int64) (int64, error) {
	if explicit > 0 {
		return explicit, nil
	}
	return app.Session.ActivePlan(ctx)
}

// planIDArg reads the plan id from args[0] when present, then falls back to
// --plan and the active plan.
func planIDArg(ctx context.Context, app *App, args []string, flag int64) (int64, error) {
	if len(args) > 0 {
		return parseID("plan", args[0])
	}
	return resolvePlanID(ctx, app, flag)
}

// openPlan loads a plan into a new controller. dayID selects a day other
// than the first; zero keeps the default.
func openPlan(ctx context.Context, app *App, planID, dayID int64) (*editor.Controller, error) {
	ctl := editor.New(app.Backend)
	if err := ctl.Open(ctx, planID); err != nil {
		return nil, fmt.Errorf("opening plan %d: %w", planID, err)
	}
	if dayID > 0 && dayID != ctl.Snapshot().CurrentDayID {
		if err := ctl.SelectDay(ctx, dayID); err != nil {
			return nil, err
		}
	}
	return ctl, nil
}

// openForItem opens the plan on the day holding itemID. Without dayID every
// day is searched in order.
func openForItem(ctx context.Context, app *App, planID, dayID, itemID int64) (*editor.Controller, error) {
	ctl, err := openPlan(ctx, app, planID, dayID)
	if err != nil {
		return nil, err
	}
	if hasItem(ctl.Snapshot(), itemID) {
		return ctl, nil
	}
	if dayID == 0 {
		for _, d := range ctl.Snapshot().Days {
			if err := ctl.SelectDay(ctx, d.ID); err != nil {
				return nil, err
			}
			if hasItem(ctl.Snapshot(), itemID) {
				return ctl, nil
			}
		}
	}
	return nil, fmt.Errorf("item %d: %w", itemID, editor.ErrItemNotLoaded)
}

func hasItem(s editor.Snapshot, itemID int64) bool {
	for _, it := range s.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}
