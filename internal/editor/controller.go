package editor

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taebin/travelsay/internal/clock"
	"github.com/taebin/travelsay/internal/domain"
)

// DefaultShiftOffset is used when ShiftAll is called with a blank offset.
const DefaultShiftOffset = "00:00"

// Snapshot is a copy of the editor state handed to listeners and views.
type Snapshot struct {
	Plan         domain.Plan
	Stage        domain.EditorStage
	Days         []domain.Day
	CurrentDayID int64
	Items        []domain.Item
}

// Range is the display time range of the item at index.
func (s Snapshot) Range(index int) string {
	return clock.DeriveRange(s.Items, index)
}

// CurrentDay returns the selected day, if any.
func (s Snapshot) CurrentDay() (domain.Day, bool) {
	for _, d := range s.Days {
		if d.ID == s.CurrentDayID && d.ID != 0 {
			return d, true
		}
	}
	return domain.Day{}, false
}

// Controller drives one plan through creating, adding days and editing
// items. Operations are meant to be awaited one at a time; the mutex only
// keeps listeners from observing a half-applied reload.
type Controller struct {
	mu        sync.Mutex
	plans     PlanAPI
	days      *DayCollection
	items     *ItemSequence
	plan      domain.Plan
	stage     domain.EditorStage
	listeners []func(Snapshot)
	now       func() time.Time
}

// New returns a controller for a plan that does not exist yet.
func New(backend Backend) *Controller {
	items := NewItemSequence(backend)
	return &Controller{
		plans: backend,
		days:  NewDayCollection(backend, items),
		items: items,
		stage: domain.StageCreating,
		now:   time.Now,
	}
}

// Subscribe registers fn to run after every state change. The returned
// func removes it.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
	idx := len(c.listeners) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if idx < len(c.listeners) {
			c.listeners[idx] = nil
		}
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	current, _ := c.days.Current()
	return Snapshot{
		Plan:         c.plan,
		Stage:        c.stage,
		Days:         c.days.Days(),
		CurrentDayID: current.ID,
		Items:        c.items.Items(),
	}
}

// changed notifies listeners with snap. Callers hold mu; listeners run
// after it is released so they may call Snapshot.
func (c *Controller) changed(snap Snapshot) func() {
	listeners := slices.Clone(c.listeners)
	return func() {
		for _, fn := range listeners {
			if fn != nil {
				fn(snap)
			}
		}
	}
}

// run executes op under the lock. Listeners are notified when op succeeds,
// and also when it fails after part of the state was already replaced.
func (c *Controller) run(op func() error) error {
	c.mu.Lock()
	before := c.snapshotLocked()
	err := op()
	after := c.snapshotLocked()
	var notify func()
	if err == nil || !reflect.DeepEqual(before, after) {
		notify = c.changed(after)
	}
	c.mu.Unlock()
	if notify != nil {
		notify()
	}
	return err
}

// Open loads an existing plan for editing. The first day is selected when
// the plan has any.
func (c *Controller) Open(ctx context.Context, planID int64) error {
	return c.run(func() error {
		plan, err := c.plans.GetPlan(ctx, planID)
		if err != nil {
			return err
		}
		if err := c.days.Load(ctx, planID); err != nil {
			return err
		}
		c.plan = *plan
		c.stage = domain.StagePlanSavedNoDay
		if days := c.days.Days(); len(days) > 0 {
			if err := c.days.Select(ctx, days[0].ID); err != nil {
				return err
			}
			c.stage = domain.StageEditing
		}
		return nil
	})
}

// SavePlan creates the plan on first save, then adds and selects its first
// day on firstDate (today when blank). Later saves send the full plan.
func (c *Controller) SavePlan(ctx context.Context, draft domain.Plan, firstDate string) error {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := draft.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	saved := c.plan.Saved()
	id := c.plan.ID
	c.mu.Unlock()

	if saved {
		draft.ID = id
		return c.run(func() error {
			if err := c.plans.UpdatePlan(ctx, draft); err != nil {
				return err
			}
			refreshed, err := c.plans.GetPlan(ctx, id)
			if err != nil {
				c.plan = draft
				if Classify(err) == FailureAuth {
					return err
				}
				return nil
			}
			c.plan = *refreshed
			return nil
		})
	}

	err := c.run(func() error {
		created, err := c.plans.CreatePlan(ctx, draft.Title, draft.IsPublic)
		if err != nil {
			return err
		}
		c.plan = *created
		c.stage = domain.StagePlanSavedNoDay
		return nil
	})
	if err != nil {
		return err
	}

	if strings.TrimSpace(firstDate) == "" {
		firstDate = domain.FormatDate(c.now())
	}
	return c.AddDay(ctx, firstDate)
}

// AddDay creates a day and selects it.
func (c *Controller) AddDay(ctx context.Context, date string) error {
	return c.run(func() error {
		if !c.plan.Saved() {
			return ErrPlanNotSaved
		}
		day, err := c.days.Add(ctx, c.plan.ID, date)
		if err != nil {
			return err
		}
		if err := c.days.Select(ctx, day.ID); err != nil {
			return err
		}
		c.stage = domain.StageEditing
		return nil
	})
}

func (c *Controller) SelectDay(ctx context.Context, dayID int64) error {
	return c.run(func() error {
		if err := c.days.Select(ctx, dayID); err != nil {
			return err
		}
		c.stage = domain.StageEditing
		return nil
	})
}

// RemoveDay deletes a day. When it was current, the first remaining day is
// selected instead; a plan left without days shows as saved-with-no-days.
func (c *Controller) RemoveDay(ctx context.Context, dayID int64) error {
	return c.run(func() error {
		if err := c.days.Remove(ctx, dayID); err != nil {
			return err
		}
		if _, ok := c.days.Current(); ok {
			return nil
		}
		days := c.days.Days()
		if len(days) == 0 {
			c.stage = domain.StagePlanSavedNoDay
			return nil
		}
		return c.days.Select(ctx, days[0].ID)
	})
}

func (c *Controller) currentDayLocked() (int64, error) {
	day, ok := c.days.Current()
	if !ok {
		return 0, ErrNoCurrentDay
	}
	return day.ID, nil
}

// AddItem appends an item to the current day, or inserts it at position.
func (c *Controller) AddItem(ctx context.Context, fields domain.ItemFields, position *int) error {
	return c.run(func() error {
		dayID, err := c.currentDayLocked()
		if err != nil {
			return err
		}
		return c.items.Create(ctx, dayID, fields, position)
	})
}

func (c *Controller) UpdateItem(ctx context.Context, itemID int64, patch domain.ItemPatch) error {
	return c.run(func() error {
		if _, err := c.currentDayLocked(); err != nil {
			return err
		}
		return c.items.Update(ctx, itemID, patch)
	})
}

func (c *Controller) MoveItem(ctx context.Context, itemID int64, dir domain.Direction) error {
	return c.run(func() error {
		if _, err := c.currentDayLocked(); err != nil {
			return err
		}
		return c.items.Move(ctx, itemID, dir)
	})
}

func (c *Controller) DeleteItem(ctx context.Context, itemID int64) error {
	return c.run(func() error {
		if _, err := c.currentDayLocked(); err != nil {
			return err
		}
		return c.items.Delete(ctx, itemID)
	})
}

// RelocateItem moves an item from the current day to another day.
func (c *Controller) RelocateItem(ctx context.Context, itemID, targetDayID int64, position *int) error {
	return c.run(func() error {
		if _, err := c.currentDayLocked(); err != nil {
			return err
		}
		if _, ok := c.days.find(targetDayID); !ok {
			return ErrUnknownDay
		}
		return c.items.Relocate(ctx, itemID, targetDayID, position)
	})
}

// ShiftAll shifts every timed item of the current day by offset.
func (c *Controller) ShiftAll(ctx context.Context, offset string) error {
	if strings.TrimSpace(offset) == "" {
		offset = DefaultShiftOffset
	}
	return c.run(func() error {
		dayID, err := c.currentDayLocked()
		if err != nil {
			return err
		}
		return c.items.ShiftAll(ctx, dayID, strings.TrimSpace(offset))
	})
}

// Reload re-reads the days and the current day's items.
func (c *Controller) Reload(ctx context.Context) error {
	return c.run(func() error {
		if !c.plan.Saved() {
			return ErrPlanNotSaved
		}
		current, hadCurrent := c.days.Current()
		if err := c.days.Load(ctx, c.plan.ID); err != nil {
			return err
		}
		if hadCurrent {
			if _, ok := c.days.find(current.ID); ok {
				return c.items.Load(ctx, current.ID)
			}
		}
		return nil
	})
}
