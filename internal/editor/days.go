package editor

import (
	"context"
	"errors"
	"slices"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/domain"
)

// DayCollection caches a plan's days and tracks which one is current.
type DayCollection struct {
	api     DayAPI
	items   *ItemSequence
	planID  int64
	days    []domain.Day
	current int64
}

func NewDayCollection(dayAPI DayAPI, items *ItemSequence) *DayCollection {
	return &DayCollection{api: dayAPI, items: items}
}

func (c *DayCollection) Days() []domain.Day { return slices.Clone(c.days) }

func (c *DayCollection) Len() int { return len(c.days) }

// Current returns the selected day, if any.
func (c *DayCollection) Current() (domain.Day, bool) {
	return c.find(c.current)
}

func (c *DayCollection) find(dayID int64) (domain.Day, bool) {
	if dayID == 0 {
		return domain.Day{}, false
	}
	for _, d := range c.days {
		if d.ID == dayID {
			return d, true
		}
	}
	return domain.Day{}, false
}

// Load replaces the collection with the plan's days as returned. The
// current day is dropped when it is no longer among them.
func (c *DayCollection) Load(ctx context.Context, planID int64) error {
	days, err := c.api.ListDays(ctx, planID)
	if err != nil {
		return err
	}
	c.planID = planID
	c.days = days
	if _, ok := c.find(c.current); !ok {
		c.current = 0
		c.items.Clear()
	}
	return nil
}

// Add creates a day for date (YYYY-MM-DD) and reloads. A rejected date,
// usually a duplicate, leaves the collection untouched and returns
// *ConflictError.
func (c *DayCollection) Add(ctx context.Context, planID int64, date string) (*domain.Day, error) {
	parsed, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	created, err := c.api.CreateDay(ctx, planID, domain.FormatDate(parsed))
	if err != nil {
		if isRejection(err) {
			return nil, &ConflictError{Message: conflictMessage(err), Cause: err}
		}
		return nil, err
	}
	if err := c.Load(ctx, planID); err != nil {
		return created, err
	}
	for _, d := range c.days {
		if domain.SameDate(d.TripDate, parsed) {
			return &d, nil
		}
	}
	return created, nil
}

func conflictMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.FromServer() {
		return apiErr.Message
	}
	return DuplicateDateMessage
}

// Select makes dayID current and loads its items.
func (c *DayCollection) Select(ctx context.Context, dayID int64) error {
	if _, ok := c.find(dayID); !ok {
		return ErrUnknownDay
	}
	if err := c.items.Load(ctx, dayID); err != nil {
		return err
	}
	c.current = dayID
	return nil
}

// Remove deletes a day with its items and reloads.
func (c *DayCollection) Remove(ctx context.Context, dayID int64) error {
	if _, ok := c.find(dayID); !ok {
		return ErrUnknownDay
	}
	if err := c.api.DeleteDay(ctx, dayID); err != nil {
		return err
	}
	return c.Load(ctx, c.planID)
}
