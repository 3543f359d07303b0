package editor

import (
	"context"
	"slices"

	"github.com/taebin/travelsay/internal/clock"
	"github.com/taebin/travelsay/internal/domain"
)

// ItemSequence caches the items of one day in server order.
type ItemSequence struct {
	api   ItemAPI
	dayID int64
	items []domain.Item
}

func NewItemSequence(itemAPI ItemAPI) *ItemSequence {
	return &ItemSequence{api: itemAPI}
}

// DayID is the day the sequence was last loaded for, or 0.
func (s *ItemSequence) DayID() int64 { return s.dayID }

func (s *ItemSequence) Len() int { return len(s.items) }

// Items returns a copy in server order.
func (s *ItemSequence) Items() []domain.Item { return slices.Clone(s.items) }

// Find returns the loaded item with itemID and its index.
func (s *ItemSequence) Find(itemID int64) (domain.Item, int, bool) {
	for i, it := range s.items {
		if it.ID == itemID {
			return it, i, true
		}
	}
	return domain.Item{}, -1, false
}

// Range is the display time range of the item at index.
func (s *ItemSequence) Range(index int) string {
	return clock.DeriveRange(s.items, index)
}

func (s *ItemSequence) Clear() {
	s.dayID = 0
	s.items = nil
}

// Load replaces the sequence with the day's items as returned. On failure
// the previous contents stay.
func (s *ItemSequence) Load(ctx context.Context, dayID int64) error {
	items, err := s.api.ListItems(ctx, dayID)
	if err != nil {
		return err
	}
	s.dayID = dayID
	s.items = items
	return nil
}

// Create adds an item, at insertPos (1-based) when given, then reloads.
func (s *ItemSequence) Create(ctx context.Context, dayID int64, fields domain.ItemFields, insertPos *int) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if _, err := s.api.CreateItem(ctx, dayID, fields, insertPos); err != nil {
		return err
	}
	return s.Load(ctx, dayID)
}

// Update merges patch onto the loaded row and sends the full field set,
// since the backend overwrites every editable field.
func (s *ItemSequence) Update(ctx context.Context, itemID int64, patch domain.ItemPatch) error {
	item, _, ok := s.Find(itemID)
	if !ok {
		return ErrItemNotLoaded
	}
	merged := patch.Apply(item.Fields())
	if err := merged.Validate(); err != nil {
		return err
	}
	if err := s.api.UpdateItem(ctx, itemID, merged); err != nil {
		return err
	}
	return s.Load(ctx, s.dayID)
}

// Move asks the backend to put the item one position up or down. Boundaries
// are the backend's call; a rejection comes back as *MoveError and nothing
// is reloaded.
func (s *ItemSequence) Move(ctx context.Context, itemID int64, dir domain.Direction) error {
	item, _, ok := s.Find(itemID)
	if !ok {
		return ErrItemNotLoaded
	}
	if err := s.api.ReorderItem(ctx, itemID, item.OrderNo+dir.Delta()); err != nil {
		if Classify(err) == FailureAuth {
			return err
		}
		return &MoveError{ItemID: itemID, Direction: dir, Cause: err}
	}
	return s.Load(ctx, s.dayID)
}

func (s *ItemSequence) Delete(ctx context.Context, itemID int64) error {
	if err := s.api.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	return s.Load(ctx, s.dayID)
}

// ShiftAll moves every timed item of the day by offset in one request.
func (s *ItemSequence) ShiftAll(ctx context.Context, dayID int64, offset string) error {
	if err := clock.ValidateOffset(offset); err != nil {
		return &domain.ValidationError{Field: "offset", Message: err.Error()}
	}
	if _, err := s.api.ShiftItems(ctx, dayID, offset); err != nil {
		if isRejection(err) {
			return &ConflictError{Message: err.Error(), Cause: err}
		}
		return err
	}
	return s.Load(ctx, dayID)
}

// Relocate moves an item to another day of the same plan, appended when
// position is nil, then reloads the current day.
func (s *ItemSequence) Relocate(ctx context.Context, itemID, targetDayID int64, position *int) error {
	if err := s.api.MoveItem(ctx, itemID, targetDayID, position); err != nil {
		if isRejection(err) {
			return &ConflictError{Message: err.Error(), Cause: err}
		}
		return err
	}
	return s.Load(ctx, s.dayID)
}
