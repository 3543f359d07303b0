package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxMerchantLen = 200
	MaxMemoLen     = 500
)

// Item is one schedule entry of a day. OrderNo is assigned by the backend and
// defines display order; StartTime is user-entered and may disagree with it.
type Item struct {
	ID        int64
	Title     string
	StartTime *string
	Amount    *int
	Merchant  *string
	Memo      *string
	OrderNo   int
}

// StartClock returns the raw start time, or "" when unset.
func (i Item) StartClock() string {
	if i.StartTime == nil {
		return ""
	}
	return *i.StartTime
}

// Fields returns the editable fields of the item.
func (i Item) Fields() ItemFields {
	return ItemFields{
		Title:     i.Title,
		StartTime: i.StartTime,
		Amount:    i.Amount,
		Merchant:  i.Merchant,
		Memo:      i.Memo,
	}
}

// ItemFields is the full editable field set of an item.
type ItemFields struct {
	Title     string
	StartTime *string
	Amount    *int
	Merchant  *string
	Memo      *string
}

// Validate checks the fields the backend rejects before any request is made.
func (f ItemFields) Validate() error {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "item title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return &ValidationError{Field: "title", Message: "item title must be at most 200 characters"}
	}
	if f.Merchant != nil && utf8.RuneCountInString(*f.Merchant) > MaxMerchantLen {
		return &ValidationError{Field: "merchant", Message: "merchant must be at most 200 characters"}
	}
	if f.Memo != nil && utf8.RuneCountInString(*f.Memo) > MaxMemoLen {
		return &ValidationError{Field: "memo", Message: "memo must be at most 500 characters"}
	}
	return nil
}

// ItemPatch carries the fields a caller wants to change. Nil fields keep the
// current value; a pointer to "" clears an optional text field.
type ItemPatch struct {
	Title     *string
	StartTime *string
	Amount    *int
	Merchant  *string
	Memo      *string

	ClearAmount bool
}

// Apply returns f with the patch applied. Blank optional strings become nil.
func (p ItemPatch) Apply(f ItemFields) ItemFields {
	if p.Title != nil {
		f.Title = strings.TrimSpace(*p.Title)
	}
	if p.StartTime != nil {
		f.StartTime = NilIfBlank(*p.StartTime)
	}
	if p.ClearAmount {
		f.Amount = nil
	} else if p.Amount != nil {
		v := *p.Amount
		f.Amount = &v
	}
	if p.Merchant != nil {
		f.Merchant = NilIfBlank(*p.Merchant)
	}
	if p.Memo != nil {
		f.Memo = NilIfBlank(*p.Memo)
	}
	return f
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Title == nil && p.StartTime == nil && p.Amount == nil &&
		p.Merchant == nil && p.Memo == nil && !p.ClearAmount
}

// ParseAmount reads a user-entered amount such as "15,000". Blank input is nil.
func ParseAmount(s string) (*int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &ValidationError{Field: "amount", Message: "amount must be a whole number"}
	}
	return &n, nil
}
