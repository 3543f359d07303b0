package contract

import "github.com/taebin/travelsay/internal/domain"

type ItemResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	StartTime *string `json:"startTime"`
	Amount    *int    `json:"amount"`
	Merchant  *string `json:"merchant"`
	Memo      *string `json:"memo"`
	OrderNo   int     `json:"orderNo"`
}

func (r ItemResponse) ToDomain() domain.Item {
	return domain.Item{
		ID:        r.ID,
		Title:     r.Title,
		StartTime: r.StartTime,
		Amount:    r.Amount,
		Merchant:  r.Merchant,
		Memo:      r.Memo,
		OrderNo:   r.OrderNo,
	}
}

func ItemsToDomain(in []ItemResponse) []domain.Item {
	out := make([]domain.Item, 0, len(in))
	for _, r := range in {
		out = append(out, r.ToDomain())
	}
	return out
}

// ItemFieldsRequest is the editable field set sent on update. Nil fields are
// sent as JSON null.
type ItemFieldsRequest struct {
	Title     string  `json:"title"`
	StartTime *string `json:"startTime"`
	Amount    *int    `json:"amount"`
	Merchant  *string `json:"merchant"`
	Memo      *string `json:"memo"`
}

func NewItemFieldsRequest(f domain.ItemFields) ItemFieldsRequest {
	return ItemFieldsRequest{
		Title:     f.Title,
		StartTime: f.StartTime,
		Amount:    f.Amount,
		Merchant:  f.Merchant,
		Memo:      f.Memo,
	}
}

// CreateItemRequest adds an optional insert position to the field set.
type CreateItemRequest struct {
	ItemFieldsRequest
	OrderNo *int `json:"orderNo,omitempty"`
}

type ReorderItemRequest struct {
	NewOrderNo int `json:"newOrderNo"`
}

type MoveItemRequest struct {
	TargetDayID int64 `json:"targetDayId"`
	NewOrderNo  *int  `json:"newOrderNo,omitempty"`
}

type ShiftItemsRequest struct {
	Offset string `json:"offset"`
}
