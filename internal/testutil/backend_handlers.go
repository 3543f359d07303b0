package testutil

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/taebin/travelsay/internal/contract"
	"github.com/taebin/travelsay/internal/domain"
)

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req contract.LoginRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	pw, ok := b.users[req.LoginID]
	b.mu.Unlock()
	if !ok || pw != req.Password {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid login id or password")
		return
	}
	writeJSON(w, http.StatusOK, contract.AuthResponse{AccessToken: "Bearer " + b.IssueToken(req.LoginID, time.Hour)})
}

func (b *FakeBackend) me(w http.ResponseWriter, _ *http.Request, _ httprouter.Params, user string) {
	writeJSON(w, http.StatusOK, contract.MeResponse{LoginID: user})
}

// ── Plans ────────────────────────────────────────────────────────────────────

func (b *FakeBackend) createPlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user string) {
	var req contract.CreatePlanRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeBackendError(w, badRequest("title is required"))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := &fakePlan{id: b.allocID(), owner: user, title: strings.TrimSpace(req.Title), isPublic: req.IsPublic}
	b.plans[p.id] = p
	writeJSON(w, http.StatusOK, planResponse(p))
}

func planResponse(p *fakePlan) contract.PlanResponse {
	return contract.PlanResponse{ID: p.id, Title: p.title, IsPublic: p.isPublic, IsCompleted: p.isCompleted}
}

func (b *FakeBackend) getPlanOrMine(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	if ps.ByName("planId") == "my" {
		b.myPlans(w, user)
		return
	}
	id, e := idParam(ps, "planId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, e := b.ownedPlan(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	writeJSON(w, http.StatusOK, planResponse(p))
}

// myPlans orders by earliest trip date descending, plans without days last.
func (b *FakeBackend) myPlans(w http.ResponseWriter, user string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := []contract.MyPlanRow{}
	for _, p := range b.plans {
		if p.owner != user {
			continue
		}
		row := contract.MyPlanRow{PlanID: p.id, Title: p.title, IsPublic: p.isPublic, IsCompleted: p.isCompleted}
		if days := b.daysOf(p.id); len(days) > 0 {
			row.StartDate = days[0].date
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, c := rows[i], rows[j]
		switch {
		case a.StartDate == "" && c.StartDate == "":
			return a.PlanID > c.PlanID
		case a.StartDate == "":
			return false
		case c.StartDate == "":
			return true
		case a.StartDate != c.StartDate:
			return a.StartDate > c.StartDate
		default:
			return a.PlanID > c.PlanID
		}
	})
	writeJSON(w, http.StatusOK, rows)
}

func (b *FakeBackend) updatePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "planId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.UpdatePlanRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeBackendError(w, badRequest("title is required"))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, e := b.ownedPlan(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	p.title = strings.TrimSpace(req.Title)
	p.isPublic = req.IsPublic
	p.isCompleted = req.IsCompleted
	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) deletePlan(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "planId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, e := b.ownedPlan(user, id); e != nil {
		writeBackendError(w, e)
		return
	}
	for _, d := range b.daysOf(id) {
		b.dropDay(d.id)
	}
	delete(b.plans, id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) planDetail(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "planId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detailOff {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no handler")
		return
	}
	p, e := b.ownedPlan(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	resp := contract.PlanDetailResponse{
		PlanID:      p.id,
		Title:       p.title,
		IsPublic:    p.isPublic,
		IsCompleted: p.isCompleted,
		Days:        []contract.DetailDay{},
	}
	for _, d := range b.daysOf(id) {
		resp.Days = append(resp.Days, contract.DetailDay{DayID: d.id, TripDate: d.date, Items: b.itemResponses(d.id)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Days ─────────────────────────────────────────────────────────────────────

func (b *FakeBackend) listDays(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "planId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, e := b.ownedPlan(user, id); e != nil {
		writeBackendError(w, e)
		return
	}
	out := []contract.DayResponse{}
	for _, d := range b.daysOf(id) {
		out = append(out, contract.DayResponse{ID: d.id, TripDate: d.date})
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *FakeBackend) createDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "planId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.CreateDayRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	if _, err := time.Parse(domain.DateLayout, req.TripDate); err != nil {
		writeBackendError(w, badRequest("invalid tripDate"))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, e := b.ownedPlan(user, id); e != nil {
		writeBackendError(w, e)
		return
	}
	for _, d := range b.daysOf(id) {
		if d.date == req.TripDate {
			writeBackendError(w, badRequest("a day with this date already exists"))
			return
		}
	}
	d := &fakeDay{id: b.allocID(), planID: id, date: req.TripDate}
	b.days[d.id] = d
	writeJSON(w, http.StatusOK, contract.DayResponse{ID: d.id, TripDate: d.date})
}

func (b *FakeBackend) deleteDay(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "dayId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, e := b.ownedDay(user, id); e != nil {
		writeBackendError(w, e)
		return
	}
	b.dropDay(id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) dropDay(dayID int64) {
	for _, it := range b.itemsOf(dayID) {
		delete(b.items, it.id)
	}
	delete(b.days, dayID)
}

// ── Items ────────────────────────────────────────────────────────────────────

func (b *FakeBackend) listItems(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "dayId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failItems[id] {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "items unavailable")
		return
	}
	if _, e := b.ownedDay(user, id); e != nil {
		writeBackendError(w, e)
		return
	}
	writeJSON(w, http.StatusOK, b.itemResponses(id))
}

func (b *FakeBackend) createItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	dayID, e := idParam(ps, "dayId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.CreateItemRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, e := b.ownedDay(user, dayID); e != nil {
		writeBackendError(w, e)
		return
	}
	existing := b.itemsOf(dayID)
	pos := len(existing) + 1
	if req.OrderNo != nil {
		pos = *req.OrderNo
	}
	if pos < 1 || pos > len(existing)+1 {
		writeBackendError(w, badRequest("orderNo out of range"))
		return
	}
	it := &fakeItem{dayID: dayID, orderNo: pos}
	if e := applyItemFields(it, req.ItemFieldsRequest); e != nil {
		writeBackendError(w, e)
		return
	}
	for _, other := range existing {
		if other.orderNo >= pos {
			other.orderNo++
		}
	}
	it.id = b.allocID()
	b.items[it.id] = it
	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (b *FakeBackend) updateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "itemId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.ItemFieldsRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, e := b.ownedItem(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	if e := applyItemFields(it, req); e != nil {
		writeBackendError(w, e)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (b *FakeBackend) deleteItem(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "itemId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, e := b.ownedItem(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	delete(b.items, id)
	b.renumber(it.dayID)
	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) reorderItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "itemId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.ReorderItemRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, e := b.ownedItem(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	siblings := b.itemsOf(it.dayID)
	if req.NewOrderNo < 1 || req.NewOrderNo > len(siblings) {
		writeBackendError(w, badRequest("orderNo out of range"))
		return
	}
	reinsert(siblings, it, req.NewOrderNo)
	w.WriteHeader(http.StatusNoContent)
}

// reinsert places it at pos (1-based) within ordered and renumbers densely.
func reinsert(ordered []*fakeItem, it *fakeItem, pos int) {
	rest := make([]*fakeItem, 0, len(ordered))
	for _, o := range ordered {
		if o.id != it.id {
			rest = append(rest, o)
		}
	}
	out := make([]*fakeItem, 0, len(rest)+1)
	out = append(out, rest[:pos-1]...)
	out = append(out, it)
	out = append(out, rest[pos-1:]...)
	for i, o := range out {
		o.orderNo = i + 1
	}
}

func (b *FakeBackend) moveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	id, e := idParam(ps, "itemId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.MoveItemRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, e := b.ownedItem(user, id)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	target, e := b.ownedDay(user, req.TargetDayID)
	if e != nil {
		writeBackendError(w, e)
		return
	}
	if target.planID != b.days[it.dayID].planID {
		writeBackendError(w, badRequest("target day belongs to another plan"))
		return
	}
	if target.id == it.dayID {
		siblings := b.itemsOf(it.dayID)
		pos := len(siblings)
		if req.NewOrderNo != nil {
			pos = *req.NewOrderNo
		}
		if pos < 1 || pos > len(siblings) {
			writeBackendError(w, badRequest("orderNo out of range"))
			return
		}
		reinsert(siblings, it, pos)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	targetItems := b.itemsOf(target.id)
	pos := len(targetItems) + 1
	if req.NewOrderNo != nil {
		pos = *req.NewOrderNo
	}
	if pos < 1 || pos > len(targetItems)+1 {
		writeBackendError(w, badRequest("orderNo out of range"))
		return
	}
	source := it.dayID
	it.dayID = target.id
	b.renumber(source)
	reinsert(append(targetItems, it), it, pos)
	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) shiftItems(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string) {
	dayID, e := idParam(ps, "dayId")
	if e != nil {
		writeBackendError(w, e)
		return
	}
	var req contract.ShiftItemsRequest
	if e := decode(r, &req); e != nil {
		writeBackendError(w, e)
		return
	}
	delta, ok := parseFakeOffset(req.Offset)
	if !ok {
		writeBackendError(w, badRequest("offset must be [+|-]HH:MM"))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, e := b.ownedDay(user, dayID); e != nil {
		writeBackendError(w, e)
		return
	}
	items := b.itemsOf(dayID)
	for _, it := range items {
		if it.start == nil {
			continue
		}
		if shifted := *it.start + delta; shifted < 0 || shifted >= secondsPerDay {
			writeBackendError(w, badRequest("shifted time leaves the day"))
			return
		}
	}
	for _, it := range items {
		if it.start != nil {
			shifted := *it.start + delta
			it.start = &shifted
		}
	}
	writeJSON(w, http.StatusOK, b.itemResponses(dayID))
}
