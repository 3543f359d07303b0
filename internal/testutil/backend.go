package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"github.com/taebin/travelsay/internal/contract"
	"github.com/taebin/travelsay/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

var (
	fakeStartPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(?::([0-5]\d))?$`)
	fakeOffsetPattern = regexp.MustCompile(`^([+-]?)(?:([01]?\d|2[0-3]):([0-5]\d)|(24):(00))$`)
)

type fakePlan struct {
	id          int64
	owner       string
	title       string
	isPublic    bool
	isCompleted bool
}

type fakeDay struct {
	id     int64
	planID int64
	date   string
}

type fakeItem struct {
	id       int64
	dayID    int64
	title    string
	start    *int // seconds since midnight
	amount   *int
	merchant *string
	memo     *string
	orderNo  int
}

// FakeBackend is an in-process trip backend with the same ordering,
// ownership and validation rules as the real service. State is kept in
// memory and guarded by a mutex.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	secret    []byte
	users     map[string]string
	nextID    int64
	plans     map[int64]*fakePlan
	days      map[int64]*fakeDay
	items     map[int64]*fakeItem
	detailOff bool
	failItems map[int64]bool
	failNext  map[string]int
	requests  []string
}

// NewFakeBackend starts a backend that is shut down with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		secret:    []byte("travelsay-test-secret"),
		users:     map[string]string{},
		plans:     map[int64]*fakePlan{},
		days:      map[int64]*fakeDay{},
		items:     map[int64]*fakeItem{},
		failItems: map[int64]bool{},
		failNext:  map[string]int{},
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the backend's base URL.
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

func (b *FakeBackend) routes() http.Handler {
	r := httprouter.New()

	r.POST("/api/member/login", b.login)
	r.GET("/api/member/me", b.authed(b.me))

	r.POST("/api/trips/plans", b.authed(b.createPlan))
	// httprouter cannot mix the static "my" segment with :planId.
	r.GET("/api/trips/plans/:planId", b.authed(b.getPlanOrMine))
	r.PATCH("/api/trips/plans/:planId", b.authed(b.updatePlan))
	r.DELETE("/api/trips/plans/:planId", b.authed(b.deletePlan))
	r.GET("/api/trips/plans/:planId/detail", b.authed(b.planDetail))
	r.GET("/api/trips/plans/:planId/days", b.authed(b.listDays))
	r.POST("/api/trips/plans/:planId/days", b.authed(b.createDay))

	r.DELETE("/api/trips/days/:dayId", b.authed(b.deleteDay))
	r.GET("/api/trips/days/:dayId/items", b.authed(b.listItems))
	r.POST("/api/trips/days/:dayId/items", b.authed(b.createItem))
	r.PATCH("/api/trips/days/:dayId/items/shift-time", b.authed(b.shiftItems))

	r.PATCH("/api/trips/items/:itemId", b.authed(b.updateItem))
	r.DELETE("/api/trips/items/:itemId", b.authed(b.deleteItem))
	r.PATCH("/api/trips/items/:itemId/order", b.authed(b.reorderItem))
	r.PATCH("/api/trips/items/:itemId/move", b.authed(b.moveItem))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := req.Method + " " + req.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, key)
		status, forced := b.failNext[key]
		delete(b.failNext, key)
		b.mu.Unlock()
		if forced {
			writeError(w, status, "FORCED", fmt.Sprintf("forced failure %d", status))
			return
		}
		r.ServeHTTP(w, req)
	})
}

// ── Test controls ────────────────────────────────────────────────────────────

// AddUser registers a member that can log in.
func (b *FakeBackend) AddUser(loginID, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[loginID] = password
}

// IssueToken signs a token for loginID valid for ttl. A non-positive ttl
// yields an already expired token.
func (b *FakeBackend) IssueToken(loginID string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   loginID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// SetDetailEnabled toggles the single-call plan detail endpoint.
func (b *FakeBackend) SetDetailEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detailOff = !enabled
}

// FailItems makes GET items for dayID answer 500.
func (b *FakeBackend) FailItems(dayID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failItems[dayID] = true
}

// NextID is the id the next created plan, day or item will get.
func (b *FakeBackend) NextID() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nextID + 1
}

// FailNext makes the next request matching method and path answer status.
func (b *FakeBackend) FailNext(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext[method+" "+path] = status
}

// Requests returns every "METHOD /path" received so far.
func (b *FakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// CountRequests counts received requests with the given method and path.
func (b *FakeBackend) CountRequests(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r == method+" "+path {
			n++
		}
	}
	return n
}

// SeedPlan stores a plan owned by owner and returns its id.
func (b *FakeBackend) SeedPlan(owner, title string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := &fakePlan{id: b.allocID(), owner: owner, title: title}
	b.plans[p.id] = p
	return p.id
}

// CompletePlan flags a seeded plan as completed.
func (b *FakeBackend) CompletePlan(planID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.plans[planID].isCompleted = true
}

// SeedDay adds a day (YYYY-MM-DD) to a plan and returns its id.
func (b *FakeBackend) SeedDay(planID int64, date string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := &fakeDay{id: b.allocID(), planID: planID, date: date}
	b.days[d.id] = d
	return d.id
}

// SeedItem appends an item to a day. start is "HH:MM" or empty.
func (b *FakeBackend) SeedItem(dayID int64, title, start string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	it := &fakeItem{id: b.allocID(), dayID: dayID, title: title, orderNo: len(b.itemsOf(dayID)) + 1}
	if start != "" {
		secs, ok := parseFakeStart(start)
		if !ok {
			panic("bad start " + start)
		}
		it.start = &secs
	}
	b.items[it.id] = it
	return it.id
}

// ItemTitles returns a day's item titles in order.
func (b *FakeBackend) ItemTitles(dayID int64) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var titles []string
	for _, it := range b.itemsOf(dayID) {
		titles = append(titles, it.title)
	}
	return titles
}

// Item returns the stored item as the client would decode it.
func (b *FakeBackend) Item(itemID int64) (domain.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[itemID]
	if !ok {
		return domain.Item{}, false
	}
	return toItemResponse(it).ToDomain(), true
}

// DayCount is the number of days stored for a plan.
func (b *FakeBackend) DayCount(planID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.daysOf(planID))
}

// Plan returns the stored plan header.
func (b *FakeBackend) Plan(planID int64) (domain.Plan, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.plans[planID]
	if !ok {
		return domain.Plan{}, false
	}
	return domain.Plan{ID: p.id, Title: p.title, IsPublic: p.isPublic, IsCompleted: p.isCompleted}, true
}

// HasPlan reports whether the plan still exists.
func (b *FakeBackend) HasPlan(planID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.plans[planID]
	return ok
}

// ── State helpers (callers hold mu) ──────────────────────────────────────────

func (b *FakeBackend) allocID() int64 {
	b.nextID++
	return b.nextID
}

func (b *FakeBackend) daysOf(planID int64) []*fakeDay {
	var out []*fakeDay
	for _, d := range b.days {
		if d.planID == planID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].date != out[j].date {
			return out[i].date < out[j].date
		}
		return out[i].id < out[j].id
	})
	return out
}

func (b *FakeBackend) itemsOf(dayID int64) []*fakeItem {
	var out []*fakeItem
	for _, it := range b.items {
		if it.dayID == dayID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].orderNo < out[j].orderNo })
	return out
}

func (b *FakeBackend) renumber(dayID int64) {
	for i, it := range b.itemsOf(dayID) {
		it.orderNo = i + 1
	}
}

type backendError struct {
	status  int
	message string
}

func badRequest(msg string) *backendError {
	return &backendError{status: http.StatusBadRequest, message: msg}
}

func forbidden() *backendError {
	return &backendError{status: http.StatusForbidden, message: "no permission for this plan"}
}

func (b *FakeBackend) ownedPlan(user string, planID int64) (*fakePlan, *backendError) {
	p, ok := b.plans[planID]
	if !ok {
		return nil, badRequest("plan not found")
	}
	if p.owner != user {
		return nil, forbidden()
	}
	return p, nil
}

func (b *FakeBackend) ownedDay(user string, dayID int64) (*fakeDay, *backendError) {
	d, ok := b.days[dayID]
	if !ok {
		return nil, badRequest("day not found")
	}
	if _, e := b.ownedPlan(user, d.planID); e != nil {
		return nil, e
	}
	return d, nil
}

func (b *FakeBackend) ownedItem(user string, itemID int64) (*fakeItem, *backendError) {
	it, ok := b.items[itemID]
	if !ok {
		return nil, badRequest("item not found")
	}
	if _, e := b.ownedDay(user, it.dayID); e != nil {
		return nil, e
	}
	return it, nil
}

// ── HTTP plumbing ────────────────────────────────────────────────────────────

type authedHandle func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user string)

func (b *FakeBackend) authed(next authedHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
			return
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(header[7:], claims, func(*jwt.Token) (any, error) {
			return b.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.Subject == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}
		next(w, r, ps, claims.Subject)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, contract.ErrorBody{Code: code, Message: message})
}

func writeBackendError(w http.ResponseWriter, e *backendError) {
	code := "BAD_REQUEST"
	if e.status == http.StatusForbidden {
		code = "FORBIDDEN"
	}
	writeError(w, e.status, code, e.message)
}

func decode(r *http.Request, v any) *backendError {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("malformed body")
	}
	return nil
}

func idParam(ps httprouter.Params, name string) (int64, *backendError) {
	id, err := strconv.ParseInt(ps.ByName(name), 10, 64)
	if err != nil {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

func parseFakeStart(s string) (int, bool) {
	m := fakeStartPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	return h*3600 + mi*60 + sec, true
}

func parseFakeOffset(s string) (int, bool) {
	m := fakeOffsetPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	minutes := 24 * 60
	if m[4] == "" {
		h, _ := strconv.Atoi(m[2])
		mm, _ := strconv.Atoi(m[3])
		minutes = h*60 + mm
	}
	if m[1] == "-" {
		minutes = -minutes
	}
	return minutes * 60, true
}

func toItemResponse(it *fakeItem) contract.ItemResponse {
	resp := contract.ItemResponse{
		ID:       it.id,
		Title:    it.title,
		Amount:   it.amount,
		Merchant: it.merchant,
		Memo:     it.memo,
		OrderNo:  it.orderNo,
	}
	if it.start != nil {
		s := fmt.Sprintf("%02d:%02d:%02d", *it.start/3600, *it.start%3600/60, *it.start%60)
		resp.StartTime = &s
	}
	return resp
}

func (b *FakeBackend) itemResponses(dayID int64) []contract.ItemResponse {
	out := []contract.ItemResponse{}
	for _, it := range b.itemsOf(dayID) {
		out = append(out, toItemResponse(it))
	}
	return out
}

func applyItemFields(it *fakeItem, req contract.ItemFieldsRequest) *backendError {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return badRequest("title is required")
	}
	var start *int
	if req.StartTime != nil && *req.StartTime != "" {
		secs, ok := parseFakeStart(*req.StartTime)
		if !ok {
			return badRequest("invalid startTime")
		}
		start = &secs
	}
	it.title = title
	it.start = start
	it.amount = req.Amount
	it.merchant = req.Merchant
	it.memo = req.Memo
	return nil
}
