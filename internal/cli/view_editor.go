package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taebin/travelsay/internal/cli/formatter"
	"github.com/taebin/travelsay/internal/clock"
	"github.com/taebin/travelsay/internal/domain"
	"github.com/taebin/travelsay/internal/editor"
)

// shiftStepMinutes is how far +/- move every timed item of the day.
const shiftStepMinutes = 30

// planOpenedMsg signals that the plan and its first day have been loaded.
type planOpenedMsg struct {
	err error
}

// itemDoneMsg reports a finished item operation. Results are matched to
// the item by id, not by cursor position, since the list may have been
// reloaded in between.
type itemDoneMsg struct {
	itemID int64
	action string
	err    error
}

// dayDoneMsg reports a finished day-level operation (select, shift, reload).
type dayDoneMsg struct {
	dayID  int64
	action string
	err    error
}

type editorKeys struct {
	Up           key.Binding
	Down         key.Binding
	PrevDay      key.Binding
	NextDay      key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	Delete       key.Binding
	ShiftLater   key.Binding
	ShiftEarlier key.Binding
	Reload       key.Binding
	Quit         key.Binding
}

func defaultEditorKeys() editorKeys {
	return editorKeys{
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		PrevDay:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "day")),
		NextDay:      key.NewBinding(key.WithKeys("l", "right")),
		MoveUp:       key.NewBinding(key.WithKeys("K"), key.WithHelp("K/J", "move")),
		MoveDown:     key.NewBinding(key.WithKeys("J")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		ShiftLater:   key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", fmt.Sprintf("shift %dm", shiftStepMinutes))),
		ShiftEarlier: key.NewBinding(key.WithKeys("-")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// editorView is the interactive day-by-day schedule editor.
type editorView struct {
	ctx    context.Context
	ctl    *editor.Controller
	planID int64
	keys   editorKeys

	snap     editor.Snapshot
	cursor   int
	followID int64
	pending  int
	loading  bool

	// armedDelete is the item waiting for a second x.
	armedDelete int64

	status string
	err    error

	latest      *snapshotBox
	unsubscribe func()
}

// snapshotBox holds the last snapshot the controller published. Listeners
// run on command goroutines, Update reads it on the program goroutine.
type snapshotBox struct {
	mu   sync.Mutex
	snap editor.Snapshot
}

func (b *snapshotBox) store(s editor.Snapshot) {
	b.mu.Lock()
	b.snap = s
	b.mu.Unlock()
}

func (b *snapshotBox) load() editor.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

func newEditorView(ctx context.Context, ctl *editor.Controller, planID int64) *editorView {
	box := &snapshotBox{snap: ctl.Snapshot()}
	return &editorView{
		ctx:         ctx,
		ctl:         ctl,
		planID:      planID,
		keys:        defaultEditorKeys(),
		loading:     true,
		latest:      box,
		unsubscribe: ctl.Subscribe(box.store),
	}
}

func (v *editorView) Title() string {
	if v.snap.Plan.Title == "" {
		return fmt.Sprintf("Plan #%d", v.planID)
	}
	return v.snap.Plan.Title
}

func (v *editorView) ShortHelp() []key.Binding {
	return []key.Binding{
		v.keys.Down, v.keys.Up, v.keys.PrevDay, v.keys.MoveUp,
		v.keys.Delete, v.keys.ShiftLater, v.keys.Reload, v.keys.Quit,
	}
}

func (v *editorView) Init() tea.Cmd {
	ctx, ctl, planID := v.ctx, v.ctl, v.planID
	return func() tea.Msg {
		return planOpenedMsg{err: ctl.Open(ctx, planID)}
	}
}

func (v *editorView) itemCmd(itemID int64, action string, op func(context.Context) error) tea.Cmd {
	v.pending++
	ctx := v.ctx
	return func() tea.Msg {
		return itemDoneMsg{itemID: itemID, action: action, err: op(ctx)}
	}
}

func (v *editorView) dayCmd(dayID int64, action string, op func(context.Context) error) tea.Cmd {
	v.pending++
	ctx := v.ctx
	return func() tea.Msg {
		return dayDoneMsg{dayID: dayID, action: action, err: op(ctx)}
	}
}

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planOpenedMsg:
		v.loading = false
		v.err = msg.err
		v.refresh()
		return v, nil

	case itemDoneMsg:
		v.pending--
		v.err = msg.err
		if msg.err == nil {
			v.status = fmt.Sprintf("item %d %s", msg.itemID, msg.action)
			if msg.action != "deleted" {
				v.followID = msg.itemID
			}
		}
		v.refresh()
		return v, nil

	case dayDoneMsg:
		v.pending--
		v.err = msg.err
		if msg.err == nil && msg.action != "" {
			v.status = msg.action
		}
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *editorView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Quit) {
		v.unsubscribe()
		return v, tea.Quit
	}
	if v.loading {
		return v, nil
	}
	// Keys act on whatever the controller published last.
	v.refresh()

	armed := v.armedDelete
	v.armedDelete = 0
	ctl := v.ctl
	current, hasItem := v.currentItem()

	switch {
	case key.Matches(msg, v.keys.Up):
		v.setCursor(v.cursor - 1)
	case key.Matches(msg, v.keys.Down):
		v.setCursor(v.cursor + 1)

	case key.Matches(msg, v.keys.PrevDay), key.Matches(msg, v.keys.NextDay):
		delta := 1
		if key.Matches(msg, v.keys.PrevDay) {
			delta = -1
		}
		day, ok := v.adjacentDay(delta)
		if !ok {
			return v, nil
		}
		v.followID = 0
		v.cursor = 0
		return v, v.dayCmd(day.ID, "", func(ctx context.Context) error {
			return ctl.SelectDay(ctx, day.ID)
		})

	case key.Matches(msg, v.keys.MoveUp), key.Matches(msg, v.keys.MoveDown):
		if !hasItem {
			return v, nil
		}
		dir := domain.DirectionDown
		if key.Matches(msg, v.keys.MoveUp) {
			dir = domain.DirectionUp
		}
		return v, v.itemCmd(current.ID, "moved "+string(dir), func(ctx context.Context) error {
			return ctl.MoveItem(ctx, current.ID, dir)
		})

	case key.Matches(msg, v.keys.Delete):
		if !hasItem {
			return v, nil
		}
		if armed != current.ID {
			v.armedDelete = current.ID
			v.status = fmt.Sprintf("press x again to delete %q", current.Title)
			return v, nil
		}
		return v, v.itemCmd(current.ID, "deleted", func(ctx context.Context) error {
			return ctl.DeleteItem(ctx, current.ID)
		})

	case key.Matches(msg, v.keys.ShiftLater), key.Matches(msg, v.keys.ShiftEarlier):
		step := clock.FromMinutes(shiftStepMinutes)
		offset := "+" + step
		if key.Matches(msg, v.keys.ShiftEarlier) {
			offset = "-" + step
		}
		return v, v.dayCmd(v.snap.CurrentDayID, "shifted "+offset, func(ctx context.Context) error {
			return ctl.ShiftAll(ctx, offset)
		})

	case key.Matches(msg, v.keys.Reload):
		return v, v.dayCmd(v.snap.CurrentDayID, "reloaded", ctl.Reload)
	}
	return v, nil
}

// refresh takes a new snapshot and keeps the cursor on the followed item
// when it is still listed.
func (v *editorView) refresh() {
	v.snap = v.latest.load()
	if v.followID != 0 {
		for i, it := range v.snap.Items {
			if it.ID == v.followID {
				v.cursor = i
				return
			}
		}
	}
	v.setCursor(v.cursor)
}

func (v *editorView) setCursor(i int) {
	v.cursor = max(0, min(i, len(v.snap.Items)-1))
	if it, ok := v.currentItem(); ok {
		v.followID = it.ID
	}
}

func (v *editorView) currentItem() (domain.Item, bool) {
	if v.cursor < 0 || v.cursor >= len(v.snap.Items) {
		return domain.Item{}, false
	}
	return v.snap.Items[v.cursor], true
}

func (v *editorView) adjacentDay(delta int) (domain.Day, bool) {
	for i, d := range v.snap.Days {
		if d.ID == v.snap.CurrentDayID {
			j := i + delta
			if j < 0 || j >= len(v.snap.Days) {
				return domain.Day{}, false
			}
			return v.snap.Days[j], true
		}
	}
	return domain.Day{}, false
}

func (v *editorView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim(fmt.Sprintf("Loading plan #%d...", v.planID))
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(v.Title()) + "  " + formatter.StagePill(v.snap.Stage) + "\n\n  ")

	if len(v.snap.Days) == 0 {
		b.WriteString(formatter.Dim("No days yet. Add one with `travelsay day add`."))
	}
	for i, d := range v.snap.Days {
		label := fmt.Sprintf("Day %d %s", i+1, d.Label())
		if d.ID == v.snap.CurrentDayID {
			b.WriteString(formatter.StyleHeader.Render("[" + label + "]"))
		} else {
			b.WriteString(formatter.Dim(label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	if _, ok := v.snap.CurrentDay(); ok {
		if len(v.snap.Items) == 0 {
			b.WriteString("  " + formatter.Dim("No items on this day.") + "\n")
		} else {
			b.WriteString(formatter.FormatItemLines(v.snap.Items, v.cursor))
		}
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render(DescribeError(v.err)) + "\n")
	case v.status != "":
		b.WriteString("  " + formatter.StyleGreen.Render(v.status) + "\n")
	}
	if v.pending > 0 {
		b.WriteString("  " + formatter.Dim("working...") + "\n")
	}

	hints := make([]string, 0, len(v.ShortHelp()))
	for _, kb := range v.ShortHelp() {
		hints = append(hints, formatter.Dim(kb.Help().Key+": "+kb.Help().Desc))
	}
	b.WriteString("\n  " + strings.Join(hints, "  ") + "\n")

	return b.String()
}
