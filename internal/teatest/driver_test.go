package teatest

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type countMsg struct{ n int }

// counter increments on "+" through a Cmd round-trip and quits on "q".
type counter struct {
	n     int
	width int
	quit  bool
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return countMsg{n: 10} }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case countMsg:
		c.n += msg.n
	case tea.QuitMsg:
		c.quit = true
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, tea.Batch(
				func() tea.Msg { return countMsg{n: 1} },
				func() tea.Msg { return countMsg{n: 1} },
			)
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return strconv.Itoa(c.n) }

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()
	assert.Equal(t, "10", d.View())
	assert.Equal(t, 80, d.Model.(counter).width)

	d.Press("+", "+")
	assert.Equal(t, "14", d.View())
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counter{})
	d.Press("q")
	assert.True(t, d.Quitting)
	assert.True(t, d.Model.(counter).quit)

	d.Press("+")
	assert.Equal(t, "0", d.View())
}

func TestDriver_CmdTimeoutOption(t *testing.T) {
	d := New(t, counter{})
	assert.Equal(t, DefaultCmdTimeout, d.timeout)

	d = New(t, counter{}, WithCmdTimeout(time.Second))
	d.DrainInit()
	assert.Equal(t, time.Second, d.timeout)
	assert.Equal(t, "10", d.View())
}
