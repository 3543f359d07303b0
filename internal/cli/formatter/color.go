package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taebin/travelsay/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill renders a plan row's status the way the plan list shows it.
func StatusPill(status domain.PlanRowStatus) string {
	switch status {
	case domain.PlanUpcoming:
		return StyleGreen.Render("● upcoming")
	case domain.PlanExpired:
		return StyleYellow.Render("○ expired")
	case domain.PlanCompleted:
		return StyleDim.Render("✔ completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// StagePill renders the editor's progress stage.
func StagePill(stage domain.EditorStage) string {
	switch stage {
	case domain.StageCreating:
		return StyleBlue.Render("① plan")
	case domain.StagePlanSavedNoDay:
		return StyleYellow.Render("② days")
	case domain.StageEditing:
		return StyleGreen.Render("③ schedule")
	default:
		return StyleDim.Render(string(stage))
	}
}

// VisibilityBadge shows whether a plan is public.
func VisibilityBadge(public bool) string {
	if public {
		return StylePurple.Render("public")
	}
	return StyleDim.Render("private")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
