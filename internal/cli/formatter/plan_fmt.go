package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taebin/travelsay/internal/domain"
	"github.com/taebin/travelsay/internal/pagination"
	"github.com/taebin/travelsay/internal/service"
)

// FormatPlanPage renders one page of the member's plans with the page
// selector underneath.
func FormatPlanPage(page *service.PlanPage, now time.Time) string {
	if page == nil || page.TotalRows == 0 {
		return RenderBox("My plans", Dim("No plans yet. Create one with `travelsay plan create`."))
	}

	headers := []string{"ID", "TITLE", "START", "STATUS", "VISIBILITY"}
	rows := make([][]string, 0, len(page.Rows))
	for _, r := range page.Rows {
		start := Dim("-")
		if r.StartDate != nil {
			start = domain.FormatDate(*r.StartDate) + " " + Dim("("+RelativeDateFrom(*r.StartDate, now)+")")
		}
		rows = append(rows, []string{
			StyleGreen.Render(strconv.FormatInt(r.PlanID, 10)),
			Truncate(r.Title, 40),
			start,
			StatusPill(r.Status(now)),
			VisibilityBadge(r.IsPublic),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	if sel := FormatSelector(page.Selector); sel != "" {
		b.WriteString("\n" + sel + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("page %d/%d, %d plans", page.Page+1, page.TotalPages, page.TotalRows)))

	return RenderBox("My plans", b.String())
}

// FormatSelector renders page tokens on one line. The active page is
// bracketed and disabled arrows are dimmed.
func FormatSelector(tokens []pagination.Token) string {
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch {
		case t.Active:
			parts = append(parts, StyleHeader.Render("["+t.Label+"]"))
		case t.Disabled, t.Kind == pagination.TokenEllipsis:
			parts = append(parts, Dim(t.Label))
		default:
			parts = append(parts, StyleFg.Render(t.Label))
		}
	}
	return strings.Join(parts, " ")
}

// FormatPlanDetail renders a read-only plan with every day and its items.
func FormatPlanDetail(d *domain.PlanDetail) string {
	var b strings.Builder

	flags := VisibilityBadge(d.IsPublic)
	if d.IsCompleted {
		flags += "  " + StatusPill(domain.PlanCompleted)
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(d.Title), flags))
	b.WriteString(Dim(fmt.Sprintf("plan #%d, %d days", d.PlanID, len(d.Days))))

	for i, day := range d.Days {
		b.WriteString("\n\n")
		b.WriteString(Header(fmt.Sprintf("Day %d  %s", i+1, domain.FormatDate(day.TripDate))))
		b.WriteString("\n")
		if len(day.Items) == 0 {
			b.WriteString(Dim("  no items"))
			continue
		}
		b.WriteString(FormatItemLines(day.Items, -1))
	}

	return RenderBox(fmt.Sprintf("Plan #%d", d.PlanID), b.String())
}

// FormatDayList renders the days of a plan, marking the current one.
func FormatDayList(days []domain.Day, currentID int64) string {
	if len(days) == 0 {
		return Dim("No days yet. Add one with `travelsay day add <YYYY-MM-DD>`.")
	}
	headers := []string{"", "DAY", "ID", "DATE"}
	rows := make([][]string, 0, len(days))
	for i, d := range days {
		marker := " "
		if d.ID == currentID {
			marker = StyleGreen.Render("▸")
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("Day %d", i+1),
			StyleGreen.Render(strconv.FormatInt(d.ID, 10)),
			d.Label(),
		})
	}
	return RenderTable(headers, rows)
}
