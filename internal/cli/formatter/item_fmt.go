package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taebin/travelsay/internal/clock"
	"github.com/taebin/travelsay/internal/domain"
)

// FormatItemTable renders a day's items in order with their derived ranges.
func FormatItemTable(items []domain.Item) string {
	if len(items) == 0 {
		return Dim("No items on this day.")
	}
	headers := []string{"#", "ID", "TIME", "TITLE", "AMOUNT", "MERCHANT", "MEMO"}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			StyleGreen.Render(strconv.FormatInt(it.ID, 10)),
			StyleBlue.Render(orDash(clock.DeriveRange(items, i))),
			Truncate(it.Title, 32),
			Amount(it.Amount),
			Truncate(orDash(domain.DerefStr(it.Merchant)), 20),
			Dim(Truncate(orDash(domain.DerefStr(it.Memo)), 24)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatItemLines renders items as an indented list. The line at cursor is
// highlighted; pass -1 for none.
func FormatItemLines(items []domain.Item, cursor int) string {
	var b strings.Builder
	for i, it := range items {
		prefix := "  "
		title := StyleFg.Render(it.Title)
		if i == cursor {
			prefix = StyleGreen.Render("▸ ")
			title = StyleBold.Render(it.Title)
		}

		timeCol := clock.DeriveCompactRange(items, i)
		if timeCol == "" {
			timeCol = "--:--"
		}

		line := fmt.Sprintf("%s%2d. %s %s", prefix, i+1, StyleBlue.Render(fmt.Sprintf("%-13s", timeCol)), title)
		if it.Amount != nil {
			line += "  " + StyleYellow.Render(Amount(it.Amount))
		}
		if m := domain.DerefStr(it.Merchant); m != "" {
			line += "  " + StylePurple.Render("@"+m)
		}
		if memo := domain.DerefStr(it.Memo); memo != "" {
			line += "  " + Dim(Truncate(memo, 30))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatItem renders a single item's fields, used after add/update.
func FormatItem(it domain.Item) string {
	start := clock.FormatForDisplay(it.StartClock())
	rows := [][]string{
		{Dim("id"), strconv.FormatInt(it.ID, 10)},
		{Dim("title"), it.Title},
		{Dim("start"), orDash(start)},
		{Dim("amount"), Amount(it.Amount)},
		{Dim("merchant"), orDash(domain.DerefStr(it.Merchant))},
		{Dim("memo"), orDash(domain.DerefStr(it.Memo))},
		{Dim("order"), strconv.Itoa(it.OrderNo)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-10s %s\n", r[0], r[1]))
	}
	return b.String()
}
