package clock

// Starter is anything with an optional start time ("" when unset).
type Starter interface {
	StartClock() string
}

// DeriveRange returns "<start> ~ <end>" for items[index] in display format.
// The end is the next item's start time, or EmDash when there is no next
// item or it has no start. An item without its own start yields "".
func DeriveRange[T Starter](items []T, index int) string {
	return deriveRange(items, index, FormatForDisplay)
}

// DeriveCompactRange is DeriveRange with "HH:MM" formatting.
func DeriveCompactRange[T Starter](items []T, index int) string {
	return deriveRange(items, index, FormatForEditing)
}

func deriveRange[T Starter](items []T, index int, format func(string) string) string {
	if index < 0 || index >= len(items) {
		return ""
	}
	start := format(items[index].StartClock())
	if start == "" {
		return ""
	}
	end := EmDash
	if index+1 < len(items) {
		if next := format(items[index+1].StartClock()); next != "" {
			end = next
		}
	}
	return start + " ~ " + end
}
