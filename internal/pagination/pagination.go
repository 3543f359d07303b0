// Package pagination slices an in-memory list into pages and lays out a
// compact page selector around the current page.
package pagination

import "strconv"

const (
	DefaultPageSize = 10
	DefaultWindow   = 5
)

// TotalPages is the number of pages for n rows, never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Slice returns the rows on zero-based page page0. Out-of-range pages yield
// an empty slice; negative pages are treated as 0.
func Slice[T any](rows []T, page0, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page0 < 0 {
		page0 = 0
	}
	start := page0 * size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}

// Clamp keeps page0 within [0, totalPages-1].
func Clamp(page0, totalPages int) int {
	if page0 < 0 {
		return 0
	}
	if totalPages > 0 && page0 > totalPages-1 {
		return totalPages - 1
	}
	return page0
}

type TokenKind int

const (
	TokenPrev TokenKind = iota
	TokenPage
	TokenEllipsis
	TokenNext
)

// Token is one element of the page selector. Page is zero-based and
// meaningless for ellipses.
type Token struct {
	Kind     TokenKind
	Page     int
	Label    string
	Active   bool
	Disabled bool
}

// Window lays out «, an optional first page and ellipsis, up to width
// consecutive pages around page0, an optional ellipsis and last page, then ».
// A single page needs no selector and yields nil.
func Window(totalPages, page0, width int) []Token {
	if totalPages <= 1 {
		return nil
	}
	if width <= 0 {
		width = DefaultWindow
	}
	cur := Clamp(page0, totalPages) + 1
	half := width / 2
	start := max(1, cur-half)
	end := min(totalPages, start+width-1)
	if end-start+1 < width {
		start = max(1, end-width+1)
	}

	tokens := []Token{{Kind: TokenPrev, Page: cur - 2, Label: "«", Disabled: cur == 1}}
	if start > 1 {
		tokens = append(tokens, pageToken(1, cur))
		if start > 2 {
			tokens = append(tokens, Token{Kind: TokenEllipsis, Label: "…"})
		}
	}
	for p := start; p <= end; p++ {
		tokens = append(tokens, pageToken(p, cur))
	}
	if end < totalPages {
		if end < totalPages-1 {
			tokens = append(tokens, Token{Kind: TokenEllipsis, Label: "…"})
		}
		tokens = append(tokens, pageToken(totalPages, cur))
	}
	tokens = append(tokens, Token{Kind: TokenNext, Page: cur, Label: "»", Disabled: cur == totalPages})
	return tokens
}

func pageToken(p, cur int) Token {
	return Token{Kind: TokenPage, Page: p - 1, Label: strconv.Itoa(p), Active: p == cur}
}
