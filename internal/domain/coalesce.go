package domain

import "strings"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// DerefStr returns *p, or "" when p is nil.
func DerefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// NilIfBlank trims s and returns nil when nothing is left.
func NilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
