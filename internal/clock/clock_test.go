package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"-01:30", -90},
		{"+01:30", 90},
		{"", 0},
		{"09:15", 555},
		{"09:15:59", 555},
		{"24:00", 1440},
		{"ab:cd", 0},
		{"7", 420},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseMinutes(tc.in), "ParseMinutes(%q)", tc.in)
	}
}

func TestFormatForEditing(t *testing.T) {
	assert.Equal(t, "09:05", FormatForEditing("09:05"))
	assert.Equal(t, "09:05", FormatForEditing("09:05:30"))
	assert.Equal(t, "09:05", FormatForEditing("9:05"))
	assert.Equal(t, "09:05", FormatForEditing("9:5"))
	assert.Equal(t, "07:00", FormatForEditing("7:0:0"))
	assert.Equal(t, "23:59", FormatForEditing("23:59:59.123"))
	assert.Equal(t, "", FormatForEditing(""))
	assert.Equal(t, "", FormatForEditing("noon"))
	assert.Equal(t, "", FormatForEditing("25:00"))
}

func TestFormatForEditing_Idempotent(t *testing.T) {
	for _, in := range []string{"00:00", "07:30", "12:00:00", "23:59:59", "8:05", "8:5"} {
		once := FormatForEditing(in)
		assert.Equal(t, once, FormatForEditing(once), "input %q", in)
	}
}

func TestFormatForDisplay(t *testing.T) {
	cases := map[string]string{
		"00:00":    "오전 12:00",
		"09:00":    "오전 9:00",
		"11:59":    "오전 11:59",
		"12:00":    "오후 12:00",
		"13:05:00": "오후 1:05",
		"23:30":    "오후 11:30",
		"9:5":      "오전 9:05",
		"":         "",
		"bad":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatForDisplay(in), "FormatForDisplay(%q)", in)
	}
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(0))
	assert.Equal(t, "10:30", FromMinutes(630))
	assert.Equal(t, "23:00", FromMinutes(-60))
}

func TestValidateOffset(t *testing.T) {
	for _, ok := range []string{"01:00", "-00:30", "+2:15", "24:00", "-24:00", "23:59"} {
		assert.NoError(t, ValidateOffset(ok), ok)
	}
	for _, bad := range []string{"", "1", "24:01", "01:60", "abc", "--01:00"} {
		assert.Error(t, ValidateOffset(bad), bad)
	}
}
