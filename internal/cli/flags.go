package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/taebin/travelsay/internal/clock"
	"github.com/taebin/travelsay/internal/domain"
)

// positionFlag is a 1-based item position that is nil until the flag is given.
type positionFlag struct {
	value *int
}

var _ pflag.Value = (*positionFlag)(nil)

func (f *positionFlag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.Itoa(*f.value)
}

func (f *positionFlag) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("position must be a whole number from 1")
	}
	f.value = &n
	return nil
}

func (f *positionFlag) Type() string { return "position" }

// amountFlag accepts "15000" or "15,000". An empty value means "clear".
type amountFlag struct {
	value *int
	clear bool
}

var _ pflag.Value = (*amountFlag)(nil)

func (f *amountFlag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.Itoa(*f.value)
}

func (f *amountFlag) Set(s string) error {
	v, err := domain.ParseAmount(s)
	if err != nil {
		return err
	}
	f.value = v
	f.clear = v == nil
	return nil
}

func (f *amountFlag) Type() string { return "amount" }

// itemFlags are the editable item fields shared by "item add" and "item update".
type itemFlags struct {
	title    string
	start    string
	amount   amountFlag
	merchant string
	memo     string
}

func (f *itemFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Item title")
	fs.StringVar(&f.start, "start", "", "Start time HH:MM (blank for none)")
	fs.Var(&f.amount, "amount", "Amount, e.g. 15,000 (blank to clear)")
	fs.StringVar(&f.merchant, "merchant", "", "Merchant or place name")
	fs.StringVar(&f.memo, "memo", "", "Free-form memo")
}

func (f *itemFlags) fields() domain.ItemFields {
	return domain.ItemFields{
		Title:     strings.TrimSpace(f.title),
		StartTime: normalizedStart(f.start),
		Amount:    f.amount.value,
		Merchant:  domain.NilIfBlank(f.merchant),
		Memo:      domain.NilIfBlank(f.memo),
	}
}

// patch includes only the flags the user actually passed.
func (f *itemFlags) patch(fs *pflag.FlagSet) domain.ItemPatch {
	var p domain.ItemPatch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("start") {
		start := domain.DerefStr(normalizedStart(f.start))
		p.StartTime = &start
	}
	if fs.Changed("amount") {
		p.Amount = f.amount.value
		p.ClearAmount = f.amount.clear
	}
	if fs.Changed("merchant") {
		p.Merchant = &f.merchant
	}
	if fs.Changed("memo") {
		p.Memo = &f.memo
	}
	return p
}

// normalizedStart turns "9:05" style input into "09:05"; unparseable input is
// passed through so the backend reports it.
func normalizedStart(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if norm := clock.FormatForEditing(s); norm != "" {
		return &norm
	}
	return &s
}
