package imports

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	balanceNoise  = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", ",", "")
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

	// balanceCeiling bounds amounts to 16 integer digits.
	balanceCeiling = decimal.New(1, maxBalanceDigits)
)

const maxBalanceDigits = 16

// ParseBalance turns a spreadsheet money cell into a non-negative amount.
// Only the leading numeric part of the cell is read; anything that does not
// start with a number yields zero, and so does an amount with more than 16
// integer digits or an exponent beyond that range.
func ParseBalance(raw string) decimal.Decimal {
	cleaned := balanceNoise.Replace(raw)
	cleaned = strings.Join(strings.Fields(cleaned), "")
	if cleaned == "" {
		return decimal.Zero
	}

	match := numericPrefix.FindStringSubmatch(cleaned)
	if match == nil {
		return decimal.Zero
	}
	if exp := match[3]; exp != "" {
		n, err := strconv.Atoi(exp[1:])
		if err != nil || n > maxBalanceDigits || n < -maxBalanceDigits {
			return decimal.Zero
		}
	}

	amount, err := decimal.NewFromString(match[0])
	if err != nil {
		return decimal.Zero
	}
	amount = amount.Abs()
	if amount.Cmp(balanceCeiling) >= 0 {
		return decimal.Zero
	}
	return amount
}

// strictDateLayouts are tried first, in order.
var strictDateLayouts = []string{
	"2006-1-2",
	"1-2-2006",
	"1/2/2006",
}

var looseDateLayouts = []string{
	"2006/1/2",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"2006.01.02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
}

// ParseDate accepts the date spellings collection files commonly use and
// returns the calendar day at UTC midnight, or nil for empty or invalid input.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range strictDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOnly(t)
		}
	}
	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOnly(t)
		}
	}
	return nil
}

// FormatDate renders a parsed date as YYYY-MM-DD, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func dateOnly(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
