// Package display formats profile values the way the web client shows them.
package display

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultName is shown when an account has no first or last name yet.
const DefaultName = "Nome Sobrenome"

var shortMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// Name joins the trimmed first and last names.
func Name(first, last string) string {
	parts := lo.Compact([]string{strings.TrimSpace(first), strings.TrimSpace(last)})
	if len(parts) == 0 {
		return DefaultName
	}
	return strings.Join(parts, " ")
}

// Selection trims values, drops empty ones and removes duplicates keeping the
// first occurrence. It never returns nil.
func Selection(values []string) []string {
	out := lo.Uniq(lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})))
	if out == nil {
		return []string{}
	}
	return out
}

// Date renders t as dd/mm/yyyy, or "-" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// ShortDate renders t as "02 jan 2026", or "—" for nil or zero.
func ShortDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("02") + " " + shortMonths[t.Month()-1] + " " + t.Format("2006")
}
