// Package search implements free-text and pattern search over transactions.
package search

import (
	"regexp"
	"strings"

	"finreport/internal/core"
)

// Results wraps matches so the JSON form always carries a "results" array,
// never null.
type Results struct {
	Results []core.Transaction `json:"results"`
}

// mobilePhone matches Russian mobile numbers in the common spellings:
// +7 or 8 prefix, optional parentheses around the operator code and
// spaces or dashes between groups.
var mobilePhone = regexp.MustCompile(`(?:\+7|8)\s?\(?9\d{2}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2}`)

// Simple returns transactions whose description or category contains the
// query, case-insensitively. A blank query matches nothing.
func Simple(query string, txs []core.Transaction) Results {
	out := Results{Results: make([]core.Transaction, 0)}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out.Results = append(out.Results, t)
		}
	}
	return out
}

// Phones returns transactions whose description contains a mobile phone
// number.
func Phones(txs []core.Transaction) Results {
	out := Results{Results: make([]core.Transaction, 0)}
	for _, t := range txs {
		if mobilePhone.MatchString(t.Description) {
			out.Results = append(out.Results, t)
		}
	}
	return out
}
