// Package parse extracts nomination votes from raw forum post text.
//
// Matching at parse time is exact-only: a line label must equal a registry
// category (case-insensitive) to count. Fuzzy matching is reserved for the
// aggregation-time normalizer, so noisy labels that only resemble a category
// never mint new ledger keys.
package parse

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/category"
	"github.com/filadelfiminer-alt/nominanti/internal/domain/model"
)

// maxNomineeLen caps the accepted nominee token length in runes.
const maxNomineeLen = 50

// Post extracts zero or more vote candidates from one post, in line order.
// Lines that do not carry a "category: nominee" pair are skipped silently;
// free-text noise is expected, not an error. Duplicates within one post are
// possible and resolved later by the ledger.
func Post(p model.Post) []model.Vote {
	var votes []model.Vote

	for _, line := range splitLines(p.Text()) {
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(line[:colon]))
		value := strings.TrimSpace(line[colon+1:])
		if value == "" {
			continue
		}

		cat, ok := category.Exact(label)
		if !ok {
			continue
		}

		nominee := extractNominee(value)
		if nominee == "" || len([]rune(nominee)) > maxNomineeLen {
			continue
		}
		nominee = strings.ToLower(nominee)

		votes = append(votes, model.Vote{
			ID:            fmt.Sprintf("%d-%s-%s", p.PostID, cat, nominee),
			Category:      string(cat),
			Nominee:       nominee,
			VoterID:       p.PosterUserID,
			VoterUsername: p.PosterUsername,
			PostID:        p.PostID,
			Timestamp:     time.Unix(p.CreateDate, 0).UTC(),
		})
	}

	return votes
}

// splitLines splits text on CR or LF and returns trimmed non-empty lines.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	}) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// extractNominee strips a single leading "@" and returns the first token of
// value, where whitespace, comma, semicolon and pipe all delimit tokens.
func extractNominee(value string) string {
	value = strings.TrimPrefix(value, "@")
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSpace(fields[0])
}
