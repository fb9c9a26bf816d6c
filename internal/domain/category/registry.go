// Package category holds the fixed registry of nomination categories and
// the exact/fuzzy normalization rules used to map free-text labels onto it.
package category

import (
	"strings"
)

// Category is a canonical nomination category from the registry.
type Category string

// categories is the closed, ordered set of award categories for the poll.
// Order is display order and the tie-break priority for fuzzy matching.
var categories = []Category{
	"Самый популярный пользователь форума года",
	"Камбек года",
	"Самый обсуждаемый пользователь года",
	"Самый активный участник форума года",
	"Чаттер года",
	"Бастер года",
	"Куратор года",
	"Модератор года",
	"Арбитр года",
	"Кодер года",
	"Селлер года (маркет)",
	"Селлер года (не маркет)",
	"Новостник года",
	"Оффтопер года",
	"Благодетель года",
	"Дизайнер года",
	"Сливщик года",
	"Нарушитель года",
	"Паста года",
	"Статья года",
	"Турнир года",
	"Завоз года",
	"Обновление года",
	"Бан года",
	"Скам года",
	"Розыгрыш года",
}

// index maps the lowercased category to its registry position.
var index = func() map[string]int {
	m := make(map[string]int, len(categories))
	for i, c := range categories {
		m[strings.ToLower(string(c))] = i
	}
	return m
}()

// minTokenLen is the significance cutoff for fuzzy tokens; shorter tokens
// (prepositions, particles) carry no matching weight.
const minTokenLen = 2

// All returns the registry in canonical order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Count returns the number of registered categories.
func Count() int {
	return len(categories)
}

// Index returns the registry position of c, or -1 when c is not registered.
func Index(c Category) int {
	if i, ok := index[strings.ToLower(string(c))]; ok {
		return i
	}
	return -1
}

// Exact matches s against the registry ignoring case and surrounding
// whitespace. The boolean is false when no category matches.
func Exact(s string) (Category, bool) {
	if i, ok := index[strings.ToLower(strings.TrimSpace(s))]; ok {
		return categories[i], true
	}
	return "", false
}

// Fuzzy matches s against the registry by significant-token overlap.
// A category qualifies when all but at most one of its significant tokens
// substring-match some token of s (in either direction). The first
// qualifying category in registry order wins.
func Fuzzy(s string) (Category, bool) {
	candidate := tokenize(s)
	for _, c := range categories {
		catTokens := tokenize(string(c))
		matched := 0
		for _, ct := range catTokens {
			if anyOverlap(ct, candidate) {
				matched++
			}
		}
		if threshold := len(catTokens) - 1; matched >= max(1, threshold) {
			return c, true
		}
	}
	return "", false
}

// Normalize maps an arbitrary category string to its canonical registry
// entry: exact match first, fuzzy as a fallback. The parser deliberately
// uses Exact only; Normalize is for aggregation-time grouping.
func Normalize(s string) (Category, bool) {
	if c, ok := Exact(s); ok {
		return c, true
	}
	return Fuzzy(s)
}

// tokenize lowercases s, strips parentheses and keeps space-separated
// tokens longer than minTokenLen runes.
func tokenize(s string) []string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("(", "", ")", "").Replace(s)
	var out []string
	for _, tok := range strings.Fields(s) {
		if len([]rune(tok)) > minTokenLen {
			out = append(out, tok)
		}
	}
	return out
}

// anyOverlap reports whether tok substring-matches any candidate token,
// in either containment direction.
func anyOverlap(tok string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(c, tok) || strings.Contains(tok, c) {
			return true
		}
	}
	return false
}
