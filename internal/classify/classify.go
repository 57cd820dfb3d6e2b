// Package classify contains the pure predicates applied to a transaction's
// free-text fields: keyword search, phone-number detection and
// personal-transfer detection. None of them can fail; malformed or absent
// text behaves like an empty string.
package classify

import (
	"regexp"
	"strings"

	"vypiska/internal/core"
)

var (
	// Russian mobile number: optional +7/8/7 prefix, then 3-3-2-2 digit
	// groups with spaces, dashes or parentheses tolerated between them.
	phonePattern = regexp.MustCompile(`\b(?:\+7|8|7)?[\s\-()]*\d{3}[\s\-()]*\d{3}[\s\-()]*\d{2}[\s\-()]*\d{2}\b`)

	// "Иванов И." — capitalized Cyrillic surname, a space, a capital
	// initial with a trailing period.
	personNamePattern = regexp.MustCompile(`[А-ЯЁ][а-яё]+\s+[А-ЯЁ]\.`)
)

// MatchesKeyword reports whether the description contains term,
// case-insensitively. An empty term matches everything, so it can be used
// as a pass-through filter.
func MatchesKeyword(t core.Transaction, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(term))
}

// HasPhoneNumber reports whether the description contains a Russian mobile
// number. Numbers with incorrect digit grouping do not match.
func HasPhoneNumber(t core.Transaction) bool {
	return phonePattern.MatchString(t.Description)
}

// IsPersonalTransfer reports whether the record is a transfer to a private
// person: the category must be the canonical transfers label AND the
// description must carry a "Surname I." name. Either one alone is not
// enough.
func IsPersonalTransfer(t core.Transaction) bool {
	if !strings.EqualFold(strings.TrimSpace(t.Category), core.CategoryTransfers) {
		return false
	}
	return personNamePattern.MatchString(t.Description)
}

// Search returns the records whose description matches term. The input
// slice is never mutated.
func Search(records []core.Transaction, term string) []core.Transaction {
	out := make([]core.Transaction, 0)
	for _, t := range records {
		if MatchesKeyword(t, term) {
			out = append(out, t)
		}
	}
	return out
}

// PhoneTransactions returns the records mentioning a phone number.
func PhoneTransactions(records []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0)
	for _, t := range records {
		if HasPhoneNumber(t) {
			out = append(out, t)
		}
	}
	return out
}

// PersonalTransfers returns the records classified as transfers to
// private persons.
func PersonalTransfers(records []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0)
	for _, t := range records {
		if IsPersonalTransfer(t) {
			out = append(out, t)
		}
	}
	return out
}
