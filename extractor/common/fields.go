package common

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Notation records how an amount was written in the source document.
type Notation string

const (
	NotationPlain         Notation = "plain"
	NotationParenthesized Notation = "parenthesized"
	NotationPercent       Notation = "percent"
)

// RawFieldMatch is the transient result of one label match: the synonym that
// hit, the signed amount, and the notation it was written in. Parenthesized
// currency amounts carry a negated sign; what that sign means is the
// normalizer's decision, not the extractor's.
type RawFieldMatch struct {
	Label    string
	Amount   decimal.Decimal
	Notation Notation
}

// Field describes one semantic field to extract: an ordered list of label
// synonyms tried in priority order. The first synonym that matches anywhere in
// the document wins and no later synonym is tried.
type Field struct {
	Name    string
	Labels  []string
	Percent bool // match percentage notation instead of currency
	NextRow bool // the amount may sit on the row following the label
}

var (
	plainAmountPattern = regexp.MustCompile(`\$\s*([\d,]+\.\d{2})`)
	parenAmountPattern = regexp.MustCompile(`\(\$\s*([\d,]+\.\d{2})\)`)
	percentPattern     = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
)

// labelPattern anchors a label as a whole word, case-insensitively. Word
// boundaries are only applied where the label edge is a word character, so
// labels like "401(k)" still match.
func labelPattern(label string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(label)
	if isWordChar(label[0]) {
		quoted = `\b` + quoted
	}
	if isWordChar(label[len(label)-1]) {
		quoted += `\b`
	}
	return regexp.MustCompile(`(?i)` + quoted)
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// MatchField scans the document rows for the field's synonyms in priority
// order and returns at most one RawFieldMatch. A nil match with a nil error
// means the field is absent; absence is never zero. A *MalformedAmountError
// means a label matched but its numeric payload was unreadable.
func MatchField(rows []string, f Field) (*RawFieldMatch, error) {
	for _, label := range f.Labels {
		re := labelPattern(label)
		for i, row := range rows {
			loc := re.FindStringIndex(row)
			if loc == nil {
				continue
			}
			rest := row[loc[1]:]
			if m, err := matchAmount(label, rest, f.Percent); m != nil || err != nil {
				return m, err
			}
			if f.NextRow && i+1 < len(rows) {
				if m, err := matchAmount(label, rows[i+1], f.Percent); m != nil || err != nil {
					return m, err
				}
			}
		}
	}
	return nil, nil
}

// matchAmount finds the first amount in text. For currency fields the
// parenthesized and plain notations compete by position: the notation whose
// match starts first is the one associated with the label.
func matchAmount(label, text string, percent bool) (*RawFieldMatch, error) {
	if percent {
		m := percentPattern.FindStringSubmatch(text)
		if m == nil {
			return nil, nil
		}
		value, err := decimal.NewFromString(m[1])
		if err != nil || value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, &MalformedAmountError{Label: label, Text: m[0], Err: err}
		}
		return &RawFieldMatch{Label: label, Amount: value, Notation: NotationPercent}, nil
	}

	parenLoc := parenAmountPattern.FindStringSubmatchIndex(text)
	plainLoc := plainAmountPattern.FindStringSubmatchIndex(text)
	if parenLoc == nil && plainLoc == nil {
		return nil, nil
	}

	// A plain match inside a parenthesized one starts one byte later, so the
	// earlier start picks the parenthesized form for the same token.
	if parenLoc != nil && (plainLoc == nil || parenLoc[0] < plainLoc[0]) {
		digits := text[parenLoc[2]:parenLoc[3]]
		amount, err := ParseAmount(digits)
		if err != nil {
			return nil, &MalformedAmountError{Label: label, Text: digits, Err: err}
		}
		return &RawFieldMatch{Label: label, Amount: amount.Neg(), Notation: NotationParenthesized}, nil
	}

	digits := text[plainLoc[2]:plainLoc[3]]
	amount, err := ParseAmount(digits)
	if err != nil {
		return nil, &MalformedAmountError{Label: label, Text: digits, Err: err}
	}
	return &RawFieldMatch{Label: label, Amount: amount, Notation: NotationPlain}, nil
}

// MatchText returns the first capture group of the first pattern that matches,
// for non-monetary fields like contract numbers. Patterns are tried in order,
// first match wins.
func MatchText(text string, patterns []string) string {
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return strings.TrimSpace(group)
			}
		}
	}
	return ""
}
