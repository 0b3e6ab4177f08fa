package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sjsage522/shoetracker/config"
)

// currency markers used for candidate precedence, longest first so that
// "AR$" is not consumed as "$"
var currencyMarkers = []string{"AR$", "US$", "ARS", "USD", "EUR", "$", "€", "£"}

// priceTokenRe matches a price-shaped token: digits optionally grouped by
// '.' or ',' with a possible decimal part
var priceTokenRe = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// ParsePriceToken normalizes a single price-shaped token into a float.
// Currency symbols and spaces are stripped first. Separator handling:
//   - both '.' and ',' present: the rightmost one is the decimal separator,
//     the other groups thousands ("1.234,50" and "1,234.50" both → 1234.50)
//   - a separator occurring more than once groups thousands
//   - a single separator followed by exactly three digits is read per the
//     locale convention: in "eu" a '.' groups thousands ("99.999" → 99999),
//     in "us" a ',' groups thousands; otherwise it is the decimal separator
//
// Zero and negative values are rejected as extraction failures.
func ParsePriceToken(token, locale string) (float64, error) {
	cleaned := stripCurrency(token)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty price token")
	}

	normalized, err := normalizeSeparators(cleaned, locale)
	if err != nil {
		return 0, err
	}

	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", token)
	}
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price: %v", price)
	}
	return price, nil
}

// ExtractPriceCandidate picks the price-shaped token to parse from free
// text. Precedence: the first token directly following a currency marker;
// if no token is adjacent to a marker, the first token in the text.
// Returns false when the text contains no price-shaped token.
func ExtractPriceCandidate(text string) (string, bool) {
	locs := priceTokenRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return "", false
	}

	for _, loc := range locs {
		if precededByCurrency(text, loc[0]) {
			return text[loc[0]:loc[1]], true
		}
	}
	return text[locs[0][0]:locs[0][1]], true
}

// precededByCurrency reports whether a currency marker sits directly before
// position pos, allowing intervening whitespace.
func precededByCurrency(text string, pos int) bool {
	prefix := strings.TrimRight(text[:pos], " \t")
	for _, marker := range currencyMarkers {
		if strings.HasSuffix(prefix, marker) {
			return true
		}
	}
	return false
}

// stripCurrency removes currency markers from the token edges
func stripCurrency(s string) string {
	s = strings.TrimSpace(s)
	for changed := true; changed; {
		changed = false
		for _, marker := range currencyMarkers {
			if strings.HasPrefix(s, marker) {
				s = strings.TrimSpace(strings.TrimPrefix(s, marker))
				changed = true
			}
			if strings.HasSuffix(s, marker) {
				s = strings.TrimSpace(strings.TrimSuffix(s, marker))
				changed = true
			}
		}
	}
	return s
}

// normalizeSeparators rewrites a token into strconv.ParseFloat form
func normalizeSeparators(s, locale string) (string, error) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		// Rightmost separator is the decimal point
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots == 1:
		if locale == config.LocaleEU && groupsThousands(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
	case commas == 1:
		if locale == config.LocaleUS && groupsThousands(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	if strings.ContainsAny(s, ".,") && strings.Count(s, ".") > 1 {
		return "", fmt.Errorf("ambiguous separators in %q", s)
	}
	return s, nil
}

// groupsThousands reports whether the single separator in s is followed by
// exactly three digits, the shape of a grouping separator
func groupsThousands(s, sep string) bool {
	idx := strings.LastIndex(s, sep)
	return len(s)-idx-1 == 3
}
