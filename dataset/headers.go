package dataset

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

// AnalyzeHeaders inspects the first CSV row. When most fields look like
// header names they are cleaned and deduplicated; otherwise the row is
// treated as data and column_N names are generated.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:        make([]string, len(firstRow)),
		FirstRowIsData: false,
		FirstDataRow:   firstRow,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// isLikelyHeader decides whether a value looks like a column name rather
// than data.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	if _, ok := tryParseDateTime(text); ok {
		return false
	}

	letters := 0
	digits := 0
	specials := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}

	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// cleanHeaderName keeps the source header as-is apart from whitespace
// trimming and ascii transliteration, so exact-name matching against the
// known date/amount lists still works.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(unidecode.Unidecode(header))
	if header == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	return header
}

// ValidateHeaders suffixes duplicate names with a counter so that column
// names stay unique.
func ValidateHeaders(headers []string) []string {
	seen := map[string]int{}
	result := make([]string, len(headers))

	for i, header := range headers {
		originalHeader := header
		counter := 1
		for {
			if count, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = count + 1
				break
			}
		}
		result[i] = header
	}
	return result
}

var identifierRe = regexp.MustCompile("[^a-zA-Z0-9]+")

// SanitizeIdentifier turns an arbitrary header into a safe SQL
// identifier: transliterated, non-alphanumerics collapsed to single
// underscores.
func SanitizeIdentifier(input string) string {
	s := identifierRe.ReplaceAllString(unidecode.Unidecode(input), "_")
	s = strings.ReplaceAll(s, "__", "_")
	return strings.Trim(s, "_")
}

func SearchStrings(a []string, x string) int {
	for i, s := range a {
		if s == x {
			return i
		}
	}
	return -1
}

func MD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}
