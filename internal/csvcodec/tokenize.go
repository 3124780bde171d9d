package csvcodec

import (
	"strings"
	"unicode"
)

// splitFields extracts the fields of one data line.
//
// Scanning left to right, a field is either
//   - a double-quoted span, closed by the first quote that is followed by
//     optional whitespace and then a comma or the end of the line, or
//   - a run of characters other than quotes, commas and whitespace, followed
//     the same way.
//
// Characters that start neither form are skipped. A quoted span cannot cross
// a line break, so multi-line quoted fields are not supported. Each field is
// trimmed; quoted fields lose their outer quotes and have "" unescaped.
func splitFields(line string) []string {
	rs := []rune(line)
	var fields []string
	for i := 0; i < len(rs); {
		end, ok := matchQuoted(rs, i)
		if !ok {
			end, ok = matchBare(rs, i)
		}
		if !ok {
			i++
			continue
		}
		fields = append(fields, unquote(trimSpace(string(rs[i:end]))))
		i = end
	}
	return fields
}

func matchQuoted(rs []rune, start int) (int, bool) {
	if rs[start] != '"' {
		return 0, false
	}
	for j := start + 1; j < len(rs); j++ {
		if isLineBreak(rs[j]) {
			return 0, false
		}
		if rs[j] == '"' && fieldEnds(rs, j+1) {
			return j + 1, true
		}
	}
	return 0, false
}

func matchBare(rs []rune, start int) (int, bool) {
	end := start
	for end < len(rs) && isBare(rs[end]) {
		end++
	}
	if end == start || !fieldEnds(rs, end) {
		return 0, false
	}
	return end, true
}

// fieldEnds reports whether position i is followed by optional whitespace
// and then a comma or the end of the line.
func fieldEnds(rs []rune, i int) bool {
	for i < len(rs) && isSpace(rs[i]) {
		i++
	}
	return i == len(rs) || rs[i] == ','
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return strings.ReplaceAll(value[1:len(value)-1], `""`, `"`)
	}
	return value
}

func isBare(r rune) bool {
	return r != '"' && r != ',' && !isSpace(r)
}

// isSpace matches the whitespace set of browser regular expressions, which
// includes the byte order mark and excludes U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\ufeff':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
