package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis is appended to shortened strings.
const Ellipsis = "..."

// StringHelper provides string utility functions.
type StringHelper struct {
	lang language.Tag
}

// NewStringHelper creates a new string helper with language-neutral casing.
func NewStringHelper() *StringHelper {
	return &StringHelper{lang: language.Und}
}

// NewStringHelperFor creates a string helper that applies the casing rules of lang.
func NewStringHelperFor(lang language.Tag) *StringHelper {
	return &StringHelper{lang: lang}
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Shorten cuts str to at most maxLen runes at a word boundary and appends an ellipsis.
//
// Strings of maxLen runes or fewer are returned unchanged. A trailing word cut in
// the middle is dropped. A prefix without any space is kept as a hard cut rather
// than collapsing to a bare ellipsis.
func (s *StringHelper) Shorten(str string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}

	if utf8.RuneCountInString(str) <= maxLen {
		return str
	}

	runes := []rune(str)

	// The last word is whole when the cut lands on whitespace.
	wholeWord := unicode.IsSpace(runes[maxLen]) || (maxLen > 0 && unicode.IsSpace(runes[maxLen-1]))

	prefix := strings.TrimRightFunc(string(runes[:maxLen]), unicode.IsSpace)

	if !wholeWord {
		if i := strings.LastIndexByte(prefix, ' '); i >= 0 {
			prefix = strings.TrimRightFunc(prefix[:i], unicode.IsSpace)
		}
	}

	prefix += Ellipsis

	if strings.HasSuffix(prefix, ","+Ellipsis) {
		prefix = strings.TrimSuffix(prefix, ","+Ellipsis) + Ellipsis
	}

	return prefix
}

// StripTags removes markup tags and comments, keeping text exactly as written.
func (s *StringHelper) StripTags(str string) string {
	if !strings.ContainsRune(str, '<') {
		return str
	}

	z := html.NewTokenizer(strings.NewReader(str))

	var b strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		default:
			// tags, comments and doctypes carry no text
		}
	}
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func (s *StringHelper) TitleCase(str string) string {
	return cases.Title(s.lang).String(str)
}
