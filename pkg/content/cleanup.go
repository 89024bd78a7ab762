package content

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|noscript)\b[^>]*>.*?</(?:script|style|noscript)\s*>`)
	blockTagRe    = regexp.MustCompile(`(?i)</?(?:p|div|br|li|ul|ol|h[1-6]|tr|td|th|table|section|article|main|blockquote|figure|figcaption|header|footer|aside|pre)\b[^>]*>`)
	spaceRe       = regexp.MustCompile(`[\s\p{Zs}]+`)
	sentenceEndRe = regexp.MustCompile(`[.!?。！？](?:\s|$)`)

	// copyright boilerplate, applied in order
	copyrightRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)copyright\s*(?:©|ⓒ|\(c\))?.{0,120}?all\s+rights\s+reserved\.?`),
		regexp.MustCompile(`(?i)(?:©|ⓒ).{0,80}?all\s+rights\s+reserved\.?`),
		regexp.MustCompile(`(?i)all\s+rights\s+reserved\.?`),
		regexp.MustCompile(`<?저작권자\s*(?:\(c\)|©|ⓒ)\s*[^,.>]{0,40}[,>]?`),
		regexp.MustCompile(`무단\s*전재\s*(?:및|[·,/-])?\s*재배포\s*(?:금지|불가)>?`),
	}

	stripPolicy = bluemonday.StrictPolicy()
)

// StripHTML removes tags, decodes entities and collapses whitespace. Used for short feed fields.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = scriptStyleRe.ReplaceAllString(s, " ")
	s = blockTagRe.ReplaceAllString(s, " $0")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return collapseSpaces(s)
}

// CleanText makes plain body text out of an html fragment: script/style removal, tag stripping,
// entity decoding, whitespace collapse, copyright boilerplate redaction and a length cap.
// maxChars <= 0 means no cap.
func CleanText(s string, maxChars int) string {
	s = StripHTML(s)
	if s == "" {
		return ""
	}
	for _, re := range copyrightRes {
		s = re.ReplaceAllString(s, " ")
	}
	s = collapseSpaces(s)
	return TruncateRunes(s, maxChars)
}

// TruncateRunes caps s to n runes, n <= 0 means no cap
func TruncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Usability is the gate deciding whether extracted text is good enough to stop the fallback chain
type Usability struct {
	MinChars     int
	MinSentences int
}

// Usable reports if text has at least MinChars characters and MinSentences sentence boundaries
func (u Usability) Usable(text string) bool {
	if text == "" || utf8.RuneCountInString(text) < u.MinChars {
		return false
	}
	if u.MinSentences <= 0 {
		return true
	}
	return len(sentenceEndRe.FindAllStringIndex(text, u.MinSentences)) >= u.MinSentences
}
