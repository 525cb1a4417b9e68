// Package cleanup sanitizes model-generated text before it reaches the page
// or the narrator. Both transforms are fixed points: applying one twice gives
// the same result as applying it once.
package cleanup

import (
	"regexp"
	"strings"
)

var (
	markdownLink  = regexp.MustCompile(`\[([^\]\[]+)\]\(\s*<?[^)\s]*\s*>?\)`)
	dateParens    = regexp.MustCompile(`\s*\(\s*Date:[^)]*\)`)
	scoreParens   = regexp.MustCompile(`\s*\(\s*Score:[^)]*\)`)
	ctaPhrase     = regexp.MustCompile(`(?i)\b(?:read|view|click|watch|listen)\s+(?:here|more)\b`)
	providerIntro = regexp.MustCompile(`(?im)^[^\n]*\bnews from\b[^\n]*$`)
	rawURL        = regexp.MustCompile(`https?://\S+`)
	headingMark   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	bulletMark    = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	boldMark      = regexp.MustCompile(`\*\*`)
	spaceRun      = regexp.MustCompile(`[ \t]{2,}`)
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRun      = regexp.MustCompile(`\n{3,}`)
)

// ForText cleans a block for display: strips date/score parentheticals,
// call-to-action phrases, provider-name intro lines and markdown link syntax
// (keeping anchor text), then normalizes whitespace. Raw URLs survive.
func ForText(s string) string {
	s = markdownLink.ReplaceAllString(s, "$1")
	s = dateParens.ReplaceAllString(s, "")
	s = scoreParens.ReplaceAllString(s, "")
	s = ctaPhrase.ReplaceAllString(s, "")
	s = providerIntro.ReplaceAllString(s, "")
	return normalize(s)
}

// ForSpeech cleans a block for narration: everything ForText does, plus raw
// URLs and markdown structure markers that would be read aloud.
func ForSpeech(s string) string {
	s = markdownLink.ReplaceAllString(s, "$1")
	s = dateParens.ReplaceAllString(s, "")
	s = scoreParens.ReplaceAllString(s, "")
	s = ctaPhrase.ReplaceAllString(s, "")
	s = providerIntro.ReplaceAllString(s, "")
	s = rawURL.ReplaceAllString(s, "")
	s = headingMark.ReplaceAllString(s, "")
	s = bulletMark.ReplaceAllString(s, "")
	s = boldMark.ReplaceAllString(s, "")
	return normalize(s)
}

func normalize(s string) string {
	s = trailingSpace.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
