// Package split provides the pure text-decomposition helpers the
// authorship matcher treats as external collaborators (§6): splitting a
// revision's text into paragraphs, sentences and word tokens, and
// lowercasing. None of these functions retain state between calls.
package split

import (
	"regexp"
	"strings"
)

// marker is a sentinel byte used internally to mark a sentence boundary
// before the final split. It never appears in wiki text.
const marker = "\x00"

// pipePlaceholder stands in for '|' while the symbol-surrounding pass
// runs, so a literal pipe round-trips as its own token rather than being
// confused with the table-syntax symbols built from it.
const pipePlaceholder = "\x01"

var tableMarkers = []string{"<table>", "</table>", "<tr>", "</tr>", "{|", "|}", "|-\n"}

// IntoParagraphs splits text on blank-line boundaries, after first
// normalising line endings and isolating wiki table syntax onto its own
// line so a table is never fused with surrounding prose into one
// paragraph.
func IntoParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, m := range tableMarkers {
		text = strings.ReplaceAll(text, m, "\n\n"+m+"\n\n")
	}

	raw := strings.Split(text, "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	urlPattern       = regexp.MustCompile(`http.*?://.*?[ |<>\n\r]`)
	abbrevEndPattern = regexp.MustCompile(`[^\s.=]{3}\. `)
	commentEnd       = regexp.MustCompile(`-->`)
	refEnd           = regexp.MustCompile(`/ref>`)
	commentStart     = regexp.MustCompile(`<!--`)
	refStart         = regexp.MustCompile(`<ref`)
)

// punctBoundaries are exact-text boundary markers inserted after any
// occurrence, in addition to the regex-driven rules above.
var punctBoundaries = []string{"; ", "? ", "! ", ": ", "\t"}

// IntoSentences splits text into sentences by inserting a boundary marker
// at the positions described in §6 (after most sentence-ending
// punctuation, tab, closing HTML comments/<ref> tags, before opening
// ones) and isolating bare URLs as their own sentence, then splitting on
// the accumulated markers and newlines.
func IntoSentences(text string) []string {
	text = urlPattern.ReplaceAllStringFunc(text, func(m string) string {
		return marker + m + marker
	})

	text = abbrevEndPattern.ReplaceAllStringFunc(text, func(m string) string {
		return m + marker
	})

	for _, p := range punctBoundaries {
		text = strings.ReplaceAll(text, p, p+marker)
	}

	text = commentEnd.ReplaceAllStringFunc(text, func(m string) string { return m + marker })
	text = refEnd.ReplaceAllStringFunc(text, func(m string) string { return m + marker })
	text = commentStart.ReplaceAllStringFunc(text, func(m string) string { return marker + m })
	text = refStart.ReplaceAllStringFunc(text, func(m string) string { return marker + m })

	text = strings.ReplaceAll(text, "\n", marker)

	raw := strings.Split(text, marker)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// symbols is the fixed set of multi-character and single-character
// symbols that IntoTokens splits off as their own token, checked longest
// first so e.g. "==" is never split into two "=" tokens. The
// single-character set mirrors the reference tokenizer's full symbol
// table (utils.rs), including currency and punctuation marks beyond
// ASCII, so that e.g. "®" is split off rather than fused with
// neighbouring characters.
var symbols = []string{
	"==", "{|", "|}", "|-",
	".", ",", ";", ":", "?", "!", "-", "_", "/", "\\", "(", ")", "[", "]", "{", "}", "*", "#",
	"@", "&", "=", "+", "%", "~", "$", "^", "<", ">", "\"", "'", "´", "`", "¸", "˛", "’", "¤",
	"₳", "฿", "₵", "¢", "₡", "₢", "₫", "₯", "֏", "₠", "€", "ƒ", "₣", "₲", "₴", "₭", "₺", "₾",
	"ℳ", "₥", "₦", "₧", "₱", "₰", "£", "៛", "₽", "₹", "₨", "₪", "৳", "₸", "₮", "₩", "¥", "§",
	"‖", "¦", "⟨", "⟩", "–", "—", "¯", "»", "«", "”", "÷", "×", "′", "″", "‴", "¡", "¿", "©",
	"℗", "®", "℠", "™",
}

// IntoTokens splits text on spaces and newlines, additionally splitting
// off every occurrence of a symbol in the fixed set as its own token.
// '|' is round-tripped through a placeholder so it survives as a
// distinct token rather than interacting with the other symbol rules.
func IntoTokens(text string) []string {
	text = strings.ReplaceAll(text, "|", " "+pipePlaceholder+" ")

	for _, sym := range symbols {
		text = strings.ReplaceAll(text, sym, " "+sym+" ")
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t'
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == pipePlaceholder {
			f = "|"
		}
		out = append(out, f)
	}
	return out
}

// ToLowercase returns the Unicode-aware lowercasing of text.
func ToLowercase(text string) string {
	return strings.ToLower(text)
}

// Canonicalize returns the canonical form used for sentence identity and
// storage (§4.4.2): split into tokens, rejoined with single spaces.
func Canonicalize(text string) string {
	return strings.Join(IntoTokens(text), " ")
}
