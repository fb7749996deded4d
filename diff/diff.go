// Package diff wraps an external sequence-diff algorithm (go-difflib's
// SequenceMatcher, a port of Python's difflib) to produce the (Tag, Token) edit stream the authorship
// matcher drives word-level matching from (§4.4.3, §6). The matcher
// treats this as a black-box collaborator: any correct diff algorithm is
// an acceptable substitute.
package diff

import "github.com/pmezard/go-difflib/difflib"

// Tag classifies one token in the edit stream.
type Tag uint8

const (
	Equal Tag = iota
	Insert
	Delete
)

// Op is one tagged token in the edit stream, in the order the matcher
// should walk them.
type Op struct {
	Tag   Tag
	Token string
}

// Diff runs a sequence diff of prev against curr and returns the ordered
// edit-operation stream. A difflib "replace" opcode (a contiguous run of
// prev tokens replaced by a contiguous run of curr tokens) is expanded
// into a Delete run over the prev tokens followed by an Insert run over
// the curr tokens, preserving the word order within each run.
func Diff(prev, curr []string) []Op {
	matcher := difflib.NewMatcher(prev, curr)
	ops := make([]Op, 0, len(prev)+len(curr))

	for _, oc := range matcher.GetOpCodes() {
		switch oc.Tag {
		case 'e':
			for i := oc.I1; i < oc.I2; i++ {
				ops = append(ops, Op{Tag: Equal, Token: prev[i]})
			}
		case 'd':
			for i := oc.I1; i < oc.I2; i++ {
				ops = append(ops, Op{Tag: Delete, Token: prev[i]})
			}
		case 'i':
			for j := oc.J1; j < oc.J2; j++ {
				ops = append(ops, Op{Tag: Insert, Token: curr[j]})
			}
		case 'r':
			for i := oc.I1; i < oc.I2; i++ {
				ops = append(ops, Op{Tag: Delete, Token: prev[i]})
			}
			for j := oc.J1; j < oc.J2; j++ {
				ops = append(ops, Op{Tag: Insert, Token: curr[j]})
			}
		}
	}
	return ops
}
