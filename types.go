// Package authgraph analyses the full revision history of a single
// wiki-style page and produces a token-level authorship graph: for every
// word that ever appeared, it records which revision introduced it, which
// revision (if any) removed it, and the full sequence of revisions in
// which that word instance was continuously present.
//
// The package is a pure, synchronous library: it performs no I/O and
// holds no state across pages. Callers supply an ordered sequence of
// Revision values (typically produced by the sibling dump package) and
// receive a PageAnalysis addressable through the arena pointers it owns.
package authgraph

import (
	"time"

	"github.com/wikiwho/authgraph/arena"
)

// RevisionID is the caller-assigned identity of a revision, unique within
// one page. It need not be contiguous, only supplied in chronological
// order.
type RevisionID = int32

// Contributor identifies who made a revision.
type Contributor struct {
	ID   int64
	Name string
}

// TextVariant is a revision's content: either present text, or a marker
// that the text was deleted (e.g. oversight/suppression in the source
// dump). Deleted revisions are skipped for matching purposes.
type TextVariant struct {
	Deleted bool
	Text    string // valid only when !Deleted
}

// Revision is one entry in a page's edit history, as supplied by the
// caller (see the dump package for a concrete MediaWiki XML reader).
type Revision struct {
	ID          RevisionID
	Timestamp   time.Time
	Contributor Contributor
	Comment     string
	Minor       bool
	Text        TextVariant
	// SHA1 is the optional parser-supplied digest of Text.Text, carried
	// as MediaWiki XML dumps encode it (base-36). When absent the engine
	// computes its own content hash.
	SHA1 string
}

// Pointer re-exports the arena's entity pointer types so callers can
// address entities in a returned PageAnalysis without importing arena
// directly.
type (
	RevisionPtr  = arena.RevisionPtr
	ParagraphPtr = arena.ParagraphPtr
	SentencePtr  = arena.SentencePtr
	WordPtr      = arena.WordPtr
)

// PageAnalysis is the result of AnalysePage.
type PageAnalysis struct {
	// Store holds every allocated revision, paragraph, sentence and word
	// for this page, addressable by the pointer types above.
	Store *arena.Store

	// SpamIDs lists the IDs of revisions rejected by the spam gate, in
	// the order they were rejected.
	SpamIDs []RevisionID

	// RevisionsByID maps a committed revision's ID to its pointer.
	// Spam revisions are absent.
	RevisionsByID map[RevisionID]arena.RevisionPtr

	// OrderedRevisions lists committed revision IDs in commit order.
	OrderedRevisions []RevisionID

	// CurrentRevision is the most recently committed revision. When no
	// revision commits, AnalysePage returns an AnalysisError and no
	// PageAnalysis.
	CurrentRevision arena.RevisionPtr
}
