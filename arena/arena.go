// Package arena holds the append-only analysis state for a single page's
// authorship graph. Every entity (revision, paragraph, sentence, word) is
// split into an immutable payload (its Record) and a mutable Analysis
// record, addressed together by a small integer pointer that is never
// reused or invalidated: the arena owns everything, everyone else indexes.
package arena

import "time"

// RevisionPtr, ParagraphPtr, SentencePtr and WordPtr are stable indices
// into their respective arenas. The zero value is a valid pointer (index 0);
// NoRevision/NoParagraph/etc. represent "no parent".
type (
	RevisionPtr  int32
	ParagraphPtr int32
	SentencePtr  int32
	WordPtr      int32
)

const (
	NoRevision  RevisionPtr  = -1
	NoParagraph ParagraphPtr = -1
	NoSentence  SentencePtr  = -1
	NoWord      WordPtr      = -1
)

// HashKind distinguishes a parser-supplied revision digest from a
// content hash computed over raw text.
type HashKind uint8

const (
	HashContent HashKind = iota
	HashSHA1
)

// Hash is a tagged content hash. Two hashes compare equal only if both
// kind and digest match, so a parser-supplied SHA-1 never collides with a
// computed content hash even if the hex happened to coincide.
type Hash struct {
	Kind   HashKind
	Digest string
}

// Contributor identifies who made a revision. Duplicated from the root
// authgraph package (rather than imported) to keep arena a leaf package
// with no dependency on its own consumer.
type Contributor struct {
	ID   int64
	Name string
}

// RevisionRecord is the immutable payload of a committed revision.
type RevisionRecord struct {
	ID             int32
	Length         int // unicode code points in the original (non-lowercased) text
	LowercasedText string
	Hash           Hash
	Timestamp      time.Time
	Contributor    Contributor
	Comment        string
	Minor          bool
	Deleted        bool
}

// RevisionAnalysis is the mutable per-revision state.
type RevisionAnalysis struct {
	Paragraphs       []ParagraphPtr
	ParagraphsByHash map[Hash][]ParagraphPtr
	OriginalAdds     int
	CommitSeq        int // monotonic commit order, independent of caller-supplied IDs
}

// ParagraphRecord is the immutable payload of a paragraph fragment.
type ParagraphRecord struct {
	Hash Hash
	Text string
}

// ParagraphAnalysis is the mutable per-paragraph state.
type ParagraphAnalysis struct {
	Sentences        []SentencePtr
	SentencesByHash  map[Hash][]SentencePtr
	MatchedInCurrent bool
}

// SentenceRecord is the immutable payload of a sentence fragment. Text is
// the canonicalized form: tokens rejoined with single spaces.
type SentenceRecord struct {
	Hash Hash
	Text string
}

// SentenceAnalysis is the mutable per-sentence state.
type SentenceAnalysis struct {
	Words            []WordPtr
	MatchedInCurrent bool
}

// WordRecord is the immutable payload of a word.
type WordRecord struct {
	Text string
}

// WordAnalysis is the mutable per-word lifetime state.
type WordAnalysis struct {
	OriginRevisionID int32
	LatestRevisionID int32
	MatchedInCurrent bool
	Inbound          []int32
	Outbound         []int32
}

// Store owns all entity memory for one page's analysis.
type Store struct {
	revisionRecords   []RevisionRecord
	revisionAnalysis  []RevisionAnalysis
	paragraphRecords  []ParagraphRecord
	paragraphAnalysis []ParagraphAnalysis
	sentenceRecords   []SentenceRecord
	sentenceAnalysis  []SentenceAnalysis
	wordRecords       []WordRecord
	wordAnalysis      []WordAnalysis

	// ParagraphByHash and SentenceByHash are the page-global fragment
	// index (§4.2): content hash -> every fragment ever allocated with
	// that hash, across all revisions. Entries are appended only when a
	// revision commits (see Store.Index*), never during speculative
	// matching, so a rejected revision never needs map rollback.
	ParagraphByHash map[Hash][]ParagraphPtr
	SentenceByHash  map[Hash][]SentencePtr
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		ParagraphByHash: make(map[Hash][]ParagraphPtr),
		SentenceByHash:  make(map[Hash][]SentencePtr),
	}
}

// Snapshot captures the current arena lengths so a rejected (spam)
// revision can be rolled back with TruncateTo.
type Snapshot struct {
	Revisions, Paragraphs, Sentences, Words int
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Revisions:  len(s.revisionRecords),
		Paragraphs: len(s.paragraphRecords),
		Sentences:  len(s.sentenceRecords),
		Words:      len(s.wordRecords),
	}
}

// TruncateTo discards every entity allocated after snap was taken. It is
// only safe to call before any allocated entity has been registered in
// ParagraphByHash/SentenceByHash, which is why that registration is
// deferred until a revision commits.
func (s *Store) TruncateTo(snap Snapshot) {
	s.revisionRecords = s.revisionRecords[:snap.Revisions]
	s.revisionAnalysis = s.revisionAnalysis[:snap.Revisions]
	s.paragraphRecords = s.paragraphRecords[:snap.Paragraphs]
	s.paragraphAnalysis = s.paragraphAnalysis[:snap.Paragraphs]
	s.sentenceRecords = s.sentenceRecords[:snap.Sentences]
	s.sentenceAnalysis = s.sentenceAnalysis[:snap.Sentences]
	s.wordRecords = s.wordRecords[:snap.Words]
	s.wordAnalysis = s.wordAnalysis[:snap.Words]
}

// AllocateRevision appends a new revision and returns its pointer.
func (s *Store) AllocateRevision(rec RevisionRecord) RevisionPtr {
	p := RevisionPtr(len(s.revisionRecords))
	s.revisionRecords = append(s.revisionRecords, rec)
	s.revisionAnalysis = append(s.revisionAnalysis, RevisionAnalysis{
		ParagraphsByHash: make(map[Hash][]ParagraphPtr),
	})
	return p
}

// AllocateParagraph appends a new paragraph and returns its pointer.
func (s *Store) AllocateParagraph(rec ParagraphRecord) ParagraphPtr {
	p := ParagraphPtr(len(s.paragraphRecords))
	s.paragraphRecords = append(s.paragraphRecords, rec)
	s.paragraphAnalysis = append(s.paragraphAnalysis, ParagraphAnalysis{
		SentencesByHash: make(map[Hash][]SentencePtr),
	})
	return p
}

// AllocateSentence appends a new sentence and returns its pointer.
func (s *Store) AllocateSentence(rec SentenceRecord) SentencePtr {
	p := SentencePtr(len(s.sentenceRecords))
	s.sentenceRecords = append(s.sentenceRecords, rec)
	s.sentenceAnalysis = append(s.sentenceAnalysis, SentenceAnalysis{})
	return p
}

// AllocateWord appends a new word and returns its pointer.
func (s *Store) AllocateWord(rec WordRecord, originRevisionID int32) WordPtr {
	p := WordPtr(len(s.wordRecords))
	s.wordRecords = append(s.wordRecords, rec)
	s.wordAnalysis = append(s.wordAnalysis, WordAnalysis{
		OriginRevisionID: originRevisionID,
		LatestRevisionID: originRevisionID,
	})
	return p
}

// Record/Analysis accessors. Analysis accessors return pointers into the
// backing slice so callers can mutate in place.

func (s *Store) Revision(p RevisionPtr) RevisionRecord          { return s.revisionRecords[p] }
func (s *Store) RevisionAnalysis(p RevisionPtr) *RevisionAnalysis { return &s.revisionAnalysis[p] }
func (s *Store) NumRevisions() int                               { return len(s.revisionRecords) }

func (s *Store) Paragraph(p ParagraphPtr) ParagraphRecord { return s.paragraphRecords[p] }
func (s *Store) ParagraphAnalysis(p ParagraphPtr) *ParagraphAnalysis {
	return &s.paragraphAnalysis[p]
}
func (s *Store) NumParagraphs() int { return len(s.paragraphRecords) }

func (s *Store) Sentence(p SentencePtr) SentenceRecord { return s.sentenceRecords[p] }
func (s *Store) SentenceAnalysis(p SentencePtr) *SentenceAnalysis {
	return &s.sentenceAnalysis[p]
}
func (s *Store) NumSentences() int { return len(s.sentenceRecords) }

func (s *Store) Word(p WordPtr) WordRecord              { return s.wordRecords[p] }
func (s *Store) WordAnalysis(p WordPtr) *WordAnalysis   { return &s.wordAnalysis[p] }
func (s *Store) NumWords() int                          { return len(s.wordRecords) }

// IndexParagraph registers a freshly allocated paragraph in the
// page-global fragment index. Called only once a revision commits.
func (s *Store) IndexParagraph(h Hash, p ParagraphPtr) {
	s.ParagraphByHash[h] = append(s.ParagraphByHash[h], p)
}

// IndexSentence registers a freshly allocated sentence in the page-global
// fragment index. Called only once a revision commits.
func (s *Store) IndexSentence(h Hash, p SentencePtr) {
	s.SentenceByHash[h] = append(s.SentenceByHash[h], p)
}

// ResetMatchFlags clears MatchedInCurrent on the given paragraphs and
// sentences. This is the dedicated reset pass mentioned in the
// implementation decision for the matched_in_current sweep: rather than
// overloading the match flag as its own reset marker, the caller passes
// every paragraph/sentence touched during a revision's matching pass and
// they are reset here, once, at the end of that revision's processing
// (after bookkeeping for a committed revision, before rollback for a
// rejected one).
func (s *Store) ResetMatchFlags(paragraphs []ParagraphPtr, sentences []SentencePtr) {
	for _, p := range paragraphs {
		s.paragraphAnalysis[p].MatchedInCurrent = false
	}
	for _, sn := range sentences {
		s.sentenceAnalysis[sn].MatchedInCurrent = false
	}
}
