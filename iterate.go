package authgraph

import "github.com/wikiwho/authgraph/arena"

// IterateTokens reconstructs the ordered word-text sequence of a
// committed revision by walking its paragraphs, sentences and words in
// storage order. It mirrors the reference implementation's bench helper
// that rebuilds revision text from the word graph, and backs the §8
// property-7 round-trip test: the result should equal the canonicalized
// sentence split of the revision's own text, token for token.
func IterateTokens(store *arena.Store, rev arena.RevisionPtr) []string {
	var tokens []string
	ra := store.RevisionAnalysis(rev)
	for _, p := range ra.Paragraphs {
		pa := store.ParagraphAnalysis(p)
		for _, s := range pa.Sentences {
			sa := store.SentenceAnalysis(s)
			for _, w := range sa.Words {
				tokens = append(tokens, store.Word(w).Text)
			}
		}
	}
	return tokens
}
