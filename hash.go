package authgraph

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/wikiwho/authgraph/arena"
)

// ContentHash returns the 256-bit content hash of text, used for
// paragraph and sentence identity (§3, §4.2). Exported so collaborator
// packages (e.g. validate) can recompute it to check §8 property 4.
func ContentHash(text string) arena.Hash {
	sum := sha256.Sum256([]byte(text))
	return arena.Hash{Kind: arena.HashContent, Digest: hex.EncodeToString(sum[:])}
}

// contentHash is the internal name used throughout the matcher.
func contentHash(text string) arena.Hash { return ContentHash(text) }

// revisionHash returns the parser-supplied SHA-1 digest when present,
// else falls back to a freshly computed content hash (§4.3).
func revisionHash(sha1 string, text string) arena.Hash {
	if sha1 != "" {
		return arena.Hash{Kind: arena.HashSHA1, Digest: sha1}
	}
	return contentHash(text)
}
