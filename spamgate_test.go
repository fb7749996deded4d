package authgraph

import (
	"testing"

	"github.com/wikiwho/authgraph/arena"
)

func TestIsHashRepeat(t *testing.T) {
	spam := map[arena.Hash]struct{}{
		{Kind: arena.HashContent, Digest: "abc"}: {},
	}
	if !isHashRepeat(spam, arena.Hash{Kind: arena.HashContent, Digest: "abc"}) {
		t.Fatal("expected a previously rejected hash to be flagged as a repeat")
	}
	if isHashRepeat(spam, arena.Hash{Kind: arena.HashContent, Digest: "xyz"}) {
		t.Fatal("expected an unseen hash not to be flagged as a repeat")
	}
}

func TestIsHeavyDeletion(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name                string
		lengthPrev, lengthCurr int
		hasComment, minor   bool
		want                bool
	}{
		{"qualifies", 1500, 100, false, false, true},
		{"exempt when commented and minor", 1500, 100, true, true, false},
		{"not exempt when commented but not minor", 1500, 100, true, false, true},
		{"not exempt when minor but uncommented", 1500, 100, false, true, true},
		{"prev too short", 900, 100, false, false, false},
		{"curr too long", 1500, 1200, false, false, false},
		{"ratio above threshold", 1500, 950, false, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := isHeavyDeletion(cfg, c.lengthPrev, c.lengthCurr, c.hasComment, c.minor)
			if got != c.want {
				t.Fatalf("isHeavyDeletion(%d, %d, %v, %v) = %v, want %v",
					c.lengthPrev, c.lengthCurr, c.hasComment, c.minor, got, c.want)
			}
		})
	}
}
