package diff

import "testing"

func TestDiff_EqualSequence(t *testing.T) {
	ops := Diff([]string{"a", "b"}, []string{"a", "b"})
	for _, op := range ops {
		if op.Tag != Equal {
			t.Fatalf("expected all Equal, got %v", op)
		}
	}
}

func TestDiff_Insert(t *testing.T) {
	ops := Diff([]string{"a"}, []string{"a", "b"})
	var sawInsert bool
	for _, op := range ops {
		if op.Tag == Insert && op.Token == "b" {
			sawInsert = true
		}
	}
	if !sawInsert {
		t.Fatalf("expected an Insert op for 'b', got %v", ops)
	}
}

func TestDiff_ReplaceExpandsToDeleteThenInsert(t *testing.T) {
	ops := Diff([]string{"x"}, []string{"y"})
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d: %v", len(ops), ops)
	}
	if ops[0].Tag != Delete || ops[0].Token != "x" {
		t.Fatalf("expected first op Delete(x), got %v", ops[0])
	}
	if ops[1].Tag != Insert || ops[1].Token != "y" {
		t.Fatalf("expected second op Insert(y), got %v", ops[1])
	}
}
