package sets

import "testing"

func TestSet(t *testing.T) {
	s := New("zos-jobs", "zos-files")
	if !s.Has("zos-jobs") || s.Has("plugins") {
		t.Fatalf("unexpected membership: %v", s)
	}
	if !s.AddNew("plugins") {
		t.Fatal("expected plugins to be new")
	}
	if s.AddNew("plugins") {
		t.Fatal("expected second AddNew to report existing member")
	}
	s.Delete("zos-files")
	if s.Has("zos-files") || len(s) != 2 {
		t.Fatalf("unexpected set after delete: %v", s)
	}
}
