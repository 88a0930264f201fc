package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestAssistant(t *testing.T) (*Assistant, string) {
	t.Helper()
	root := t.TempDir()

	mustWrite := func(rel string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	mustWrite("report.pdf")
	mustWrite("docs/report-2026.pdf")
	mustWrite("docs/notes.txt")
	mustWrite("node_modules/report-excluded.pdf")
	mustWrite(".hidden/report-hidden.pdf")

	a := NewAssistant(root, 100)
	a.opener = func(path string) error { return nil }
	return a, root
}

func TestFindMatchesByName(t *testing.T) {
	a, _ := newTestAssistant(t)

	results := a.Find(context.Background(), "report")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d: %v", len(results), results)
	}
	for _, r := range results {
		if strings.Contains(r, "node_modules") || strings.Contains(r, ".hidden") {
			t.Errorf("Excluded directory leaked into results: %s", r)
		}
	}
}

func TestFindRespectsResultCap(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		path := filepath.Join(root, "file"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	a := NewAssistant(root, 3)
	if got := len(a.Find(context.Background(), "file")); got != 3 {
		t.Errorf("Expected 3 capped results, got %d", got)
	}
}

func TestFindCancelled(t *testing.T) {
	a, _ := newTestAssistant(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := a.Find(ctx, "report"); len(got) != 0 {
		t.Errorf("Expected no results from cancelled search, got %v", got)
	}
}

func TestHandlerFind(t *testing.T) {
	a, _ := newTestAssistant(t)
	h := NewHandler(a, nil)

	reply, ok := h.Handle(context.Background(), "find notes.txt")
	if !ok {
		t.Fatal("Expected find command to be handled")
	}
	if !strings.HasPrefix(reply, "I found 1 result(s):") {
		t.Errorf("Unexpected reply: %s", reply)
	}

	reply, _ = h.Handle(context.Background(), "find nonexistent-zzz")
	if reply != "No files found." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerOpen(t *testing.T) {
	a, root := newTestAssistant(t)
	opened := ""
	a.opener = func(path string) error { opened = path; return nil }
	h := NewHandler(a, nil)

	reply, ok := h.Handle(context.Background(), "open notes.txt")
	if !ok {
		t.Fatal("Expected open command to be handled")
	}
	if reply != "File found and opened" {
		t.Errorf("Unexpected reply: %s", reply)
	}
	if opened != filepath.Join(root, "docs", "notes.txt") {
		t.Errorf("Unexpected opened path: %s", opened)
	}

	reply, _ = h.Handle(context.Background(), "open nonexistent-zzz")
	if reply != "File not found." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerDeleteConfirmed(t *testing.T) {
	a, root := newTestAssistant(t)
	h := NewHandler(a, func(prompt string) bool { return true })

	reply, ok := h.Handle(context.Background(), "delete notes.txt")
	if !ok {
		t.Fatal("Expected delete command to be handled")
	}
	if !strings.HasPrefix(reply, "File deleted successfully:") {
		t.Errorf("Unexpected reply: %s", reply)
	}
	if _, err := os.Stat(filepath.Join(root, "docs", "notes.txt")); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}
}

func TestHandlerDeleteCanceled(t *testing.T) {
	a, root := newTestAssistant(t)
	h := NewHandler(a, func(prompt string) bool { return false })

	reply, _ := h.Handle(context.Background(), "delete notes.txt")
	if reply != "Delete operation canceled." {
		t.Errorf("Unexpected reply: %s", reply)
	}
	if _, err := os.Stat(filepath.Join(root, "docs", "notes.txt")); err != nil {
		t.Error("Expected file to survive canceled delete")
	}
}

func TestHandlerDeleteRefusedWithoutConfirm(t *testing.T) {
	a, _ := newTestAssistant(t)
	h := NewHandler(a, nil)

	reply, _ := h.Handle(context.Background(), "delete notes.txt")
	if reply != "Delete operation canceled." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerListFiles(t *testing.T) {
	a, root := newTestAssistant(t)
	h := NewHandler(a, nil)

	docs := filepath.Join(root, "docs")
	reply, ok := h.Handle(context.Background(), "list files in "+docs)
	if !ok {
		t.Fatal("Expected list command to be handled")
	}
	if !strings.Contains(reply, "notes.txt") || !strings.Contains(reply, "report-2026.pdf") {
		t.Errorf("Unexpected reply: %s", reply)
	}

	reply, _ = h.Handle(context.Background(), "list files in "+filepath.Join(root, "missing"))
	if reply != "Folder not found." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestDeleteRefusesDirectories(t *testing.T) {
	a, root := newTestAssistant(t)

	reply := a.Delete(filepath.Join(root, "docs"))
	if !strings.HasPrefix(reply, "Cannot delete directories") {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerIgnoresUnrelatedInput(t *testing.T) {
	a, _ := newTestAssistant(t)
	h := NewHandler(a, nil)

	if _, ok := h.Handle(context.Background(), "what's the weather"); ok {
		t.Error("Expected unrelated input to be ignored")
	}
}
