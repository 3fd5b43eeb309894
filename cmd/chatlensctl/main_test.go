package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBar(t *testing.T) {
	tests := []struct {
		n, max, width int
		want          int
	}{
		{10, 10, 30, 30},
		{1, 100, 30, 1},
		{0, 10, 30, 0},
		{5, 0, 30, 0},
	}
	for _, tt := range tests {
		if got := len([]rune(bar(tt.n, tt.max, tt.width))); got != tt.want {
			t.Errorf("bar(%d, %d, %d) = %d cells, want %d", tt.n, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestReadExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	content := "01/02/2024, 10:00 - Alice: hi\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := readExport(path)
	if err != nil {
		t.Fatalf("readExport: %v", err)
	}
	if got != content {
		t.Errorf("readExport = %q, want %q", got, content)
	}

	if _, err := readExport(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
