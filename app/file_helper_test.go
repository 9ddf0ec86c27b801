package app

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsPythonFile(t *testing.T) {
	helper := NewFileHelper()

	tests := []struct {
		path string
		want bool
	}{
		{"main.py", true},
		{"types.pyi", true},
		{"MAIN.PY", true},
		{"main.go", false},
		{"readme.md", false},
		{"py", false},
		{"script.python", false},
	}

	for _, tt := range tests {
		if got := helper.IsPythonFile(tt.path); got != tt.want {
			t.Errorf("IsPythonFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCollectPythonFilesFromDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"))
	writeFile(t, filepath.Join(root, "pkg", "mod.py"))
	writeFile(t, filepath.Join(root, "pkg", "types.pyi"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	files, err := NewFileHelper().CollectPythonFiles([]string{root}, nil)
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(root, "main.py"),
		filepath.Join(root, "pkg", "mod.py"),
		filepath.Join(root, "pkg", "types.pyi"),
	}
	if !slices.Equal(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestCollectPythonFilesExcludesDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"))
	writeFile(t, filepath.Join(root, "venv", "lib.py"))
	writeFile(t, filepath.Join(root, "__pycache__", "cached.py"))
	writeFile(t, filepath.Join(root, "src", "__pycache__", "nested.py"))
	writeFile(t, filepath.Join(root, "src", "ok.py"))

	files, err := NewFileHelper().CollectPythonFiles([]string{root}, []string{"venv", "__pycache__"})
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(root, "main.py"),
		filepath.Join(root, "src", "ok.py"),
	}
	if !slices.Equal(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestCollectPythonFilesSingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "solo.py")
	writeFile(t, path)

	files, err := NewFileHelper().CollectPythonFiles([]string{path}, nil)
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if !slices.Equal(files, []string{path}) {
		t.Errorf("files = %v", files)
	}
}

func TestCollectPythonFilesNonPythonFileArg(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "readme.md")
	writeFile(t, path)

	files, err := NewFileHelper().CollectPythonFiles([]string{path}, nil)
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("non-Python file should be skipped, got %v", files)
	}
}

func TestCollectPythonFilesMissingPath(t *testing.T) {
	_, err := NewFileHelper().CollectPythonFiles([]string{filepath.Join(t.TempDir(), "nope")}, nil)
	if err == nil {
		t.Error("expected error for nonexistent path")
	}
}

func TestCollectPythonFilesMultiplePathsSorted(t *testing.T) {
	root := t.TempDir()
	b := filepath.Join(root, "b.py")
	a := filepath.Join(root, "a.py")
	writeFile(t, b)
	writeFile(t, a)

	files, err := NewFileHelper().CollectPythonFiles([]string{b, a}, nil)
	if err != nil {
		t.Fatalf("CollectPythonFiles failed: %v", err)
	}
	if !slices.Equal(files, []string{a, b}) {
		t.Errorf("expected sorted output, got %v", files)
	}
}
