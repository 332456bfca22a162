package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func createFiles(t *testing.T, root string, relativePaths ...string) {
	t.Helper()
	for _, relative := range relativePaths {
		path := filepath.Join(root, relative)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), fs.ModePerm); err != nil {
			t.Fatal(err)
		}
	}
}

func relativeTo(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rel := make([]string, 0, len(paths))
	for _, path := range paths {
		r, err := filepath.Rel(root, path)
		if err != nil {
			t.Fatal(err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestFindSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root,
		".doorstop.yml",
		"sub/.doorstop.yml",
		"sub/deeper/.doorstop.yml",
		".git/.doorstop.yml",
		"sub/.hidden/.doorstop.yml",
		"sub/other.yml",
	)

	found, err := Find(root, HiddenDir, NamedFile(".doorstop.yml"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".doorstop.yml", "sub/.doorstop.yml", "sub/deeper/.doorstop.yml"}
	if got := relativeTo(t, root, found); !reflect.DeepEqual(got, want) {
		t.Errorf("found %v, want %v", got, want)
	}
}

func TestFindEntersHiddenRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".reqs")
	createFiles(t, root, ".doorstop.yml")

	found, err := Find(root, HiddenDir, NamedFile(".doorstop.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Errorf("hidden root not scanned, found %v", found)
	}
}

func TestFileWithAffixes(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root,
		"REQ001.yml",
		"nested/REQ002.yml",
		"REQ003.yaml",
		"TUT001.yml",
		".doorstop.yml",
	)
	if err := os.MkdirAll(filepath.Join(root, "REQdir.yml"), 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := Find(root, nil, FileWithAffixes("REQ", ".yml"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"REQ001.yml", "nested/REQ002.yml"}
	if got := relativeTo(t, root, found); !reflect.DeepEqual(got, want) {
		t.Errorf("found %v, want %v", got, want)
	}
}

func TestFindMissingRoot(t *testing.T) {
	found, err := Find(filepath.Join(t.TempDir(), "nonexistent"), HiddenDir, NamedFile(".doorstop.yml"))
	if err == nil {
		t.Fatal("missing root not reported")
	}
	if found != nil {
		t.Error("paths returned despite error:", found)
	}
}
