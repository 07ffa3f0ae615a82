package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func TestLoadJSONL(t *testing.T) {
	path := writeCorpus(t,
		`{"docno": "d1", "text": "hello world", "title": "Greeting", "year": 2004}`,
		``,
		`{"docno": "d2", "text": "goodbye", "draft": true}`,
	)

	docs, err := loadJSONL(path)
	if err != nil {
		t.Fatalf("loadJSONL: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].DocNo != "d1" || docs[0].Text != "hello world" {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[0].Fields["title"] != "Greeting" {
		t.Errorf("expected title field, got %v", docs[0].Fields)
	}
	if docs[0].Fields["year"] != "2004" {
		t.Errorf("expected numeric field as string, got %q", docs[0].Fields["year"])
	}
	if docs[1].Fields["draft"] != "true" {
		t.Errorf("expected boolean field as string, got %v", docs[1].Fields)
	}
}

func TestLoadJSONL_MissingDocno(t *testing.T) {
	path := writeCorpus(t, `{"text": "anonymous"}`)
	if _, err := loadJSONL(path); err == nil {
		t.Error("expected error for document without docno")
	}
}

func TestLoadJSONL_BadJSON(t *testing.T) {
	path := writeCorpus(t, `{"docno": "d1"`, `{"docno": "d2", "text": "x"}`)
	if _, err := loadJSONL(path); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestLoadJSONL_MissingFile(t *testing.T) {
	if _, err := loadJSONL(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
