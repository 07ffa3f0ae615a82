package memory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// loadJSONL reads a corpus file with one JSON document per line. The docno
// and text keys are indexed; every other scalar key becomes a stored metadata
// field. Blank lines are skipped.
func loadJSONL(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var docs []Document
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", line, err)
		}

		doc := Document{Fields: map[string]string{}}
		for k, v := range rec {
			switch k {
			case "docno":
				doc.DocNo = fmt.Sprintf("%v", v)
			case "text":
				doc.Text = fmt.Sprintf("%v", v)
			default:
				if s, ok := scalarString(v); ok {
					doc.Fields[k] = s
				}
			}
		}
		if doc.DocNo == "" {
			return nil, fmt.Errorf("corpus line %d: missing docno", line)
		}
		docs = append(docs, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return docs, nil
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
