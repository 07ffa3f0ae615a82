package cli

import (
	"reflect"
	"testing"
)

func TestParse_NoArgs(t *testing.T) {
	rc := Parse(nil, nil)
	if !rc.Interactive() {
		t.Error("expected interactive mode")
	}
	if !rc.Verbose {
		t.Error("expected verbose by default")
	}
	if rc.C != 1.0 {
		t.Errorf("expected default c 1.0, got %v", rc.C)
	}
}

func TestParse_NoVerbose(t *testing.T) {
	rc := Parse([]string{"--noverbose"}, nil)
	if !rc.Interactive() || rc.Verbose {
		t.Errorf("expected non-verbose interactive, got %+v", rc)
	}
}

func TestParse_NonVerbose(t *testing.T) {
	rc := Parse([]string{"--nonverbose", "-r", "hello"}, nil)
	if rc.Verbose {
		t.Error("expected non-verbose")
	}
	if !rc.Quiet {
		t.Error("expected quiet logging")
	}
	if !rc.Retrieving {
		t.Error("expected retrieve mode")
	}
}

func TestParse_RetrieveWithTuning(t *testing.T) {
	rc := Parse([]string{"-r", "foo", "bar,", "baz", "-c2.5"}, nil)

	if !rc.Retrieving || rc.Counting {
		t.Errorf("expected retrieve only, got %+v", rc)
	}
	if !reflect.DeepEqual(rc.Queries, []string{"foo bar", "baz"}) {
		t.Errorf("queries = %v, want [foo bar, baz]", rc.Queries)
	}
	if rc.C != 2.5 {
		t.Errorf("c = %v, want 2.5", rc.C)
	}
}

func TestParse_CountMode(t *testing.T) {
	rc := Parse([]string{"--count", "term"}, nil)
	if !rc.Counting || rc.Retrieving {
		t.Errorf("expected count only, got %+v", rc)
	}
	if !reflect.DeepEqual(rc.Queries, []string{"term"}) {
		t.Errorf("queries = %v", rc.Queries)
	}
}

func TestParse_TuningSeparateToken(t *testing.T) {
	rc := Parse([]string{"-c", "0.75", "-r", "foo"}, nil)
	if rc.C != 0.75 {
		t.Errorf("c = %v, want 0.75", rc.C)
	}
	if !reflect.DeepEqual(rc.Queries, []string{"foo"}) {
		t.Errorf("queries = %v", rc.Queries)
	}
}

func TestParse_TuningErrorsAreNonFatal(t *testing.T) {
	tests := [][]string{
		{"-c", "abc", "-r", "foo"},
		{"-cxyz", "-r", "foo"},
		{"-r", "foo", "-c"},
	}
	for _, args := range tests {
		rc := Parse(args, nil)
		if rc.C != 1.0 {
			t.Errorf("args %v: c = %v, want unchanged 1.0", args, rc.C)
		}
		if !reflect.DeepEqual(rc.Queries, []string{"foo"}) {
			t.Errorf("args %v: queries = %v", args, rc.Queries)
		}
	}
}

func TestParse_Properties(t *testing.T) {
	rc := Parse([]string{"-Dfoo=bar", "-Dflag", "-r", "q"}, nil)
	want := map[string]string{"foo": "bar", "flag": ""}
	if !reflect.DeepEqual(rc.Props, want) {
		t.Errorf("props = %v, want %v", rc.Props, want)
	}
}

func TestParse_PropertyOverwrite(t *testing.T) {
	rc := Parse([]string{"-Dfoo=bar", "-Dfoo=bar", "-r", "q"}, nil)
	if !reflect.DeepEqual(rc.Props, map[string]string{"foo": "bar"}) {
		t.Errorf("props = %v", rc.Props)
	}

	rc = Parse([]string{"-Dfoo=bar", "-Dfoo=baz", "-r", "q"}, nil)
	if rc.Props["foo"] != "baz" {
		t.Errorf("expected later override to win, got %q", rc.Props["foo"])
	}
}

func TestParse_BothModeFlags(t *testing.T) {
	// Both booleans stay set; the later capture owns the single query slot.
	rc := Parse([]string{"-r", "first", "-C", "second"}, nil)
	if !rc.Retrieving || !rc.Counting {
		t.Errorf("expected both flags set, got %+v", rc)
	}
	if !reflect.DeepEqual(rc.Queries, []string{"second"}) {
		t.Errorf("queries = %v, want [second]", rc.Queries)
	}
}

func TestParse_MissingQueryText(t *testing.T) {
	rc := Parse([]string{"-r", "-c2.0"}, nil)
	if !rc.Retrieving {
		t.Error("expected retrieve flag despite missing text")
	}
	if len(rc.Queries) != 0 {
		t.Errorf("queries = %v, want none", rc.Queries)
	}
	if rc.C != 2.0 {
		t.Errorf("c = %v, want 2.0", rc.C)
	}
}

func TestParse_UnknownTokensSkipped(t *testing.T) {
	rc := Parse([]string{"bogus", "-r", "foo", "-x"}, nil)
	if !reflect.DeepEqual(rc.Queries, []string{"foo"}) {
		t.Errorf("queries = %v", rc.Queries)
	}
}

func TestSplitQueries(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"foo bar, baz", []string{"foo bar", "baz"}},
		{" a ,, b ,", []string{"a", "b"}},
		{"", nil},
		{",,,", nil},
	}
	for _, tt := range tests {
		if got := SplitQueries(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitQueries(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
