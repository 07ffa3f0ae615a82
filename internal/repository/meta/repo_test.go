package meta

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hgetMultiFn func(ctx context.Context, keys []string, field string) ([]string, error)
}

func (m *mockStore) HGetMulti(ctx context.Context, keys []string, field string) ([]string, error) {
	if m.hgetMultiFn != nil {
		return m.hgetMultiFn(ctx, keys, field)
	}
	return make([]string, len(keys)), nil
}

func TestMetadata_BuildsPrefixedKeys(t *testing.T) {
	var gotKeys []string
	var gotField string
	s := &mockStore{hgetMultiFn: func(_ context.Context, keys []string, field string) ([]string, error) {
		gotKeys = keys
		gotField = field
		return []string{"d10", "d20"}, nil
	}}

	repo := New(s, "sift:doc:")
	values, err := repo.Metadata(context.Background(), "docno", []int{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(gotKeys, []string{"sift:doc:10", "sift:doc:20"}) {
		t.Errorf("unexpected keys: %v", gotKeys)
	}
	if gotField != "docno" {
		t.Errorf("unexpected field: %q", gotField)
	}
	if !reflect.DeepEqual(values, []string{"d10", "d20"}) {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestMetadata_EmptyDocIDList(t *testing.T) {
	called := false
	s := &mockStore{hgetMultiFn: func(_ context.Context, _ []string, _ string) ([]string, error) {
		called = true
		return nil, nil
	}}

	repo := New(s, "sift:doc:")
	values, err := repo.Metadata(context.Background(), "docno", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values != nil {
		t.Errorf("expected nil values, got %v", values)
	}
	if called {
		t.Error("store should not be hit for an empty docID list")
	}
}

func TestMetadata_StoreError(t *testing.T) {
	wantErr := errors.New("connection reset")
	s := &mockStore{hgetMultiFn: func(_ context.Context, _ []string, _ string) ([]string, error) {
		return nil, wantErr
	}}

	repo := New(s, "sift:doc:")
	if _, err := repo.Metadata(context.Background(), "docno", []int{1}); !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
