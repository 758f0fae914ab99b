package vocab

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	content := "network neural\nlearning machine\n\nlearning machine\nadversarial generative network\n"
	path := filepath.Join(t.TempDir(), "keywords.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing vocab file: %v", err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (duplicates collapse)", v.Len())
	}
	if !v.Contains("network neural") {
		t.Error("Contains(\"network neural\") = false")
	}
	if v.Contains("neural network") {
		t.Error("non-standardized phrase should not be in the set")
	}
	if got, want := v.Lengths(), []int{2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lengths() = %v, want %v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing vocabulary file")
	}
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0644); err != nil {
		t.Fatalf("writing vocab file: %v", err)
	}
	if _, err := Load(path); err != ErrEmptyVocabulary {
		t.Errorf("Load() error = %v, want ErrEmptyVocabulary", err)
	}
}

func TestKeywordsSorted(t *testing.T) {
	v := New([]string{"zebra quagga", "ant bee", "model language"})
	want := []string{"ant bee", "model language", "zebra quagga"}
	if got := v.Keywords(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
}

func TestStandardize(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "sorts alphabetically",
			tokens: []string{"neural", "network"},
			want:   "network neural",
		},
		{
			name:   "already sorted",
			tokens: []string{"deep", "learning"},
			want:   "deep learning",
		},
		{
			name:   "single token",
			tokens: []string{"transformer"},
			want:   "transformer",
		},
		{
			name:   "three tokens",
			tokens: []string{"generative", "adversarial", "network"},
			want:   "adversarial generative network",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Standardize(tt.tokens); got != tt.want {
				t.Errorf("Standardize(%v) = %q, want %q", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestStandardizeDoesNotMutate(t *testing.T) {
	tokens := []string{"neural", "network", "deep"}
	Standardize(tokens)
	if !reflect.DeepEqual(tokens, []string{"neural", "network", "deep"}) {
		t.Errorf("Standardize mutated its input: %v", tokens)
	}
}
