package textnorm

import (
	"reflect"
	"testing"
)

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return n
}

func TestNormalizeBlank(t *testing.T) {
	n := newNormalizer(t)

	for _, input := range []string{"", "   ", "\t\n", "!!! ???"} {
		if got := n.Normalize(input); len(got) != 0 {
			t.Errorf("Normalize(%q) = %v, want empty", input, got)
		}
	}
}

func TestNormalizeCleaning(t *testing.T) {
	n := newNormalizer(t)

	// Punctuation is removed, not replaced: hyphenated words collapse.
	got := n.Normalize("State-of-the-art (CNN) models!")
	want := []string{"stateoftheart", "cnn", "model"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeLemmatizes(t *testing.T) {
	n := newNormalizer(t)

	got := n.Normalize("neural networks")
	want := []string{"neural", "network"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeUnicodeWhitespace(t *testing.T) {
	n := newNormalizer(t)

	// A non-breaking space separates words like any other whitespace
	got := n.Normalize("neural\u00a0networks")
	want := []string{"neural", "network"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeKeepsDigits(t *testing.T) {
	n := newNormalizer(t)

	got := n.Normalize("resnet50 top5")
	want := []string{"resnet50", "top5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeUnknownWordPassesThrough(t *testing.T) {
	n := newNormalizer(t)

	got := n.Normalize("qzxvocab")
	if len(got) != 1 || got[0] != "qzxvocab" {
		t.Errorf("Normalize() = %v, want [qzxvocab]", got)
	}
}
