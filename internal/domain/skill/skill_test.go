package skill

import (
	"errors"
	"math"
	"testing"
)

func TestNewSet_NormalizesAndDeduplicates(t *testing.T) {
	s := NewSet("  Python ", "python", "SQL", "Machine  Learning", "")
	if s.Len() != 3 {
		t.Fatalf("expected 3 skills, got %d", s.Len())
	}
	if !s.Contains("PYTHON") {
		t.Fatalf("expected set to contain python case-insensitively")
	}
	if !s.Contains("machine learning") {
		t.Fatalf("expected inner whitespace to collapse")
	}
}

func TestSet_NamesDeterministic(t *testing.T) {
	a := NewSet("go", "aws", "sql")
	b := NewSet("sql", "aws", "go")
	an, bn := a.Names(), b.Names()
	if len(an) != len(bn) {
		t.Fatalf("length mismatch")
	}
	for i := range an {
		if an[i] != bn[i] {
			t.Fatalf("expected identical order, got %v vs %v", an, bn)
		}
	}
}

func TestSet_SharedCount(t *testing.T) {
	a := NewSet("go", "sql", "docker")
	b := NewSet("SQL", "Docker", "aws")
	if got := a.SharedCount(b); got != 2 {
		t.Fatalf("expected 2 shared skills, got %d", got)
	}
}

func TestCosine_Identical(t *testing.T) {
	v := Vector{0.5, 0.5, 0.7}
	sim, err := Cosine(v, v)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-9 {
		t.Fatalf("expected similarity 1.0, got %f", sim)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	sim, err := Cosine(Vector{1, 0}, Vector{0, 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sim != 0 {
		t.Fatalf("expected similarity 0, got %f", sim)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine(Vector{1, 2}, Vector{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	sim, err := Cosine(Vector{0, 0, 0}, Vector{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sim != 0 {
		t.Fatalf("expected 0 for zero vector, got %f", sim)
	}
}
