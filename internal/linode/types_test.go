package linode

import (
	"errors"
	"math"
	"testing"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(2, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.At(0, 1) != 2 || m.At(1, 0) != 3 {
		t.Errorf("row-major indexing broken: %v", m.Data)
	}

	if _, err := NewMatrix(2, []float64{1, 2, 3}); !errors.Is(err, ErrMatrixData) {
		t.Errorf("expected ErrMatrixData for short data, got %v", err)
	}
	if _, err := NewMatrix(0, nil); !errors.Is(err, ErrMatrixData) {
		t.Errorf("expected ErrMatrixData for zero rows, got %v", err)
	}
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{0, -1}, {1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Rows != 2 || m.At(1, 0) != 1 {
		t.Errorf("unexpected matrix: %+v", m)
	}

	if _, err := FromRows([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrMatrixData) {
		t.Errorf("expected ErrMatrixData for ragged rows, got %v", err)
	}
}

func TestMatrixIsZero(t *testing.T) {
	z, _ := NewMatrix(1, []float64{0})
	if !z.IsZero() {
		t.Error("expected zero matrix")
	}
	nz, _ := NewMatrix(1, []float64{0.001})
	if nz.IsZero() {
		t.Error("expected non-zero matrix")
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{3, -4}
	if s.Norm() != 5 {
		t.Errorf("expected norm 5, got %v", s.Norm())
	}
	if s.MaxAbs() != 4 {
		t.Errorf("expected max abs 4, got %v", s.MaxAbs())
	}

	c := s.Clone()
	c[0] = 99
	if s[0] != 3 {
		t.Error("Clone must not share backing storage")
	}

	if !s.IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() || (State{math.Inf(1)}).IsValid() {
		t.Error("NaN/Inf state reported valid")
	}
}
