package linode

import "math"

// State is a batch of scalar state elements. The solver mutates it in place;
// it is the only output of an integration call.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Matrix is a square coefficient matrix in row-major order. It is read-only
// for the duration of an integration call and borrowed from the caller.
type Matrix struct {
	Rows int
	Data []float64
}

// NewMatrix wraps data as a Rows×Rows row-major matrix.
func NewMatrix(rows int, data []float64) (Matrix, error) {
	if rows < 1 || len(data) != rows*rows {
		return Matrix{}, ErrMatrixData
	}
	return Matrix{Rows: rows, Data: data}, nil
}

// FromRows builds a Matrix from nested rows, rejecting ragged or
// non-square input.
func FromRows(rows [][]float64) (Matrix, error) {
	n := len(rows)
	data := make([]float64, 0, n*n)
	for _, r := range rows {
		if len(r) != n {
			return Matrix{}, ErrMatrixData
		}
		data = append(data, r...)
	}
	return NewMatrix(n, data)
}

func (m Matrix) At(i, j int) float64 {
	return m.Data[i*m.Rows+j]
}

// IsZero reports whether every coefficient is exactly zero.
func (m Matrix) IsZero() bool {
	for _, v := range m.Data {
		if v != 0 {
			return false
		}
	}
	return true
}
