package kernel

import (
	"fmt"

	"github.com/Zymrael/torchODE/internal/linode"
)

// Variant identifies the structural kernel selected from the coefficient
// matrix's leading dimension.
type Variant int

const (
	CompactDiagonal Variant = iota
	GeneralDiagonal
	CompactSkew
	GeneralSkew
)

func (v Variant) String() string {
	switch v {
	case CompactDiagonal:
		return "compact-diagonal"
	case GeneralDiagonal:
		return "general-diagonal"
	case CompactSkew:
		return "compact-skew"
	case GeneralSkew:
		return "general-skew"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// paired reports whether the variant advances elements in (i, i+W/2) pairs.
func (v Variant) paired() bool {
	return v == CompactSkew || v == GeneralSkew
}

// Select maps a matrix leading dimension onto a kernel variant for a batch
// of the given width. Shapes outside {1, 2, width} are rejected rather than
// falling through to the general path. With diagonal set, a width×width
// matrix is treated as uncoupled and only its diagonal is read; otherwise
// the general case pairs elements as (i, i+width/2).
func Select(rows, width int, diagonal bool) (Variant, error) {
	var v Variant
	switch {
	case rows == 1:
		v = CompactDiagonal
	case rows == 2:
		v = CompactSkew
	case rows == width:
		if diagonal {
			v = GeneralDiagonal
		} else {
			v = GeneralSkew
		}
	default:
		return 0, fmt.Errorf("%w: %dx%d matrix for batch width %d",
			linode.ErrMatrixShape, rows, rows, width)
	}

	if v.paired() && width%2 != 0 {
		return 0, fmt.Errorf("%w: width %d", linode.ErrOddPairing, width)
	}
	return v, nil
}
