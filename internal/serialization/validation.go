package serialization

import (
	"fmt"
	"math"
	"sort"
)

// validateEntries checks that every tensor lies inside the data section and
// that no two tensors share bytes.
func validateEntries(entries map[string]TensorHeader, dataSize int64) error {
	type span struct {
		name       string
		start, end int64
	}

	spans := make([]span, 0, len(entries))
	for name, h := range entries {
		start, end := h.DataOffsets[0], h.DataOffsets[1]
		if start < 0 || end < start {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("invalid offsets [%d, %d]", start, end),
			}
		}
		if end > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("end %d > data_size %d", end, dataSize),
			}
		}
		spans = append(spans, span{name: name, start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].name < spans[j].name
	})
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if prev.end > cur.start {
			return &ValidationError{
				Err:     ErrOffsetOverlap,
				Tensor:  prev.name,
				Tensor2: cur.name,
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap", prev.start, prev.end, cur.start, cur.end),
			}
		}
	}
	return nil
}

// validateSize checks that a tensor's byte span holds exactly
// product(shape) * elemSize bytes. The product is computed with overflow
// checks so a crafted header cannot trigger a huge or negative allocation.
func validateSize(name string, h TensorHeader, elemSize int64) error {
	want := elemSize
	for _, dim := range h.Shape {
		if dim <= 0 {
			return &ValidationError{
				Err:     ErrSizeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("invalid dimension %d in shape %v", dim, h.Shape),
			}
		}
		if want > math.MaxInt64/dim {
			return &ValidationError{
				Err:     ErrSizeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("shape %v overflows", h.Shape),
			}
		}
		want *= dim
	}
	if got := h.DataOffsets[1] - h.DataOffsets[0]; got != want {
		return &ValidationError{
			Err:     ErrSizeMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("shape %v needs %d bytes, data_offsets span %d", h.Shape, want, got),
		}
	}
	return nil
}
