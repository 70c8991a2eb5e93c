package similarity

import "fmt"

// MinMaxScaler rescales each column so the population minimum maps to 0 and the maximum to 1.
// Constant columns map to 0.
type MinMaxScaler struct {
	Min []float64
	Max []float64
}

// FitMinMax computes per-column minimum and maximum over rows. All rows must share one width.
func FitMinMax(rows [][]float64) (*MinMaxScaler, error) {
	if len(rows) == 0 {
		return &MinMaxScaler{}, nil
	}
	dim := len(rows[0])
	s := &MinMaxScaler{Min: make([]float64, dim), Max: make([]float64, dim)}
	copy(s.Min, rows[0])
	copy(s.Max, rows[0])
	for r, row := range rows[1:] {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d features, expected %d", ErrDimensionMismatch, r+1, len(row), dim)
		}
		for j, v := range row {
			if v < s.Min[j] {
				s.Min[j] = v
			}
			if v > s.Max[j] {
				s.Max[j] = v
			}
		}
	}
	return s, nil
}

// Transform returns a scaled copy of row.
func (s *MinMaxScaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		span := s.Max[j] - s.Min[j]
		if span == 0 {
			continue
		}
		out[j] = (v - s.Min[j]) / span
	}
	return out
}

// TransformAll scales every row.
func (s *MinMaxScaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}
