package similarity

// Matrix is a dense symmetric similarity matrix indexed by customer ID.
type Matrix struct {
	ids    []string
	index  map[string]int
	values []float64 // row-major, len(ids)*len(ids)
}

func newMatrix(ids []string) *Matrix {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return &Matrix{
		ids:    ids,
		index:  index,
		values: make([]float64, len(ids)*len(ids)),
	}
}

// Size returns the number of customers.
func (m *Matrix) Size() int {
	return len(m.ids)
}

// IDs returns the customer IDs in matrix order.
func (m *Matrix) IDs() []string {
	return append([]string(nil), m.ids...)
}

// ID returns the customer ID at index i.
func (m *Matrix) ID(i int) string {
	return m.ids[i]
}

// Index returns the row/column index for a customer ID.
func (m *Matrix) Index(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// At returns the similarity between the customers at indexes i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.values[i*len(m.ids)+j]
}

// Similarity returns the similarity between two customers by ID.
func (m *Matrix) Similarity(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// Row returns the similarities of customer i to every customer, in matrix order.
func (m *Matrix) Row(i int) []float64 {
	n := len(m.ids)
	return m.values[i*n : (i+1)*n : (i+1)*n]
}

func (m *Matrix) set(i, j int, v float64) {
	m.values[i*len(m.ids)+j] = v
}
