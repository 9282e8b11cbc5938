package fbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	absTol = 1e-9
	relTol = 1e-9
)

// assertClose compares model outputs with a combined absolute and relative
// tolerance so both tiny and large magnitudes are checked meaningfully.
func assertClose(t *testing.T, want, got float64, msgAndArgs ...any) {
	t.Helper()
	if !scalar.EqualWithinAbsOrRel(want, got, absTol, relTol) {
		assert.Fail(t, "values differ", "want %v, got %v %v", want, got, msgAndArgs)
	}
}

func ptr[T any](v T) *T { return &v }
