package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DisposeMethod", "disposemethod"},
		{"dispose_method", "disposemethod"},
		{"Dispose-Method", "disposemethod"},
		{"DISPOSE METHOD", "disposemethod"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "DisposeMethodAttribute", SimpleName("global::Uno.DisposeMethodAttribute"))
	assert.Equal(t, "Plain", SimpleName("Plain"))
}
