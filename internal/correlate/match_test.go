package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		wildcards int
		ok        bool
	}{
		{"identical", "1234", "1234", 0, true},
		{"wildcard left", "1.34", "1234", 1, true},
		{"wildcard right", "1234", "12.4", 1, true},
		{"wildcards both sides same position", "1.3.", "1.34", 2, true},
		{"wildcards both sides different positions", ".234", "123.", 2, true},
		{"all wildcards", "...", "abc", 3, true},
		{"mismatch", "1234", "1235", 0, false},
		{"mismatch beside wildcard", "1.34", "1244", 1, false},
		{"length differs", "123", "1234", 0, false},
		{"empty strings", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wildcards, ok := Match(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.wildcards, wildcards)
			}
		})
	}
}

func TestMatchIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"1.34", "1234"},
		{"AB.1", "A..1"},
		{"9999", "9998"},
		{"12", "123"},
	}
	for _, p := range pairs {
		w1, ok1 := Match(p[0], p[1])
		w2, ok2 := Match(p[1], p[0])
		assert.Equal(t, ok1, ok2, "symmetry of ok for %q/%q", p[0], p[1])
		if ok1 {
			assert.Equal(t, w1, w2, "symmetry of wildcard count for %q/%q", p[0], p[1])
		}
	}
}

func TestWildcards(t *testing.T) {
	assert.Equal(t, 0, Wildcards("1234"))
	assert.Equal(t, 2, Wildcards("1..4"))
	assert.Equal(t, 4, Wildcards("...."))
}
