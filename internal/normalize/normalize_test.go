package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "agatha christie", "agatha christie"},
		{"case folding", "Agatha CHRISTIE", "agatha christie"},
		{"whitespace collapse", "  Agatha   Christie ", "agatha christie"},
		{"accent stripping", "José Saramago", "jose saramago"},
		{"umlaut", "Günter Grass", "gunter grass"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.input))
		})
	}
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Jose Saramago", "José  SARAMAGO"))
	assert.False(t, EqualFold("Agatha Christie", "Arthur Conan Doyle"))
}
