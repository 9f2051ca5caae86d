package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromDirectory(t *testing.T) {
	tax, err := LoadFromDirectory("testdata")
	assert.NoError(t, err)
	assert.Equal(t, "1.2", tax.Version(), "the highest version in the directory should win")
}

func TestLoadFromDirectoryMissing(t *testing.T) {
	_, err := LoadFromDirectory("testdata/does-not-exist")
	assert.Error(t, err)
}

func TestParent(t *testing.T) {
	tax, err := LoadFromDirectory("testdata")
	assert.NoError(t, err)

	tests := []struct {
		category string
		parent   string
	}{
		{"stadium", "leisure"},
		{"billboard", "outdoor"},
		{"mall", "retail"},
		{"vending_machine", "outdoor"}, // unknown categories fall back
		{"", "outdoor"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.parent, tax.Parent(tt.category))
		})
	}
}

func TestCodes(t *testing.T) {
	tax, err := LoadFromDirectory("testdata")
	assert.NoError(t, err)

	assert.Equal(t, 8, tax.ParentCode("leisure"))

	code, ok := tax.ChildCode("leisure", "stadium")
	assert.True(t, ok)
	assert.Equal(t, 808, code)

	_, ok = tax.ChildCode("outdoor", "vending_machine")
	assert.False(t, ok, "unmapped children must be omitted, not defaulted")
}
