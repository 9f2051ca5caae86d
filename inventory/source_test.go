package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFileSource(t *testing.T) {
	source, err := NewFileSource("testdata/screens")
	assert.NoError(t, err)

	screens, err := source.GetScreens(context.Background())
	assert.NoError(t, err)
	assert.Len(t, screens, 2)
	assert.Equal(t, "screen-bog-001", screens[0].ID)
	assert.Equal(t, "screen-bog-002", screens[1].ID)
	assert.Equal(t, "stadium", screens[0].Category.ID)
	assert.NotNil(t, screens[0].Coordinates)
}

func TestNewFileSourceMissingDirectory(t *testing.T) {
	_, err := NewFileSource("testdata/does-not-exist")
	assert.Error(t, err)
}

func TestGetScreensCancelledContext(t *testing.T) {
	source, err := NewFileSource("testdata/screens")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = source.GetScreens(ctx)
	assert.Error(t, err)
}

func TestAvailableOnly(t *testing.T) {
	screens := []Screen{
		{ID: "a", Available: true},
		{ID: "b", Available: false},
		{ID: "c", Available: true},
	}

	available := AvailableOnly(screens)
	assert.Len(t, available, 2)
	assert.Equal(t, "a", available[0].ID)
	assert.Equal(t, "c", available[1].ID)
}
