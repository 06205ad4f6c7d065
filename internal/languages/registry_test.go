package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryHasCppAndPython(t *testing.T) {
	r := NewRegistry()

	cpp, err := r.Get("cpp")
	require.NoError(t, err)
	assert.Equal(t, "Main.cpp", cpp.SourceFile)
	assert.NotNil(t, cpp.Compile)
	assert.NotNil(t, cpp.Run)

	py, err := r.Get("python")
	require.NoError(t, err)
	assert.Equal(t, "Main.py", py.SourceFile)
	assert.NotNil(t, py.Compile)
	assert.NotNil(t, py.Run)
}

func TestGetUnknownLanguage(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("ruby")
	assert.ErrorIs(t, err, ErrLanguageNotFound)
}

func TestListReturnsBothLanguages(t *testing.T) {
	r := NewRegistry()

	list := r.List()
	ids := make(map[string]bool, len(list))
	for _, l := range list {
		ids[l.ID] = true
	}
	assert.Len(t, list, 2)
	assert.True(t, ids["cpp"])
	assert.True(t, ids["python"])
}
