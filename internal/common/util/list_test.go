package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringListToSet(t *testing.T) {
	assert.Equal(t, map[string]bool{}, StringListToSet([]string{}))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, StringListToSet([]string{"a", "b", "a"}))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"x", "y"}, "y"))
	assert.False(t, ContainsString([]string{"x", "y"}, "z"))
	assert.False(t, ContainsString(nil, "z"))
}

func TestSubtractStringList(t *testing.T) {
	assert.Equal(t, []string{"a"}, SubtractStringList([]string{"a", "b"}, []string{"b", "c"}))
	assert.Equal(t, []string{}, SubtractStringList([]string{"a"}, []string{"a"}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 100))
	assert.Equal(t, 1, Clamp(-5, 1, 100))
	assert.Equal(t, 100, Clamp(9000, 1, 100))
	assert.Equal(t, 42, Clamp(42, 1, 100))
}
