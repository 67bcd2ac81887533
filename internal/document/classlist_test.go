package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassList_AddIsIdempotent(t *testing.T) {
	c := NewClassList()
	c.Add("dark")
	c.Add("dark")

	assert.Equal(t, []string{"dark"}, c.Tokens())
	assert.Equal(t, 1, c.Len())
}

func TestClassList_Toggle(t *testing.T) {
	c := NewClassList("a")

	c.Toggle("dark", true)
	assert.True(t, c.Contains("dark"))
	assert.Equal(t, "a dark", c.String())

	c.Toggle("dark", true)
	assert.Equal(t, 2, c.Len())

	c.Toggle("dark", false)
	assert.False(t, c.Contains("dark"))
	assert.Equal(t, "a", c.String())

	// Removing an absent token is a no-op
	c.Toggle("dark", false)
	assert.Equal(t, "a", c.String())
}

func TestClassList_RejectsInvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"space", "dark mode"},
		{"tab", "dark\tmode"},
		{"newline", "dark\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassList()
			c.Add(tt.token)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestNewClassList_DropsDuplicates(t *testing.T) {
	c := NewClassList("x", "y", "x", "")
	assert.Equal(t, []string{"x", "y"}, c.Tokens())
}

func TestClassList_TokensReturnsCopy(t *testing.T) {
	c := NewClassList("x")
	tokens := c.Tokens()
	tokens[0] = "mutated"
	assert.True(t, c.Contains("x"))
}
