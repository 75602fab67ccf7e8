package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenMatches(t *testing.T) {
	t.Run("même token", func(t *testing.T) {
		assert.True(t, refreshTokenMatches("abc123", "abc123"))
	})

	t.Run("token différent", func(t *testing.T) {
		assert.False(t, refreshTokenMatches("abc123", "abc124"))
	})

	t.Run("longueurs différentes", func(t *testing.T) {
		assert.False(t, refreshTokenMatches("abc123", "abc1234"))
		assert.False(t, refreshTokenMatches("", "abc123"))
	})
}
