package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("produit un hash argon2id", func(t *testing.T) {
		hash, err := HashPassword("motdepasse123")
		require.NoError(t, err)
		assert.True(t, IsArgon2Hash(hash))
	})

	t.Run("deux hashes du même mot de passe diffèrent", func(t *testing.T) {
		h1, err := HashPassword("motdepasse123")
		require.NoError(t, err)
		h2, err := HashPassword("motdepasse123")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	t.Run("bon mot de passe", func(t *testing.T) {
		ok, err := VerifyPassword("motdepasse123", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("mauvais mot de passe", func(t *testing.T) {
		ok, err := VerifyPassword("autremotdepasse", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hash invalide", func(t *testing.T) {
		_, err := VerifyPassword("motdepasse123", "pasunhash")
		assert.Error(t, err)
	})

	t.Run("fallback bcrypt pour comptes pré-migration", func(t *testing.T) {
		bcryptHash, err := bcrypt.GenerateFromPassword([]byte("ancien123"), bcrypt.DefaultCost)
		require.NoError(t, err)
		require.True(t, IsBcryptHash(string(bcryptHash)))

		ok, err := VerifyPassword("ancien123", string(bcryptHash))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyPassword("faux123", string(bcryptHash))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
