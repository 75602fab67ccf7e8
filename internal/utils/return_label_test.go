package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDropoffQR(t *testing.T) {
	qr, err := GenerateDropoffQR("ret-123", "cmd-456")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
	assert.Greater(t, len(qr), len("data:image/png;base64,"))
}

func TestGetFrontendReturnSlipBaseURL(t *testing.T) {
	t.Run("variable d'environnement définie", func(t *testing.T) {
		t.Setenv("FRONTEND_RETURN_SLIP_URL", "https://shop.example.com/return-slip")
		assert.Equal(t, "https://shop.example.com/return-slip", GetFrontendReturnSlipBaseURL())
	})

	t.Run("fallback dev local", func(t *testing.T) {
		t.Setenv("FRONTEND_RETURN_SLIP_URL", "")
		assert.Equal(t, "http://localhost:3000/return-slip", GetFrontendReturnSlipBaseURL())
	})
}
