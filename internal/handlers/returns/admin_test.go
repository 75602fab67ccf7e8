package ret

import (
	"testing"

	"beautymart_back_end/internal/returns"

	"github.com/stretchr/testify/assert"
)

func TestMergeResolutionNote(t *testing.T) {
	note := func(s string) *string { return &s }

	t.Run("champ absent du PATCH garde la note stockée", func(t *testing.T) {
		assert.Equal(t, "article retourné abîmé", mergeResolutionNote("article retourné abîmé", nil))
	})

	t.Run("note fournie remplace la note stockée", func(t *testing.T) {
		assert.Equal(t, "remboursé après inspection", mergeResolutionNote("ancienne note", note("remboursé après inspection")))
	})

	t.Run("chaîne vide explicite efface la note", func(t *testing.T) {
		assert.Equal(t, "", mergeResolutionNote("ancienne note", note("")))
	})
}

func TestShouldCreateStripeRefund(t *testing.T) {
	t.Run("passage à refunded sans remboursement existant", func(t *testing.T) {
		assert.True(t, shouldCreateStripeRefund(returns.StatusRefunded, ""))
	})

	t.Run("remboursement déjà créé, PATCH rejoué", func(t *testing.T) {
		assert.False(t, shouldCreateStripeRefund(returns.StatusRefunded, "re_123"))
	})

	t.Run("autres statuts ne déclenchent rien", func(t *testing.T) {
		for _, s := range []returns.Status{returns.StatusPending, returns.StatusApproved, returns.StatusDenied, returns.StatusExchanged, returns.StatusClosed} {
			assert.False(t, shouldCreateStripeRefund(s, ""), s)
		}
	})
}
