package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCanTransitionTo(t *testing.T) {
	t.Run("pending can be approved or denied", func(t *testing.T) {
		assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
		assert.True(t, StatusPending.CanTransitionTo(StatusDenied))
		assert.False(t, StatusPending.CanTransitionTo(StatusRefunded))
		assert.False(t, StatusPending.CanTransitionTo(StatusExchanged))
		assert.False(t, StatusPending.CanTransitionTo(StatusClosed))
	})

	t.Run("approved can be settled or closed", func(t *testing.T) {
		assert.True(t, StatusApproved.CanTransitionTo(StatusRefunded))
		assert.True(t, StatusApproved.CanTransitionTo(StatusExchanged))
		assert.True(t, StatusApproved.CanTransitionTo(StatusClosed))
		assert.False(t, StatusApproved.CanTransitionTo(StatusPending))
		assert.False(t, StatusApproved.CanTransitionTo(StatusDenied))
	})

	t.Run("terminal statuses allow nothing", func(t *testing.T) {
		for _, s := range []Status{StatusDenied, StatusRefunded, StatusExchanged, StatusClosed} {
			assert.True(t, s.IsTerminal(), s)
			for _, target := range []Status{StatusPending, StatusApproved, StatusDenied, StatusRefunded, StatusExchanged, StatusClosed} {
				assert.False(t, s.CanTransitionTo(target), "%s → %s", s, target)
			}
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		assert.False(t, Status("shipped").IsValid())
		assert.False(t, Status("shipped").CanTransitionTo(StatusApproved))
	})
}

func TestTransition(t *testing.T) {
	t.Run("pending refund request can be approved", func(t *testing.T) {
		assert.NoError(t, Transition(StatusPending, StatusApproved, TypeRefund, false))
	})

	t.Run("refunded requires type refund", func(t *testing.T) {
		err := Transition(StatusApproved, StatusRefunded, TypeExchange, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("exchanged requires type exchange", func(t *testing.T) {
		err := Transition(StatusApproved, StatusExchanged, TypeRefund, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("force bypasses the table and the type guard", func(t *testing.T) {
		assert.NoError(t, Transition(StatusApproved, StatusRefunded, TypeExchange, true))
		assert.NoError(t, Transition(StatusDenied, StatusApproved, TypeRefund, true))
		assert.NoError(t, Transition(StatusPending, StatusClosed, TypeRefund, true))
	})

	t.Run("force still rejects an unknown status", func(t *testing.T) {
		err := Transition(StatusPending, Status("banana"), TypeRefund, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("terminal status refuses further moves", func(t *testing.T) {
		err := Transition(StatusRefunded, StatusClosed, TypeRefund, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTerminalStatus)
	})

	t.Run("skipping approval is refused", func(t *testing.T) {
		err := Transition(StatusPending, StatusRefunded, TypeRefund, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrForbiddenStep)
	})
}

func TestValidateItems(t *testing.T) {
	purchased := map[string]int{"P1": 3, "P2": 1}

	t.Run("keeps only non zero quantities", func(t *testing.T) {
		items, err := ValidateItems([]Item{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P2", Quantity: 0},
		}, purchased)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "P1", items[0].ProductID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("all quantities at zero is rejected", func(t *testing.T) {
		items, err := ValidateItems([]Item{
			{ProductID: "P1", Quantity: 0},
			{ProductID: "P2", Quantity: 0},
		}, purchased)
		assert.Nil(t, items)
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("empty selection is rejected", func(t *testing.T) {
		_, err := ValidateItems(nil, purchased)
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("quantity above purchased quantity is rejected", func(t *testing.T) {
		_, err := ValidateItems([]Item{{ProductID: "P1", Quantity: 4}}, purchased)
		assert.ErrorIs(t, err, ErrQuantityExceeded)
	})

	t.Run("quantity equal to purchased quantity passes", func(t *testing.T) {
		items, err := ValidateItems([]Item{{ProductID: "P1", Quantity: 3}}, purchased)
		require.NoError(t, err)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("duplicate lines are summed against the purchased quantity", func(t *testing.T) {
		// chaque ligne respecte le plafond, mais leur somme (4) dépasse l'achat (3)
		_, err := ValidateItems([]Item{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P1", Quantity: 2},
		}, purchased)
		assert.ErrorIs(t, err, ErrQuantityExceeded)
	})

	t.Run("duplicate lines within the purchased quantity pass", func(t *testing.T) {
		items, err := ValidateItems([]Item{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P1", Quantity: 1},
		}, purchased)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("product not on the order is rejected", func(t *testing.T) {
		_, err := ValidateItems([]Item{{ProductID: "P9", Quantity: 1}}, purchased)
		assert.ErrorIs(t, err, ErrUnknownOrderLine)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := ValidateItems([]Item{{ProductID: "P1", Quantity: -1}}, purchased)
		assert.ErrorIs(t, err, ErrNegativeQuantity)
	})

	t.Run("submission order is preserved", func(t *testing.T) {
		items, err := ValidateItems([]Item{
			{ProductID: "P2", Quantity: 1},
			{ProductID: "P1", Quantity: 1},
		}, purchased)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "P2", items[0].ProductID)
		assert.Equal(t, "P1", items[1].ProductID)
	})
}

func TestCountReasons(t *testing.T) {
	t.Run("counts and sorts by count desc then reason asc", func(t *testing.T) {
		counts := CountReasons([]Reason{ReasonDamaged, ReasonDamaged, ReasonWrongItem})
		require.Len(t, counts, 2)
		assert.Equal(t, ReasonCount{Reason: ReasonDamaged, Count: 2}, counts[0])
		assert.Equal(t, ReasonCount{Reason: ReasonWrongItem, Count: 1}, counts[1])
	})

	t.Run("ties broken alphabetically", func(t *testing.T) {
		counts := CountReasons([]Reason{ReasonWrongItem, ReasonArrivedLate, ReasonChangedMind})
		require.Len(t, counts, 3)
		assert.Equal(t, ReasonArrivedLate, counts[0].Reason)
		assert.Equal(t, ReasonChangedMind, counts[1].Reason)
		assert.Equal(t, ReasonWrongItem, counts[2].Reason)
	})

	t.Run("empty input gives empty output", func(t *testing.T) {
		assert.Empty(t, CountReasons(nil))
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		input := []Reason{ReasonOther, ReasonDamaged, ReasonOther, ReasonWrongItem, ReasonDamaged}
		first := CountReasons(input)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, CountReasons(input))
		}
	})
}

func TestReasonValidity(t *testing.T) {
	for _, r := range Reasons() {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Reason("Just because").IsValid())
}

func TestTypeValidity(t *testing.T) {
	assert.True(t, TypeRefund.IsValid())
	assert.True(t, TypeExchange.IsValid())
	assert.False(t, Type("store_credit").IsValid())
}
