package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_SnapshotsTotal(t *testing.T) {
	price := decimal.RequireFromString("19.99")
	order, err := NewOrder("ret-1", "prod-1", "Ada", "ada@example.com", "", 3, price, "")
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.True(t, order.UnitPrice.Equal(price))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("59.97")))
}

func TestNewOrder_TrimsCustomerName(t *testing.T) {
	order, err := NewOrder("ret-1", "prod-1", "  Ada  ", "", "", 1, decimal.NewFromInt(5), "")
	require.NoError(t, err)
	require.Equal(t, "Ada", order.CustomerName)
}

func TestNewOrder_Invalid(t *testing.T) {
	price := decimal.NewFromInt(5)
	cases := []struct {
		name     string
		customer string
		quantity int
		price    decimal.Decimal
		want     error
	}{
		{"blank name", "   ", 1, price, ErrCustomerNameRequired},
		{"zero quantity", "Ada", 0, price, ErrInvalidQuantity},
		{"negative quantity", "Ada", -2, price, ErrInvalidQuantity},
		{"negative price", "Ada", 1, decimal.NewFromInt(-1), ErrNegativeUnitPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder("ret-1", "prod-1", tc.customer, "", "", tc.quantity, tc.price, "")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSetStatus(t *testing.T) {
	order, err := NewOrder("ret-1", "prod-1", "Ada", "", "", 1, decimal.NewFromInt(5), "")
	require.NoError(t, err)

	for _, status := range Statuses() {
		require.NoError(t, order.SetStatus(status))
		require.Equal(t, status, order.Status)
	}
	require.ErrorIs(t, order.SetStatus("unknown"), ErrInvalidStatus)
}

func TestDeletable(t *testing.T) {
	order := &Order{Status: StatusPending}
	require.True(t, order.Deletable())
	require.True(t, order.RestoresStockOnDelete())

	order.Status = StatusCancelled
	require.True(t, order.Deletable())
	require.False(t, order.RestoresStockOnDelete())

	for _, status := range []Status{StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered} {
		order.Status = status
		require.False(t, order.Deletable())
	}
}
