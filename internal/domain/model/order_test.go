package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Next(t *testing.T) {
	cases := []struct {
		from OrderStatus
		want OrderStatus
	}{
		{OrderStatusNew, OrderStatusPreparing},
		{OrderStatusPreparing, OrderStatusReady},
		{OrderStatusReady, OrderStatusDelivered},
		//deliveredは終端
		{OrderStatusDelivered, OrderStatusDelivered},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.from.Next(), "from=%s", c.from)
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus("new"))
	assert.True(t, IsValidOrderStatus("preparing"))
	assert.True(t, IsValidOrderStatus("ready"))
	assert.True(t, IsValidOrderStatus("delivered"))

	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("NEW"))
	assert.False(t, IsValidOrderStatus("cancelled"))
	assert.False(t, IsValidOrderStatus("done"))
}

func TestIsValidPaymentMethod(t *testing.T) {
	assert.True(t, IsValidPaymentMethod("pix"))
	assert.True(t, IsValidPaymentMethod("creditCard"))
	assert.True(t, IsValidPaymentMethod("cash"))
	assert.True(t, IsValidPaymentMethod("payLater"))

	assert.False(t, IsValidPaymentMethod(""))
	assert.False(t, IsValidPaymentMethod("credit_card"))
	assert.False(t, IsValidPaymentMethod("bitcoin"))
}
