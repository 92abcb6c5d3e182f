package validator_test

import (
	"strings"
	"testing"

	"flowershop/internal/domain/cart"
	"flowershop/internal/usecase"
	"flowershop/internal/validator"

	"github.com/stretchr/testify/assert"
)

func validInput() usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Customer: usecase.CustomerInput{
			Name:    "Anna Petrova",
			Phone:   "+7 999 123-45-67",
			Email:   "anna@example.com",
			Address: "Flower Street 12, apt 3, Springfield",
		},
		Lines: []cart.Line{{ProductID: 1, Quantity: 2}},
	}
}

func TestValidateCreateOrder_Valid(t *testing.T) {
	v := validator.NewOrderValidator()

	msgs := v.ValidateCreateOrder(validInput())
	assert.Empty(t, msgs)
}

// emailは任意
func TestValidateCreateOrder_EmailOptional(t *testing.T) {
	v := validator.NewOrderValidator()

	in := validInput()
	in.Customer.Email = ""
	assert.Empty(t, v.ValidateCreateOrder(in))

	in.Customer.Email = "not-an-email"
	msgs := v.ValidateCreateOrder(in)
	assert.Equal(t, 1, len(msgs))
	assert.Contains(t, msgs[0], "email")
}

// 失敗はまとめて全部返す
func TestValidateCreateOrder_CollectsAllFailures(t *testing.T) {
	v := validator.NewOrderValidator()

	msgs := v.ValidateCreateOrder(usecase.PlaceOrderInput{
		Customer: usecase.CustomerInput{
			Name:    "A",
			Phone:   "123",
			Address: "short",
		},
		Lines: []cart.Line{{ProductID: 1, Quantity: 1}},
	})

	assert.Equal(t, 3, len(msgs))
	joined := strings.Join(msgs, ";")
	assert.Contains(t, joined, "name")
	assert.Contains(t, joined, "phone")
	assert.Contains(t, joined, "address")
}

func TestValidateCreateOrder_EmptyCart(t *testing.T) {
	v := validator.NewOrderValidator()

	in := validInput()
	in.Lines = []cart.Line{}

	msgs := v.ValidateCreateOrder(in)
	assert.Contains(t, msgs, "cart must contain at least one item")
}

func TestValidateCreateOrder_BadLines(t *testing.T) {
	v := validator.NewOrderValidator()

	in := validInput()
	in.Lines = []cart.Line{
		{ProductID: 0, Quantity: 1},
		{ProductID: 2, Quantity: 0},
		{ProductID: 3, Quantity: -5},
	}

	msgs := v.ValidateCreateOrder(in)
	assert.Equal(t, 3, len(msgs))
}

func TestValidateCreateOrder_PhoneFormats(t *testing.T) {
	v := validator.NewOrderValidator()

	ok := []string{
		"+7 999 123-45-67",
		"89991234567",
		"(495) 123-45-67",
	}
	for _, phone := range ok {
		in := validInput()
		in.Customer.Phone = phone
		assert.Empty(t, v.ValidateCreateOrder(in), phone)
	}

	bad := []string{
		"123",
		"phone number",
		"+7abc1234567",
	}
	for _, phone := range bad {
		in := validInput()
		in.Customer.Phone = phone
		assert.NotEmpty(t, v.ValidateCreateOrder(in), phone)
	}
}

func TestValidateCreateOrder_NotesTooLong(t *testing.T) {
	v := validator.NewOrderValidator()

	in := validInput()
	in.Notes = strings.Repeat("x", 1001)

	msgs := v.ValidateCreateOrder(in)
	assert.Equal(t, 1, len(msgs))
	assert.Contains(t, msgs[0], "notes")
}
