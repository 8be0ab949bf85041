package kernel_test

import (
	"testing"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from non-negative decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(4.50))

		require.NoError(t, err)
		assert.Equal(t, "4.50", m.String())
		assert.NoError(t, m.Validate())
	})

	t.Run("should round half-up to two decimal places", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(2.005))

		require.NoError(t, err)
		assert.Equal(t, "2.01", m.String())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromFloat(-0.01))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsEqual(kernel.ZeroMoney()))
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	t.Run("should create money from float", func(t *testing.T) {
		m, err := kernel.NewMoneyFromFloat(17.00)

		require.NoError(t, err)
		assert.Equal(t, "17.00", m.String())
	})

	t.Run("should reject negative float", func(t *testing.T) {
		_, err := kernel.NewMoneyFromFloat(-5.00)

		assert.Error(t, err)
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("should reject zero-value money", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})

	t.Run("should accept zero money constructor", func(t *testing.T) {
		assert.NoError(t, kernel.ZeroMoney().Validate())
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should sum two amounts", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(4.50)
		b, _ := kernel.NewMoneyFromFloat(2.25)

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, "6.75", sum.String())
	})

	t.Run("should treat zero money as identity", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(9.99)

		sum, err := kernel.ZeroMoney().Add(a)

		require.NoError(t, err)
		assert.True(t, sum.IsEqual(a))
	})

	t.Run("should reject unconstructed operand", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(1.00)

		_, err := a.Add(kernel.Money{})

		assert.Error(t, err)
	})
}

func TestMoney_Subtract(t *testing.T) {
	t.Run("should subtract smaller amount", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(10.00)
		b, _ := kernel.NewMoneyFromFloat(3.50)

		diff, err := a.Subtract(b)

		require.NoError(t, err)
		assert.Equal(t, "6.50", diff.String())
	})

	t.Run("should reject subtraction yielding negative amount", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(3.50)
		b, _ := kernel.NewMoneyFromFloat(10.00)

		_, err := a.Subtract(b)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should allow subtraction to exactly zero", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(5.00)

		diff, err := a.Subtract(a)

		require.NoError(t, err)
		assert.True(t, diff.IsEqual(kernel.ZeroMoney()))
	})
}

func TestMoney_MultiplyInt(t *testing.T) {
	t.Run("should multiply unit price by quantity", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromFloat(4.50)

		total, err := price.MultiplyInt(2)

		require.NoError(t, err)
		assert.Equal(t, "9.00", total.String())
	})

	t.Run("should allow zero factor", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromFloat(4.50)

		total, err := price.MultiplyInt(0)

		require.NoError(t, err)
		assert.True(t, total.IsEqual(kernel.ZeroMoney()))
	})

	t.Run("should reject negative factor", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromFloat(4.50)

		_, err := price.MultiplyInt(-1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	t.Run("should compare by value", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(5.00)
		b, _ := kernel.NewMoney(decimal.NewFromInt(5))
		c, _ := kernel.NewMoneyFromFloat(5.01)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}
