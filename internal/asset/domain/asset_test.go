package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsset_Validate(t *testing.T) {
	a := &Asset{Name: "  Cinta de correr ", Code: "cr-01", PurchaseDate: time.Now(), Value: 1200}
	require.NoError(t, a.Validate())
	assert.Equal(t, "Cinta de correr", a.Name)
	assert.Equal(t, "CR-01", a.Code)
	assert.Equal(t, ConditionGood, a.Condition)

	assert.ErrorIs(t, (&Asset{Name: "x", Code: "y", PurchaseDate: time.Now(), Condition: "lost"}).Validate(), ErrInvalidAsset)
	assert.ErrorIs(t, (&Asset{Name: "x", Code: "y", PurchaseDate: time.Now(), Value: -1}).Validate(), ErrInvalidAsset)
	assert.ErrorIs(t, (&Asset{Name: "x", Code: "y"}).Validate(), ErrInvalidAsset)
}

func TestAsset_NeedsAttention(t *testing.T) {
	assert.False(t, (&Asset{Condition: ConditionGood}).NeedsAttention())
	assert.True(t, (&Asset{Condition: ConditionBroken}).NeedsAttention())
}
