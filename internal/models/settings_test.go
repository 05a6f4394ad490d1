package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSettingsQuote(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, decimal.NewFromInt(2*10+10*3).Equal(s.Quote(10, 3)))

	delete(s.Prices, SizeA4)
	assert.True(t, decimal.NewFromInt(20).Equal(s.Quote(10, 3)))
}

func TestSettingsCloneIsIndependent(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.Prices[Size4x6] = decimal.NewFromInt(99)
	c.NoteTemplates[0] = "changed"

	assert.True(t, decimal.NewFromInt(2).Equal(s.Prices[Size4x6]))
	assert.NotEqual(t, "changed", s.NoteTemplates[0])
}

func TestSettingsPublicHidesPIN(t *testing.T) {
	assert.Empty(t, DefaultSettings().Public().AdminPIN)
}
