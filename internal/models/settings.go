package models

import "github.com/shopspring/decimal"

const (
	Size4x6 = "4x6"
	SizeA4  = "A4"
)

// Settings is the shop configuration singleton.
type Settings struct {
	ShopName       string                     `json:"shopName" mapstructure:"name"`
	Prices         map[string]decimal.Decimal `json:"prices"`
	AdminPIN       string                     `json:"adminPin"`
	DefaultDueDays int                        `json:"defaultDueDays" mapstructure:"default_due_days"`
	NoteTemplates  []string                   `json:"noteTemplates" mapstructure:"note_templates"`
}

// DefaultSettings returns a fresh copy of the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		ShopName: "Photo Print Studio",
		Prices: map[string]decimal.Decimal{
			Size4x6: decimal.NewFromInt(2),
			SizeA4:  decimal.NewFromInt(10),
		},
		AdminPIN:       "1234",
		DefaultDueDays: 3,
		NoteTemplates: []string{
			"Customer will pick up from the shop",
			"Deliver with gift wrapping",
			"Call the customer before printing",
		},
	}
}

// Clone deep-copies the reference fields so callers can mutate freely.
func (s Settings) Clone() Settings {
	out := s
	out.Prices = make(map[string]decimal.Decimal, len(s.Prices))
	for k, v := range s.Prices {
		out.Prices[k] = v
	}
	out.NoteTemplates = append([]string(nil), s.NoteTemplates...)
	return out
}

// Quote prices a print job from the per-size prices. A missing size is free.
func (s Settings) Quote(photos4x6, photosA4 int) decimal.Decimal {
	total := s.Prices[Size4x6].Mul(decimal.NewFromInt(int64(photos4x6)))
	return total.Add(s.Prices[SizeA4].Mul(decimal.NewFromInt(int64(photosA4))))
}

// Public strips the admin PIN for unauthenticated callers.
func (s Settings) Public() Settings {
	out := s.Clone()
	out.AdminPIN = ""
	return out
}
