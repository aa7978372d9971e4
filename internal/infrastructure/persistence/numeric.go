package persistence

import "github.com/shopspring/decimal"

// FloatPtr coerces a nullable numeric column into the domain's *float64
func FloatPtr(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.InexactFloat64()
	return &v
}

// NullDecimal converts an optional domain number into a numeric column value
func NullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}
