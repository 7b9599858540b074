package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AdminStats summarizes the whole system for the admin dashboard.
type AdminStats struct {
	Revenue   float64 `json:"revenue"`
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menu_items"`
	Orders    int64   `json:"orders"`
}

// CategoryStat is one row of the per-category order aggregation.
type CategoryStat struct {
	Category string  `bson:"category" json:"category"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}

// CapitalizeCategory normalizes a category label: only the first rune
// is upper-cased, the rest is left untouched.
func CapitalizeCategory(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}
