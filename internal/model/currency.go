package model

// Currency is a catalog entry pairing an ISO code with its display symbol.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// DefaultCurrencySymbol is returned for codes not present in the catalog.
const DefaultCurrencySymbol = "$"

// Currencies is the fixed currency catalog.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
}

// LookupCurrency returns the catalog entry for code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencySymbol resolves code to its display symbol, falling back to the
// default symbol for unknown codes.
func CurrencySymbol(code string) string {
	if c, ok := LookupCurrency(code); ok {
		return c.Symbol
	}
	return DefaultCurrencySymbol
}
