package models

import "github.com/shopspring/decimal"

func init() {
	// prices travel as JSON numbers, the kiosk UI does arithmetic on them
	decimal.MarshalJSONWithoutQuotes = true
}
