package models

import "time"

// ConversionResponse is the currency lookup contract. ConvertedAmount is
// null when no numeric amount was supplied with the request.
type ConversionResponse struct {
	From            string    `json:"from"`
	To              string    `json:"to"`
	Rate            float64   `json:"rate"`
	Amount          *float64  `json:"amount"`
	ConvertedAmount *float64  `json:"convertedAmount"`
	Date            string    `json:"date"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
