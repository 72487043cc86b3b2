package models

type PaymentMethod struct {
	ID      int    `json:"id" db:"id"`
	Type    string `json:"type" db:"type"`
	Details string `json:"details" db:"details"`
}
