package model

import "time"

// PaymentMethod is the masked fingerprint of a card used at checkout. One row
// is written per checkout. The full card number is never stored anywhere;
// only the holder name, the masked display string and the last four digits
// survive validation.
type PaymentMethod struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	HolderName   string    `json:"holder_name" gorm:"size:100;not null"`
	MaskedNumber string    `json:"masked_number" gorm:"size:25;not null"`
	Last4        string    `json:"last4" gorm:"size:4;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
