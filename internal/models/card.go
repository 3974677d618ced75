package models

import "time"

// Card is a payment card belonging to exactly one account. Holder mirrors
// the owner's "<name> <surname>" and is maintained by the service layer.
type Card struct {
	ID             uint     `gorm:"primarykey"`
	Number         string   `gorm:"uniqueIndex;not null"`
	Holder         string   `gorm:"not null"`
	ExpirationDate Date     `gorm:"not null"`
	AccountID      uint     `gorm:"not null;index"`
	Account        *Account `gorm:"foreignKey:AccountID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateCardInput represents the input for creating a new card
type CreateCardInput struct {
	Number         string `json:"number" validate:"required,number,min=12,max=32"`
	ExpirationDate Date   `json:"expirationDate" validate:"required,futuredate"`
	AccountID      uint   `json:"accountId" validate:"required"`
}

// UpdateCardInput carries a partial update; nil fields are left untouched.
type UpdateCardInput struct {
	Number         *string `json:"number" validate:"omitempty,number,min=12,max=32"`
	ExpirationDate *Date   `json:"expirationDate" validate:"omitempty,futuredate"`
}

// CardSearch is the query of a card lookup by number.
type CardSearch struct {
	Number string `query:"number" json:"number" validate:"required,number,min=12,max=32"`
}

// CardDTO is the read view of a card.
type CardDTO struct {
	ID             uint   `json:"id"`
	Number         string `json:"number"`
	Holder         string `json:"holder"`
	ExpirationDate Date   `json:"expirationDate"`
	AccountID      uint   `json:"accountId"`
}

func ToCardDTO(c *Card) *CardDTO {
	return &CardDTO{
		ID:             c.ID,
		Number:         c.Number,
		Holder:         c.Holder,
		ExpirationDate: c.ExpirationDate,
		AccountID:      c.AccountID,
	}
}
