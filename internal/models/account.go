package models

import "time"

// Account owns zero or more payment cards. Email is unique and doubles as
// an alternate lookup key.
type Account struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null"`
	Surname   string `gorm:"not null"`
	BirthDate Date   `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Cards     []Card `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HolderName is the card holder string derived from the account's names.
func (a *Account) HolderName() string {
	return a.Name + " " + a.Surname
}

// CardIDs lists the ids of the loaded cards.
func (a *Account) CardIDs() []uint {
	ids := make([]uint, 0, len(a.Cards))
	for _, c := range a.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// CardNumbers lists the numbers of the loaded cards.
func (a *Account) CardNumbers() []string {
	numbers := make([]string, 0, len(a.Cards))
	for _, c := range a.Cards {
		numbers = append(numbers, c.Number)
	}
	return numbers
}

// CreateAccountInput represents the input for creating a new account
type CreateAccountInput struct {
	Name      string `json:"name" validate:"required,min=3,max=16"`
	Surname   string `json:"surname" validate:"required,min=3,max=32"`
	BirthDate Date   `json:"birthDate" validate:"required,pastdate"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdateAccountInput carries a partial update; nil fields are left untouched.
type UpdateAccountInput struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=16"`
	Surname   *string `json:"surname" validate:"omitempty,min=3,max=32"`
	BirthDate *Date   `json:"birthDate" validate:"omitempty,pastdate"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// AccountSearch is the query of an account lookup by email.
type AccountSearch struct {
	Email string `query:"email" json:"email" validate:"required,email,max=254"`
}

// AccountDTO is the read view of an account with its cards embedded.
type AccountDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	BirthDate Date      `json:"birthDate"`
	Email     string    `json:"email"`
	Cards     []CardDTO `json:"cards"`
}

// ToAccountDTO maps an account entity, and whatever cards were loaded with it.
func ToAccountDTO(a *Account) *AccountDTO {
	cards := make([]CardDTO, 0, len(a.Cards))
	for i := range a.Cards {
		cards = append(cards, *ToCardDTO(&a.Cards[i]))
	}
	return &AccountDTO{
		ID:        a.ID,
		Name:      a.Name,
		Surname:   a.Surname,
		BirthDate: a.BirthDate,
		Email:     a.Email,
		Cards:     cards,
	}
}
