package model

import (
	"time"

	"gorm.io/gorm"
)

// User is the user-account collaborator table. Accounts are provisioned by the
// identity flows outside this service; here they are only resolved as loja
// owners, by numeric ID or by DocumentID.
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	DocumentID string         `json:"document_id" gorm:"type:varchar(36);index;not null"`
	Username   string         `json:"username" gorm:"type:varchar(100);not null"`
	Email      string         `json:"email" gorm:"type:varchar(255);index;not null"`
	Telefone   string         `json:"telefone" gorm:"type:varchar(30)"`
	Password   string         `json:"-" gorm:"type:varchar(255)"`
	Confirmed  bool           `json:"confirmed" gorm:"default:false"`
	Blocked    bool           `json:"blocked" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// UserView is the sanitized projection of a User attached to read responses.
// Only these fields may leave the service; everything else is stripped.
type UserView struct {
	ID         uint   `json:"id"`
	DocumentID string `json:"document_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Telefone   string `json:"telefone,omitempty"`
}

// Sanitized returns the output-safe projection of the user.
func (u *User) Sanitized() *UserView {
	return &UserView{
		ID:         u.ID,
		DocumentID: u.DocumentID,
		Username:   u.Username,
		Email:      u.Email,
		Telefone:   u.Telefone,
	}
}
