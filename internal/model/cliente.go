package model

import (
	"time"

	"gorm.io/gorm"
)

// Cliente represents the billing entity subscribing to a plano and owning
// zero or more lojas.
//
// Email uniqueness is enforced by an application-level check before every
// create/update. The check is best effort under concurrency; a database
// unique constraint remains the source of truth.
type Cliente struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Nome      string         `json:"nome" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(255);index;not null"`
	Telefone  string         `json:"telefone" gorm:"type:varchar(30)"`
	PlanoID   *uint          `json:"plano_id" gorm:"index"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Plano *Plano `json:"plano,omitempty" gorm:"foreignKey:PlanoID"`
	Lojas []Loja `json:"lojas,omitempty" gorm:"foreignKey:ClienteID"`
}
