package model

import (
	"time"
)

// LojaOwner is the side-table link expressing loja -> owning user, at most one
// row per loja. Ownership is deliberately stored out of band from the Loja row
// so that owner changes do not couple to store content updates.
//
// A link row must never outlive its loja: the loja service removes link rows
// before deleting a loja, and migrates them when republication assigns the
// loja a new internal ID.
type LojaOwner struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LojaID    uint      `json:"loja_id" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the legacy link table name so existing data stays valid.
func (LojaOwner) TableName() string {
	return "lojas_owner_links"
}
