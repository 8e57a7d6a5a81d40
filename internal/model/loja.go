package model

import (
	"time"

	"gorm.io/gorm"
)

// Loja represents a managed retail location. It belongs to exactly one
// cliente (for billing and limit purposes) and may be linked to one owning
// user account through the LojaOwner side table.
//
// DocumentID is the stable external identifier. It survives republication:
// publishing a draft creates a fresh row under the same DocumentID, so the
// internal ID of a loja can change while the DocumentID does not.
type Loja struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	DocumentID  string         `json:"document_id" gorm:"type:varchar(36);index;not null"`
	Nome        string         `json:"nome" gorm:"type:varchar(100);not null"`
	Endereco    string         `json:"endereco" gorm:"type:text"`
	Telefone    string         `json:"telefone" gorm:"type:varchar(30)"`
	ClienteID   uint           `json:"cliente_id" gorm:"index;not null"`
	PublishedAt *time.Time     `json:"published_at"` // nil while the row is a draft
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Cliente *Cliente `json:"cliente,omitempty" gorm:"foreignKey:ClienteID"`

	// Owner is populated on read paths from the LojaOwner link table.
	// It is never written through this field.
	Owner *UserView `json:"owner,omitempty" gorm:"-"`
}

// Publicada reports whether this row is the published version.
func (l *Loja) Publicada() bool {
	return l.PublishedAt != nil
}
