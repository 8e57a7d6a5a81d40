package model

import (
	"time"

	"gorm.io/gorm"
)

// LimiteIlimitado marks a plan without a store cap.
const LimiteIlimitado = -1

// Plano represents a subscription tier capping how many lojas a cliente may
// operate. Plans are managed by administrative flows; this service only reads
// them.
type Plano struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Nome        string         `json:"nome" gorm:"type:varchar(100);not null"`
	Descricao   string         `json:"descricao" gorm:"type:text"`
	Preco       float64        `json:"preco" gorm:"not null;default:0"`
	LimiteLojas int            `json:"limite_lojas" gorm:"not null;default:1"` // LimiteIlimitado (-1) means no cap
	Recursos    string         `json:"recursos" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Ilimitado reports whether the plan has no store cap.
func (p *Plano) Ilimitado() bool {
	return p.LimiteLojas == LimiteIlimitado
}

// Limite returns the effective store cap. A zero value is normalized to the
// default cap of 1.
func (p *Plano) Limite() int {
	if p.LimiteLojas == LimiteIlimitado {
		return LimiteIlimitado
	}
	if p.LimiteLojas <= 0 {
		return 1
	}
	return p.LimiteLojas
}
