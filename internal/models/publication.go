package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Publication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"not null;index"`
	Text      string    `gorm:"not null"`
	File      string
	CreatedAt time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
}

func (p *Publication) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
