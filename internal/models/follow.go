package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"not null;index"`
	FollowedID uuid.UUID `gorm:"not null;index"`
	CreatedAt  time.Time

	// Связи
	User     User `gorm:"foreignKey:UserID"`
	Followed User `gorm:"foreignKey:FollowedID"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
