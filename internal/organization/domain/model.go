package domain

import "time"

type Organization struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Slug      string    `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_organizations_slug"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Organization) TableName() string { return "organizations" }
