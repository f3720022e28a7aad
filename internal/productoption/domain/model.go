package domain

import "time"

type ProductOption struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	OrgID     int64      `json:"orgId" gorm:"column:org_id;not null;index:ix_product_options_org"`
	ProductID int64      `json:"productId" gorm:"not null;index:ix_product_options_product"`
	SortKey   int        `json:"sortKey" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (ProductOption) TableName() string { return "product_options" }

type ProductOptionTranslation struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	OptionID     int64      `json:"optionId" gorm:"not null;index:ix_product_option_translations_option_lang,priority:1"`
	LanguageCode string     `json:"languageCode" gorm:"type:text;not null;index:ix_product_option_translations_option_lang,priority:2"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt    *time.Time `json:"-" gorm:"index"`
}

func (ProductOptionTranslation) TableName() string { return "product_option_translations" }
