package domain

import "time"

type ProductOptionValue struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	OrgID     int64      `json:"orgId" gorm:"column:org_id;not null;index:ix_product_option_values_org"`
	OptionID  int64      `json:"optionId" gorm:"not null;index:ix_product_option_values_option"`
	SortKey   int        `json:"sortKey" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (ProductOptionValue) TableName() string { return "product_option_values" }

type ProductOptionValueTranslation struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	ValueID      int64      `json:"valueId" gorm:"not null;index:ix_product_option_value_translations_value_lang,priority:1"`
	LanguageCode string     `json:"languageCode" gorm:"type:text;not null;index:ix_product_option_value_translations_value_lang,priority:2"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt    *time.Time `json:"-" gorm:"index"`
}

func (ProductOptionValueTranslation) TableName() string {
	return "product_option_value_translations"
}
