package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetModel struct {
	AssetID       uuid.UUID `json:"asset_id" gorm:"column:asset_id;type:uuid;primaryKey"`
	AssetSchoolID uuid.UUID `json:"asset_school_id" gorm:"column:asset_school_id;type:uuid;not null;index:idx_assets_school"`

	AssetName      string  `json:"asset_name" gorm:"column:asset_name;type:varchar(160);not null"`
	AssetCategory  string  `json:"asset_category" gorm:"column:asset_category;type:varchar(60)"`
	AssetSerial    *string `json:"asset_serial,omitempty" gorm:"column:asset_serial;type:varchar(80)"`
	AssetCondition string  `json:"asset_condition" gorm:"column:asset_condition;type:varchar(20);not null;default:good"`
	AssetLocation  *string `json:"asset_location,omitempty" gorm:"column:asset_location;type:varchar(120)"`
	AssetQuantity  int     `json:"asset_quantity" gorm:"column:asset_quantity;not null;default:1"`

	AssetCreatedAt time.Time      `json:"asset_created_at" gorm:"column:asset_created_at;not null;autoCreateTime"`
	AssetUpdatedAt time.Time      `json:"asset_updated_at" gorm:"column:asset_updated_at;not null;autoUpdateTime"`
	AssetDeletedAt gorm.DeletedAt `json:"asset_deleted_at,omitempty" gorm:"column:asset_deleted_at;index"`
}

func (AssetModel) TableName() string { return "inventory_assets" }

func (m *AssetModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssetID == uuid.Nil {
		m.AssetID = uuid.New()
	}
	return nil
}
