package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RouteStop is one entry in the ordered stop list.
type RouteStop struct {
	Name    string `json:"name"`
	Pickup  string `json:"pickup"`  // "06:45"
	Dropoff string `json:"dropoff"` // "16:30"
}

type TransportRouteModel struct {
	RouteID       uuid.UUID `json:"route_id" gorm:"column:route_id;type:uuid;primaryKey"`
	RouteSchoolID uuid.UUID `json:"route_school_id" gorm:"column:route_school_id;type:uuid;not null;index:idx_routes_school"`

	RouteName        string  `json:"route_name" gorm:"column:route_name;type:varchar(120);not null"`
	RouteVehicle     *string `json:"route_vehicle,omitempty" gorm:"column:route_vehicle;type:varchar(40)"`
	RouteDriverName  *string `json:"route_driver_name,omitempty" gorm:"column:route_driver_name;type:varchar(120)"`
	RouteDriverPhone *string `json:"route_driver_phone,omitempty" gorm:"column:route_driver_phone;type:varchar(20)"`

	// Ordered stop list as a JSON document ([]RouteStop).
	RouteStops datatypes.JSON `json:"route_stops" gorm:"column:route_stops"`

	RouteCreatedAt time.Time      `json:"route_created_at" gorm:"column:route_created_at;not null;autoCreateTime"`
	RouteUpdatedAt time.Time      `json:"route_updated_at" gorm:"column:route_updated_at;not null;autoUpdateTime"`
	RouteDeletedAt gorm.DeletedAt `json:"route_deleted_at,omitempty" gorm:"column:route_deleted_at;index"`
}

func (TransportRouteModel) TableName() string { return "transport_routes" }

func (m *TransportRouteModel) BeforeCreate(tx *gorm.DB) error {
	if m.RouteID == uuid.Nil {
		m.RouteID = uuid.New()
	}
	return nil
}
