package model

// Delivery tracks an equipment shipment. ITStatus and FinalStatus are
// independent: IT marks the device configured/shipped, logistics marks the
// final outcome.
type Delivery struct {
	BaseModel
	Name           string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address        string `gorm:"type:text;not null" json:"address" validate:"required"`
	AssetType      string `gorm:"type:varchar(20);not null" json:"asset_type" validate:"required"`
	MobileNumber   string `gorm:"type:varchar(20);not null" json:"mobile_number" validate:"required"`
	CourierPartner string `gorm:"type:varchar(100);not null" json:"courier_partner" validate:"required"`
	TrackingNumber string `gorm:"type:varchar(100);not null" json:"tracking_number" validate:"required"`
	CourierDate    string `gorm:"type:varchar(10);not null" json:"courier_date" validate:"required"`
	ITStatus       string `gorm:"type:varchar(50);not null" json:"it_status" validate:"required"`
	FinalStatus    string `gorm:"type:varchar(50);not null" json:"final_status" validate:"required"`
	DeliveryDate   string `gorm:"type:varchar(10);not null" json:"delivery_date" validate:"required"`
	NewJoiner      string `gorm:"type:varchar(5);not null" json:"new_joiner" validate:"required"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

// Default statuses applied to bulk-imported rows when the column is absent.
const (
	DeliveryITConfigured     = "Configured"
	DeliveryFinalShipmentOut = "Shipment Sent"
	DeliveryFinalDelivered   = "Delivered"
)
