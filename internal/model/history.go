package model

import "github.com/google/uuid"

// History actions
const (
	HistoryActionUpdated        = "updated"
	HistoryActionOffboarded     = "offboarded"
	HistoryActionPrimaryReplace = "primary_replaced"
	HistoryActionPeripheralSwap = "peripheral_swapped"
)

// AssetHistory is an append-only audit row recorded by the lifecycle
// workflows. It is write-only: nothing in the portal reads it back.
type AssetHistory struct {
	BaseModel
	AssetID  uuid.UUID `gorm:"type:uuid;not null;index" json:"asset_id"`
	User     string    `gorm:"type:varchar(255);not null" json:"user"`
	Action   string    `gorm:"type:varchar(50);not null" json:"action"`
	Field    string    `gorm:"type:varchar(100)" json:"field"`
	OldValue string    `gorm:"type:text" json:"old_value"`
	NewValue string    `gorm:"type:text" json:"new_value"`
}

func (AssetHistory) TableName() string {
	return "asset_history"
}
