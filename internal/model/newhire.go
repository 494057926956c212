package model

// New-hire statuses
const (
	NewHireOpen      = "Open"
	NewHireClosed    = "Close"
	NewHireCalledOff = "Called Off"
)

type NewHire struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address       string `gorm:"type:text" json:"address"`
	MobileNumber  string `gorm:"type:varchar(20)" json:"mobile_number"`
	DateOfJoining string `gorm:"type:varchar(10)" json:"date_of_joining"`
	Status        string `gorm:"type:varchar(20)" json:"status" validate:"omitempty,oneof=Open Close 'Called Off'"`
	AddedBy       string `gorm:"type:varchar(255)" json:"added_by"`
}

func (NewHire) TableName() string {
	return "new_hires"
}
