package model

// Asset types tracked by the portal
const (
	AssetTypeLaptop   = "Laptop"
	AssetTypeDesktop  = "Desktop"
	AssetTypeMonitor  = "Monitor"
	AssetTypeHeadset  = "Headset"
	AssetTypeWebcam   = "Webcam"
	AssetTypeYubikey  = "Yubikey"
	AssetTypePrinter  = "Printer"
	AssetTypeKeyboard = "Keyboard"
	AssetTypeMouse    = "Mouse"
)

// Asset statuses
const (
	StatusInStock    = "In Stock"
	StatusAssigned   = "Assigned"
	StatusInRepair   = "In Repair"
	StatusLost       = "Lost"
	StatusNotWorking = "Not working"
	StatusInTransit  = "In Transit"
)

type Asset struct {
	BaseModel
	AssetTag     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"asset_tag" validate:"required"`
	SerialNumber string `gorm:"type:varchar(100)" json:"serial_number"`
	AssetType    string `gorm:"type:varchar(20);not null" json:"asset_type" validate:"required,oneof=Laptop Desktop Monitor Headset Webcam Yubikey Printer Keyboard Mouse"`
	Make         string `gorm:"type:varchar(100)" json:"make"`
	Model        string `gorm:"type:varchar(100)" json:"model"`

	// Assignment context
	AssignedTo       string `gorm:"type:varchar(255)" json:"assigned_to"`
	GAID             string `gorm:"column:gaid;type:varchar(50);index" json:"gaid"`
	EmailID          string `gorm:"type:varchar(255)" json:"email_id"`
	ReportingManager string `gorm:"type:varchar(255)" json:"reporting_manager"`
	ManagerEmailID   string `gorm:"type:varchar(255)" json:"manager_email_id"`

	Status string `gorm:"type:varchar(20);not null" json:"status" validate:"required,oneof='In Stock' Assigned 'In Repair' Lost 'Not working' 'In Transit'"`

	// Hardware spec
	CPU     string `gorm:"type:varchar(100)" json:"cpu"`
	RAM     string `gorm:"type:varchar(50)" json:"ram"`
	Storage string `gorm:"type:varchar(50)" json:"storage"`

	PurchaseDate           string `gorm:"type:varchar(10)" json:"purchase_date"`
	WarrantyExpirationDate string `gorm:"type:varchar(10)" json:"warranty_expiration_date"`
	Notes                  string `gorm:"type:text" json:"notes"`

	// Inline peripheral slots: tag+serial pairs, not relations
	Monitor1AssetTag     string `gorm:"type:varchar(50)" json:"monitor1_asset_tag"`
	Monitor1SerialNumber string `gorm:"type:varchar(100)" json:"monitor1_serial_number"`
	Monitor2AssetTag     string `gorm:"type:varchar(50)" json:"monitor2_asset_tag"`
	Monitor2SerialNumber string `gorm:"type:varchar(100)" json:"monitor2_serial_number"`
	HeadsetAssetTag      string `gorm:"type:varchar(50)" json:"headset_asset_tag"`
	HeadsetSerialNumber  string `gorm:"type:varchar(100)" json:"headset_serial_number"`

	YubikeyNumber string `gorm:"type:varchar(100)" json:"yubikey_number"`
	WebcamNumber  string `gorm:"type:varchar(100)" json:"webcam_number"`
}

func (Asset) TableName() string {
	return "assets"
}

// PeripheralSlot names accepted by the swap-peripheral workflow
const (
	SlotMonitor1 = "monitor1"
	SlotMonitor2 = "monitor2"
	SlotHeadset  = "headset"
)

// ClearAssignment resets every assignment and peripheral field, leaving the
// asset as free stock.
func (a *Asset) ClearAssignment() {
	a.AssignedTo = ""
	a.GAID = ""
	a.EmailID = ""
	a.ReportingManager = ""
	a.ManagerEmailID = ""
	a.Monitor1AssetTag = ""
	a.Monitor1SerialNumber = ""
	a.Monitor2AssetTag = ""
	a.Monitor2SerialNumber = ""
	a.HeadsetAssetTag = ""
	a.HeadsetSerialNumber = ""
	a.YubikeyNumber = ""
	a.WebcamNumber = ""
	a.Status = StatusInStock
}
