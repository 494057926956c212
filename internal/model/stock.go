package model

// StockItem tracks consumable stock levels. StockBalance is always
// recomputed server-side from the two quantities; a client-supplied balance
// is never trusted. Balances may go negative when assignments outrun
// recorded purchases.
type StockItem struct {
	BaseModel
	ItemName     string `gorm:"type:varchar(255);not null" json:"item_name" validate:"required"`
	PurchaseQty  int    `gorm:"not null" json:"purchase_qty"`
	AssignQty    int    `gorm:"not null" json:"assign_qty"`
	StockBalance int    `gorm:"not null" json:"stock_balance"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

// RecomputeBalance derives the balance from the quantities.
func (s *StockItem) RecomputeBalance() {
	s.StockBalance = s.PurchaseQty - s.AssignQty
}
