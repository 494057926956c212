package service

import (
	"path/filepath"
	"testing"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/ws"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "portal.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Asset{},
		&model.AssetHistory{},
		&model.StockItem{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Delivery{},
		&model.NewHire{},
		&model.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

// captureNotifier records which notifications fired, in call order.
type captureNotifier struct {
	events     []string
	closedDays int
}

func (n *captureNotifier) NewHireCreated(*model.NewHire) { n.events = append(n.events, "created") }
func (n *captureNotifier) NewHireUpdated(*model.NewHire) { n.events = append(n.events, "updated") }
func (n *captureNotifier) NewHireClosed(_ *model.NewHire, days int) {
	n.events = append(n.events, "closed")
	n.closedDays = days
}
func (n *captureNotifier) NewHireCalledOff(*model.NewHire) {
	n.events = append(n.events, "called_off")
}
func (n *captureNotifier) DeliveryConfigured(*model.Delivery) {
	n.events = append(n.events, "configured")
}
func (n *captureNotifier) DeliveryFinalized(*model.Delivery) {
	n.events = append(n.events, "finalized")
}

func (n *captureNotifier) last() string {
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1]
}
