package service

import (
	"testing"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"

	"gorm.io/gorm"
)

func newDeliveryService(t *testing.T) (DeliveryService, *captureNotifier, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	notifier := &captureNotifier{}
	return NewDeliveryService(repository.NewDeliveryRepo(db), db, testHub(), notifier), notifier, db
}

func sampleDelivery() *model.Delivery {
	return &model.Delivery{
		Name:           "Jane Doe",
		Address:        "1 Main Street",
		AssetType:      "Laptop",
		MobileNumber:   "555-0100",
		CourierPartner: "FastShip",
		TrackingNumber: "TRK-001",
		CourierDate:    "2026-08-20",
		ITStatus:       model.DeliveryITConfigured,
		FinalStatus:    model.DeliveryFinalShipmentOut,
		DeliveryDate:   "2026-08-25",
		NewJoiner:      "Yes",
	}
}

func TestDeliveryCreateNotifies(t *testing.T) {
	svc, notifier, _ := newDeliveryService(t)

	if err := svc.Create(sampleDelivery(), "tester"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if notifier.last() != "configured" {
		t.Errorf("notification = %q, want configured", notifier.last())
	}
}

func TestDeliveryStatusChangeNotifications(t *testing.T) {
	svc, notifier, _ := newDeliveryService(t)

	delivery := sampleDelivery()
	if err := svc.Create(delivery, "tester"); err != nil {
		t.Fatalf("create: %v", err)
	}
	notifier.events = nil

	// untouched statuses: no notification
	req := *delivery
	req.Address = "2 Side Street"
	if _, err := svc.Update(delivery.ID, &req, "tester"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("plain update should not notify, got %v", notifier.events)
	}

	// final_status change fires the finalized notification
	req.FinalStatus = model.DeliveryFinalDelivered
	if _, err := svc.Update(delivery.ID, &req, "tester"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if notifier.last() != "finalized" {
		t.Errorf("notification = %q, want finalized", notifier.last())
	}
}

func TestDeliveryBulkImportDefaults(t *testing.T) {
	svc, _, db := newDeliveryService(t)

	csv := "Name,Address,Asset Type,Mobile Number,Courier Partner,Tracking Number,Courier Date,Delivery Date\n" +
		"Jane Doe,1 Main Street,Laptop,555-0100,FastShip,TRK-001,2026-08-20,2026-08-25\n"

	result, err := svc.BulkImport(csv, "tester")
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("inserted = %d, want 1; errors = %v", result.Inserted, result.RowErrors)
	}

	var delivery model.Delivery
	if err := db.First(&delivery, "tracking_number = ?", "TRK-001").Error; err != nil {
		t.Fatalf("load delivery: %v", err)
	}
	if delivery.ITStatus != model.DeliveryITConfigured {
		t.Errorf("it_status = %q, want %q", delivery.ITStatus, model.DeliveryITConfigured)
	}
	if delivery.FinalStatus != model.DeliveryFinalShipmentOut {
		t.Errorf("final_status = %q, want %q", delivery.FinalStatus, model.DeliveryFinalShipmentOut)
	}
	if delivery.NewJoiner != "No" {
		t.Errorf("new_joiner = %q, want No", delivery.NewJoiner)
	}
}

func TestDeliveryBulkImportRejectsMissingTracking(t *testing.T) {
	svc, _, db := newDeliveryService(t)

	csv := "name,tracking_number\nJane Doe,TRK-001\nJohn Roe,\n"
	result, err := svc.BulkImport(csv, "tester")
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if len(result.RowErrors) != 1 {
		t.Fatalf("row errors = %v, want 1", result.RowErrors)
	}

	var count int64
	db.Model(&model.Delivery{}).Count(&count)
	if count != 0 {
		t.Fatalf("rows written = %d, want 0", count)
	}
}
