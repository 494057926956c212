package service

import (
	"errors"
	"testing"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"

	"gorm.io/gorm"
)

func newNewHireService(t *testing.T) (NewHireService, *captureNotifier, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	notifier := &captureNotifier{}
	return NewNewHireService(repository.NewNewHireRepo(db), db, testHub(), notifier), notifier, db
}

func TestNewHireCreateDefaultsAndNotifies(t *testing.T) {
	svc, notifier, _ := newNewHireService(t)

	hire := &model.NewHire{Name: "Jane Doe", DateOfJoining: "2026-09-15"}
	if err := svc.Create(hire, "recruiter"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if hire.Status != model.NewHireOpen {
		t.Errorf("status = %q, want %q", hire.Status, model.NewHireOpen)
	}
	if hire.AddedBy != "recruiter" {
		t.Errorf("added_by = %q, want recruiter", hire.AddedBy)
	}
	if notifier.last() != "created" {
		t.Errorf("notification = %q, want created", notifier.last())
	}
}

func TestNewHireCloseNotifiesWithDays(t *testing.T) {
	svc, notifier, _ := newNewHireService(t)

	hire := &model.NewHire{Name: "Jane Doe"}
	if err := svc.Create(hire, "recruiter"); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := *hire
	req.Status = model.NewHireClosed
	if _, err := svc.Update(hire.ID, &req, "recruiter"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if notifier.last() != "closed" {
		t.Fatalf("notification = %q, want closed", notifier.last())
	}
	if notifier.closedDays != 0 {
		t.Errorf("days = %d, want 0 for a same-day close", notifier.closedDays)
	}
}

func TestNewHireCalledOffNotifies(t *testing.T) {
	svc, notifier, _ := newNewHireService(t)

	hire := &model.NewHire{Name: "Jane Doe"}
	if err := svc.Create(hire, "recruiter"); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := *hire
	req.Status = model.NewHireCalledOff
	if _, err := svc.Update(hire.ID, &req, "recruiter"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if notifier.last() != "called_off" {
		t.Errorf("notification = %q, want called_off", notifier.last())
	}
}

func TestNewHirePlainUpdateNotifiesOnce(t *testing.T) {
	svc, notifier, _ := newNewHireService(t)

	hire := &model.NewHire{Name: "Jane Doe"}
	if err := svc.Create(hire, "recruiter"); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := *hire
	req.MobileNumber = "555-0100"
	if _, err := svc.Update(hire.ID, &req, "recruiter"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if notifier.last() != "updated" {
		t.Errorf("notification = %q, want updated", notifier.last())
	}
}

func TestNewHireUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newNewHireService(t)

	hire := &model.NewHire{Name: "Jane Doe"}
	if err := svc.Create(hire, "recruiter"); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := *hire
	req.Status = "Done"
	_, err := svc.Update(hire.ID, &req, "recruiter")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNewHireBulkImport(t *testing.T) {
	svc, notifier, db := newNewHireService(t)

	csv := "Name,Mobile Number,Date of Joining,Status\n" +
		"Jane Doe,555-0100,2026-09-15,\n" +
		"John Roe,555-0101,2026-09-22,Open\n"

	result, err := svc.BulkImport(csv, "recruiter")
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("inserted = %d, want 2", result.Inserted)
	}
	if len(notifier.events) != 0 {
		t.Errorf("bulk import must not send per-row emails, got %v", notifier.events)
	}

	var hire model.NewHire
	if err := db.First(&hire, "name = ?", "Jane Doe").Error; err != nil {
		t.Fatalf("load hire: %v", err)
	}
	if hire.Status != model.NewHireOpen {
		t.Errorf("status = %q, want %q", hire.Status, model.NewHireOpen)
	}
	if hire.AddedBy != "Bulk Upload" {
		t.Errorf("added_by = %q, want Bulk Upload", hire.AddedBy)
	}
}

func TestNewHireBulkImportRejectsBadStatus(t *testing.T) {
	svc, _, db := newNewHireService(t)

	result, err := svc.BulkImport("name,status\nJane Doe,Hired\nJohn Roe,Open\n", "recruiter")
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if len(result.RowErrors) != 1 {
		t.Fatalf("row errors = %v, want 1", result.RowErrors)
	}

	var count int64
	db.Model(&model.NewHire{}).Count(&count)
	if count != 0 {
		t.Fatalf("rows written = %d, want 0", count)
	}
}
