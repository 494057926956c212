package service

import (
	"fmt"
	"time"

	"go-itops-portal/internal/csvimport"
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewHireService interface {
	GetAll() ([]model.NewHire, error)
	GetByID(id uuid.UUID) (*model.NewHire, error)
	Create(hire *model.NewHire, actor string) error
	Update(id uuid.UUID, req *model.NewHire, actor string) (*model.NewHire, error)
	Delete(id uuid.UUID) (int64, error)
	BulkImport(csvData, actor string) (*BulkResult, error)
}

type newHireService struct {
	hireRepo repository.NewHireRepository
	db       *gorm.DB
	hub      *ws.Hub
	notifier Notifier
}

func NewNewHireService(hireRepo repository.NewHireRepository, db *gorm.DB, hub *ws.Hub, notifier Notifier) NewHireService {
	return &newHireService{hireRepo: hireRepo, db: db, hub: hub, notifier: notifier}
}

func (s *newHireService) GetAll() ([]model.NewHire, error) {
	return s.hireRepo.FindAll()
}

func (s *newHireService) GetByID(id uuid.UUID) (*model.NewHire, error) {
	hire, err := s.hireRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return hire, nil
}

func (s *newHireService) Create(hire *model.NewHire, actor string) error {
	if hire.Status == "" {
		hire.Status = model.NewHireOpen
	}
	if err := validateStruct(hire); err != nil {
		return err
	}
	if hire.AddedBy == "" {
		hire.AddedBy = actor
	}
	hire.CreatedBy = actor
	hire.UpdatedBy = actor

	if err := s.hireRepo.Create(hire); err != nil {
		return err
	}

	s.notifier.NewHireCreated(hire)
	return nil
}

func (s *newHireService) Update(id uuid.UUID, req *model.NewHire, actor string) (*model.NewHire, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.hireRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prevStatus := existing.Status

	existing.Name = req.Name
	existing.Address = req.Address
	existing.MobileNumber = req.MobileNumber
	existing.DateOfJoining = req.DateOfJoining
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.AddedBy != "" {
		existing.AddedBy = req.AddedBy
	}
	existing.UpdatedBy = actor

	if err := s.hireRepo.Update(existing); err != nil {
		return nil, err
	}

	switch {
	case existing.Status == model.NewHireClosed && prevStatus != model.NewHireClosed:
		days := int(time.Since(existing.CreatedAt).Hours() / 24)
		s.notifier.NewHireClosed(existing, days)
	case existing.Status == model.NewHireCalledOff && prevStatus != model.NewHireCalledOff:
		s.notifier.NewHireCalledOff(existing)
	default:
		s.notifier.NewHireUpdated(existing)
	}
	return existing, nil
}

func (s *newHireService) Delete(id uuid.UUID) (int64, error) {
	changes, err := s.hireRepo.Delete(id)
	if err != nil {
		return 0, err
	}
	if changes > 0 {
		s.hub.Publish("new_hire_deleted", "new_hires", map[string]interface{}{"id": id})
	}
	return changes, nil
}

// BulkImport inserts onboarding rows all-or-nothing. Imported rows open in
// the "Open" state and are attributed to the bulk upload rather than the
// uploading user. No per-row emails are sent.
func (s *newHireService) BulkImport(csvData, actor string) (*BulkResult, error) {
	rows, err := csvimport.Parse(csvData)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	hires := make([]*model.NewHire, 0, len(rows))
	var rowErrors []string

	for _, row := range rows {
		hire := &model.NewHire{
			Name:          row.Get("name"),
			Address:       row.Get("address"),
			MobileNumber:  row.Get("mobile_number", "mobile number"),
			DateOfJoining: row.Get("date_of_joining", "date of joining"),
			Status:        row.GetOr(model.NewHireOpen, "status"),
			AddedBy:       "Bulk Upload",
		}
		if hire.Name == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: name is required", row.Line))
			continue
		}
		switch hire.Status {
		case model.NewHireOpen, model.NewHireClosed, model.NewHireCalledOff:
		default:
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: unknown status %q", row.Line, hire.Status))
			continue
		}
		hire.CreatedBy = actor
		hire.UpdatedBy = actor
		hires = append(hires, hire)
	}

	if len(rowErrors) > 0 {
		return &BulkResult{RowErrors: rowErrors}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, hire := range hires {
			if err := tx.Create(hire).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("new_hire_imported", "new_hires", map[string]interface{}{"count": len(hires)})
	return &BulkResult{Inserted: len(hires)}, nil
}
