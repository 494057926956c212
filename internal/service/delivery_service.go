package service

import (
	"fmt"

	"go-itops-portal/internal/csvimport"
	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryService interface {
	GetAll() ([]model.Delivery, error)
	GetByID(id uuid.UUID) (*model.Delivery, error)
	Create(delivery *model.Delivery, actor string) error
	Update(id uuid.UUID, req *model.Delivery, actor string) (*model.Delivery, error)
	Delete(id uuid.UUID) (int64, error)
	BulkImport(csvData, actor string) (*BulkResult, error)
}

type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	db           *gorm.DB
	hub          *ws.Hub
	notifier     Notifier
}

func NewDeliveryService(deliveryRepo repository.DeliveryRepository, db *gorm.DB, hub *ws.Hub, notifier Notifier) DeliveryService {
	return &deliveryService{deliveryRepo: deliveryRepo, db: db, hub: hub, notifier: notifier}
}

func (s *deliveryService) GetAll() ([]model.Delivery, error) {
	return s.deliveryRepo.FindAll()
}

func (s *deliveryService) GetByID(id uuid.UUID) (*model.Delivery, error) {
	delivery, err := s.deliveryRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return delivery, nil
}

func (s *deliveryService) Create(delivery *model.Delivery, actor string) error {
	if err := validateStruct(delivery); err != nil {
		return err
	}

	delivery.CreatedBy = actor
	delivery.UpdatedBy = actor
	if err := s.deliveryRepo.Create(delivery); err != nil {
		return err
	}

	s.notifier.DeliveryConfigured(delivery)
	return nil
}

func (s *deliveryService) Update(id uuid.UUID, req *model.Delivery, actor string) (*model.Delivery, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.deliveryRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	itChanged := existing.ITStatus != req.ITStatus
	finalChanged := existing.FinalStatus != req.FinalStatus

	existing.Name = req.Name
	existing.Address = req.Address
	existing.AssetType = req.AssetType
	existing.MobileNumber = req.MobileNumber
	existing.CourierPartner = req.CourierPartner
	existing.TrackingNumber = req.TrackingNumber
	existing.CourierDate = req.CourierDate
	existing.ITStatus = req.ITStatus
	existing.FinalStatus = req.FinalStatus
	existing.DeliveryDate = req.DeliveryDate
	existing.NewJoiner = req.NewJoiner
	existing.UpdatedBy = actor

	if err := s.deliveryRepo.Update(existing); err != nil {
		return nil, err
	}

	s.hub.Publish("delivery_updated", "deliveries", existing)
	if itChanged {
		s.notifier.DeliveryConfigured(existing)
	}
	if finalChanged {
		s.notifier.DeliveryFinalized(existing)
	}
	return existing, nil
}

func (s *deliveryService) Delete(id uuid.UUID) (int64, error) {
	changes, err := s.deliveryRepo.Delete(id)
	if err != nil {
		return 0, err
	}
	if changes > 0 {
		s.hub.Publish("delivery_deleted", "deliveries", map[string]interface{}{"id": id})
	}
	return changes, nil
}

// BulkImport inserts delivery rows all-or-nothing. Missing status columns
// default to the state a freshly booked shipment is in.
func (s *deliveryService) BulkImport(csvData, actor string) (*BulkResult, error) {
	rows, err := csvimport.Parse(csvData)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	deliveries := make([]*model.Delivery, 0, len(rows))
	var rowErrors []string

	for _, row := range rows {
		delivery := &model.Delivery{
			Name:           row.Get("name"),
			Address:        row.Get("address"),
			AssetType:      row.Get("asset_type", "asset type"),
			MobileNumber:   row.Get("mobile_number", "mobile number"),
			CourierPartner: row.Get("courier_partner", "courier partner"),
			TrackingNumber: row.Get("tracking_number", "tracking number"),
			CourierDate:    row.Get("courier_date", "courier date"),
			ITStatus:       row.GetOr(model.DeliveryITConfigured, "it_status", "it status"),
			FinalStatus:    row.GetOr(model.DeliveryFinalShipmentOut, "final_status", "final status"),
			DeliveryDate:   row.Get("delivery_date", "delivery date"),
			NewJoiner:      row.GetOr("No", "new_joiner", "new joiner"),
		}
		if delivery.Name == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: name is required", row.Line))
			continue
		}
		if delivery.TrackingNumber == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: tracking_number is required", row.Line))
			continue
		}
		delivery.CreatedBy = actor
		delivery.UpdatedBy = actor
		deliveries = append(deliveries, delivery)
	}

	if len(rowErrors) > 0 {
		return &BulkResult{RowErrors: rowErrors}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, delivery := range deliveries {
			if err := tx.Create(delivery).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("delivery_imported", "deliveries", map[string]interface{}{"count": len(deliveries)})
	return &BulkResult{Inserted: len(deliveries)}, nil
}
