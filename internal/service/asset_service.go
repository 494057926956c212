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

type AssetService interface {
	GetAll() ([]model.Asset, error)
	GetByID(id uuid.UUID) (*model.Asset, error)
	Create(asset *model.Asset, actor string) error
	Update(id uuid.UUID, req *model.Asset, actor string) (*model.Asset, error)
	Delete(id uuid.UUID) (int64, error)
	BulkImport(csvData, actor string) (*BulkResult, error)
	Offboard(gaid, actor string) (int, error)
	UpgradePrimary(req *UpgradePrimaryRequest, actor string) error
	SwapPeripheral(req *SwapPeripheralRequest, actor string) error
}

// OffboardRequest identifies the departing employee.
type OffboardRequest struct {
	GAID string `json:"gaid" validate:"required"`
}

// UpgradePrimaryRequest replaces an employee's primary asset with an
// in-stock one.
type UpgradePrimaryRequest struct {
	OldAssetID        uuid.UUID `json:"oldAssetId" validate:"uuid_required"`
	NewAssetID        uuid.UUID `json:"newAssetId" validate:"uuid_required"`
	OldAssetNewStatus string    `json:"oldAssetNewStatus" validate:"required,oneof='Not working' 'In Repair' Lost 'In Stock'"`
}

// SwapPeripheralRequest replaces one inline peripheral slot on a primary
// asset with an in-stock standalone peripheral.
type SwapPeripheralRequest struct {
	PrimaryAssetID  uuid.UUID `json:"primaryAssetId" validate:"uuid_required"`
	Field           string    `json:"field" validate:"required,oneof=monitor1 monitor2 headset"`
	NewPeripheralID uuid.UUID `json:"newPeripheralId" validate:"uuid_required"`
}

type assetService struct {
	assetRepo   repository.AssetRepository
	historyRepo repository.HistoryRepository
	db          *gorm.DB
	hub         *ws.Hub
}

func NewAssetService(assetRepo repository.AssetRepository, historyRepo repository.HistoryRepository, db *gorm.DB, hub *ws.Hub) AssetService {
	return &assetService{
		assetRepo:   assetRepo,
		historyRepo: historyRepo,
		db:          db,
		hub:         hub,
	}
}

func (s *assetService) GetAll() ([]model.Asset, error) {
	return s.assetRepo.FindAll()
}

func (s *assetService) GetByID(id uuid.UUID) (*model.Asset, error) {
	asset, err := s.assetRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) Create(asset *model.Asset, actor string) error {
	if err := validateStruct(asset); err != nil {
		return err
	}

	// asset_tag is globally unique
	existing, _ := s.assetRepo.FindByTag(asset.AssetTag)
	if existing != nil && existing.ID != uuid.Nil {
		return validationErrf("asset tag '%s' already exists", asset.AssetTag)
	}

	asset.CreatedBy = actor
	asset.UpdatedBy = actor
	if err := s.assetRepo.Create(asset); err != nil {
		return err
	}

	s.hub.Publish("asset_created", "assets", asset)
	return nil
}

func (s *assetService) Update(id uuid.UUID, req *model.Asset, actor string) (*model.Asset, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var updated *model.Asset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Asset
		if err := forUpdate(tx).First(&existing, "id = ?", id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}

		if req.AssetTag != existing.AssetTag {
			dup, _ := s.assetRepo.FindByTag(req.AssetTag)
			if dup != nil && dup.ID != uuid.Nil && dup.ID != existing.ID {
				return validationErrf("asset tag '%s' already exists", req.AssetTag)
			}
		}

		entries := historyForChanges(&existing, req, actor)

		applyAssetFields(&existing, req)
		existing.UpdatedBy = actor
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		if err := s.historyRepo.Record(tx, entries...); err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("asset_updated", "assets", updated)
	return updated, nil
}

func (s *assetService) Delete(id uuid.UUID) (int64, error) {
	changes, err := s.assetRepo.Delete(id)
	if err != nil {
		return 0, err
	}
	if changes > 0 {
		s.hub.Publish("asset_deleted", "assets", map[string]interface{}{"id": id})
	}
	return changes, nil
}

// BulkImport parses the CSV, validates every row with the same rules as
// single create, and inserts all rows in one transaction. All-or-nothing:
// one bad row rejects the whole file.
func (s *assetService) BulkImport(csvData, actor string) (*BulkResult, error) {
	rows, err := csvimport.Parse(csvData)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	assets := make([]*model.Asset, 0, len(rows))
	var rowErrors []string
	seenTags := map[string]int{}

	for _, row := range rows {
		asset := assetFromRow(row)
		asset.CreatedBy = actor
		asset.UpdatedBy = actor

		if err := validateStruct(asset); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", row.Line, err.Error()))
			continue
		}
		if prev, ok := seenTags[asset.AssetTag]; ok {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: duplicate asset tag '%s' (also on row %d)", row.Line, asset.AssetTag, prev))
			continue
		}
		seenTags[asset.AssetTag] = row.Line

		if existing, _ := s.assetRepo.FindByTag(asset.AssetTag); existing != nil && existing.ID != uuid.Nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: asset tag '%s' already exists", row.Line, asset.AssetTag))
			continue
		}
		assets = append(assets, asset)
	}

	if len(rowErrors) > 0 {
		return &BulkResult{RowErrors: rowErrors}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, asset := range assets {
			if err := tx.Create(asset).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish("assets_imported", "assets", map[string]interface{}{"count": len(assets)})
	return &BulkResult{Inserted: len(assets)}, nil
}

// Offboard frees every asset assigned to the employee. For each non-empty
// peripheral slot a standalone In Stock asset is created carrying the
// slot's tag and serial; then the primary asset's assignment and slots are
// cleared. The whole batch commits or rolls back together.
func (s *assetService) Offboard(gaid, actor string) (int, error) {
	if gaid == "" {
		return 0, validationErrf("gaid is required")
	}

	var freed int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var assets []model.Asset
		if err := forUpdate(tx).Where("gaid = ?", gaid).Find(&assets).Error; err != nil {
			return err
		}
		if len(assets) == 0 {
			return ErrNotFound
		}

		for i := range assets {
			asset := &assets[i]

			for _, slot := range peripheralSlots(asset) {
				if slot.tag == "" {
					continue
				}
				respawned := &model.Asset{
					AssetTag:     slot.tag,
					SerialNumber: slot.serial,
					AssetType:    slot.assetType,
					Status:       model.StatusInStock,
				}
				respawned.CreatedBy = actor
				respawned.UpdatedBy = actor
				if err := tx.Create(respawned).Error; err != nil {
					return fmt.Errorf("recover peripheral '%s': %w", slot.tag, err)
				}
			}

			entry := &model.AssetHistory{
				AssetID:  asset.ID,
				User:     actor,
				Action:   model.HistoryActionOffboarded,
				Field:    "gaid",
				OldValue: asset.GAID,
				NewValue: "",
			}
			asset.ClearAssignment()
			asset.UpdatedBy = actor
			if err := tx.Save(asset).Error; err != nil {
				return err
			}
			if err := s.historyRepo.Record(tx, entry); err != nil {
				return err
			}
		}

		freed = len(assets)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.hub.Publish("assets_offboarded", "assets", map[string]interface{}{"gaid": gaid, "count": freed})
	return freed, nil
}

// UpgradePrimary moves an employee's assignment context from their current
// primary asset onto an in-stock replacement, atomically.
func (s *assetService) UpgradePrimary(req *UpgradePrimaryRequest, actor string) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var oldAsset, newAsset model.Asset
		if err := forUpdate(tx).First(&oldAsset, "id = ?", req.OldAssetID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := forUpdate(tx).First(&newAsset, "id = ?", req.NewAssetID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		if newAsset.Status != model.StatusInStock {
			return validationErrf("replacement asset '%s' is not in stock (status: %s)", newAsset.AssetTag, newAsset.Status)
		}

		// Move the assignment context, slots included.
		newAsset.AssignedTo = oldAsset.AssignedTo
		newAsset.GAID = oldAsset.GAID
		newAsset.EmailID = oldAsset.EmailID
		newAsset.ReportingManager = oldAsset.ReportingManager
		newAsset.ManagerEmailID = oldAsset.ManagerEmailID
		newAsset.Monitor1AssetTag = oldAsset.Monitor1AssetTag
		newAsset.Monitor1SerialNumber = oldAsset.Monitor1SerialNumber
		newAsset.Monitor2AssetTag = oldAsset.Monitor2AssetTag
		newAsset.Monitor2SerialNumber = oldAsset.Monitor2SerialNumber
		newAsset.HeadsetAssetTag = oldAsset.HeadsetAssetTag
		newAsset.HeadsetSerialNumber = oldAsset.HeadsetSerialNumber
		newAsset.YubikeyNumber = oldAsset.YubikeyNumber
		newAsset.WebcamNumber = oldAsset.WebcamNumber
		newAsset.Status = model.StatusAssigned
		newAsset.UpdatedBy = actor

		gaid := oldAsset.GAID
		oldAsset.ClearAssignment()
		oldAsset.Status = req.OldAssetNewStatus
		oldAsset.UpdatedBy = actor

		if err := tx.Save(&newAsset).Error; err != nil {
			return err
		}
		if err := tx.Save(&oldAsset).Error; err != nil {
			return err
		}

		return s.historyRepo.Record(tx,
			&model.AssetHistory{
				AssetID:  oldAsset.ID,
				User:     actor,
				Action:   model.HistoryActionPrimaryReplace,
				Field:    "status",
				OldValue: model.StatusAssigned,
				NewValue: req.OldAssetNewStatus,
			},
			&model.AssetHistory{
				AssetID:  newAsset.ID,
				User:     actor,
				Action:   model.HistoryActionPrimaryReplace,
				Field:    "gaid",
				OldValue: "",
				NewValue: gaid,
			},
		)
	})
	if err != nil {
		return err
	}

	s.hub.Publish("asset_primary_replaced", "assets", map[string]interface{}{
		"old_asset_id": req.OldAssetID,
		"new_asset_id": req.NewAssetID,
	})
	return nil
}

// SwapPeripheral writes an in-stock peripheral's tag/serial into one of a
// primary asset's inline slots and removes the standalone row, atomically.
func (s *assetService) SwapPeripheral(req *SwapPeripheralRequest, actor string) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var primary, replacement model.Asset
		if err := forUpdate(tx).First(&primary, "id = ?", req.PrimaryAssetID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := forUpdate(tx).First(&replacement, "id = ?", req.NewPeripheralID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		if replacement.Status != model.StatusInStock {
			return validationErrf("replacement peripheral '%s' is not in stock (status: %s)", replacement.AssetTag, replacement.Status)
		}

		var oldTag string
		switch req.Field {
		case model.SlotMonitor1:
			oldTag = primary.Monitor1AssetTag
			primary.Monitor1AssetTag = replacement.AssetTag
			primary.Monitor1SerialNumber = replacement.SerialNumber
		case model.SlotMonitor2:
			oldTag = primary.Monitor2AssetTag
			primary.Monitor2AssetTag = replacement.AssetTag
			primary.Monitor2SerialNumber = replacement.SerialNumber
		case model.SlotHeadset:
			oldTag = primary.HeadsetAssetTag
			primary.HeadsetAssetTag = replacement.AssetTag
			primary.HeadsetSerialNumber = replacement.SerialNumber
		}
		primary.UpdatedBy = actor

		if err := tx.Save(&primary).Error; err != nil {
			return err
		}
		// The peripheral now lives inline on the primary asset.
		if err := tx.Delete(&model.Asset{}, "id = ?", replacement.ID).Error; err != nil {
			return err
		}

		return s.historyRepo.Record(tx, &model.AssetHistory{
			AssetID:  primary.ID,
			User:     actor,
			Action:   model.HistoryActionPeripheralSwap,
			Field:    req.Field,
			OldValue: oldTag,
			NewValue: replacement.AssetTag,
		})
	})
	if err != nil {
		return err
	}

	s.hub.Publish("asset_peripheral_swapped", "assets", map[string]interface{}{
		"primary_asset_id": req.PrimaryAssetID,
		"field":            req.Field,
	})
	return nil
}

type slotRef struct {
	tag       string
	serial    string
	assetType string
}

func peripheralSlots(a *model.Asset) []slotRef {
	return []slotRef{
		{a.Monitor1AssetTag, a.Monitor1SerialNumber, model.AssetTypeMonitor},
		{a.Monitor2AssetTag, a.Monitor2SerialNumber, model.AssetTypeMonitor},
		{a.HeadsetAssetTag, a.HeadsetSerialNumber, model.AssetTypeHeadset},
	}
}

func assetFromRow(row csvimport.Row) *model.Asset {
	return &model.Asset{
		AssetTag:               row.Get("asset_tag"),
		SerialNumber:           row.Get("serial_number"),
		AssetType:              row.Get("asset_type"),
		Make:                   row.Get("make"),
		Model:                  row.Get("model"),
		AssignedTo:             row.Get("assigned_to"),
		GAID:                   row.Get("gaid"),
		EmailID:                row.Get("email_id"),
		Status:                 row.GetOr(model.StatusInStock, "status"),
		CPU:                    row.Get("cpu"),
		RAM:                    row.Get("ram"),
		Storage:                row.Get("storage"),
		PurchaseDate:           row.Get("purchase_date"),
		WarrantyExpirationDate: row.Get("warranty_expiration_date"),
		Notes:                  row.Get("notes"),
		Monitor1AssetTag:       row.Get("monitor1_asset_tag"),
		Monitor1SerialNumber:   row.Get("monitor1_serial_number"),
		Monitor2AssetTag:       row.Get("monitor2_asset_tag"),
		Monitor2SerialNumber:   row.Get("monitor2_serial_number"),
		HeadsetAssetTag:        row.Get("headset_asset_tag"),
		HeadsetSerialNumber:    row.Get("headset_serial_number"),
		YubikeyNumber:          row.Get("yubikey_number"),
		WebcamNumber:           row.Get("webcam_number"),
		ReportingManager:       row.Get("reporting_manager"),
		ManagerEmailID:         row.Get("manager_email_id"),
	}
}

// applyAssetFields copies every mutable column from req onto dst.
func applyAssetFields(dst, req *model.Asset) {
	dst.AssetTag = req.AssetTag
	dst.SerialNumber = req.SerialNumber
	dst.AssetType = req.AssetType
	dst.Make = req.Make
	dst.Model = req.Model
	dst.AssignedTo = req.AssignedTo
	dst.GAID = req.GAID
	dst.EmailID = req.EmailID
	dst.Status = req.Status
	dst.CPU = req.CPU
	dst.RAM = req.RAM
	dst.Storage = req.Storage
	dst.PurchaseDate = req.PurchaseDate
	dst.WarrantyExpirationDate = req.WarrantyExpirationDate
	dst.Notes = req.Notes
	dst.Monitor1AssetTag = req.Monitor1AssetTag
	dst.Monitor1SerialNumber = req.Monitor1SerialNumber
	dst.Monitor2AssetTag = req.Monitor2AssetTag
	dst.Monitor2SerialNumber = req.Monitor2SerialNumber
	dst.HeadsetAssetTag = req.HeadsetAssetTag
	dst.HeadsetSerialNumber = req.HeadsetSerialNumber
	dst.YubikeyNumber = req.YubikeyNumber
	dst.WebcamNumber = req.WebcamNumber
	dst.ReportingManager = req.ReportingManager
	dst.ManagerEmailID = req.ManagerEmailID
}

// historyForChanges emits one audit row per watched field that differs.
func historyForChanges(existing, req *model.Asset, actor string) []*model.AssetHistory {
	type change struct{ field, oldV, newV string }
	candidates := []change{
		{"asset_tag", existing.AssetTag, req.AssetTag},
		{"status", existing.Status, req.Status},
		{"assigned_to", existing.AssignedTo, req.AssignedTo},
		{"gaid", existing.GAID, req.GAID},
	}
	var entries []*model.AssetHistory
	for _, c := range candidates {
		if c.oldV != c.newV {
			entries = append(entries, &model.AssetHistory{
				AssetID:  existing.ID,
				User:     actor,
				Action:   model.HistoryActionUpdated,
				Field:    c.field,
				OldValue: c.oldV,
				NewValue: c.newV,
			})
		}
	}
	return entries
}
