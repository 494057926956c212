package service

import (
	"errors"
	"fmt"
	"strings"

	"go-itops-portal/internal/model"
	"go-itops-portal/pkg/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound maps to a 404 at the handler layer.
var ErrNotFound = errors.New("record not found")

// ValidationError is a bad request: nothing was written and the message
// names the offending fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// validateStruct runs tag validation and folds the failures into one
// ValidationError naming every failed field.
func validateStruct(data interface{}) error {
	errs := validator.ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = fmt.Sprintf("%s (%s)", e.FailedField, e.Tag)
	}
	return validationErrf("validation failed: %s", strings.Join(fields, ", "))
}

// Notifier receives lifecycle events after their transaction has committed.
// Implementations must be fire-and-forget; see internal/mailer.
type Notifier interface {
	NewHireCreated(hire *model.NewHire)
	NewHireUpdated(hire *model.NewHire)
	NewHireClosed(hire *model.NewHire, days int)
	NewHireCalledOff(hire *model.NewHire)
	DeliveryConfigured(delivery *model.Delivery)
	DeliveryFinalized(delivery *model.Delivery)
}

// BulkResult reports a CSV import. The policy is all-or-nothing for every
// entity: when RowErrors is non-empty, nothing was written.
type BulkResult struct {
	Inserted  int      `json:"inserted"`
	RowErrors []string `json:"errors,omitempty"`
}

// forUpdate locks the selected rows for the duration of the transaction.
// SQLite has no SELECT ... FOR UPDATE; its writes are serialized anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
