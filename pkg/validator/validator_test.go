package validator

import (
	"testing"

	"github.com/google/uuid"
)

type payload struct {
	Name string    `validate:"required"`
	ID   uuid.UUID `validate:"uuid_required"`
}

func TestValidateStruct(t *testing.T) {
	if errs := ValidateStruct(payload{Name: "laptop", ID: uuid.New()}); errs != nil {
		t.Fatalf("valid payload = %+v, want nil", errs)
	}

	errs := ValidateStruct(payload{})
	if len(errs) != 2 {
		t.Fatalf("got %d failures, want 2", len(errs))
	}
	if errs[0].FailedField != "payload.Name" || errs[0].Tag != "required" {
		t.Errorf("first failure = %+v, want payload.Name/required", errs[0])
	}
	if errs[1].FailedField != "payload.ID" || errs[1].Tag != "uuid_required" {
		t.Errorf("second failure = %+v, want payload.ID/uuid_required", errs[1])
	}
}
