package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Aadarsh-Mane/common-backend/models"
)

func TestValidateCondition(t *testing.T) {
	for _, valid := range []string{"Discharged", "Transferred", "A.M.A.", "Absconded", "Expired"} {
		assert.True(t, ValidateCondition(valid), valid)
	}
	assert.False(t, ValidateCondition("discharged"))
	assert.False(t, ValidateCondition("Deceased"))
	assert.False(t, ValidateCondition(""))
}

func TestValidateAmount(t *testing.T) {
	zero := 0.0
	positive := 1500.0
	negative := -1.0

	assert.True(t, ValidateAmount(&zero))
	assert.True(t, ValidateAmount(&positive))
	assert.False(t, ValidateAmount(&negative))
	assert.False(t, ValidateAmount(nil))
}

func TestTreatmentStamp(t *testing.T) {
	// 2026-08-28 20:00 UTC is 2026-08-29 01:30 IST.
	utc := time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC)
	date, timeOfDay := treatmentStamp(utc)
	assert.Equal(t, "2026-08-29", date)
	assert.Equal(t, "01:30:00", timeOfDay)
}

func TestTreatmentFieldMapping(t *testing.T) {
	for _, typ := range []string{"medications", "ivFluids", "procedures", "specialInstructions"} {
		field, ok := treatmentFields[typ]
		assert.True(t, ok, typ)
		assert.Equal(t, typ, field)
	}
	_, ok := treatmentFields["surgeries"]
	assert.False(t, ok)
}

func TestTreatmentLists(t *testing.T) {
	record := models.AdmissionRecord{
		Medications:         []models.Medication{{Name: "Paracetamol"}},
		IVFluids:            []models.IVFluid{{Name: "NS 0.9%"}},
		Procedures:          []models.Procedure{{Name: "Dressing"}},
		SpecialInstructions: []models.SpecialInstruction{{Instruction: "NPO after midnight"}},
	}

	lists := TreatmentLists(&record)
	assert.Equal(t, record.Medications, lists["medications"])
	assert.Equal(t, record.IVFluids, lists["ivFluids"])
	assert.Equal(t, record.Procedures, lists["procedures"])
	assert.Equal(t, record.SpecialInstructions, lists["specialInstructions"])
}
