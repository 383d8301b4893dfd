package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aadarsh-Mane/common-backend/models"
)

func TestReduceLabReports(t *testing.T) {
	uploaded := time.Now()
	reports := []models.LabReport{
		{
			LabTestNameGivenByDoctor: "CBC",
			Reports: []models.LabResult{
				{LabTestName: "CBC", ReportURL: "https://lab/cbc.pdf", LabType: "pathology", UploadedAt: uploaded},
			},
		},
		{LabTestNameGivenByDoctor: "LFT"},
	}

	reduced := ReduceLabReports(reports)
	require.Len(t, reduced, 2)
	assert.Equal(t, "CBC", reduced[0].LabTestNameGivenByDoctor)
	require.Len(t, reduced[0].Reports, 1)
	assert.Equal(t, "https://lab/cbc.pdf", reduced[0].Reports[0].ReportURL)
	assert.Equal(t, "LFT", reduced[1].LabTestNameGivenByDoctor)
	assert.Empty(t, reduced[1].Reports)
}

func TestBuildHistoryEntryFullFidelity(t *testing.T) {
	admissionID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()
	admitted := time.Now().Add(-72 * time.Hour)
	discharged := time.Now()

	record := models.AdmissionRecord{
		ID:                   admissionID,
		AdmissionDate:        admitted,
		Status:               models.AdmissionStatusAdmitted,
		PatientType:          "Internal",
		AdmitNotes:           "ICU",
		ReasonForAdmission:   "Chest pain",
		DoctorConsultant:     []string{"Dr. Rao"},
		ConditionAtDischarge: "Discharged",
		AmountToBePayed:      1200,
		Weight:               70.5,
		Symptoms:             "chest pain",
		InitialDiagnosis:     "angina",
		Doctor:               models.DoctorRef{ID: doctorID, Name: "Dr. Mehta", Usertype: "doctor"},
		BedNumber:            12,
		SymptomsByDoctor:     []string{"Chest Pain - 2026-02-01", "Sweating"},
		DiagnosisByDoctor:    []string{"Unstable angina"},
		Vitals:               []models.VitalSign{{Temperature: "98.6"}},
		DoctorNotes:          []models.DoctorNote{{Text: "monitor overnight"}},
		Medications:          []models.Medication{{Name: "Aspirin"}},
		Version:              3,
	}
	labs := []models.HistoryLabReport{{LabTestNameGivenByDoctor: "Troponin"}}

	entry := BuildHistoryEntry(record, discharged, 450, labs)

	assert.False(t, entry.ID.IsZero())
	assert.Equal(t, admissionID, entry.AdmissionID)
	assert.Equal(t, admitted, entry.AdmissionDate)
	assert.Equal(t, discharged, entry.DischargeDate)
	assert.Equal(t, models.AdmissionStatusAdmitted, entry.Status)
	assert.Equal(t, "Internal", entry.PatientType)
	assert.Equal(t, "ICU", entry.AdmitNotes)
	assert.Equal(t, "Chest pain", entry.ReasonForAdmission)
	assert.Equal(t, []string{"Dr. Rao"}, entry.DoctorConsultant)
	assert.Equal(t, "Discharged", entry.ConditionAtDischarge)
	assert.Equal(t, float64(1200), entry.AmountToBePayed)
	assert.Equal(t, float64(450), entry.PreviousRemainingAmount)
	assert.Equal(t, 70.5, entry.Weight)
	assert.Equal(t, record.Doctor, entry.Doctor)
	assert.Equal(t, 12, entry.BedNumber)
	assert.Equal(t, record.SymptomsByDoctor, entry.SymptomsByDoctor)
	assert.Equal(t, record.DiagnosisByDoctor, entry.DiagnosisByDoctor)
	assert.Equal(t, record.Vitals, entry.Vitals)
	assert.Equal(t, record.DoctorNotes, entry.DoctorNotes)
	assert.Equal(t, record.Medications, entry.Medications)
	assert.Equal(t, labs, entry.LabReports)
}

func TestHasOpenAdmission(t *testing.T) {
	patient := models.Patient{
		AdmissionRecords: []models.AdmissionRecord{
			{ID: primitive.NewObjectID(), DischargeDate: time.Now()},
		},
	}
	assert.False(t, patient.HasOpenAdmission())

	patient.AdmissionRecords = append(patient.AdmissionRecords, models.AdmissionRecord{ID: primitive.NewObjectID()})
	assert.True(t, patient.HasOpenAdmission())
}

func TestFindAdmission(t *testing.T) {
	target := primitive.NewObjectID()
	patient := models.Patient{
		AdmissionRecords: []models.AdmissionRecord{
			{ID: primitive.NewObjectID()},
			{ID: target, BedNumber: 7},
		},
	}
	record := patient.FindAdmission(target)
	require.NotNil(t, record)
	assert.Equal(t, 7, record.BedNumber)
	assert.Nil(t, patient.FindAdmission(primitive.NewObjectID()))
}
