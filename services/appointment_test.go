package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func TestValidateAppointmentStatus(t *testing.T) {
	for _, status := range []string{"accepted", "canceled", "completed", "no-show"} {
		assert.NoError(t, ValidateAppointmentStatus(AppointmentStatusRequest{Status: status}), status)
	}

	err := ValidateAppointmentStatus(AppointmentStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, util.INVALID_APPOINTMENT_STATUS, err.Error())

	err = ValidateAppointmentStatus(AppointmentStatusRequest{Status: ""})
	require.Error(t, err)
}

func TestValidateAppointmentStatusReschedule(t *testing.T) {
	// Both fields present: fine.
	assert.NoError(t, ValidateAppointmentStatus(AppointmentStatusRequest{
		Status:          "rescheduled",
		RescheduledDate: "2026-09-01",
		RescheduledTime: "10:30",
	}))

	// Either missing: rejected.
	err := ValidateAppointmentStatus(AppointmentStatusRequest{Status: "rescheduled", RescheduledDate: "2026-09-01"})
	require.Error(t, err)
	assert.Equal(t, util.RESCHEDULE_FIELDS_REQUIRED, err.Error())

	err = ValidateAppointmentStatus(AppointmentStatusRequest{Status: "rescheduled", RescheduledTime: "10:30"})
	require.Error(t, err)
}

func TestBuildAppointmentAdmission(t *testing.T) {
	apptDoctor := models.DoctorRef{ID: primitive.NewObjectID(), Name: "Dr. Rao", Usertype: "doctor"}
	appointment := models.Appointment{Symptoms: "fever, chills", Doctor: apptDoctor}

	record := buildAppointmentAdmission(&appointment, "admit to ward 3")
	// The stay belongs to the appointment's doctor, whoever accepted it.
	assert.Equal(t, apptDoctor, record.Doctor)
	assert.Equal(t, models.AdmissionStatusPending, record.Status)
	assert.Equal(t, "external", record.PatientType)
	assert.Equal(t, "fever, chills", record.Symptoms)
	assert.Equal(t, "fever, chills", record.ReasonForAdmission)
	assert.Equal(t, "admit to ward 3", record.AdmitNotes)
	assert.True(t, record.IsOpen())
	assert.Zero(t, record.Version)
}

func TestNewPatientFromAppointment(t *testing.T) {
	appt := models.PatientAppointment{
		PatientID: "P-2044",
		Name:      "Asha",
		Contact:   "9999999999",
		Address:   "MG Road",
	}
	record := buildAppointmentAdmission(&models.Appointment{}, "")

	patient := newPatientFromAppointment(&appt, record)
	// The patient keeps the appointment's business key, so
	// patientId-addressed lookups find the new record.
	assert.Equal(t, "P-2044", patient.PatientID)
	assert.Equal(t, "Asha", patient.Name)
	assert.Equal(t, "9999999999", patient.Contact)
	assert.Equal(t, 0, patient.Age)
	assert.Equal(t, "Other", patient.Gender)
	assert.False(t, patient.Discharged)
	require.Len(t, patient.AdmissionRecords, 1)
	assert.Equal(t, record.ID, patient.AdmissionRecords[0].ID)
}

func TestFindAppointment(t *testing.T) {
	target := primitive.NewObjectID()
	doc := models.PatientAppointment{
		Appointments: []models.Appointment{
			{ID: primitive.NewObjectID()},
			{ID: target, Symptoms: "fever"},
		},
	}
	appt := doc.FindAppointment(target)
	require.NotNil(t, appt)
	assert.Equal(t, "fever", appt.Symptoms)
	assert.Nil(t, doc.FindAppointment(primitive.NewObjectID()))
}

func TestMarkLatestAppointments(t *testing.T) {
	patientA := primitive.NewObjectID()
	patientB := primitive.NewObjectID()
	base := time.Now()

	rows := []DoctorAppointment{
		{PatientDocID: patientA, Appointment: models.Appointment{CreatedAt: base}},
		{PatientDocID: patientA, Appointment: models.Appointment{CreatedAt: base.Add(time.Hour)}},
		{PatientDocID: patientB, Appointment: models.Appointment{CreatedAt: base.Add(-time.Hour)}},
	}
	MarkLatestAppointments(rows)

	assert.False(t, rows[0].IsLatest)
	assert.True(t, rows[1].IsLatest)
	assert.True(t, rows[2].IsLatest)
}
