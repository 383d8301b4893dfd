package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses a doctor may set.
var ValidAppointmentStatuses = []string{"accepted", "canceled", "completed", "rescheduled", "no-show"}

// Appointment is one booked slot embedded in the per-patient
// appointment document.
type Appointment struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Date            string             `json:"date" bson:"date"`
	Time            string             `json:"time" bson:"time"`
	Symptoms        string             `json:"symptoms" bson:"symptoms"`
	Status          string             `json:"status" bson:"status"`
	Doctor          DoctorRef          `json:"doctor" bson:"doctor"`
	DoctorNotes     string             `json:"doctorNotes" bson:"doctorNotes"`
	RescheduledTo   string             `json:"rescheduledTo,omitempty" bson:"rescheduledTo,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	StatusUpdatedAt time.Time          `json:"statusUpdatedAt,omitempty" bson:"statusUpdatedAt,omitempty"`
}

// PatientAppointment is one document per prospective patient holding
// all their booked appointments, keyed by the same business patientId
// the Patient document carries.
type PatientAppointment struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID    string             `json:"patientId" bson:"patientId"`
	Name         string             `json:"name" bson:"name"`
	Contact      string             `json:"contact" bson:"contact"`
	Email        string             `json:"email" bson:"email"`
	Address      string             `json:"address" bson:"address"`
	Appointments []Appointment      `json:"appointments" bson:"appointments"`
}

// FindAppointment returns a pointer to the appointment with the given
// id, or nil.
func (p *PatientAppointment) FindAppointment(appointmentID primitive.ObjectID) *Appointment {
	for i := range p.Appointments {
		if p.Appointments[i].ID == appointmentID {
			return &p.Appointments[i]
		}
	}
	return nil
}
