package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LabResult is one uploaded result file for a lab assignment.
type LabResult struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	LabTestName string             `json:"labTestName" bson:"labTestName"`
	ReportURL   string             `json:"reportUrl" bson:"reportUrl"`
	LabType     string             `json:"labType" bson:"labType"`
	UploadedAt  time.Time          `json:"uploadedAt" bson:"uploadedAt"`
}

// LabReport links one ordered test to an admission. Results are
// appended by the lab as they come in.
type LabReport struct {
	ID                       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	AdmissionID              primitive.ObjectID `json:"admissionId" bson:"admissionId"`
	PatientID                primitive.ObjectID `json:"patientId" bson:"patientId"`
	DoctorID                 primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	LabTestNameGivenByDoctor string             `json:"labTestNameGivenByDoctor" bson:"labTestNameGivenByDoctor"`
	Reports                  []LabResult        `json:"reports" bson:"reports"`
	AssignedAt               time.Time          `json:"assignedAt" bson:"assignedAt"`
}
