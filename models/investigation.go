package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Investigation statuses.
const (
	InvestigationOrdered          = "Ordered"
	InvestigationScheduled        = "Scheduled"
	InvestigationInProgress       = "In Progress"
	InvestigationResultsAvailable = "Results Available"
	InvestigationCompleted        = "Completed"
	InvestigationCancelled        = "Cancelled"
)

// Investigation priorities.
const (
	PriorityRoutine = "Routine"
	PriorityUrgent  = "Urgent"
	PrioritySTAT    = "STAT"
)

type InvestigationResult struct {
	Summary     string    `json:"summary" bson:"summary"`
	Findings    string    `json:"findings" bson:"findings"`
	IsAbnormal  bool      `json:"isAbnormal" bson:"isAbnormal"`
	ReportedAt  time.Time `json:"reportedAt" bson:"reportedAt"`
	ReportedBy  string    `json:"reportedBy" bson:"reportedBy"`
	Attachments []string  `json:"attachments" bson:"attachments"`
}

// Investigation is a diagnostic order placed by a doctor. Details is a
// free-form document whose shape depends on the investigation type.
type Investigation struct {
	ID                     primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	PatientID              primitive.ObjectID   `json:"patientId" bson:"patientId"`
	PatientName            string               `json:"patientName" bson:"patientName"`
	AdmissionID            primitive.ObjectID   `json:"admissionId,omitempty" bson:"admissionId,omitempty"`
	DoctorID               primitive.ObjectID   `json:"doctorId" bson:"doctorId"`
	DoctorName             string               `json:"doctorName" bson:"doctorName"`
	InvestigationType      string               `json:"investigationType" bson:"investigationType"`
	OtherInvestigationType string               `json:"otherInvestigationType,omitempty" bson:"otherInvestigationType,omitempty"`
	ReasonForInvestigation string               `json:"reasonForInvestigation" bson:"reasonForInvestigation"`
	InvestigationDetails   primitive.M          `json:"investigationDetails" bson:"investigationDetails"`
	ClinicalHistory        string               `json:"clinicalHistory" bson:"clinicalHistory"`
	Priority               string               `json:"priority" bson:"priority"`
	Status                 string               `json:"status" bson:"status"`
	ScheduledDate          time.Time            `json:"scheduledDate,omitempty" bson:"scheduledDate,omitempty"`
	OrderDate              time.Time            `json:"orderDate" bson:"orderDate"`
	Results                *InvestigationResult `json:"results,omitempty" bson:"results,omitempty"`
	CreatedAt              time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// FullName resolves the display name of the investigation: the free
// text type when "Other" was chosen, the catalog type otherwise.
func (inv *Investigation) FullName() string {
	if inv.InvestigationType == "Other" && inv.OtherInvestigationType != "" {
		return inv.OtherInvestigationType
	}
	return inv.InvestigationType
}
