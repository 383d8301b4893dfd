package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryLabReport is the reduced lab report copy stored with a history
// entry: only the test name and its result files survive the discharge.
type HistoryLabReport struct {
	LabTestNameGivenByDoctor string      `json:"labTestNameGivenByDoctor" bson:"labTestNameGivenByDoctor"`
	Reports                  []LabResult `json:"reports" bson:"reports"`
}

// HistoryEntry is the immutable archive of one completed stay. It
// carries everything the admission record held, plus the discharge
// stamp and the financial snapshot taken at discharge time.
type HistoryEntry struct {
	ID                      primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	AdmissionID             primitive.ObjectID   `json:"admissionId" bson:"admissionId"`
	AdmissionDate           time.Time            `json:"admissionDate" bson:"admissionDate"`
	DischargeDate           time.Time            `json:"dischargeDate" bson:"dischargeDate"`
	Status                  string               `json:"status" bson:"status"`
	PatientType             string               `json:"patientType" bson:"patientType"`
	AdmitNotes              string               `json:"admitNotes" bson:"admitNotes"`
	ReasonForAdmission      string               `json:"reasonForAdmission" bson:"reasonForAdmission"`
	DoctorConsultant        []string             `json:"doctorConsultant" bson:"doctorConsultant"`
	ConditionAtDischarge    string               `json:"conditionAtDischarge" bson:"conditionAtDischarge"`
	AmountToBePayed         float64              `json:"amountToBePayed" bson:"amountToBePayed"`
	PreviousRemainingAmount float64              `json:"previousRemainingAmount" bson:"previousRemainingAmount"`
	DischargedByReception   bool                 `json:"dischargedByReception" bson:"dischargedByReception"`
	Weight                  float64              `json:"weight" bson:"weight"`
	Symptoms                string               `json:"symptoms" bson:"symptoms"`
	InitialDiagnosis        string               `json:"initialDiagnosis" bson:"initialDiagnosis"`
	Doctor                  DoctorRef            `json:"doctor" bson:"doctor"`
	Section                 SectionRef           `json:"section" bson:"section"`
	BedNumber               int                  `json:"bedNumber" bson:"bedNumber"`
	Reports                 []primitive.ObjectID `json:"reports" bson:"reports"`
	SymptomsByDoctor        []string             `json:"symptomsByDoctor" bson:"symptomsByDoctor"`
	DiagnosisByDoctor       []string             `json:"diagnosisByDoctor" bson:"diagnosisByDoctor"`
	Vitals                  []VitalSign          `json:"vitals" bson:"vitals"`
	DoctorPrescriptions     []Prescription       `json:"doctorPrescriptions" bson:"doctorPrescriptions"`
	DoctorConsulting        []ConsultingNote     `json:"doctorConsulting" bson:"doctorConsulting"`
	DoctorNotes             []DoctorNote         `json:"doctorNotes" bson:"doctorNotes"`
	Medications             []Medication         `json:"medications" bson:"medications"`
	IVFluids                []IVFluid            `json:"ivFluids" bson:"ivFluids"`
	Procedures              []Procedure          `json:"procedures" bson:"procedures"`
	SpecialInstructions     []SpecialInstruction `json:"specialInstructions" bson:"specialInstructions"`
	FollowUps               []FollowUp           `json:"followUps" bson:"followUps"`
	FourHrFollowUps         []FourHrFollowUp     `json:"fourHrFollowUpSchema" bson:"fourHrFollowUpSchema"`
	LabReports              []HistoryLabReport   `json:"labReports" bson:"labReports"`
}

// PatientHistory is one document per patient holding all completed
// stays. The demographic snapshot is taken at first discharge.
type PatientHistory struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID primitive.ObjectID `json:"patientId" bson:"patientId"`
	Name      string             `json:"name" bson:"name"`
	Gender    string             `json:"gender" bson:"gender"`
	Contact   string             `json:"contact" bson:"contact"`
	Age       int                `json:"age" bson:"age"`
	Address   string             `json:"address" bson:"address"`
	City      string             `json:"city" bson:"city"`
	State     string             `json:"state" bson:"state"`
	Country   string             `json:"country" bson:"country"`
	DOB       string             `json:"dob" bson:"dob"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl"`
	History   []HistoryEntry     `json:"history" bson:"history"`
}
