package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DoctorRef is the doctor identity captured by value on an admission,
// so later profile edits do not retroactively alter attribution.
type DoctorRef struct {
	ID       primitive.ObjectID `json:"id" bson:"id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Usertype string             `json:"usertype,omitempty" bson:"usertype,omitempty"`
}

type SectionRef struct {
	ID   primitive.ObjectID `json:"id" bson:"id,omitempty"`
	Name string             `json:"name" bson:"name"`
	Type string             `json:"type" bson:"type"`
}

type VitalSign struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Temperature     string             `json:"temperature" bson:"temperature"`
	Pulse           string             `json:"pulse" bson:"pulse"`
	BloodPressure   string             `json:"bloodPressure" bson:"bloodPressure"`
	BloodSugarLevel string             `json:"bloodSugarLevel" bson:"bloodSugarLevel"`
	Other           string             `json:"other" bson:"other"`
	RecordedAt      time.Time          `json:"recordedAt" bson:"recordedAt"`
}

type PrescribedMedicine struct {
	Name      string    `json:"name" bson:"name"`
	Morning   string    `json:"morning" bson:"morning"`
	Afternoon string    `json:"afternoon" bson:"afternoon"`
	Night     string    `json:"night" bson:"night"`
	Comment   string    `json:"comment" bson:"comment"`
	Date      time.Time `json:"date" bson:"date"`
}

type Prescription struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Medicine PrescribedMedicine `json:"medicine" bson:"medicine"`
}

// ConsultingNote keeps the historical wire names, misspellings included;
// renaming them would orphan every existing document.
type ConsultingNote struct {
	ID                             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Allergies                      string             `json:"allergies" bson:"allergies"`
	ChiefComplaint                 string             `json:"cheifComplaint" bson:"cheifComplaint"`
	DescribeAllergies              string             `json:"describeAllergies" bson:"describeAllergies"`
	HistoryOfPresentIllness        string             `json:"historyOfPresentIllness" bson:"historyOfPresentIllness"`
	PersonalHabits                 string             `json:"personalHabits" bson:"personalHabits"`
	FamilyHistory                  string             `json:"familyHistory" bson:"familyHistory"`
	MenstrualHistory               string             `json:"menstrualHistory" bson:"menstrualHistory"`
	WongBaker                      string             `json:"wongBaker" bson:"wongBaker"`
	VisualAnalogue                 string             `json:"visualAnalogue" bson:"visualAnalogue"`
	RelevantPreviousInvestigations string             `json:"relevantPreviousInvestigations" bson:"relevantPreviousInvestigations"`
	ImmunizationHistory            string             `json:"immunizationHistory" bson:"immunizationHistory"`
	PastMedicalHistory             string             `json:"pastMedicalHistory" bson:"pastMedicalHistory"`
	Date                           string             `json:"date" bson:"date"`
}

type DoctorNote struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Text       string             `json:"text" bson:"text"`
	DoctorName string             `json:"doctorName" bson:"doctorName"`
	Time       string             `json:"time" bson:"time"`
	Date       string             `json:"date" bson:"date"`
}

type Medication struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name   string             `json:"name" bson:"name"`
	Dosage string             `json:"dosage" bson:"dosage"`
	Type   string             `json:"type" bson:"type"`
	Date   string             `json:"date" bson:"date"`
	Time   string             `json:"time" bson:"time"`
}

type IVFluid struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Quantity string             `json:"quantity" bson:"quantity"`
	Duration string             `json:"duration" bson:"duration"`
	Date     string             `json:"date" bson:"date"`
	Time     string             `json:"time" bson:"time"`
}

type Procedure struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Frequency string             `json:"frequency" bson:"frequency"`
	Date      string             `json:"date" bson:"date"`
	Time      string             `json:"time" bson:"time"`
}

type SpecialInstruction struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Instruction string             `json:"instruction" bson:"instruction"`
	Date        string             `json:"date" bson:"date"`
	Time        string             `json:"time" bson:"time"`
}

// FollowUp is a nurse-recorded bedside observation round.
type FollowUp struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	NurseID          primitive.ObjectID `json:"nurseId" bson:"nurseId,omitempty"`
	Date             string             `json:"date" bson:"date"`
	Notes            string             `json:"notes" bson:"notes"`
	Observations     string             `json:"observations" bson:"observations"`
	Temperature      string             `json:"temperature" bson:"temperature"`
	Pulse            string             `json:"pulse" bson:"pulse"`
	RespirationRate  string             `json:"respirationRate" bson:"respirationRate"`
	BloodPressure    string             `json:"bloodPressure" bson:"bloodPressure"`
	OxygenSaturation string             `json:"oxygenSaturation" bson:"oxygenSaturation"`
	BloodSugarLevel  string             `json:"bloodSugarLevel" bson:"bloodSugarLevel"`
	OtherVitals      string             `json:"otherVitals" bson:"otherVitals"`
	IVFluid          string             `json:"ivFluid" bson:"ivFluid"`
	Nasogastric      string             `json:"nasogastric" bson:"nasogastric"`
	RTFeedOral       string             `json:"rtFeedOral" bson:"rtFeedOral"`
	TotalIntake      string             `json:"totalIntake" bson:"totalIntake"`
	CVP              string             `json:"cvp" bson:"cvp"`
	Urine            string             `json:"urine" bson:"urine"`
	Stool            string             `json:"stool" bson:"stool"`
	RTAspirate       string             `json:"rtAspirate" bson:"rtAspirate"`
	OtherOutput      string             `json:"otherOutput" bson:"otherOutput"`
	VentyMode        string             `json:"ventyMode" bson:"ventyMode"`
	SetRate          string             `json:"setRate" bson:"setRate"`
	FiO2             string             `json:"fiO2" bson:"fiO2"`
	PIP              string             `json:"pip" bson:"pip"`
	PeepCPAP         string             `json:"peepCpap" bson:"peepCpap"`
	IERatio          string             `json:"ieRatio" bson:"ieRatio"`
	OtherVentilator  string             `json:"otherVentilator" bson:"otherVentilator"`
}

type FourHrFollowUp struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	NurseID          primitive.ObjectID `json:"nurseId" bson:"nurseId,omitempty"`
	Date             string             `json:"date" bson:"date"`
	Notes            string             `json:"notes" bson:"notes"`
	Observations     string             `json:"observations" bson:"observations"`
	Pulse            string             `json:"fourhrpulse" bson:"fourhrpulse"`
	BloodPressure    string             `json:"fourhrbloodPressure" bson:"fourhrbloodPressure"`
	OxygenSaturation string             `json:"fourhroxygenSaturation" bson:"fourhroxygenSaturation"`
	Temperature      string             `json:"fourhrTemperature" bson:"fourhrTemperature"`
	BloodSugarLevel  string             `json:"fourhrbloodSugarLevel" bson:"fourhrbloodSugarLevel"`
	OtherVitals      string             `json:"fourhrotherVitals" bson:"fourhrotherVitals"`
	IVFluid          string             `json:"fourhrivFluid" bson:"fourhrivFluid"`
	Urine            string             `json:"fourhrurine" bson:"fourhrurine"`
}

// Admission statuses.
const (
	AdmissionStatusPending  = "Pending"
	AdmissionStatusAdmitted = "admitted"
)

// ValidDischargeConditions are the only values accepted for
// conditionAtDischarge.
var ValidDischargeConditions = []string{"Discharged", "Transferred", "A.M.A.", "Absconded", "Expired"}

// AdmissionRecord is the mutable record of one stay, embedded in the
// Patient document while the stay is active. Version is bumped on every
// state transition so a concurrent writer loses with an explicit
// conflict instead of silently overwriting.
type AdmissionRecord struct {
	ID                   primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	AdmissionDate        time.Time            `json:"admissionDate" bson:"admissionDate"`
	DischargeDate        time.Time            `json:"dischargeDate,omitempty" bson:"dischargeDate,omitempty"`
	Status               string               `json:"status" bson:"status"`
	PatientType          string               `json:"patientType" bson:"patientType"`
	AdmitNotes           string               `json:"admitNotes" bson:"admitNotes"`
	ReasonForAdmission   string               `json:"reasonForAdmission" bson:"reasonForAdmission"`
	DoctorConsultant     []string             `json:"doctorConsultant" bson:"doctorConsultant"`
	ConditionAtDischarge string               `json:"conditionAtDischarge" bson:"conditionAtDischarge"`
	AmountToBePayed      float64              `json:"amountToBePayed" bson:"amountToBePayed"`
	Weight               float64              `json:"weight" bson:"weight"`
	Symptoms             string               `json:"symptoms" bson:"symptoms"`
	InitialDiagnosis     string               `json:"initialDiagnosis" bson:"initialDiagnosis"`
	Doctor               DoctorRef            `json:"doctor" bson:"doctor"`
	Section              SectionRef           `json:"section" bson:"section"`
	BedNumber            int                  `json:"bedNumber" bson:"bedNumber"`
	Reports              []primitive.ObjectID `json:"reports" bson:"reports"`
	SymptomsByDoctor     []string             `json:"symptomsByDoctor" bson:"symptomsByDoctor"`
	DiagnosisByDoctor    []string             `json:"diagnosisByDoctor" bson:"diagnosisByDoctor"`
	Vitals               []VitalSign          `json:"vitals" bson:"vitals"`
	DoctorPrescriptions  []Prescription       `json:"doctorPrescriptions" bson:"doctorPrescriptions"`
	DoctorConsulting     []ConsultingNote     `json:"doctorConsulting" bson:"doctorConsulting"`
	DoctorNotes          []DoctorNote         `json:"doctorNotes" bson:"doctorNotes"`
	Medications          []Medication         `json:"medications" bson:"medications"`
	IVFluids             []IVFluid            `json:"ivFluids" bson:"ivFluids"`
	Procedures           []Procedure          `json:"procedures" bson:"procedures"`
	SpecialInstructions  []SpecialInstruction `json:"specialInstructions" bson:"specialInstructions"`
	FollowUps            []FollowUp           `json:"followUps" bson:"followUps"`
	FourHrFollowUps      []FourHrFollowUp     `json:"fourHrFollowUpSchema" bson:"fourHrFollowUpSchema"`
	Version              int64                `json:"version" bson:"version"`
}

// IsOpen reports whether the stay has not been discharged yet.
func (r *AdmissionRecord) IsOpen() bool { return r.DischargeDate.IsZero() }

type Patient struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID        string             `json:"patientId" bson:"patientId"`
	Name             string             `json:"name" bson:"name"`
	Age              int                `json:"age" bson:"age"`
	Gender           string             `json:"gender" bson:"gender"`
	Contact          string             `json:"contact" bson:"contact"`
	Address          string             `json:"address" bson:"address"`
	City             string             `json:"city" bson:"city"`
	State            string             `json:"state" bson:"state"`
	Country          string             `json:"country" bson:"country"`
	DOB              string             `json:"dob" bson:"dob"`
	ImageURL         string             `json:"imageUrl" bson:"imageUrl"`
	Discharged       bool               `json:"discharged" bson:"discharged"`
	PendingAmount    float64            `json:"pendingAmount" bson:"pendingAmount"`
	AdmissionRecords []AdmissionRecord  `json:"admissionRecords" bson:"admissionRecords"`
}

// HasOpenAdmission reports whether any admission record is still open.
// In normal operation at most one is.
func (p *Patient) HasOpenAdmission() bool {
	for i := range p.AdmissionRecords {
		if p.AdmissionRecords[i].IsOpen() {
			return true
		}
	}
	return false
}

// FindAdmission returns a pointer to the admission with the given id,
// or nil when the patient has no such record.
func (p *Patient) FindAdmission(admissionID primitive.ObjectID) *AdmissionRecord {
	for i := range p.AdmissionRecords {
		if p.AdmissionRecords[i].ID == admissionID {
			return &p.AdmissionRecords[i]
		}
	}
	return nil
}
