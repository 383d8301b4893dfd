package services

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// istLocation resolves the hospital's wall-clock zone for treatment
// stamps.
func istLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// treatmentStamp returns the IST date and time strings recorded on
// treatment entries.
func treatmentStamp(now time.Time) (string, string) {
	ist := now.In(istLocation())
	return ist.Format("2006-01-02"), ist.Format("15:04:05")
}

// admissionFilter matches the positional admission element of one
// patient.
func admissionFilter(patientID string, admissionID primitive.ObjectID) bson.M {
	return bson.M{"patientId": patientID, "admissionRecords._id": admissionID}
}

// updateAdmission applies update to the matched admission element and
// maps a miss to NotFound.
func updateAdmission(c *gin.Context, patientID string, admissionID primitive.ObjectID, update bson.M) error {
	res, err := db.UpdateOne(c, db.OpenCollection(util.PatientCollection), admissionFilter(patientID, admissionID), update)
	if err != nil {
		log.Println("Error from UpdateOne admission:", err)
		return err
	}
	if res.MatchedCount == 0 {
		return util.NotFound(util.ADMISSION_NOT_FOUND)
	}
	invalidatePatientCache(c, patientID)
	return nil
}

// FetchAdmission returns one admission record of a patient.
func FetchAdmission(c *gin.Context, patientID string, admissionID primitive.ObjectID) (*models.AdmissionRecord, error) {
	patient, err := FetchPatientByID(c, patientID)
	if err != nil {
		return nil, err
	}
	record := patient.FindAdmission(admissionID)
	if record == nil {
		return nil, util.NotFound(util.ADMISSION_NOT_FOUND)
	}
	return record, nil
}

// AddSymptoms appends doctor-observed symptoms, preserving insertion
// order.
func AddSymptoms(c *gin.Context, patientID string, admissionID primitive.ObjectID, symptoms []string) error {
	if len(symptoms) == 0 {
		return util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.symptomsByDoctor": bson.M{"$each": symptoms}},
	})
}

func DeleteSymptom(c *gin.Context, patientID string, admissionID primitive.ObjectID, symptom string) error {
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$pull": bson.M{"admissionRecords.$.symptomsByDoctor": symptom},
	})
}

func AddDiagnosis(c *gin.Context, patientID string, admissionID primitive.ObjectID, diagnosis []string) error {
	if len(diagnosis) == 0 {
		return util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.diagnosisByDoctor": bson.M{"$each": diagnosis}},
	})
}

func DeleteDiagnosis(c *gin.Context, patientID string, admissionID primitive.ObjectID, diagnosis string) error {
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$pull": bson.M{"admissionRecords.$.diagnosisByDoctor": diagnosis},
	})
}

func AddVitals(c *gin.Context, patientID string, admissionID primitive.ObjectID, vitals models.VitalSign) error {
	vitals.ID = primitive.NewObjectID()
	vitals.RecordedAt = time.Now()
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.vitals": vitals},
	})
}

func DeleteVitals(c *gin.Context, patientID string, admissionID, vitalsID primitive.ObjectID) error {
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$pull": bson.M{"admissionRecords.$.vitals": bson.M{"_id": vitalsID}},
	})
}

func AddPrescription(c *gin.Context, patientID string, admissionID primitive.ObjectID, medicine models.PrescribedMedicine) error {
	if medicine.Name == "" {
		return util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	medicine.Date = time.Now()
	prescription := models.Prescription{ID: primitive.NewObjectID(), Medicine: medicine}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.doctorPrescriptions": prescription},
	})
}

func DeletePrescription(c *gin.Context, patientID string, admissionID, prescriptionID primitive.ObjectID) error {
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$pull": bson.M{"admissionRecords.$.doctorPrescriptions": bson.M{"_id": prescriptionID}},
	})
}

func AddConsultingNote(c *gin.Context, patientID string, admissionID primitive.ObjectID, note models.ConsultingNote) error {
	note.ID = primitive.NewObjectID()
	if note.Date == "" {
		date, _ := treatmentStamp(time.Now())
		note.Date = date
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.doctorConsulting": note},
	})
}

// AddNote records a free-text note stamped with the resolved doctor
// name, so the note survives doctor renames.
func AddNote(c *gin.Context, doctorID primitive.ObjectID, patientID string, admissionID primitive.ObjectID, text string) error {
	if text == "" {
		return util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	doctor, err := FetchDoctorByID(c, doctorID)
	if err != nil {
		return err
	}
	date, timeOfDay := treatmentStamp(time.Now())
	note := models.DoctorNote{
		ID:         primitive.NewObjectID(),
		Text:       text,
		DoctorName: doctor.DoctorName,
		Date:       date,
		Time:       timeOfDay,
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.doctorNotes": note},
	})
}

func AddDoctorConsultant(c *gin.Context, patientID string, admissionID primitive.ObjectID, consultants []string) error {
	if len(consultants) == 0 {
		return util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$push": bson.M{"admissionRecords.$.doctorConsultant": bson.M{"$each": consultants}},
	})
}

// TreatmentRequest carries the four treatment lists a doctor can add
// in one call. Every entry is stamped with the IST date and time.
type TreatmentRequest struct {
	Medications         []models.Medication         `json:"medications"`
	IVFluids            []models.IVFluid            `json:"ivFluids"`
	Procedures          []models.Procedure          `json:"procedures"`
	SpecialInstructions []models.SpecialInstruction `json:"specialInstructions"`
}

func AddDoctorTreatment(c *gin.Context, patientID string, admissionID primitive.ObjectID, req TreatmentRequest) error {
	if len(req.Medications) == 0 && len(req.IVFluids) == 0 && len(req.Procedures) == 0 && len(req.SpecialInstructions) == 0 {
		return util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	date, timeOfDay := treatmentStamp(time.Now())

	push := bson.M{}
	if len(req.Medications) > 0 {
		for i := range req.Medications {
			req.Medications[i].ID = primitive.NewObjectID()
			req.Medications[i].Date = date
			req.Medications[i].Time = timeOfDay
		}
		push["admissionRecords.$.medications"] = bson.M{"$each": req.Medications}
	}
	if len(req.IVFluids) > 0 {
		for i := range req.IVFluids {
			req.IVFluids[i].ID = primitive.NewObjectID()
			req.IVFluids[i].Date = date
			req.IVFluids[i].Time = timeOfDay
		}
		push["admissionRecords.$.ivFluids"] = bson.M{"$each": req.IVFluids}
	}
	if len(req.Procedures) > 0 {
		for i := range req.Procedures {
			req.Procedures[i].ID = primitive.NewObjectID()
			req.Procedures[i].Date = date
			req.Procedures[i].Time = timeOfDay
		}
		push["admissionRecords.$.procedures"] = bson.M{"$each": req.Procedures}
	}
	if len(req.SpecialInstructions) > 0 {
		for i := range req.SpecialInstructions {
			req.SpecialInstructions[i].ID = primitive.NewObjectID()
			req.SpecialInstructions[i].Date = date
			req.SpecialInstructions[i].Time = timeOfDay
		}
		push["admissionRecords.$.specialInstructions"] = bson.M{"$each": req.SpecialInstructions}
	}
	return updateAdmission(c, patientID, admissionID, bson.M{"$push": push})
}

// TreatmentLists groups the four treatment lists of one admission for
// the fetch endpoint.
func TreatmentLists(record *models.AdmissionRecord) gin.H {
	return gin.H{
		"medications":         record.Medications,
		"ivFluids":            record.IVFluids,
		"procedures":          record.Procedures,
		"specialInstructions": record.SpecialInstructions,
	}
}

// treatmentFields maps the wire treatment type to its list field.
var treatmentFields = map[string]string{
	"medications":         "medications",
	"ivFluids":            "ivFluids",
	"procedures":          "procedures",
	"specialInstructions": "specialInstructions",
}

func DeleteDoctorTreatment(c *gin.Context, patientID string, admissionID, treatmentID primitive.ObjectID, treatmentType string) error {
	field, ok := treatmentFields[treatmentType]
	if !ok {
		return util.BadRequest(util.INVALID_TREATMENT_TYPE)
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$pull": bson.M{"admissionRecords.$." + field: bson.M{"_id": treatmentID}},
	})
}

// ValidateCondition reports whether the discharge condition is one of
// the accepted values.
func ValidateCondition(condition string) bool {
	for _, v := range models.ValidDischargeConditions {
		if v == condition {
			return true
		}
	}
	return false
}

// ValidateAmount reports whether amount was supplied and is
// non-negative.
func ValidateAmount(amount *float64) bool {
	return amount != nil && *amount >= 0
}

// UpdateCondition records the discharge condition and the final bill
// amount; the write is scoped to the admission owned by the caller.
func UpdateCondition(c *gin.Context, doctorID primitive.ObjectID, admissionID primitive.ObjectID, condition string, amount *float64) (*models.Patient, error) {
	if !ValidateCondition(condition) {
		return nil, util.BadRequest(util.INVALID_CONDITION)
	}
	if !ValidateAmount(amount) {
		return nil, util.BadRequest(util.INVALID_AMOUNT)
	}

	filter := bson.M{
		"admissionRecords": bson.M{"$elemMatch": bson.M{
			"_id":       admissionID,
			"doctor.id": doctorID,
		}},
	}
	update := bson.M{"$set": bson.M{
		"admissionRecords.$.conditionAtDischarge": condition,
		"admissionRecords.$.amountToBePayed":      *amount,
	}}
	var updated models.Patient
	err := db.FindOneAndUpdate(c, db.OpenCollection(util.PatientCollection), filter, update, &updated)
	if err == mongo.ErrNoDocuments {
		return nil, util.Forbidden(util.NOT_AUTHORIZED_FOR_ADMISSION)
	}
	if err != nil {
		log.Println("Error from FindOneAndUpdate condition:", err)
		return nil, err
	}
	invalidatePatientCache(c, updated.PatientID)
	return &updated, nil
}

// SetAmountToBePayed updates the bill amount alone.
func SetAmountToBePayed(c *gin.Context, patientID string, admissionID primitive.ObjectID, amount *float64) error {
	if !ValidateAmount(amount) {
		return util.BadRequest(util.INVALID_AMOUNT)
	}
	return updateAdmission(c, patientID, admissionID, bson.M{
		"$set": bson.M{"admissionRecords.$.amountToBePayed": *amount},
	})
}
