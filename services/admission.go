package services

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/config/redis"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// OpenAdmissionRequest is the payload for opening a new stay.
type OpenAdmissionRequest struct {
	ReasonForAdmission string   `json:"reasonForAdmission"`
	Symptoms           string   `json:"symptoms"`
	InitialDiagnosis   string   `json:"initialDiagnosis"`
	AdmitNote          string   `json:"admitNote"`
	Weight             float64  `json:"weight"`
	BedNumber          int      `json:"bedNumber"`
	PatientType        string   `json:"patientType"`
	DoctorConsultant   []string `json:"doctorConsultant"`
}

func invalidatePatientCache(c *gin.Context, patientID string) {
	if err := redis.DeleteCache(c, util.PatientKey+patientID); err != nil {
		log.Println("Failed invalidating patient cache:", err)
	}
}

// FetchPatientByID returns the patient document for a business id,
// served from cache when present.
func FetchPatientByID(c *gin.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	key := util.PatientKey + patientID
	if ok, err := redis.GetCache(c, key, &patient); err == nil && ok {
		return &patient, nil
	}
	err := db.FindOne(c, db.OpenCollection(util.PatientCollection), bson.M{"patientId": patientID}, &patient)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.PATIENT_NOT_FOUND)
	}
	if err != nil {
		log.Println("Error from FindOne patient:", err)
		return nil, err
	}
	if err := redis.SetCache(c, key, patient); err != nil {
		log.Println("Failed caching patient:", err)
	}
	return &patient, nil
}

// GetPatients lists every patient document.
func GetPatients(c *gin.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := db.FindAll(c, db.OpenCollection(util.PatientCollection), bson.M{}, nil, &patients)
	if err != nil {
		log.Println("Error from FindAll patients:", err)
		return nil, err
	}
	return patients, nil
}

/*
* Resolve the authenticated doctor so the admission carries their
* identity by value
* Reject when the patient already has an open stay
* Append the new admission record atomically, guarded by the same
* open-stay condition so two concurrent admits cannot both land
 */
func OpenAdmission(c *gin.Context, doctorID primitive.ObjectID, patientID string, req OpenAdmissionRequest) (*models.AdmissionRecord, error) {
	doctor, err := FetchDoctorByID(c, doctorID)
	if err != nil {
		return nil, err
	}
	patient, err := FetchPatientByID(c, patientID)
	if err != nil {
		return nil, err
	}
	if patient.HasOpenAdmission() {
		return nil, util.Conflict(util.PATIENT_ALREADY_ADMITTED)
	}

	status := models.AdmissionStatusPending
	if req.AdmitNote != "" {
		status = models.AdmissionStatusAdmitted
	}
	patientType := req.PatientType
	if patientType == "" {
		patientType = "Internal"
	}
	record := models.AdmissionRecord{
		ID:                 primitive.NewObjectID(),
		AdmissionDate:      time.Now(),
		Status:             status,
		PatientType:        patientType,
		AdmitNotes:         req.AdmitNote,
		ReasonForAdmission: req.ReasonForAdmission,
		DoctorConsultant:   req.DoctorConsultant,
		Weight:             req.Weight,
		Symptoms:           req.Symptoms,
		InitialDiagnosis:   req.InitialDiagnosis,
		BedNumber:          req.BedNumber,
		Doctor: models.DoctorRef{
			ID:       doctor.ID,
			Name:     doctor.DoctorName,
			Usertype: doctor.Usertype,
		},
		Version: 0,
	}

	// The filter re-checks the open-stay invariant inside the update so
	// a racing admit matches nothing instead of double-admitting.
	filter := bson.M{
		"patientId": patientID,
		"admissionRecords": bson.M{
			"$not": bson.M{"$elemMatch": bson.M{"dischargeDate": bson.M{"$exists": false}}},
		},
	}
	update := bson.M{
		"$push": bson.M{"admissionRecords": record},
		"$set":  bson.M{"discharged": false},
	}
	res, err := db.UpdateOne(c, db.OpenCollection(util.PatientCollection), filter, update)
	if err != nil {
		log.Println("Error from UpdateOne admission push:", err)
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, util.Conflict(util.PATIENT_ALREADY_ADMITTED)
	}
	invalidatePatientCache(c, patientID)
	log.Println("Opened admission", record.ID.Hex(), "for patient", patientID)
	return &record, nil
}

/*
* Locate the patient holding the admission record
* Only the doctor recorded on the admission may confirm it
* Already-admitted stays are a conflict, not a repeat success
* The write is conditional on the observed version so a concurrent
* transition loses explicitly
 */
func ConfirmAdmission(c *gin.Context, doctorID, admissionID primitive.ObjectID, admitNote string) (*models.Patient, error) {
	var patient models.Patient
	coll := db.OpenCollection(util.PatientCollection)
	err := db.FindOne(c, coll, bson.M{"admissionRecords._id": admissionID}, &patient)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.ADMISSION_NOT_FOUND)
	}
	if err != nil {
		log.Println("Error from FindOne admission:", err)
		return nil, err
	}

	record := patient.FindAdmission(admissionID)
	if record == nil {
		return nil, util.NotFound(util.ADMISSION_NOT_FOUND)
	}
	if record.Doctor.ID != doctorID {
		return nil, util.Forbidden(util.NOT_AUTHORIZED_FOR_ADMISSION)
	}
	if record.Status == models.AdmissionStatusAdmitted {
		return nil, util.Conflict(util.ALREADY_ADMITTED_FOR_ID)
	}
	if admitNote == "" {
		admitNote = "General Ward"
	}

	filter := bson.M{
		"admissionRecords": bson.M{
			"$elemMatch": bson.M{"_id": admissionID, "version": record.Version},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"admissionRecords.$.status":     models.AdmissionStatusAdmitted,
			"admissionRecords.$.admitNotes": admitNote,
		},
		"$inc": bson.M{"admissionRecords.$.version": 1},
	}
	var updated models.Patient
	err = db.FindOneAndUpdate(c, coll, filter, update, &updated)
	if err == mongo.ErrNoDocuments {
		return nil, util.Conflict(util.ADMISSION_MODIFIED)
	}
	if err != nil {
		log.Println("Error from FindOneAndUpdate admit:", err)
		return nil, err
	}
	invalidatePatientCache(c, updated.PatientID)
	log.Println("Doctor", doctorID.Hex(), "admitted patient for admission", admissionID.Hex())
	return &updated, nil
}

// GetAssignedPatients lists patients with a pending stay assigned to
// the doctor, the admission list narrowed to that doctor's records.
func GetAssignedPatients(c *gin.Context, doctorID primitive.ObjectID) ([]models.Patient, error) {
	return patientsByAdmissionStatus(c, doctorID, models.AdmissionStatusPending)
}

// GetAdmittedPatients lists patients with a confirmed stay under the
// doctor's care.
func GetAdmittedPatients(c *gin.Context, doctorID primitive.ObjectID) ([]models.Patient, error) {
	return patientsByAdmissionStatus(c, doctorID, models.AdmissionStatusAdmitted)
}

func patientsByAdmissionStatus(c *gin.Context, doctorID primitive.ObjectID, status string) ([]models.Patient, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"admissionRecords": bson.M{"$elemMatch": bson.M{
				"doctor.id":     doctorID,
				"status":        status,
				"dischargeDate": bson.M{"$exists": false},
			}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"admissionRecords": bson.M{"$filter": bson.M{
				"input": "$admissionRecords",
				"as":    "rec",
				"cond": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$$rec.doctor.id", doctorID}},
					bson.M{"$eq": bson.A{"$$rec.status", status}},
				}},
			}},
		}}},
	}
	var patients []models.Patient
	if err := db.Aggregate(c, db.OpenCollection(util.PatientCollection), pipeline, &patients); err != nil {
		log.Println("Error from Aggregate patients by status:", err)
		return nil, err
	}
	return patients, nil
}
