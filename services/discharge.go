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

// ReduceLabReports keeps only the test name and its result files from
// each lab report; order is preserved.
func ReduceLabReports(reports []models.LabReport) []models.HistoryLabReport {
	reduced := make([]models.HistoryLabReport, 0, len(reports))
	for _, r := range reports {
		reduced = append(reduced, models.HistoryLabReport{
			LabTestNameGivenByDoctor: r.LabTestNameGivenByDoctor,
			Reports:                  r.Reports,
		})
	}
	return reduced
}

// BuildHistoryEntry copies every field of the admission record into an
// archive entry, stamping the discharge date and the pending balance
// observed before the write.
func BuildHistoryEntry(record models.AdmissionRecord, dischargeDate time.Time, previousRemaining float64, labReports []models.HistoryLabReport) models.HistoryEntry {
	return models.HistoryEntry{
		ID:                      primitive.NewObjectID(),
		AdmissionID:             record.ID,
		AdmissionDate:           record.AdmissionDate,
		DischargeDate:           dischargeDate,
		Status:                  record.Status,
		PatientType:             record.PatientType,
		AdmitNotes:              record.AdmitNotes,
		ReasonForAdmission:      record.ReasonForAdmission,
		DoctorConsultant:        record.DoctorConsultant,
		ConditionAtDischarge:    record.ConditionAtDischarge,
		AmountToBePayed:         record.AmountToBePayed,
		PreviousRemainingAmount: previousRemaining,
		Weight:                  record.Weight,
		Symptoms:                record.Symptoms,
		InitialDiagnosis:        record.InitialDiagnosis,
		Doctor:                  record.Doctor,
		Section:                 record.Section,
		BedNumber:               record.BedNumber,
		Reports:                 record.Reports,
		SymptomsByDoctor:        record.SymptomsByDoctor,
		DiagnosisByDoctor:       record.DiagnosisByDoctor,
		Vitals:                  record.Vitals,
		DoctorPrescriptions:     record.DoctorPrescriptions,
		DoctorConsulting:        record.DoctorConsulting,
		DoctorNotes:             record.DoctorNotes,
		Medications:             record.Medications,
		IVFluids:                record.IVFluids,
		Procedures:              record.Procedures,
		SpecialInstructions:     record.SpecialInstructions,
		FollowUps:               record.FollowUps,
		FourHrFollowUps:         record.FourHrFollowUps,
		LabReports:              labReports,
	}
}

/*
* Load the patient and locate the admission; only the recorded doctor
* may discharge it
* Remove the admission conditioned on its version so a concurrent
* transition surfaces as a conflict
* Collect the admission's lab reports and reduce them
* Archive the full-fidelity history entry, creating the history
* document on the patient's first discharge
* All writes ride one session; the doctor notification goes out only
* after the commit
 */
func DischargePatient(c *gin.Context, doctorID primitive.ObjectID, patientID string, admissionID primitive.ObjectID) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	var doctor models.DoctorRef
	var patientName string

	err := db.WithTransaction(c, func(sc mongo.SessionContext) error {
		patients := db.OpenCollection(util.PatientCollection)
		histories := db.OpenCollection(util.PatientHistoryCollection)
		labReports := db.OpenCollection(util.LabReportCollection)

		var patient models.Patient
		err := patients.FindOne(sc, bson.M{"patientId": patientID}).Decode(&patient)
		if err == mongo.ErrNoDocuments {
			return util.NotFound(util.PATIENT_NOT_FOUND)
		}
		if err != nil {
			return err
		}

		record := patient.FindAdmission(admissionID)
		if record == nil {
			return util.NotFound(util.ADMISSION_NOT_FOUND)
		}
		if record.Doctor.ID != doctorID {
			return util.Forbidden(util.NOT_AUTHORIZED_FOR_ADMISSION)
		}

		// Removing the last active stay flips the discharged flag.
		remaining := len(patient.AdmissionRecords) - 1
		pullFilter := bson.M{
			"patientId": patientID,
			"admissionRecords": bson.M{"$elemMatch": bson.M{
				"_id":       admissionID,
				"doctor.id": doctorID,
				"version":   record.Version,
			}},
		}
		pullUpdate := bson.M{
			"$pull": bson.M{"admissionRecords": bson.M{"_id": admissionID}},
			"$set":  bson.M{"discharged": remaining == 0},
		}
		res, err := patients.UpdateOne(sc, pullFilter, pullUpdate)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return util.Conflict(util.ADMISSION_MODIFIED)
		}

		var reports []models.LabReport
		cursor, err := labReports.Find(sc, bson.M{"admissionId": admissionID})
		if err != nil {
			return err
		}
		if err := cursor.All(sc, &reports); err != nil {
			return err
		}

		entry = BuildHistoryEntry(*record, time.Now(), patient.PendingAmount, ReduceLabReports(reports))
		doctor = record.Doctor
		patientName = patient.Name

		var history models.PatientHistory
		err = histories.FindOne(sc, bson.M{"patientId": patient.ID}).Decode(&history)
		if err == mongo.ErrNoDocuments {
			history = models.PatientHistory{
				PatientID: patient.ID,
				Name:      patient.Name,
				Gender:    patient.Gender,
				Contact:   patient.Contact,
				Age:       patient.Age,
				Address:   patient.Address,
				City:      patient.City,
				State:     patient.State,
				Country:   patient.Country,
				DOB:       patient.DOB,
				ImageURL:  patient.ImageURL,
				History:   []models.HistoryEntry{entry},
			}
			_, err = histories.InsertOne(sc, history)
			return err
		}
		if err != nil {
			return err
		}
		_, err = histories.UpdateOne(sc,
			bson.M{"patientId": patient.ID},
			bson.M{"$push": bson.M{"history": entry}},
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidatePatientCache(c, patientID)
	if err := redis.DeleteCache(c, util.HistoryKey+patientID); err != nil {
		log.Println("Failed invalidating history cache:", err)
	}
	dispatchDischargeNotification(doctor, patientName, &entry)
	log.Println("Discharged patient", patientID, "admission", admissionID.Hex())
	return &entry, nil
}

// GetDischargedPatients lists the doctor's archived stays, newest
// discharge first.
func GetDischargedPatients(c *gin.Context, doctorID primitive.ObjectID) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$history"}},
		{{Key: "$match", Value: bson.M{"history.doctor.id": doctorID}}},
		{{Key: "$sort", Value: bson.M{"history.dischargeDate": -1}}},
		{{Key: "$project", Value: bson.M{
			"patientId": 1,
			"name":      1,
			"gender":    1,
			"contact":   1,
			"age":       1,
			"history":   1,
		}}},
	}
	var results []bson.M
	err := db.Aggregate(c, db.OpenCollection(util.PatientHistoryCollection), pipeline, &results)
	if err != nil {
		log.Println("Error from Aggregate discharged patients:", err)
		return nil, err
	}
	return results, nil
}

// GetPatientHistory returns the archived stays of one patient, served
// from cache when present.
func GetPatientHistory(c *gin.Context, patientID string) (*models.PatientHistory, error) {
	var history models.PatientHistory
	key := util.HistoryKey + patientID
	if ok, err := redis.GetCache(c, key, &history); err == nil && ok {
		return &history, nil
	}

	patient, err := FetchPatientByID(c, patientID)
	if err != nil {
		return nil, err
	}
	err = db.FindOne(c, db.OpenCollection(util.PatientHistoryCollection), bson.M{"patientId": patient.ID}, &history)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.PATIENT_RECORD_NOT_FOUND)
	}
	if err != nil {
		log.Println("Error from FindOne history:", err)
		return nil, err
	}
	if err := redis.SetCache(c, key, history); err != nil {
		log.Println("Failed caching history:", err)
	}
	return &history, nil
}
