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

// AppointmentStatusRequest is the payload for a doctor's status
// decision on an appointment.
type AppointmentStatusRequest struct {
	Status          string `json:"status"`
	RescheduledDate string `json:"rescheduledDate"`
	RescheduledTime string `json:"rescheduledTime"`
	DoctorNotes     string `json:"doctorNotes"`
}

// ValidateAppointmentStatus checks the status value and, for
// reschedules, that both the new date and time were supplied.
func ValidateAppointmentStatus(req AppointmentStatusRequest) error {
	valid := false
	for _, s := range models.ValidAppointmentStatuses {
		if s == req.Status {
			valid = true
			break
		}
	}
	if !valid {
		return util.BadRequest(util.INVALID_APPOINTMENT_STATUS)
	}
	if req.Status == "rescheduled" && (req.RescheduledDate == "" || req.RescheduledTime == "") {
		return util.BadRequest(util.RESCHEDULE_FIELDS_REQUIRED)
	}
	return nil
}

/*
* Validate the decision payload up front
* Locate the appointment inside the per-patient document
* Annotate the existing entry: status, notes, and for reschedules the
* combined rescheduledTo stamp; a reschedule never creates a new entry
* An accepted appointment seeds an admission attributed to the
* appointment's own doctor: create the patient record for a first-time
* visitor under the same patientId, or append a stay to the returning
* one, but never on top of an open admission
 */
func UpdateAppointmentStatus(c *gin.Context, patientDocID, appointmentID primitive.ObjectID, req AppointmentStatusRequest) (gin.H, error) {
	if err := ValidateAppointmentStatus(req); err != nil {
		return nil, err
	}

	coll := db.OpenCollection(util.AppointmentCollection)
	var patientAppt models.PatientAppointment
	err := db.FindOne(c, coll, bson.M{"_id": patientDocID}, &patientAppt)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.PATIENT_RECORD_NOT_FOUND)
	}
	if err != nil {
		log.Println("Error from FindOne patient appointments:", err)
		return nil, err
	}
	appointment := patientAppt.FindAppointment(appointmentID)
	if appointment == nil {
		return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
	}

	set := bson.M{
		"appointments.$.status":          req.Status,
		"appointments.$.statusUpdatedAt": time.Now(),
	}
	if req.DoctorNotes != "" {
		set["appointments.$.doctorNotes"] = req.DoctorNotes
	}
	if req.Status == "rescheduled" {
		set["appointments.$.rescheduledTo"] = req.RescheduledDate + " " + req.RescheduledTime
	}
	filter := bson.M{"_id": patientDocID, "appointments._id": appointmentID}
	res, err := db.UpdateOne(c, coll, filter, bson.M{"$set": set})
	if err != nil {
		log.Println("Error from UpdateOne appointment status:", err)
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
	}

	result := gin.H{"status": req.Status}
	if req.Status == "accepted" {
		patient, err := admitFromAppointment(c, &patientAppt, appointment, req.DoctorNotes)
		if err != nil {
			return nil, err
		}
		result["patient"] = patient
	}
	log.Println("Appointment", appointmentID.Hex(), "set to", req.Status)
	return result, nil
}

// buildAppointmentAdmission seeds the admission record for an accepted
// appointment. The stay is attributed to the doctor recorded on the
// appointment itself, not to whoever performed the status update.
func buildAppointmentAdmission(appointment *models.Appointment, doctorNote string) models.AdmissionRecord {
	return models.AdmissionRecord{
		ID:                 primitive.NewObjectID(),
		AdmissionDate:      time.Now(),
		Status:             models.AdmissionStatusPending,
		PatientType:        "external",
		AdmitNotes:         doctorNote,
		ReasonForAdmission: appointment.Symptoms,
		Symptoms:           appointment.Symptoms,
		Doctor:             appointment.Doctor,
		Version:            0,
	}
}

// newPatientFromAppointment creates the patient document for a
// first-time visitor under the appointment's patientId, so the
// id-addressed endpoints resolve the new record.
func newPatientFromAppointment(patientAppt *models.PatientAppointment, record models.AdmissionRecord) models.Patient {
	return models.Patient{
		ID:               primitive.NewObjectID(),
		PatientID:        patientAppt.PatientID,
		Name:             patientAppt.Name,
		Age:              0,
		Gender:           "Other",
		Contact:          patientAppt.Contact,
		Address:          patientAppt.Address,
		Discharged:       false,
		AdmissionRecords: []models.AdmissionRecord{record},
	}
}

// admitFromAppointment turns an accepted appointment into an admission.
func admitFromAppointment(c *gin.Context, patientAppt *models.PatientAppointment, appointment *models.Appointment, doctorNote string) (*models.Patient, error) {
	record := buildAppointmentAdmission(appointment, doctorNote)

	patients := db.OpenCollection(util.PatientCollection)
	var existing models.Patient
	err := db.FindOne(c, patients, bson.M{"patientId": patientAppt.PatientID}, &existing)
	if err != nil && err != mongo.ErrNoDocuments {
		log.Println("Error from FindOne patient by patientId:", err)
		return nil, err
	}

	if err == mongo.ErrNoDocuments {
		patient := newPatientFromAppointment(patientAppt, record)
		if _, err := db.CreateOne(c, patients, patient); err != nil {
			log.Println("Error from CreateOne patient:", err)
			return nil, err
		}
		return &patient, nil
	}

	if existing.HasOpenAdmission() {
		return nil, util.Conflict(util.PATIENT_ALREADY_ADMITTED)
	}
	filter := bson.M{
		"_id": existing.ID,
		"admissionRecords": bson.M{
			"$not": bson.M{"$elemMatch": bson.M{"dischargeDate": bson.M{"$exists": false}}},
		},
	}
	update := bson.M{
		"$push": bson.M{"admissionRecords": record},
		"$set":  bson.M{"discharged": false},
	}
	res, err := db.UpdateOne(c, patients, filter, update)
	if err != nil {
		log.Println("Error from UpdateOne admission from appointment:", err)
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, util.Conflict(util.PATIENT_ALREADY_ADMITTED)
	}
	invalidatePatientCache(c, existing.PatientID)
	existing.AdmissionRecords = append(existing.AdmissionRecords, record)
	existing.Discharged = false
	return &existing, nil
}

// AppointmentQuery carries the listing filters for a doctor's
// appointment feed.
type AppointmentQuery struct {
	Status    string
	Date      string
	StartDate string
	EndDate   string
	Search    string
	SortBy    string
	SortOrder int
	Page      int64
	Limit     int64
}

// DoctorAppointment is one unwound appointment row in the feed.
type DoctorAppointment struct {
	PatientDocID primitive.ObjectID `json:"patientDocId" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Contact      string             `json:"contact" bson:"contact"`
	Appointment  models.Appointment `json:"appointment" bson:"appointment"`
	IsLatest     bool               `json:"isLatest" bson:"-"`
}

// GetDoctorAppointments unwinds the per-patient appointment documents
// into the doctor's feed with filters, sorting and pagination. The
// newest appointment of each patient is flagged isLatest.
func GetDoctorAppointments(c *gin.Context, doctorID primitive.ObjectID, q AppointmentQuery) ([]DoctorAppointment, int64, error) {
	match := bson.M{"appointments.doctor.id": doctorID}
	if q.Status != "" {
		match["appointments.status"] = q.Status
	}
	if q.Date != "" {
		match["appointments.date"] = q.Date
	} else if q.StartDate != "" && q.EndDate != "" {
		match["appointments.date"] = bson.M{"$gte": q.StartDate, "$lte": q.EndDate}
	}
	if q.Search != "" {
		match["name"] = bson.M{"$regex": q.Search, "$options": "i"}
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	sortBy := "appointments.createdAt"
	if q.SortBy != "" {
		sortBy = "appointments." + q.SortBy
	}
	if q.SortOrder == 0 {
		q.SortOrder = -1
	}

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$appointments"}},
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: q.SortOrder}}}},
		{{Key: "$skip", Value: (q.Page - 1) * q.Limit}},
		{{Key: "$limit", Value: q.Limit}},
		{{Key: "$project", Value: bson.M{
			"name":        1,
			"contact":     1,
			"appointment": "$appointments",
		}}},
	}
	var rows []DoctorAppointment
	if err := db.Aggregate(c, db.OpenCollection(util.AppointmentCollection), pipeline, &rows); err != nil {
		log.Println("Error from Aggregate doctor appointments:", err)
		return nil, 0, err
	}
	MarkLatestAppointments(rows)

	total, err := countDoctorAppointments(c, doctorID, match)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkLatestAppointments flags, per patient, the row with the newest
// createdAt.
func MarkLatestAppointments(rows []DoctorAppointment) {
	latest := map[primitive.ObjectID]int{}
	for i := range rows {
		j, ok := latest[rows[i].PatientDocID]
		if !ok || rows[i].Appointment.CreatedAt.After(rows[j].Appointment.CreatedAt) {
			latest[rows[i].PatientDocID] = i
		}
	}
	for _, i := range latest {
		rows[i].IsLatest = true
	}
}

func countDoctorAppointments(c *gin.Context, doctorID primitive.ObjectID, match bson.M) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$appointments"}},
		{{Key: "$match", Value: match}},
		{{Key: "$count", Value: "total"}},
	}
	var out []struct {
		Total int64 `bson:"total"`
	}
	if err := db.Aggregate(c, db.OpenCollection(util.AppointmentCollection), pipeline, &out); err != nil {
		log.Println("Error from Aggregate appointment count:", err)
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}
