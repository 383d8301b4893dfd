package services

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// CreateInvestigationRequest is the order payload. Details may be a
// free-form object or a shorthand string mapped by investigation type.
type CreateInvestigationRequest struct {
	PatientID              string      `json:"patientId"`
	AdmissionID            string      `json:"admissionId"`
	InvestigationType      string      `json:"investigationType"`
	OtherInvestigationType string      `json:"otherInvestigationType"`
	ReasonForInvestigation string      `json:"reasonForInvestigation"`
	InvestigationDetails   interface{} `json:"investigationDetails"`
	ClinicalHistory        string      `json:"clinicalHistory"`
	Priority               string      `json:"priority"`
	ScheduledDate          string      `json:"scheduledDate"`
}

// BuildInvestigationDetails normalizes the shorthand string details a
// doctor can send into the typed payload for the investigation type.
// Object payloads pass through untouched.
func BuildInvestigationDetails(investigationType string, details interface{}) primitive.M {
	switch v := details.(type) {
	case nil:
		return primitive.M{}
	case map[string]interface{}:
		return primitive.M(v)
	case primitive.M:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return primitive.M{}
		}
		switch investigationType {
		case "Blood Test", "Urine Test":
			parts := strings.Split(s, ",")
			params := make([]string, 0, len(parts))
			for _, p := range parts {
				if t := strings.TrimSpace(p); t != "" {
					params = append(params, t)
				}
			}
			return primitive.M{"parameters": params}
		case "X-Ray", "MRI", "CT Scan", "Ultrasound", "CT PNS", "Nasal Endoscopy", "Laryngoscopy":
			return primitive.M{"bodySite": s}
		case "Glucose Tolerance Test", "DEXA Scan", "VEP", "SSEP", "BAER":
			return primitive.M{"testProtocol": s}
		case "Breath Test":
			return primitive.M{"testSubstance": s}
		default:
			return primitive.M{"parameters": []string{s}}
		}
	default:
		return primitive.M{}
	}
}

// FullInvestigationName resolves the display name: the free text when
// "Other" was chosen, the catalog type otherwise.
func FullInvestigationName(investigationType, otherType string) string {
	if investigationType == "Other" && otherType != "" {
		return otherType
	}
	return investigationType
}

/*
* Required: patient, type and reason
* Patient, doctor and (when given) the admission must all resolve
* Scheduled orders start Scheduled, everything else Ordered
* The order insert and the doctor-note append on the admission ride one
* session
 */
func CreateInvestigation(c *gin.Context, doctorID primitive.ObjectID, req CreateInvestigationRequest) (*models.Investigation, error) {
	if req.PatientID == "" || req.InvestigationType == "" || req.ReasonForInvestigation == "" {
		return nil, util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	doctor, err := FetchDoctorByID(c, doctorID)
	if err != nil {
		return nil, err
	}

	var admissionID primitive.ObjectID
	if req.AdmissionID != "" {
		admissionID, err = primitive.ObjectIDFromHex(req.AdmissionID)
		if err != nil {
			return nil, util.BadRequest(util.INVALID_OBJECT_ID)
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityRoutine
	}
	status := models.InvestigationOrdered
	var scheduledDate time.Time
	if req.ScheduledDate != "" {
		scheduledDate, err = time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return nil, util.BadRequest(util.INVALID_DATE_FORMAT)
		}
		status = models.InvestigationScheduled
	}

	otherType := ""
	if req.InvestigationType == "Other" {
		otherType = req.OtherInvestigationType
	}

	var created models.Investigation
	err = db.WithTransaction(c, func(sc mongo.SessionContext) error {
		patients := db.OpenCollection(util.PatientCollection)
		investigations := db.OpenCollection(util.InvestigationCollection)

		var patient models.Patient
		err := patients.FindOne(sc, bson.M{"patientId": req.PatientID}).Decode(&patient)
		if err == mongo.ErrNoDocuments {
			return util.NotFound(util.PATIENT_NOT_FOUND)
		}
		if err != nil {
			return err
		}
		if !admissionID.IsZero() && patient.FindAdmission(admissionID) == nil {
			return util.NotFound(util.ADMISSION_NOT_FOUND)
		}

		now := time.Now()
		created = models.Investigation{
			ID:                     primitive.NewObjectID(),
			PatientID:              patient.ID,
			PatientName:            patient.Name,
			AdmissionID:            admissionID,
			DoctorID:               doctor.ID,
			DoctorName:             doctor.DoctorName,
			InvestigationType:      req.InvestigationType,
			OtherInvestigationType: otherType,
			ReasonForInvestigation: req.ReasonForInvestigation,
			InvestigationDetails:   BuildInvestigationDetails(req.InvestigationType, req.InvestigationDetails),
			ClinicalHistory:        req.ClinicalHistory,
			Priority:               priority,
			Status:                 status,
			ScheduledDate:          scheduledDate,
			OrderDate:              now,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if _, err := investigations.InsertOne(sc, created); err != nil {
			return err
		}

		if admissionID.IsZero() {
			return nil
		}
		date, timeOfDay := treatmentStamp(now)
		note := models.DoctorNote{
			ID:         primitive.NewObjectID(),
			Text:       "Ordered investigation: " + created.FullName() + " - " + req.ReasonForInvestigation,
			DoctorName: doctor.DoctorName,
			Date:       date,
			Time:       timeOfDay,
		}
		_, err = patients.UpdateOne(sc,
			bson.M{"patientId": req.PatientID, "admissionRecords._id": admissionID},
			bson.M{"$push": bson.M{"admissionRecords.$.doctorNotes": note}},
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidatePatientCache(c, req.PatientID)
	log.Println("Doctor", doctor.DoctorName, "ordered investigation", created.FullName(), "for patient", req.PatientID)
	return &created, nil
}

// Overdue windows by priority: STAT same-day, Urgent three days,
// Routine a week.
var overdueAfter = map[string]time.Duration{
	models.PrioritySTAT:    1 * 24 * time.Hour,
	models.PriorityUrgent:  3 * 24 * time.Hour,
	models.PriorityRoutine: 7 * 24 * time.Hour,
}

// DaysSinceOrdered is the whole number of days elapsed since the order
// was placed.
func DaysSinceOrdered(orderDate, now time.Time) int {
	if orderDate.IsZero() || now.Before(orderDate) {
		return 0
	}
	return int(now.Sub(orderDate).Hours() / 24)
}

// IsInvestigationOverdue reports whether an open order has outlived its
// priority window.
func IsInvestigationOverdue(status, priority string, orderDate, now time.Time) bool {
	if status != models.InvestigationOrdered && status != models.InvestigationScheduled {
		return false
	}
	window, ok := overdueAfter[priority]
	if !ok {
		window = overdueAfter[models.PriorityRoutine]
	}
	return now.Sub(orderDate) > window
}

// EnhancedInvestigation is an investigation row with the feed's
// computed flags.
type EnhancedInvestigation struct {
	models.Investigation
	DaysSinceOrdered int  `json:"daysSinceOrdered"`
	IsOverdue        bool `json:"isOverdue"`
	HasResults       bool `json:"hasResults"`
	HasAttachments   bool `json:"hasAttachments"`
}

// EnhanceInvestigation computes the feed flags for one row.
func EnhanceInvestigation(inv models.Investigation, now time.Time) EnhancedInvestigation {
	hasAttachments := inv.Results != nil && len(inv.Results.Attachments) > 0
	return EnhancedInvestigation{
		Investigation:    inv,
		DaysSinceOrdered: DaysSinceOrdered(inv.OrderDate, now),
		IsOverdue:        IsInvestigationOverdue(inv.Status, inv.Priority, inv.OrderDate, now),
		HasResults:       inv.Status == models.InvestigationResultsAvailable,
		HasAttachments:   hasAttachments,
	}
}

// InvestigationQuery carries the listing filters for a doctor's order
// feed.
type InvestigationQuery struct {
	Status     string
	Type       string
	PatientID  string
	Priority   string
	IsAbnormal *bool
	StartDate  string
	EndDate    string
	SortBy     string
	SortOrder  int
	Page       int64
	Limit      int64
}

// GetDoctorInvestigations lists the doctor's orders with filters,
// pagination and the computed feed flags.
func GetDoctorInvestigations(c *gin.Context, doctorID primitive.ObjectID, q InvestigationQuery) ([]EnhancedInvestigation, int64, error) {
	filter := bson.M{"doctorId": doctorID}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Type != "" {
		filter["investigationType"] = q.Type
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}
	if q.IsAbnormal != nil {
		filter["results.isAbnormal"] = *q.IsAbnormal
	}
	if q.PatientID != "" {
		// The filter accepts either the document id or the business id.
		if oid, err := primitive.ObjectIDFromHex(q.PatientID); err == nil {
			filter["patientId"] = oid
		} else {
			patient, err := FetchPatientByID(c, q.PatientID)
			if err != nil {
				return nil, 0, err
			}
			filter["patientId"] = patient.ID
		}
	}
	if q.StartDate != "" && q.EndDate != "" {
		start, err1 := time.Parse("2006-01-02", q.StartDate)
		end, err2 := time.Parse("2006-01-02", q.EndDate)
		if err1 != nil || err2 != nil {
			return nil, 0, util.BadRequest(util.INVALID_DATE_FORMAT)
		}
		filter["orderDate"] = bson.M{"$gte": start, "$lte": end.Add(24 * time.Hour)}
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	sortBy := "orderDate"
	if q.SortBy != "" {
		sortBy = q.SortBy
	}
	if q.SortOrder == 0 {
		q.SortOrder = -1
	}

	coll := db.OpenCollection(util.InvestigationCollection)
	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: q.SortOrder}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)
	var rows []models.Investigation
	if err := db.FindAll(c, coll, filter, opts, &rows); err != nil {
		log.Println("Error from FindAll investigations:", err)
		return nil, 0, err
	}
	total, err := db.CountDocuments(c, coll, filter)
	if err != nil {
		log.Println("Error from CountDocuments investigations:", err)
		return nil, 0, err
	}

	now := time.Now()
	enhanced := make([]EnhancedInvestigation, 0, len(rows))
	for _, inv := range rows {
		enhanced = append(enhanced, EnhanceInvestigation(inv, now))
	}
	return enhanced, total, nil
}

// GetPatientInvestigationsByAdmission lists one admission's orders with
// the computed feed flags.
func GetPatientInvestigationsByAdmission(c *gin.Context, admissionID string) ([]EnhancedInvestigation, error) {
	oid, err := primitive.ObjectIDFromHex(admissionID)
	if err != nil {
		return nil, util.BadRequest(util.INVALID_OBJECT_ID)
	}
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	var rows []models.Investigation
	if err := db.FindAll(c, db.OpenCollection(util.InvestigationCollection), bson.M{"admissionId": oid}, opts, &rows); err != nil {
		log.Println("Error from FindAll investigations by admission:", err)
		return nil, err
	}
	now := time.Now()
	enhanced := make([]EnhancedInvestigation, 0, len(rows))
	for _, inv := range rows {
		enhanced = append(enhanced, EnhanceInvestigation(inv, now))
	}
	return enhanced, nil
}
