package services

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// AssignPatientToLab opens a lab workflow for one test on one
// admission. The same test name cannot be assigned twice per admission.
func AssignPatientToLab(c *gin.Context, doctorID primitive.ObjectID, patientID string, admissionID primitive.ObjectID, labTestName string) (*models.LabReport, error) {
	if labTestName == "" {
		return nil, util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	patient, err := FetchPatientByID(c, patientID)
	if err != nil {
		return nil, err
	}
	if patient.FindAdmission(admissionID) == nil {
		return nil, util.NotFound(util.ADMISSION_NOT_FOUND)
	}

	coll := db.OpenCollection(util.LabReportCollection)
	count, err := db.CountDocuments(c, coll, bson.M{
		"admissionId":              admissionID,
		"labTestNameGivenByDoctor": labTestName,
	})
	if err != nil {
		log.Println("Error from CountDocuments lab reports:", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.Conflict(util.LAB_TEST_ALREADY_ASSIGNED)
	}

	report := models.LabReport{
		ID:                       primitive.NewObjectID(),
		AdmissionID:              admissionID,
		PatientID:                patient.ID,
		DoctorID:                 doctorID,
		LabTestNameGivenByDoctor: labTestName,
		Reports:                  []models.LabResult{},
		AssignedAt:               time.Now(),
	}
	if _, err := db.CreateOne(c, coll, report); err != nil {
		log.Println("Error from CreateOne lab report:", err)
		return nil, err
	}
	log.Println("Assigned lab test", labTestName, "for admission", admissionID.Hex())
	return &report, nil
}

// GetLabReportsByAdmissionID lists the lab workflows of one admission.
func GetLabReportsByAdmissionID(c *gin.Context, admissionID string) ([]models.LabReport, error) {
	oid, err := primitive.ObjectIDFromHex(admissionID)
	if err != nil {
		return nil, util.BadRequest(util.INVALID_OBJECT_ID)
	}
	var reports []models.LabReport
	if err := db.FindAll(c, db.OpenCollection(util.LabReportCollection), bson.M{"admissionId": oid}, nil, &reports); err != nil {
		log.Println("Error from FindAll lab reports:", err)
		return nil, err
	}
	if len(reports) == 0 {
		return nil, util.NotFound(util.LAB_REPORT_NOT_FOUND)
	}
	return reports, nil
}
