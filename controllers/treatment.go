package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Treatment(router *gin.Engine) {
	doctor := router.Group("/doctor", authorization.RequireUsertype(util.DoctorUserType))
	{
		doctor.GET("/getAdmission/:patientId/:admissionId", GetAdmission)
		doctor.GET("/fetchSymptoms/:patientId/:admissionId", FetchSymptoms)
		doctor.GET("/fetchDiagnosis/:patientId/:admissionId", FetchDiagnosis)
		doctor.GET("/fetchVitals/:patientId/:admissionId", FetchVitals)
		doctor.GET("/fetchPrescriptions/:patientId/:admissionId", FetchPrescriptions)
		doctor.GET("/fetchNotes/:patientId/:admissionId", FetchNotes)
		doctor.GET("/getDoctorConsulting/:patientId/:admissionId", GetDoctorConsulting)
		doctor.GET("/getDoctorTreatment/:patientId/:admissionId", GetDoctorTreatment)
		doctor.POST("/addSymptoms", AddSymptoms)
		doctor.DELETE("/deleteSymptom", DeleteSymptom)
		doctor.POST("/addDiagnosis", AddDiagnosis)
		doctor.DELETE("/deleteDiagnosis", DeleteDiagnosis)
		doctor.POST("/addVitals", AddVitals)
		doctor.DELETE("/deleteVitals", DeleteVitals)
		doctor.POST("/addPrescription", AddPrescription)
		doctor.DELETE("/deletePrescription", DeletePrescription)
		doctor.POST("/addConsultingNote", AddConsultingNote)
		doctor.POST("/addNotes", AddNotes)
		doctor.POST("/addDoctorConsultant", AddDoctorConsultant)
		doctor.POST("/addDoctorTreatment", AddDoctorTreatment)
		doctor.DELETE("/deleteDoctorTreatment", DeleteDoctorTreatment)
		doctor.POST("/updateCondition", UpdateCondition)
		doctor.POST("/amountToBePayed", AmountToBePayed)
	}
}

// parseObjectID maps a bad hex id to the 400 the API promises.
func parseObjectID(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.BadRequest(util.INVALID_OBJECT_ID)))
		return primitive.NilObjectID, false
	}
	return id, true
}

// admissionFromParams resolves the :patientId/:admissionId pair shared
// by the admission fetch endpoints.
func admissionFromParams(c *gin.Context) (*models.AdmissionRecord, bool) {
	admissionID, ok := parseObjectID(c, c.Param("admissionId"))
	if !ok {
		return nil, false
	}
	record, err := services.FetchAdmission(c, c.Param("patientId"), admissionID)
	if err != nil {
		util.RespondError(c, err)
		return nil, false
	}
	return record, true
}

func GetAdmission(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record))
}

func FetchSymptoms(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record.SymptomsByDoctor))
}

func FetchDiagnosis(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record.DiagnosisByDoctor))
}

func FetchVitals(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record.Vitals))
}

func FetchPrescriptions(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record.DoctorPrescriptions))
}

func FetchNotes(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record.DoctorNotes))
}

func GetDoctorConsulting(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record.DoctorConsulting))
}

func GetDoctorTreatment(c *gin.Context) {
	record, ok := admissionFromParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(services.TreatmentLists(record)))
}

func AddSymptoms(c *gin.Context) {
	var req struct {
		PatientID   string   `json:"patientId"`
		AdmissionID string   `json:"admissionId"`
		Symptoms    []string `json:"symptoms"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddSymptoms(c, req.PatientID, admissionID, req.Symptoms); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Symptoms added", nil))
}

func DeleteSymptom(c *gin.Context) {
	var req struct {
		PatientID   string `json:"patientId"`
		AdmissionID string `json:"admissionId"`
		Symptom     string `json:"symptom"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.DeleteSymptom(c, req.PatientID, admissionID, req.Symptom); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Symptom deleted", nil))
}

func AddDiagnosis(c *gin.Context) {
	var req struct {
		PatientID   string   `json:"patientId"`
		AdmissionID string   `json:"admissionId"`
		Diagnosis   []string `json:"diagnosis"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddDiagnosis(c, req.PatientID, admissionID, req.Diagnosis); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Diagnosis added", nil))
}

func DeleteDiagnosis(c *gin.Context) {
	var req struct {
		PatientID   string `json:"patientId"`
		AdmissionID string `json:"admissionId"`
		Diagnosis   string `json:"diagnosis"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.DeleteDiagnosis(c, req.PatientID, admissionID, req.Diagnosis); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Diagnosis deleted", nil))
}

func AddVitals(c *gin.Context) {
	var req struct {
		PatientID   string           `json:"patientId"`
		AdmissionID string           `json:"admissionId"`
		Vitals      models.VitalSign `json:"vitals"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddVitals(c, req.PatientID, admissionID, req.Vitals); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Vitals added", nil))
}

func DeleteVitals(c *gin.Context) {
	var req struct {
		PatientID   string `json:"patientId"`
		AdmissionID string `json:"admissionId"`
		VitalsID    string `json:"vitalsId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	vitalsID, ok := parseObjectID(c, req.VitalsID)
	if !ok {
		return
	}
	if err := services.DeleteVitals(c, req.PatientID, admissionID, vitalsID); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Vitals deleted", nil))
}

func AddPrescription(c *gin.Context) {
	var req struct {
		PatientID   string                    `json:"patientId"`
		AdmissionID string                    `json:"admissionId"`
		Medicine    models.PrescribedMedicine `json:"medicine"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddPrescription(c, req.PatientID, admissionID, req.Medicine); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Prescription added", nil))
}

func DeletePrescription(c *gin.Context) {
	var req struct {
		PatientID      string `json:"patientId"`
		AdmissionID    string `json:"admissionId"`
		PrescriptionID string `json:"prescriptionId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	prescriptionID, ok := parseObjectID(c, req.PrescriptionID)
	if !ok {
		return
	}
	if err := services.DeletePrescription(c, req.PatientID, admissionID, prescriptionID); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Prescription deleted", nil))
}

func AddConsultingNote(c *gin.Context) {
	var req struct {
		PatientID   string                `json:"patientId"`
		AdmissionID string                `json:"admissionId"`
		Consulting  models.ConsultingNote `json:"consulting"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddConsultingNote(c, req.PatientID, admissionID, req.Consulting); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Consulting note added", nil))
}

func AddNotes(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req struct {
		PatientID   string `json:"patientId"`
		AdmissionID string `json:"admissionId"`
		Text        string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddNote(c, doctorID, req.PatientID, admissionID, req.Text); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Note added", nil))
}

func AddDoctorConsultant(c *gin.Context) {
	var req struct {
		PatientID   string   `json:"patientId"`
		AdmissionID string   `json:"admissionId"`
		Consultants []string `json:"consultants"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddDoctorConsultant(c, req.PatientID, admissionID, req.Consultants); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Consultants added", nil))
}

func AddDoctorTreatment(c *gin.Context) {
	var req struct {
		PatientID   string                    `json:"patientId"`
		AdmissionID string                    `json:"admissionId"`
		Treatment   services.TreatmentRequest `json:"treatment"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.AddDoctorTreatment(c, req.PatientID, admissionID, req.Treatment); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Treatment recorded", nil))
}

func DeleteDoctorTreatment(c *gin.Context) {
	var req struct {
		PatientID     string `json:"patientId"`
		AdmissionID   string `json:"admissionId"`
		TreatmentID   string `json:"treatmentId"`
		TreatmentType string `json:"treatmentType"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	treatmentID, ok := parseObjectID(c, req.TreatmentID)
	if !ok {
		return
	}
	if err := services.DeleteDoctorTreatment(c, req.PatientID, admissionID, treatmentID, req.TreatmentType); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Treatment entry deleted", nil))
}

func UpdateCondition(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req struct {
		AdmissionID string   `json:"admissionId"`
		Condition   string   `json:"conditionAtDischarge"`
		Amount      *float64 `json:"amountToBePayed"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	patient, err := services.UpdateCondition(c, doctorID, admissionID, req.Condition, req.Amount)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Condition updated", patient))
}

func AmountToBePayed(c *gin.Context) {
	var req struct {
		PatientID   string   `json:"patientId"`
		AdmissionID string   `json:"admissionId"`
		Amount      *float64 `json:"amount"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	if err := services.SetAmountToBePayed(c, req.PatientID, admissionID, req.Amount); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Amount updated", nil))
}
