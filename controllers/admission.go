package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Admission(router *gin.Engine) {
	doctor := router.Group("/doctor", authorization.RequireUsertype(util.DoctorUserType))
	{
		doctor.GET("/getPatients", GetPatients)
		doctor.GET("/getPatient/:patientId", GetPatient)
		doctor.POST("/admitPatient/:patientId", OpenAdmission)
		doctor.POST("/admitPatient", ConfirmAdmission)
		doctor.GET("/getAssignedPatients", GetAssignedPatients)
		doctor.GET("/getAdmittedPatients", GetAdmittedPatients)
		doctor.POST("/dischargePatient", DischargePatient)
		doctor.GET("/getDischargedPatients", GetDischargedPatients)
		doctor.GET("/getPatientHistory/:patientId", GetPatientHistory)
	}
}

func GetPatients(c *gin.Context) {
	patients, err := services.GetPatients(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

func GetPatient(c *gin.Context) {
	patient, err := services.FetchPatientByID(c, c.Param("patientId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patient))
}

func OpenAdmission(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req services.OpenAdmissionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	record, err := services.OpenAdmission(c, doctorID, c.Param("patientId"), req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse("Admission opened", record))
}

func ConfirmAdmission(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req struct {
		AdmissionID string `json:"admissionId"`
		AdmitNote   string `json:"admitNote"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, err := primitive.ObjectIDFromHex(req.AdmissionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.BadRequest(util.INVALID_OBJECT_ID)))
		return
	}
	patient, err := services.ConfirmAdmission(c, doctorID, admissionID, req.AdmitNote)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Patient admitted successfully", patient))
}

func GetAssignedPatients(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	patients, err := services.GetAssignedPatients(c, doctorID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

func GetAdmittedPatients(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	patients, err := services.GetAdmittedPatients(c, doctorID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

func DischargePatient(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req struct {
		PatientID   string `json:"patientId"`
		AdmissionID string `json:"admissionId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, err := primitive.ObjectIDFromHex(req.AdmissionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.BadRequest(util.INVALID_OBJECT_ID)))
		return
	}
	entry, err := services.DischargePatient(c, doctorID, req.PatientID, admissionID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Patient discharged successfully", entry))
}

func GetDischargedPatients(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	results, err := services.GetDischargedPatients(c, doctorID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(results))
}

func GetPatientHistory(c *gin.Context) {
	history, err := services.GetPatientHistory(c, c.Param("patientId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(history))
}
