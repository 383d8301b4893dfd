package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Investigation(router *gin.Engine) {
	doctor := router.Group("/doctor", authorization.RequireUsertype(util.DoctorUserType))
	{
		doctor.POST("/createInvestigation", CreateInvestigation)
		doctor.GET("/getDoctorInvestigations", GetDoctorInvestigations)
		doctor.GET("/getPatientInvestigations/:admissionId", GetPatientInvestigationsByAdmission)
		doctor.POST("/assignPatientToLab", AssignPatientToLab)
		doctor.GET("/getLabReports/:admissionId", GetLabReportsByAdmission)
	}
}

func CreateInvestigation(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req services.CreateInvestigationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	investigation, err := services.CreateInvestigation(c, doctorID, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse("Investigation created", investigation))
}

func GetDoctorInvestigations(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	sortOrder := -1
	if c.Query("sortOrder") == "asc" {
		sortOrder = 1
	}
	var isAbnormal *bool
	if raw := c.Query("isAbnormal"); raw != "" {
		v := raw == "true"
		isAbnormal = &v
	}
	q := services.InvestigationQuery{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		PatientID:  c.Query("patientId"),
		Priority:   c.Query("priority"),
		IsAbnormal: isAbnormal,
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  sortOrder,
		Page:       page,
		Limit:      limit,
	}
	rows, total, err := services.GetDoctorInvestigations(c, doctorID, q)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{
		"investigations": rows,
		"total":          total,
		"page":           q.Page,
		"limit":          q.Limit,
	}))
}

func GetPatientInvestigationsByAdmission(c *gin.Context) {
	rows, err := services.GetPatientInvestigationsByAdmission(c, c.Param("admissionId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(rows))
}

func AssignPatientToLab(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var req struct {
		PatientID   string `json:"patientId"`
		AdmissionID string `json:"admissionId"`
		LabTestName string `json:"labTestNameGivenByDoctor"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	admissionID, ok := parseObjectID(c, req.AdmissionID)
	if !ok {
		return
	}
	report, err := services.AssignPatientToLab(c, doctorID, req.PatientID, admissionID, req.LabTestName)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse("Patient assigned to lab", report))
}

func GetLabReportsByAdmission(c *gin.Context) {
	reports, err := services.GetLabReportsByAdmissionID(c, c.Param("admissionId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(reports))
}
