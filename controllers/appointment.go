package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Appointment(router *gin.Engine) {
	doctor := router.Group("/doctor", authorization.RequireUsertype(util.DoctorUserType))
	{
		doctor.POST("/updateAppointmentStatus/:patientId/:appointmentId", UpdateAppointmentStatus)
		doctor.GET("/getDoctorAppointments", GetDoctorAppointments)
	}
}

func UpdateAppointmentStatus(c *gin.Context) {
	patientDocID, ok := parseObjectID(c, c.Param("patientId"))
	if !ok {
		return
	}
	appointmentID, ok := parseObjectID(c, c.Param("appointmentId"))
	if !ok {
		return
	}
	var req services.AppointmentStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	result, err := services.UpdateAppointmentStatus(c, patientDocID, appointmentID, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Appointment status updated", result))
}

func GetDoctorAppointments(c *gin.Context) {
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
	q := services.AppointmentQuery{
		Status:    c.Query("status"),
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
	}
	rows, total, err := services.GetDoctorAppointments(c, doctorID, q)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{
		"appointments": rows,
		"total":        total,
		"page":         q.Page,
		"limit":        q.Limit,
	}))
}
