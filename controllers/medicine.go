package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Medicine(router *gin.Engine) {
	doctor := router.Group("/doctor", authorization.RequireUsertype(util.DoctorUserType))
	{
		doctor.POST("/addMedicine", AddMedicine)
		doctor.GET("/getDoctorMedicines", GetDoctorMedicines)
		doctor.PUT("/updateMedicine/:medicineId", UpdateMedicine)
		doctor.DELETE("/deleteDoctorMedicine/:medicineId", DeleteDoctorMedicine)
	}
}

func AddMedicine(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	var medicine models.Medicine
	if err := c.BindJSON(&medicine); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	created, err := services.AddMedicine(c, doctorID, medicine)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.MessageResponse("Medicine added", created))
}

func GetDoctorMedicines(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	medicines, err := services.GetDoctorMedicines(c, doctorID, c.Query("category"), c.Query("search"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(medicines))
}

func UpdateMedicine(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	medicineID, ok := parseObjectID(c, c.Param("medicineId"))
	if !ok {
		return
	}
	var changes models.Medicine
	if err := c.BindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	updated, err := services.UpdateMedicine(c, doctorID, medicineID, changes)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Medicine updated", updated))
}

func DeleteDoctorMedicine(c *gin.Context) {
	doctorID, err := services.DoctorIDFromContext(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	medicineID, ok := parseObjectID(c, c.Param("medicineId"))
	if !ok {
		return
	}
	if err := services.DeleteDoctorMedicine(c, doctorID, medicineID); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.MessageResponse("Medicine deleted", nil))
}
