package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Analytics(router *gin.Engine) {
	doctor := router.Group("/doctor", authorization.RequireUsertype(util.DoctorUserType))
	{
		doctor.GET("/getSymptomAnalytics", GetSymptomAnalytics)
		doctor.GET("/getCoOccurringSymptoms", GetCoOccurringSymptoms)
		doctor.GET("/getSymptomTrends", GetSymptomTrends)
		doctor.GET("/getSeasonalSymptoms", GetSeasonalSymptoms)
		doctor.GET("/getSymptomDemographics", GetSymptomDemographics)
		doctor.GET("/getSymptomsByLocation", GetSymptomsByLocation)
		doctor.GET("/getOutbreakDetection", GetOutbreakDetection)
	}
}

func GetSymptomAnalytics(c *gin.Context) {
	report, err := services.GetSymptomAnalytics(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(report))
}

func GetCoOccurringSymptoms(c *gin.Context) {
	pairs, err := services.GetCoOccurringSymptoms(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(pairs))
}

func GetSymptomTrends(c *gin.Context) {
	trends, err := services.GetSymptomTrends(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(trends))
}

func GetSeasonalSymptoms(c *gin.Context) {
	months, err := services.GetSeasonalSymptoms(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(months))
}

func GetSymptomDemographics(c *gin.Context) {
	report, err := services.GetSymptomDemographics(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(report))
}

func GetSymptomsByLocation(c *gin.Context) {
	report, err := services.GetSymptomsByLocation(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(report))
}

func GetOutbreakDetection(c *gin.Context) {
	report, err := services.GetOutbreakDetection(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(report))
}
