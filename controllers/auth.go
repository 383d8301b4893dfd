package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

func Auth(router *gin.Engine) {
	router.POST("/doctor/signin", SigninDoctor)
}

func SigninDoctor(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	result, err := services.SigninDoctor(c, req.Email, req.Password)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(result))
}
