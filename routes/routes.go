package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/controllers"
)

func Routes(r *gin.Engine) {

	//public
	controllers.Auth(r)
	//privateroutes
	r.Use(authorization.JWTAuth())
	controllers.Admission(r)
	controllers.Treatment(r)
	controllers.Appointment(r)
	controllers.Analytics(r)
	controllers.Investigation(r)
	controllers.Medicine(r)
}
