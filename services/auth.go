package services

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aadarsh-Mane/common-backend/config/authorization"
	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// SigninDoctor verifies the doctor's credentials and issues a token.
func SigninDoctor(c *gin.Context, email, password string) (gin.H, error) {
	if email == "" || password == "" {
		return nil, util.BadRequest(util.EMAIL_PASSWORD_REQUIRED)
	}

	var doctor models.Doctor
	err := db.FindOne(c, db.OpenCollection(util.DoctorCollection), bson.M{"email": email}, &doctor)
	if err == mongo.ErrNoDocuments {
		return nil, util.Unauthorized(util.INVALID_CREDENTIALS)
	}
	if err != nil {
		log.Println("Error from FindOne doctor:", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(password)); err != nil {
		return nil, util.Unauthorized(util.INVALID_CREDENTIALS)
	}

	token, err := authorization.GenerateToken(doctor.ID.Hex(), doctor.Usertype)
	if err != nil {
		log.Println("Error from GenerateToken:", err)
		return nil, err
	}

	doctor.Password = ""
	return gin.H{"token": token, "doctor": doctor}, nil
}

// FetchDoctorByID resolves a doctor document by its object id.
func FetchDoctorByID(c *gin.Context, doctorID primitive.ObjectID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := db.FindOne(c, db.OpenCollection(util.DoctorCollection), bson.M{"_id": doctorID}, &doctor)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
	}
	if err != nil {
		log.Println("Error from FindOne doctor:", err)
		return nil, err
	}
	doctor.Password = ""
	return &doctor, nil
}

// DoctorIDFromContext parses the authenticated caller's id set by the
// JWT middleware.
func DoctorIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	raw := c.GetString("userId")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, util.Unauthorized(util.INVALID_TOKEN_SUBJECT)
	}
	return id, nil
}
