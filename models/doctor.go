package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Doctor struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	DoctorName string             `json:"doctorName" bson:"doctorName"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"password,omitempty" bson:"password,omitempty"`
	Usertype   string             `json:"usertype" bson:"usertype"`
	Speciality string             `json:"speciality" bson:"speciality"`
	Department string             `json:"department" bson:"department"`
	PhoneNo    string             `json:"phoneNumber" bson:"phoneNumber"`
	ImageURL   string             `json:"imageUrl" bson:"imageUrl"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
