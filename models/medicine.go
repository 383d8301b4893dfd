package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidMedicineCategories are the catalog categories a doctor can file
// a medicine under.
var ValidMedicineCategories = []string{
	"Antibiotics",
	"Analgesics",
	"Antipyretics",
	"Antihypertensives",
	"Antidiabetics",
	"Antidepressants",
	"Anticoagulants",
	"Antihistamines",
	"Bronchodilators",
	"Corticosteroids",
	"Diuretics",
	"Gastrointestinal Agents",
	"Vitamins/Supplements",
	"Others",
}

type MedicineAddedBy struct {
	DoctorID   primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	DoctorName string             `json:"doctorName" bson:"doctorName"`
}

// Medicine is a doctor-curated catalog entry, scoped to the doctor who
// added it for updates and deletes.
type Medicine struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	GenericName  string             `json:"genericName" bson:"genericName"`
	Category     string             `json:"category" bson:"category"`
	DosageForm   string             `json:"dosageForm" bson:"dosageForm"`
	Strength     string             `json:"strength" bson:"strength"`
	Manufacturer string             `json:"manufacturer" bson:"manufacturer"`
	Description  string             `json:"description" bson:"description"`
	SideEffects  string             `json:"sideEffects" bson:"sideEffects"`
	AddedBy      MedicineAddedBy    `json:"addedBy" bson:"addedBy"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
