package services

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// ValidateMedicineCategory reports whether category is one of the
// catalog categories.
func ValidateMedicineCategory(category string) bool {
	for _, v := range models.ValidMedicineCategories {
		if v == category {
			return true
		}
	}
	return false
}

// AddMedicine files a catalog entry under the authenticated doctor.
func AddMedicine(c *gin.Context, doctorID primitive.ObjectID, medicine models.Medicine) (*models.Medicine, error) {
	if medicine.Name == "" || medicine.Category == "" {
		return nil, util.BadRequest(util.MISSING_REQUIRED_FIELDS)
	}
	if !ValidateMedicineCategory(medicine.Category) {
		return nil, util.BadRequest(util.INVALID_MEDICINE_CATEGORY)
	}
	doctor, err := FetchDoctorByID(c, doctorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	medicine.ID = primitive.NewObjectID()
	medicine.AddedBy = models.MedicineAddedBy{DoctorID: doctor.ID, DoctorName: doctor.DoctorName}
	medicine.CreatedAt = now
	medicine.UpdatedAt = now
	if _, err := db.CreateOne(c, db.OpenCollection(util.MedicineCollection), medicine); err != nil {
		log.Println("Error from CreateOne medicine:", err)
		return nil, err
	}
	return &medicine, nil
}

// GetDoctorMedicines lists the doctor's catalog, optionally narrowed
// by category or a name search.
func GetDoctorMedicines(c *gin.Context, doctorID primitive.ObjectID, category, search string) ([]models.Medicine, error) {
	filter := bson.M{"addedBy.doctorId": doctorID}
	if category != "" {
		filter["category"] = category
	}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	var medicines []models.Medicine
	if err := db.FindAll(c, db.OpenCollection(util.MedicineCollection), filter, opts, &medicines); err != nil {
		log.Println("Error from FindAll medicines:", err)
		return nil, err
	}
	return medicines, nil
}

// UpdateMedicine edits a catalog entry; only the doctor who added it
// may change it.
func UpdateMedicine(c *gin.Context, doctorID, medicineID primitive.ObjectID, changes models.Medicine) (*models.Medicine, error) {
	if changes.Category != "" && !ValidateMedicineCategory(changes.Category) {
		return nil, util.BadRequest(util.INVALID_MEDICINE_CATEGORY)
	}

	set := bson.M{"updatedAt": time.Now()}
	if changes.Name != "" {
		set["name"] = changes.Name
	}
	if changes.GenericName != "" {
		set["genericName"] = changes.GenericName
	}
	if changes.Category != "" {
		set["category"] = changes.Category
	}
	if changes.DosageForm != "" {
		set["dosageForm"] = changes.DosageForm
	}
	if changes.Strength != "" {
		set["strength"] = changes.Strength
	}
	if changes.Manufacturer != "" {
		set["manufacturer"] = changes.Manufacturer
	}
	if changes.Description != "" {
		set["description"] = changes.Description
	}
	if changes.SideEffects != "" {
		set["sideEffects"] = changes.SideEffects
	}

	filter := bson.M{"_id": medicineID, "addedBy.doctorId": doctorID}
	var updated models.Medicine
	err := db.FindOneAndUpdate(c, db.OpenCollection(util.MedicineCollection), filter, bson.M{"$set": set}, &updated)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.MEDICINE_NOT_FOUND)
	}
	if err != nil {
		log.Println("Error from FindOneAndUpdate medicine:", err)
		return nil, err
	}
	return &updated, nil
}

// DeleteDoctorMedicine removes a catalog entry; doctor-scoped like
// updates.
func DeleteDoctorMedicine(c *gin.Context, doctorID, medicineID primitive.ObjectID) error {
	res, err := db.DeleteOne(c, db.OpenCollection(util.MedicineCollection), bson.M{
		"_id":              medicineID,
		"addedBy.doctorId": doctorID,
	})
	if err != nil {
		log.Println("Error from DeleteOne medicine:", err)
		return err
	}
	if res.DeletedCount == 0 {
		return util.NotFound(util.MEDICINE_NOT_FOUND)
	}
	return nil
}
