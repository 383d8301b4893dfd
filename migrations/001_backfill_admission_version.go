package migrations

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// BackfillAdmissionVersion sets version 0 on admission records written
// before the counter existed.
func BackfillAdmissionVersion() {
	ctx := context.Background()
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"rec.version": bson.M{"$exists": false}}},
	})
	result, err := db.OpenCollection(util.PatientCollection).UpdateMany(
		ctx,
		bson.M{"admissionRecords": bson.M{"$elemMatch": bson.M{"version": bson.M{"$exists": false}}}},
		bson.M{"$set": bson.M{"admissionRecords.$[rec].version": 0}},
		opts,
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Printf("Migration applied: %d documents updated\n", result.ModifiedCount)
}
