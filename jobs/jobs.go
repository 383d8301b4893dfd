package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/config/redis"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/services"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// StartDailyScheduler registers the nightly outbreak sweep. The sweep
// is read-only: it recomputes the report, caches it, and logs High
// alerts for the on-call channel.
func StartDailyScheduler() *cron.Cron {
	c := cron.New()

	// Runs every day at 00:05 AM
	c.AddFunc("5 0 * * *", func() {
		log.Println("Running Daily Outbreak Sweep...")
		RunOutbreakSweep()
	})

	c.Start()
	return c
}

func RunOutbreakSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var patients []models.Patient
	err := db.FindAll(ctx, db.OpenCollection(util.PatientCollection), bson.M{}, nil, &patients)
	if err != nil {
		log.Println("Error from FindAll patients in outbreak sweep:", err)
		return
	}

	report := services.ComputeOutbreakReport(patients, time.Now())
	if err := redis.SetCache(ctx, util.OutbreakKey, report); err != nil {
		log.Println("Failed caching outbreak report:", err)
	}
	for _, alert := range report.OutbreakAlerts {
		if alert.AlertLevel == "High" {
			log.Println("HIGH outbreak alert:", alert.Location, "recent admissions:", alert.RecentAdmissionCount)
		}
	}
	log.Println("Outbreak sweep finished, alerts:", report.AlertCount)
}
