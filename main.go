package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/config/redis"
	"github.com/Aadarsh-Mane/common-backend/jobs"
	"github.com/Aadarsh-Mane/common-backend/routes"
	"github.com/Aadarsh-Mane/common-backend/services"
)

func main() {
	run()
}

func run() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error in loading the ENV")
	}

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		log.Fatal("Failed connecting to MongoDB:", err)
	}
	defer db.Disconnect(ctx)
	redis.Connect()

	services.SetNotifier(services.LogNotifier{})
	jobs.StartDailyScheduler()

	/*migrations.BackfillAdmissionVersion()*/

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
