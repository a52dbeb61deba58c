package main

import (
	"log"
	"net/http"
	"os"

	"parche_server/routes"
	"parche_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize the document store
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	store := services.NewDynamoStore(dynamoClient)
	log.Println("DynamoDB client initialized.")

	// Initialize services
	userService := services.NewUserService(store)
	connectionService := services.NewConnectionService(store, userService)
	planService := services.NewPlanService(store, userService)
	matchService := services.NewMatchService(store, userService)
	mediaService := services.NewMediaService(services.InitializeS3Client())

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterUserRoutes(r, userService)
	routes.RegisterConnectionRoutes(r, connectionService)
	routes.RegisterPlanRoutes(r, planService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterMediaRoutes(r, mediaService, userService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-Id"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
