package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"monedero/backend/database"
	"monedero/backend/handlers"
	"monedero/backend/middleware"
	"monedero/backend/migrations"
	"monedero/backend/security"
	"monedero/backend/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env for local development; absence is fine in production
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Use an encryption key from environment or a default one for dev
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		log.Println("Warning: ENCRYPTION_KEY not set, using a default key. This is NOT secure for production!")
		encryptionKey = "default-key-for-development-only"
	}
	security.InitializeEncryption(encryptionKey)

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal(err)
	}

	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	// Initialize Firebase Admin SDK
	log.Println("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Start background maintenance (overdue installment sweep)
	services.StartScheduler()

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/auth/password/strength", handlers.CheckPasswordStrength).Methods("POST", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Protected transaction routes
	protectedRouter.HandleFunc("/transactions", handlers.GetTransactions).Methods("GET")
	protectedRouter.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/summary", handlers.GetTransactionSummary).Methods("GET")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.GetTransaction).Methods("GET")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.UpdateTransaction).Methods("PUT")
	protectedRouter.HandleFunc("/transactions/{id}", handlers.DeleteTransaction).Methods("DELETE")
	protectedRouter.HandleFunc("/transactions/{id}/installments", handlers.GetTransactionInstallments).Methods("GET")
	protectedRouter.HandleFunc("/transactions/{id}/installments/{number}/pay", handlers.PayInstallment).Methods("POST")

	// Protected category routes
	protectedRouter.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	protectedRouter.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	protectedRouter.HandleFunc("/categories/templates", handlers.GetCategoryTemplates).Methods("GET")
	protectedRouter.HandleFunc("/categories/{id}", handlers.UpdateCategory).Methods("PUT")
	protectedRouter.HandleFunc("/categories/{id}", handlers.DeleteCategory).Methods("DELETE")

	// Protected payment method routes
	protectedRouter.HandleFunc("/payment-methods", handlers.GetPaymentMethods).Methods("GET")
	protectedRouter.HandleFunc("/payment-methods", handlers.AddPaymentMethod).Methods("POST")
	protectedRouter.HandleFunc("/payment-methods/{id}", handlers.UpdatePaymentMethod).Methods("PUT")
	protectedRouter.HandleFunc("/payment-methods/{id}", handlers.DeletePaymentMethod).Methods("DELETE")
	protectedRouter.HandleFunc("/payment-methods/{id}/deactivate", handlers.DeactivatePaymentMethod).Methods("POST")
	protectedRouter.HandleFunc("/payment-methods/{id}/reactivate", handlers.ReactivatePaymentMethod).Methods("POST")

	// Protected bank routes
	protectedRouter.HandleFunc("/banks", handlers.GetBanks).Methods("GET")
	protectedRouter.HandleFunc("/banks", handlers.AddBank).Methods("POST")
	protectedRouter.HandleFunc("/banks/exists", handlers.CheckBankName).Methods("GET")
	protectedRouter.HandleFunc("/banks/{id}", handlers.UpdateBank).Methods("PUT")
	protectedRouter.HandleFunc("/banks/{id}", handlers.DeleteBank).Methods("DELETE")

	// Protected user routes
	protectedRouter.HandleFunc("/users/sync", handlers.SyncUser).Methods("POST")
}
