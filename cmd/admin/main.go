package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sauti/backend/internal/ai"
	"sauti/backend/internal/enrichment"
	"sauti/backend/internal/export"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/storage"
)

func main() {
	log := logger.New()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: process, verify, export, stats")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "process":
		fs := flag.NewFlagSet("process", flag.ExitOnError)
		limit := fs.Int("limit", 0, "maximum number of complaints to process")
		force := fs.Bool("force", false, "re-process complaints already marked as processed")
		fs.Parse(os.Args[2:])

		aiClient, err := ai.NewOpenAIClient(log)
		if err != nil {
			log.WithError(err).Fatal("cannot run batch enrichment without AI credentials")
		}
		orchestrator := enrichment.NewOrchestrator(storageSvc, aiClient, log)
		runner := enrichment.NewRunner(storageSvc, orchestrator, log)

		tally, err := runner.Run(context.Background(), *limit, *force)
		if err != nil {
			log.WithError(err).Fatal("batch enrichment failed")
		}
		fmt.Printf("Successfully processed: %d\n", tally.Processed)
		fmt.Printf("Failed: %d\n", tally.Failed)
	case "verify":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin verify <complaint_id>")
			os.Exit(1)
		}
		complaintID := os.Args[2]
		if err := storageSvc.VerifyComplaint(complaintID); err != nil {
			log.WithError(err).Fatal("Error verifying complaint")
		}
		fmt.Printf("Complaint %s has been verified.\n", complaintID)
	case "export":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin export <path.xlsx>")
			os.Exit(1)
		}
		path := os.Args[2]
		complaints, err := storageSvc.ListComplaints(10000)
		if err != nil {
			log.WithError(err).Fatal("Error loading complaints")
		}
		if err := export.WriteWorkbook(path, complaints); err != nil {
			log.WithError(err).Fatal("Error writing workbook")
		}
		fmt.Printf("Exported %d complaints to %s.\n", len(complaints), path)
	case "stats":
		stats, err := storageSvc.DashboardStats()
		if err != nil {
			log.WithError(err).Fatal("Error computing stats")
		}
		fmt.Printf("Total complaints:   %d\n", stats.Total)
		fmt.Printf("Submitted today:    %d\n", stats.Today)
		fmt.Printf("Awaiting AI:        %d\n", stats.Unprocessed)
		fmt.Println("By category:")
		for _, b := range stats.ByCategory {
			fmt.Printf("  %-20s %d\n", b.Key, b.Count)
		}
		fmt.Println("By urgency:")
		for _, b := range stats.ByUrgency {
			fmt.Printf("  %-20s %d\n", b.Key, b.Count)
		}
		fmt.Println("Top counties:")
		for _, b := range stats.ByCounty {
			fmt.Printf("  %-20s %d\n", b.Key, b.Count)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
