package main

import (
	"fmt"
	"log"

	"github.com/Aashish23092/loan-underwriting/client"
	"github.com/Aashish23092/loan-underwriting/config"
	"github.com/Aashish23092/loan-underwriting/handler"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/Aashish23092/loan-underwriting/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()

	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	pdfProcessor := service.NewPDFProcessor()
	reader := service.NewDocumentReader(pdfProcessor, tesseractClient)
	scoring := client.NewScoringClient(cfg.ScoringAPIURL, cfg.ScoringTimeout)

	// Initialize service layer
	wcService := service.NewWorkingCapitalService(reader, scoring, st)
	agriService := service.NewAgricultureService(scoring, st)
	bankingService := service.NewBankingService(reader, scoring, st, cfg.BankingMonthsCount)
	decisionService := service.NewDecisionService(st, pdfProcessor)

	router := handler.NewRouter(handler.Handlers{
		WorkingCapital: handler.NewWorkingCapitalHandler(wcService),
		Agriculture:    handler.NewAgricultureHandler(agriService),
		Banking:        handler.NewBankingHandler(bankingService),
		Dashboard:      handler.NewDashboardHandler(decisionService),
	}, cfg.MaxUploadSize)

	log.Printf("Starting Loan Underwriting Service on port %s (scoring backend %s)", cfg.ServerPort, cfg.ScoringAPIURL)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
