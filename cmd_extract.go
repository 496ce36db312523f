package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aashish23092/loan-underwriting/client"
	"github.com/Aashish23092/loan-underwriting/config"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/Aashish23092/loan-underwriting/utils"
	"github.com/spf13/cobra"
)

var extractPassword string

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract working capital fields from a financial statement",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractPassword, "password", "", "password for encrypted PDFs")
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	cfg := config.LoadConfig()
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	reader := service.NewDocumentReader(service.NewPDFProcessor(), tesseractClient)
	rows, err := reader.ReadRows(cmd.Context(), service.Document{
		Filename: filepath.Base(args[0]),
		Data:     data,
		Password: extractPassword,
	})
	if err != nil {
		return err
	}

	fields := utils.ExtractFields(rows)
	out, err := json.MarshalIndent(map[string]any{
		"fields":  fields,
		"request": fields.Request(),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
