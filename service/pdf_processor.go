package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
	RenderText(title string, lines []string) ([]byte, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns the text layer of every page, one text row per line,
// with the fragments of a row separated by single spaces.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	if password != "" {
		decrypted, err := decryptPDF(pdfData, password)
		if err != nil {
			return "", err
		}
		pdfData = decrypted
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			textBuilder.WriteString(strings.Join(words, " "))
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "statement_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	// nil selectedPages extracts from every page
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

const (
	reportLinesPerPage = 45
	reportTop          = 800
	reportLeft         = 50
	reportLineHeight   = 16
)

type reportFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type reportText struct {
	Value string     `json:"value"`
	Pos   [2]int     `json:"pos"`
	Font  reportFont `json:"font"`
}

type reportContent struct {
	Text []reportText `json:"text"`
}

type reportPage struct {
	Content reportContent `json:"content"`
}

type reportDocument struct {
	Paper string                `json:"paper"`
	Pages map[string]reportPage `json:"pages"`
}

// RenderText lays out a title and body lines on A4 pages and returns the PDF bytes.
func (p *pdfProcessor) RenderText(title string, lines []string) ([]byte, error) {
	doc := reportDocument{Paper: "A4P", Pages: map[string]reportPage{}}

	all := []reportText{{Value: pdfSafe(title), Font: reportFont{Name: "Helvetica-Bold", Size: 14}}}
	for _, line := range lines {
		all = append(all, reportText{Value: pdfSafe(line), Font: reportFont{Name: "Helvetica", Size: 11}})
	}

	pageNo := 0
	for i := range all {
		slot := i % reportLinesPerPage
		if slot == 0 {
			pageNo++
		}
		all[i].Pos = [2]int{reportLeft, reportTop - slot*reportLineHeight}

		key := fmt.Sprint(pageNo)
		page := doc.Pages[key]
		page.Content.Text = append(page.Content.Text, all[i])
		doc.Pages[key] = page
	}

	layout, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report layout: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(layout), &out, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return out.Bytes(), nil
}

func decryptPDF(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

// pdfSafe keeps report text inside the core fonts' character set.
func pdfSafe(s string) string {
	r := strings.NewReplacer("–", "-", "—", "-", "₹", "Rs.")
	s = r.Replace(s)
	if s == "" {
		return " "
	}
	return s
}
