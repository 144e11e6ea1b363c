package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/core"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/query"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler lets an identity download its own listings.
type ExportHandler struct {
	Core *core.Core
}

func NewExportHandler(c *core.Core) *ExportHandler {
	return &ExportHandler{Core: c}
}

// ownListings returns the caller's listings in creation order.
func (h *ExportHandler) ownListings(c *gin.Context) ([]models.Listing, bool) {
	identity := currentIdentity(c)
	if identity == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
		return nil, false
	}
	all := h.Core.Discover(query.Filters{})
	own := make([]models.Listing, 0, len(all))
	for _, l := range all {
		if l.OwnerID == identity.ID {
			own = append(own, l)
		}
	}
	return own, true
}

var exportHeaders = []string{"Title", "Category", "Description", "Offer", "Lat", "Lng", "Created"}

func exportRow(l models.Listing) []string {
	return []string{
		l.Title,
		l.Category,
		l.Description,
		l.Offer,
		strconv.FormatFloat(l.Lat, 'f', -1, 64),
		strconv.FormatFloat(l.Lng, 'f', -1, 64),
		l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// CSV exports the caller's listings as a CSV download.
func (h *ExportHandler) CSV(c *gin.Context) {
	listings, ok := h.ownListings(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"listings_%s.csv\"",
		time.Now().Format("20060102")))

	// headers are already sent, so a broken download can only be logged
	if err := writeCSV(c.Writer, listings); err != nil {
		log.Printf("export csv: %v", err)
	}
}

// writeCSV streams the listings as CSV, reporting write and flush errors.
func writeCSV(w io.Writer, listings []models.Listing) error {
	// UTF-8 BOM so spreadsheet apps pick the right encoding
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, l := range listings {
		if err := writer.Write(exportRow(l)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// XLSX exports the caller's listings as a spreadsheet download.
func (h *ExportHandler) XLSX(c *gin.Context) {
	listings, ok := h.ownListings(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Listings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, l := range listings {
		row := idx + 2
		for col, value := range exportRow(l) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 25)
	f.SetColWidth(sheetName, "E", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"listings_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
