package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/repository"
)

// DefaultLimit caps how many rows a single export pulls.
const DefaultLimit = 10000

// Exporter writes stored transcripts and encounter summaries to csv, json,
// or xlsx.
type Exporter struct {
	repo repository.ClinicDAO
}

// NewExporter creates an exporter over the given database.
func NewExporter(repo repository.ClinicDAO) *Exporter {
	return &Exporter{repo: repo}
}

// Transcripts exports transcripts in the requested format.
func (e *Exporter) Transcripts(format string, limit int, w io.Writer) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	transcripts, err := e.repo.ListTranscripts(limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch transcripts: %w", err)
	}

	switch format {
	case "csv":
		return transcriptsCSV(transcripts, w)
	case "json":
		return writeJSON(transcripts, w)
	case "xlsx":
		return transcriptsXLSX(transcripts, w)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// Encounters exports encounter summaries in the requested format.
func (e *Exporter) Encounters(format string, limit int, w io.Writer) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	encounters, err := e.repo.ListEncounters(limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch encounters: %w", err)
	}

	switch format {
	case "csv":
		return encountersCSV(encounters, w)
	case "json":
		return writeJSON(encounters, w)
	case "xlsx":
		return encountersXLSX(encounters, w)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeJSON(v interface{}, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func transcriptsCSV(transcripts []model.Transcript, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{"ID", "Patient ID", "Appointment ID", "File Name", "Provider", "Model", "Language", "Duration (s)", "Text", "Error"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, t := range transcripts {
		row := []string{
			strconv.Itoa(t.ID),
			intPtrString(t.PatientID),
			intPtrString(t.AppointmentID),
			t.FileName,
			t.Provider,
			t.ModelName,
			t.Language,
			fmt.Sprintf("%.2f", t.DurationSec),
			t.Text,
			t.ErrorMessage,
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func transcriptsXLSX(transcripts []model.Transcript, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcripts")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Patient ID", "Appointment ID", "File Name", "Provider", "Model", "Language", "Duration (s)", "Created At", "Text", "Error"} {
		headerRow.AddCell().Value = h
	}

	for _, t := range transcripts {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.Itoa(t.ID)
		row.AddCell().Value = intPtrString(t.PatientID)
		row.AddCell().Value = intPtrString(t.AppointmentID)
		row.AddCell().Value = t.FileName
		row.AddCell().Value = t.Provider
		row.AddCell().Value = t.ModelName
		row.AddCell().Value = t.Language
		row.AddCell().Value = fmt.Sprintf("%.2f", t.DurationSec)
		row.AddCell().Value = t.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = t.Text
		row.AddCell().Value = t.ErrorMessage
	}

	return file.Write(w)
}

func encountersCSV(encounters []model.EncounterSummary, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{"ID", "Patient ID", "Appointment ID", "Visit Summary", "Diagnostic Assessment", "Treatment Plan", "Follow-up Duration", "Follow-up Reason", "Patient Instructions", "Follow-up Questions", "Generated At"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, e := range encounters {
		row := []string{
			strconv.Itoa(e.ID),
			strconv.Itoa(e.PatientID),
			intPtrString(e.AppointmentID),
			e.VisitSummary,
			e.DiagnosticAssessment,
			e.TreatmentCarePlan,
			e.FollowUpDuration,
			e.FollowUpReason,
			e.PatientInstructions,
			strings.Join(e.FollowUpQuestions, "; "),
			e.GeneratedAt.Format(time.RFC3339),
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func encountersXLSX(encounters []model.EncounterSummary, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Encounters")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Patient ID", "Appointment ID", "Visit Summary", "Diagnostic Assessment", "Treatment Plan", "Follow-up Duration", "Follow-up Reason", "Patient Instructions", "Follow-up Questions", "Generated At"} {
		headerRow.AddCell().Value = h
	}

	for _, e := range encounters {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.Itoa(e.ID)
		row.AddCell().Value = strconv.Itoa(e.PatientID)
		row.AddCell().Value = intPtrString(e.AppointmentID)
		row.AddCell().Value = e.VisitSummary
		row.AddCell().Value = e.DiagnosticAssessment
		row.AddCell().Value = e.TreatmentCarePlan
		row.AddCell().Value = e.FollowUpDuration
		row.AddCell().Value = e.FollowUpReason
		row.AddCell().Value = e.PatientInstructions
		row.AddCell().Value = strings.Join(e.FollowUpQuestions, "; ")
		row.AddCell().Value = e.GeneratedAt.Format(time.RFC3339)
	}

	return file.Write(w)
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
