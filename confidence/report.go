// Package confidence scores extracted timesheet fields and aggregates them
// into a review recommendation.
package confidence

import (
	"errors"
	"strings"

	"azai/timesheet"
)

// Recommendation routes a scored extraction to a review queue.
type Recommendation string

const (
	AutoAccept           Recommendation = "auto_accept"
	ReviewRecommended    Recommendation = "review_recommended"
	ManualReviewRequired Recommendation = "manual_review_required"
	ManualEntryRequired  Recommendation = "manual_entry_required"
)

// ParseRecommendation accepts the wire names above.
func ParseRecommendation(value string) (Recommendation, bool) {
	switch Recommendation(value) {
	case AutoAccept, ReviewRecommended, ManualReviewRequired, ManualEntryRequired:
		return Recommendation(value), true
	default:
		return "", false
	}
}

// Thresholds are the minimum extraction scores for each recommendation.
type Thresholds struct {
	AutoAccept           float64 `json:"auto_accept"`
	ReviewRecommended    float64 `json:"review_recommended"`
	ManualReviewRequired float64 `json:"manual_review_required"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoAccept:           0.95,
		ReviewRecommended:    0.80,
		ManualReviewRequired: 0.60,
	}
}

// Validate requires 0 <= manual review < review recommended < auto accept <= 1.
func (t Thresholds) Validate() error {
	if t.ManualReviewRequired < 0 || t.AutoAccept > 1 {
		return errors.New("confidence thresholds must be within [0, 1]")
	}
	if !(t.ManualReviewRequired < t.ReviewRecommended && t.ReviewRecommended < t.AutoAccept) {
		return errors.New("confidence thresholds must satisfy manual_review_required < review_recommended < auto_accept")
	}
	return nil
}

func (t Thresholds) Recommend(score float64) Recommendation {
	switch {
	case score >= t.AutoAccept:
		return AutoAccept
	case score >= t.ReviewRecommended:
		return ReviewRecommended
	case score >= t.ManualReviewRequired:
		return ManualReviewRequired
	default:
		return ManualEntryRequired
	}
}

// EntryReport mirrors one time entry.
type EntryReport struct {
	Date        float64 `json:"date"`
	TimeIn      float64 `json:"time_in"`
	TimeOut     float64 `json:"time_out"`
	Consistency float64 `json:"consistency"`
	Overall     float64 `json:"overall"`
}

// EmployeeReport mirrors one employee entry.
type EmployeeReport struct {
	EmployeeName float64       `json:"employee_name"`
	ServiceCode  float64       `json:"service_code"`
	Signature    float64       `json:"signature"`
	TimeEntries  []EntryReport `json:"time_entries"`
	Overall      float64       `json:"overall"`
}

// Report is the advisory score tree for one extraction.
type Report struct {
	ClientName      float64          `json:"client_name"`
	EmployeeEntries []EmployeeReport `json:"employee_entries"`
	Overall         float64          `json:"overall"`
	Recommendation  Recommendation   `json:"recommendation"`
}

const (
	consistencyBonus = 0.2

	nameWeight        = 0.25
	serviceCodeWeight = 0.15
	signatureWeight   = 0.10
	entriesWeight     = 0.50

	clientNameWeight = 0.20
	employeesWeight  = 0.80
)

// Scorer aggregates field scores bottom-up. It is safe for concurrent use.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer returns a Scorer that recommends with thresholds.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// Thresholds returns the cutoffs the Scorer recommends with.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Score rates every field of data and recommends from the overall score.
func (s *Scorer) Score(data timesheet.ExtractedData) Report {
	report := Report{
		ClientName:      ScoreField(data.ClientName, FieldName),
		EmployeeEntries: make([]EmployeeReport, 0, len(data.EmployeeEntries)),
	}

	employeeScores := make([]float64, 0, len(data.EmployeeEntries))
	for _, employee := range data.EmployeeEntries {
		employeeReport := ScoreEmployee(employee)
		report.EmployeeEntries = append(report.EmployeeEntries, employeeReport)
		employeeScores = append(employeeScores, employeeReport.Overall)
	}

	report.Overall = clamp(clientNameWeight*report.ClientName + employeesWeight*mean(employeeScores))
	report.Recommendation = s.thresholds.Recommend(report.Overall)
	return report
}

// ScoreEmployee scores the employee fields and each of the employee's entries.
func ScoreEmployee(employee timesheet.EmployeeEntry) EmployeeReport {
	report := EmployeeReport{
		EmployeeName: ScoreField(employee.EmployeeName, FieldName),
		ServiceCode:  ScoreField(employee.ServiceCode, FieldServiceCode),
		Signature:    ScoreField(employee.Signature, FieldSignature),
		TimeEntries:  make([]EntryReport, 0, len(employee.TimeEntries)),
	}

	entryScores := make([]float64, 0, len(employee.TimeEntries))
	for _, entry := range employee.TimeEntries {
		entryReport := ScoreEntry(entry)
		report.TimeEntries = append(report.TimeEntries, entryReport)
		entryScores = append(entryScores, entryReport.Overall)
	}

	report.Overall = clamp(nameWeight*report.EmployeeName +
		serviceCodeWeight*report.ServiceCode +
		signatureWeight*report.Signature +
		entriesWeight*mean(entryScores))
	return report
}

// ScoreEntry scores the date and time fields of a single entry.
func ScoreEntry(entry timesheet.TimeEntry) EntryReport {
	timeIn := timesheet.Value(entry.TimeIn)
	timeOut := timesheet.Value(entry.TimeOut)

	report := EntryReport{
		Date:    ScoreField(entry.Date, FieldDate),
		TimeIn:  ScoreField(timeIn, FieldTime),
		TimeOut: ScoreField(timeOut, FieldTime),
	}
	if present(timeIn) && present(timeOut) {
		report.Consistency = consistencyBonus
	}
	report.Overall = mean([]float64{report.Date, report.TimeIn, report.TimeOut, report.Consistency})
	return report
}

func present(value string) bool {
	return strings.TrimSpace(value) != ""
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}
