package amqp

import (
	"encoding/json"
	"time"
)

// ReportKind identifies which report a job asks for.
type ReportKind string

const (
	ReportWeekly   ReportKind = "weekly"
	ReportCategory ReportKind = "category"
	ReportWorkday  ReportKind = "workday"
)

// ReportJob asks the worker to build one report. Date is the reference date
// in YYYY-MM-DD; Scope and Category apply only to the kinds that use them.
type ReportJob struct {
	Kind        ReportKind `json:"kind"`
	Date        string     `json:"date"`
	Scope       string     `json:"scope,omitempty"`
	Category    string     `json:"category,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
}

// NewReportJob creates a job stamped with the current time.
func NewReportJob(kind ReportKind, date, scope, category string) *ReportJob {
	return &ReportJob{
		Kind:        kind,
		Date:        date,
		Scope:       scope,
		Category:    category,
		RequestedAt: time.Now(),
	}
}

// ToJSON converts the job to JSON bytes.
func (j *ReportJob) ToJSON() ([]byte, error) {
	return json.Marshal(j)
}

// ReportJobFromJSON creates a job from JSON bytes.
func ReportJobFromJSON(data []byte) (*ReportJob, error) {
	var job ReportJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
