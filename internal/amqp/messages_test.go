package amqp

import "testing"

func TestReportJobRoundTrip(t *testing.T) {
	job := NewReportJob(ReportCategory, "2024-06-12", "", "Еда")

	data, err := job.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}

	back, err := ReportJobFromJSON(data)
	if err != nil {
		t.Fatalf("ReportJobFromJSON error: %v", err)
	}
	if back.Kind != ReportCategory {
		t.Errorf("kind = %q, want %q", back.Kind, ReportCategory)
	}
	if back.Date != "2024-06-12" {
		t.Errorf("date = %q, want 2024-06-12", back.Date)
	}
	if back.Category != "Еда" {
		t.Errorf("category = %q, want Еда", back.Category)
	}
	if back.RequestedAt.IsZero() {
		t.Error("requested_at was not preserved")
	}
}

func TestReportJobFromJSONInvalid(t *testing.T) {
	if _, err := ReportJobFromJSON([]byte("{broken")); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}
