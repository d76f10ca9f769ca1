package job

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldray/fieldops/internal/lib/recurrence"
	"github.com/fieldray/fieldops/internal/models"
)

func baseForm() models.JobForm {
	return models.JobForm{
		Title:        "Window Cleaning",
		CustomerName: "Acme LLC",
		Address:      "12 Main St",
		ScheduledAt:  time.Date(2025, 4, 7, 10, 0, 0, 0, time.UTC),
		FirstTime:    true,
		CreatedBy:    "dispatcher1",
	}
}

func selections(prices ...float64) []models.ResolvedService {
	out := make([]models.ResolvedService, 0, len(prices))
	for i, p := range prices {
		id := i + 1
		out = append(out, models.ResolvedService{
			Source:    models.ServiceSourceCatalog,
			CatalogID: &id,
			Name:      "Service",
			Price:     p,
			Hours:     1,
		})
	}
	return out
}

func TestMaterialize_SingleJob(t *testing.T) {
	form := baseForm()
	m, err := Materialize(form, selections(50, 75))
	if err != nil {
		t.Fatalf("Materialize() unexpected error: %v", err)
	}

	if len(m.Jobs) != 1 {
		t.Fatalf("Materialize() produced %d jobs, want 1", len(m.Jobs))
	}
	job := m.Jobs[0]
	if job.IsRecurring {
		t.Error("IsRecurring = true, want false")
	}
	if !job.FirstTime {
		t.Error("FirstTime = false, want form value true")
	}
	if job.Price == nil || *job.Price != 125 {
		t.Errorf("Price = %v, want 125", job.Price)
	}
	if job.EstimatedHours != 2 {
		t.Errorf("EstimatedHours = %d, want 2", job.EstimatedHours)
	}
	if job.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", job.Status)
	}
	if job.SequenceID != nil {
		t.Errorf("SequenceID = %v, want nil for single job", *job.SequenceID)
	}
	if m.Schedule != nil {
		t.Error("Schedule created for non-recurring form")
	}
}

func TestMaterialize_RecurringSeries(t *testing.T) {
	form := baseForm()
	form.IsRecurring = true
	form.Recurrence = &recurrence.Rule{
		Frequency: recurrence.Monthly,
		Interval:  1,
		Count:     3,
	}
	form.Title = "X"

	m, err := Materialize(form, selections(100))
	if err != nil {
		t.Fatalf("Materialize() unexpected error: %v", err)
	}

	if len(m.Jobs) != 3 {
		t.Fatalf("Materialize() produced %d jobs, want 3", len(m.Jobs))
	}

	wantTitles := []string{"X", "X (2)", "X (3)"}
	for i, job := range m.Jobs {
		if !job.IsRecurring {
			t.Errorf("Jobs[%d].IsRecurring = false, want true for every occurrence", i)
		}
		if job.Title != wantTitles[i] {
			t.Errorf("Jobs[%d].Title = %q, want %q", i, job.Title, wantTitles[i])
		}
		wantFirst := i == 0
		if job.FirstTime != wantFirst {
			t.Errorf("Jobs[%d].FirstTime = %v, want %v", i, job.FirstTime, wantFirst)
		}
		if job.SequenceID == nil || *job.SequenceID == "" {
			t.Errorf("Jobs[%d].SequenceID is empty", i)
		}
		wantDate := form.ScheduledAt.AddDate(0, i, 0)
		if !job.ScheduledAt.Equal(wantDate) {
			t.Errorf("Jobs[%d].ScheduledAt = %v, want %v", i, job.ScheduledAt, wantDate)
		}
	}

	first := m.Jobs[0].SequenceID
	for i, job := range m.Jobs[1:] {
		if *job.SequenceID != *first {
			t.Errorf("Jobs[%d].SequenceID differs from first job", i+1)
		}
	}

	if m.Schedule == nil {
		t.Fatal("Schedule is nil for recurring form")
	}
	if m.Schedule.SequenceID != *first {
		t.Error("Schedule.SequenceID differs from jobs")
	}
	lastDate := m.Jobs[2].ScheduledAt
	if !m.Schedule.NextDueDate.Equal(lastDate) {
		t.Errorf("Schedule.NextDueDate = %v, want last occurrence %v",
			m.Schedule.NextDueDate, lastDate)
	}
}

func TestMaterialize_FirstTimeFalsePropagates(t *testing.T) {
	form := baseForm()
	form.FirstTime = false
	form.IsRecurring = true
	form.Recurrence = &recurrence.Rule{Frequency: recurrence.Weekly, Interval: 1, Count: 2}

	m, err := Materialize(form, selections(10))
	if err != nil {
		t.Fatalf("Materialize() unexpected error: %v", err)
	}
	for i, job := range m.Jobs {
		if job.FirstTime {
			t.Errorf("Jobs[%d].FirstTime = true, want false when form.FirstTime is false", i)
		}
	}
}

func TestMaterialize_ZeroTotalLeavesPriceUnset(t *testing.T) {
	m, err := Materialize(baseForm(), selections(0, 0))
	if err != nil {
		t.Fatalf("Materialize() unexpected error: %v", err)
	}
	if m.Jobs[0].Price != nil {
		t.Errorf("Price = %v, want nil for zero total", *m.Jobs[0].Price)
	}
}

func TestMaterialize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		form       models.JobForm
		selections []models.ResolvedService
		wantErr    error
	}{
		{
			name: "empty title",
			form: models.JobForm{Title: "   "},
			selections: selections(10),
			wantErr:    ErrEmptyTitle,
		},
		{
			name:       "no services selected",
			form:       baseForm(),
			selections: nil,
			wantErr:    ErrNoServices,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Materialize(tt.form, tt.selections)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Materialize() error = %v, want %v", err, tt.wantErr)
			}
			if m != nil {
				t.Error("Materialize() produced records on validation error")
			}
		})
	}
}

func TestMaterialize_InvalidRuleRejected(t *testing.T) {
	form := baseForm()
	form.IsRecurring = true
	form.Recurrence = &recurrence.Rule{Frequency: recurrence.Monthly, Interval: 1, Count: 0}

	m, err := Materialize(form, selections(10))
	if !errors.Is(err, recurrence.ErrInvalidCount) {
		t.Errorf("Materialize() error = %v, want ErrInvalidCount", err)
	}
	if m != nil {
		t.Error("Materialize() produced records on invalid rule")
	}
}

func TestMaterialize_AssigneesCarriedOver(t *testing.T) {
	form := baseForm()
	form.Assignees = []string{"uid-1", "uid-2"}

	m, err := Materialize(form, selections(10))
	if err != nil {
		t.Fatalf("Materialize() unexpected error: %v", err)
	}
	if len(m.Assignees) != 2 {
		t.Errorf("Assignees = %v, want 2 entries", m.Assignees)
	}
}
