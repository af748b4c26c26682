package services

import (
	"math"
	"testing"
	"time"

	"monedero/backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleInstallmentsEqualSplit(t *testing.T) {
	schedule := ScheduleInstallments("tx-1", 1200, 3, date(2024, time.January, 15))

	if len(schedule) != 3 {
		t.Fatalf("Expected 3 installments, got %d", len(schedule))
	}

	expectedDates := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 15),
		date(2024, time.March, 15),
	}

	for i, inst := range schedule {
		if inst.Number != i+1 {
			t.Errorf("Installment %d: expected number %d, got %d", i, i+1, inst.Number)
		}
		if inst.Amount != 400 {
			t.Errorf("Installment %d: expected amount 400, got %f", i+1, inst.Amount)
		}
		if !inst.DueDate.Equal(expectedDates[i]) {
			t.Errorf("Installment %d: expected due date %v, got %v", i+1, expectedDates[i], inst.DueDate)
		}
		if inst.TransactionID != "tx-1" {
			t.Errorf("Installment %d: expected transaction id tx-1, got %s", i+1, inst.TransactionID)
		}
	}

	if schedule[0].Status != models.StatusPaid {
		t.Errorf("Expected first installment paid, got %s", schedule[0].Status)
	}
	for _, inst := range schedule[1:] {
		if inst.Status != models.StatusPending {
			t.Errorf("Installment %d: expected pending, got %s", inst.Number, inst.Status)
		}
	}
}

func TestScheduleInstallmentsMonthRollover(t *testing.T) {
	// AddDate does not clamp: Jan 31 + 1 month lands in March
	schedule := ScheduleInstallments("tx-2", 100, 3, date(2024, time.January, 31))

	expectedDates := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.March, 2), // Feb 31 normalized (2024 is a leap year)
		date(2024, time.March, 31),
	}

	for i, inst := range schedule {
		if !inst.DueDate.Equal(expectedDates[i]) {
			t.Errorf("Installment %d: expected due date %v, got %v", i+1, expectedDates[i], inst.DueDate)
		}
	}
}

func TestScheduleInstallmentsSumWithinTolerance(t *testing.T) {
	totals := []float64{100, 999.99, 0.01, 1234.56}
	counts := []int{2, 3, 7, 12}

	for _, total := range totals {
		for _, count := range counts {
			schedule := ScheduleInstallments("tx-3", total, count, date(2024, time.June, 1))

			if len(schedule) != count {
				t.Fatalf("schedule(%f, %d): expected %d installments, got %d", total, count, count, len(schedule))
			}

			var sum float64
			for _, inst := range schedule {
				sum += inst.Amount
			}
			if math.Abs(sum-total) > 1e-9 {
				t.Errorf("schedule(%f, %d): installments sum to %f", total, count, sum)
			}
		}
	}
}

func TestScheduleInstallmentsDegenerateCounts(t *testing.T) {
	// The scheduler does not validate; small counts produce degenerate
	// output instead of errors
	if got := ScheduleInstallments("tx-4", 100, 0, date(2024, time.January, 1)); len(got) != 0 {
		t.Errorf("Expected empty schedule for count 0, got %d installments", len(got))
	}

	single := ScheduleInstallments("tx-5", 100, 1, date(2024, time.January, 1))
	if len(single) != 1 {
		t.Fatalf("Expected 1 installment for count 1, got %d", len(single))
	}
	if single[0].Status != models.StatusPaid {
		t.Errorf("Expected single installment paid, got %s", single[0].Status)
	}
}
