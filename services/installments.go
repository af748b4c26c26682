package services

import (
	"time"

	"monedero/backend/models"

	"github.com/google/uuid"
)

// ScheduleInstallments splits a financed total into count monthly
// installments anchored at firstDue. The amount is divided equally with
// plain float division; the schedule may drift from the total by a rounding
// fraction, which is accepted and not redistributed. Installment 1 is
// created paid (the purchase itself), the rest pending. Due dates advance
// one calendar month per installment using AddDate's rollover arithmetic,
// so Jan 31 + 1 month lands in early March rather than clamping to Feb.
//
// Callers are expected to pass count >= 2. Smaller counts yield a
// degenerate single-entry or empty schedule rather than an error.
func ScheduleInstallments(transactionID string, totalAmount float64, count int, firstDue time.Time) []models.Installment {
	installmentAmount := totalAmount / float64(count)

	var schedule []models.Installment
	for i := 1; i <= count; i++ {
		status := models.StatusPending
		if i == 1 {
			status = models.StatusPaid
		}

		schedule = append(schedule, models.Installment{
			ID:            uuid.NewString(),
			TransactionID: transactionID,
			Number:        i,
			Amount:        installmentAmount,
			DueDate:       firstDue.AddDate(0, i-1, 0),
			Status:        status,
		})
	}

	return schedule
}
