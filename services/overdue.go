package services

import (
	"fmt"
	"log"
	"time"

	"monedero/backend/database"
	"monedero/backend/models"
)

// StartScheduler starts the background maintenance tasks.
func StartScheduler() {
	log.Println("Starting task scheduler...")

	go startOverdueScheduler()
}

// startOverdueScheduler runs the overdue sweep once at startup and then at
// every midnight.
func startOverdueScheduler() {
	if err := MarkOverdue(time.Now()); err != nil {
		log.Printf("Error marking overdue records: %v", err)
	}

	for {
		// Calculate time until midnight
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		timeUntilMidnight := midnight.Sub(now)

		log.Printf("Next overdue sweep scheduled in %v", timeUntilMidnight)

		time.Sleep(timeUntilMidnight)

		log.Println("Running scheduled overdue sweep...")
		if err := MarkOverdue(time.Now()); err != nil {
			log.Printf("Error marking overdue records: %v", err)
		}

		// Small delay to ensure we don't run multiple times if execution is very quick
		time.Sleep(time.Second)
	}
}

// MarkOverdue flags everything past due as of the given time: pending
// installments, and unsettled debt transactions themselves. Both updates are
// idempotent; re-running the sweep is harmless.
func MarkOverdue(now time.Time) error {
	today := now.Format(dateLayout)

	result, err := database.DB.Exec(`
		UPDATE debt_installments
		SET status = ?
		WHERE status = ? AND date(due_date) < date(?)
	`, models.StatusOverdue, models.StatusPending, today)
	if err != nil {
		return fmt.Errorf("failed to mark overdue installments: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		log.Printf("Marked %d installments overdue", affected)
	}

	result, err = database.DB.Exec(`
		UPDATE transactions
		SET status = ?, updated_at = ?
		WHERE is_debt = 1 AND status IN (?, ?) AND due_date IS NOT NULL AND date(due_date) < date(?)
	`, models.StatusOverdue, now, models.StatusPending, models.StatusPartial, today)
	if err != nil {
		return fmt.Errorf("failed to mark overdue transactions: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		log.Printf("Marked %d debt transactions overdue", affected)
	}

	return nil
}
