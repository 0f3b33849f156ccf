package jobs

import (
	"context"
	"time"

	"acharya-admissions-backend/internal/logger"
)

// PurgeExpiredVerifications deletes email verification rows whose OTPs can no
// longer be used. Runs hourly.
func (jr *JobRunner) PurgeExpiredVerifications() {
	jr.runWithRecovery("PurgeExpiredVerifications", func() {
		ctx := context.Background()

		deleted, err := jr.store.DeleteExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to purge expired verifications", "error", err)
			return
		}
		logger.Info("Purged expired verifications", "count", deleted)
	})
}

// SendChoiceReminders emails applicants who hold more than one acceptance but
// have not yet chosen a school. Runs daily.
func (jr *JobRunner) SendChoiceReminders() {
	jr.runWithRecovery("SendChoiceReminders", func() {
		ctx := context.Background()

		apps, err := jr.store.ListPendingChoiceApplications(ctx)
		if err != nil {
			logger.Error("Failed to query applications awaiting choice", "error", err)
			return
		}

		sent := 0
		for i := range apps {
			app := &apps[i]
			if err := jr.email.SendChoiceReminder(ctx, app.Email, app.ApplicantName, app.ReferenceID); err != nil {
				logger.Error("Failed to send choice reminder",
					"reference_id", app.ReferenceID, "error", err)
				continue
			}
			sent++
			logger.Debug("Sent choice reminder", "reference_id", app.ReferenceID)
		}
		logger.Info("Choice reminders sent", "count", sent, "candidates", len(apps))
	})
}

// MarkOverdueInvoices flips pending fee invoices past their due date to
// overdue. Runs daily.
func (jr *JobRunner) MarkOverdueInvoices() {
	jr.runWithRecovery("MarkOverdueInvoices", func() {
		ctx := context.Background()

		marked, err := jr.store.MarkOverdueInvoices(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue invoices", "error", err)
			return
		}
		logger.Info("Marked invoices as overdue", "count", marked)
	})
}
