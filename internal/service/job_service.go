package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"deskhive/internal/db"
)

// ReminderSender delivers the pre-start reminder for a booking.
type ReminderSender interface {
	BookingReminder(reference, contactName, contactEmail, contactPhone string, start time.Time, tz string)
}

// JobService runs the periodic sweeps scheduled from main. Both jobs are
// external triggers of the booking state machine; nothing in the booking core
// itself runs on a timer.
type JobService struct {
	Repo   JobStore
	Sender ReminderSender
}

func NewJobService(repo JobStore, sender ReminderSender) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// CompleteFinishedBookings moves confirmed bookings past their end time to
// completed.
func (s *JobService) CompleteFinishedBookings(ctx context.Context) error {
	ids, err := s.Repo.ConfirmedPastEndIDs(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end time: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.Repo.UpdateStatuses(ctx, ids, db.StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	log.Printf("Cron Job: marked %d bookings as completed", len(ids))
	return nil
}

// SendUpcomingReminders notifies contacts of bookings starting within the
// window, once per booking.
func (s *JobService) SendUpcomingReminders(ctx context.Context, within time.Duration) error {
	due, err := s.Repo.DueForReminder(ctx, within)
	if err != nil {
		return fmt.Errorf("cron job: failed to get bookings due for reminder: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(due))
	for _, rb := range due {
		s.Sender.BookingReminder(rb.Booking.Reference, rb.ContactName, rb.ContactEmail, rb.ContactPhone,
			rb.Booking.StartTime, rb.Timezone)
		ids = append(ids, rb.Booking.ID)
	}
	if err := s.Repo.MarkRemindersSent(ctx, ids); err != nil {
		return fmt.Errorf("cron job: failed to mark reminders sent: %w", err)
	}
	log.Printf("Cron Job: sent %d booking reminders", len(ids))
	return nil
}
