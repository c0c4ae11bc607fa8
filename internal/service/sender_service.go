package service

import (
	"fmt"
	"log"
	"time"

	"deskhive/internal/db"
)

// SenderService delivers booking notifications over WhatsApp and email.
// Delivery failures are logged and never fail the booking path; there are no
// delivery guarantees here.
type SenderService struct {
	BrandName string
}

func NewSenderService() *SenderService {
	return &SenderService{BrandName: "Deskhive"}
}

func (s *SenderService) BookingCreated(booking *db.Booking, contact *db.Contact, space *db.Space, location *db.Location) {
	s.send(booking, contact, space, location, booking.Status)
}

func (s *SenderService) BookingCancelled(booking *db.Booking, contact *db.Contact, space *db.Space, location *db.Location) {
	s.send(booking, contact, space, location, "cancelled")
}

// BookingReminder notifies a contact ahead of their booking start.
func (s *SenderService) BookingReminder(reference, contactName, contactEmail, contactPhone string, start time.Time, tz string) {
	loc := s.location(tz)
	message := fmt.Sprintf("%s: reminder for booking %s starting %s.",
		s.BrandName, reference, start.In(loc).Format("02 Jan 15:04"))

	if contactPhone != "" {
		if err := SendWhatsApp(contactPhone, message); err != nil {
			log.Printf("WARN: reminder WhatsApp for booking %s failed: %v", reference, err)
		}
	}
	if contactEmail != "" {
		subject := fmt.Sprintf("Reminder: your %s booking %s", s.BrandName, reference)
		go func() {
			if err := SendEmailWithSendGrid(contactEmail, contactName, subject, message, ""); err != nil {
				log.Printf("WARN: reminder email for booking %s failed: %v", reference, err)
			}
		}()
	}
}

func (s *SenderService) send(booking *db.Booking, contact *db.Contact, space *db.Space, location *db.Location, status string) {
	loc := s.location(location.Timezone)
	startFormatted := booking.StartTime.In(loc).Format("02 Jan 2006 15:04")
	endFormatted := booking.EndTime.In(loc).Format("02 Jan 2006 15:04")

	message := fmt.Sprintf("%s: your booking %s at %s is %s.\nFrom: %s\nTo: %s",
		s.BrandName, booking.Reference, space.Name, status, startFormatted, endFormatted)

	if contact.Phone != "" {
		if err := SendWhatsApp(contact.Phone, message); err != nil {
			log.Printf("WARN: booking %s was saved, but the WhatsApp notification to %s failed: %v",
				booking.Reference, contact.Phone, err)
		}
	}

	if contact.Email != "" {
		subject := fmt.Sprintf("Your %s booking %s is %s", s.BrandName, booking.Reference, status)
		plainBody := fmt.Sprintf(
			"Hello %s,\n\nYour booking at %s (%s) is %s.\n\n"+
				"Booking Details:\n"+
				"Reference: %s\n"+
				"Space: %s\n"+
				"Start: %s\n"+
				"End: %s\n\n"+
				"Thank you for booking with %s.",
			contact.Name, location.Name, s.BrandName, status,
			booking.Reference, space.Name, startFormatted, endFormatted, s.BrandName,
		)
		go func(toEmail, toName, subject, body string) {
			if err := SendEmailWithSendGrid(toEmail, toName, subject, body, ""); err != nil {
				log.Printf("WARN: email notification for booking %s failed: %v", booking.Reference, err)
			}
		}(contact.Email, contact.Name, subject, plainBody)
	}
}

func (s *SenderService) location(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
