package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/clients"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

const notifyTimeout = 10 * time.Second

// NotificationService sends transactional email. Every send is
// best-effort and asynchronous; a provider failure is logged and never
// propagated back to the operation that triggered it.
type NotificationService struct {
	email clients.EmailSender
	users UserStore
}

func NewNotificationService(email clients.EmailSender, users UserStore) *NotificationService {
	return &NotificationService{email: email, users: users}
}

// BookingCreated emails the candidate that their booking request was
// received and is awaiting mentor confirmation.
func (s *NotificationService) BookingCreated(user *models.User, mentor *models.Mentor, session *models.Session) {
	if !s.email.IsConfigured() {
		return
	}

	subject := fmt.Sprintf("Booking request sent to %s", mentor.Name)
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your %s session with <strong>%s</strong> is requested for %s (%d minutes) and is awaiting confirmation.</p>
<p>We will email you again once the mentor confirms.</p>`,
		user.Name,
		session.SessionType,
		mentor.Name,
		session.ScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"),
		session.Duration,
	)

	s.send(user.Email, user.Name, subject, html, session.ID.String())
}

// SessionConfirmed emails the candidate that the mentor confirmed.
func (s *NotificationService) SessionConfirmed(ctx context.Context, session *models.Session) {
	if !s.email.IsConfigured() {
		return
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", session.ID.String()).Msg("loading user for confirmation email")
		return
	}

	subject := "Your session is confirmed"
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your %s session on %s is confirmed.</p>`,
		user.Name,
		session.SessionType,
		session.ScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"),
	)
	if session.MeetingLink != "" {
		html += fmt.Sprintf(`<p>Join here: <a href="%s">%s</a></p>`, session.MeetingLink, session.MeetingLink)
	}

	s.send(user.Email, user.Name, subject, html, session.ID.String())
}

// send fires the provider call on its own goroutine with its own
// deadline, detached from the request context that triggered it.
func (s *NotificationService) send(to, toName, subject, html, sessionID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.email.Send(ctx, to, toName, subject, html); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Str("subject", subject).Msg("sending notification email")
		}
	}()
}
