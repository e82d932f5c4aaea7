package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/utils"
)

// BookingService owns the session lifecycle: creation with conflict
// detection, listing, and status transitions.
type BookingService struct {
	sessions SessionStore
	mentors  MentorStore
	users    UserStore
	rooms    *RoomService
	notifier *NotificationService
}

func NewBookingService(
	sessions SessionStore,
	mentors MentorStore,
	users UserStore,
	rooms *RoomService,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		sessions: sessions,
		mentors:  mentors,
		users:    users,
		rooms:    rooms,
		notifier: notifier,
	}
}

// CreateSession validates a booking request against the mentor's declared
// availability and existing bookings, then persists it as pending. The
// conflict check and the insert run in one repository transaction; the
// confirmation email is fired after commit and never rolls anything back.
func (s *BookingService) CreateSession(ctx context.Context, userID uuid.UUID, req dtos.CreateSessionRequest) (*models.Session, error) {
	if !req.ScheduledAt.After(time.Now()) {
		return nil, apperrors.Validation("scheduledAt", "must be in the future")
	}

	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		return nil, apperrors.Validation("mentorId", "invalid mentor id")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mentor, err := s.mentors.FindByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !mentor.IsActive {
		return nil, apperrors.ErrMentorNotFound
	}

	start := req.ScheduledAt
	end := start.Add(time.Duration(req.Duration) * time.Minute)

	// An empty availability list is an explicit "not bookable".
	ok, err := utils.WithinAvailability(start, end, mentor.Availability, mentor.Timezone)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Validation("scheduledAt", "outside availability")
	}

	session := &models.Session{
		ID:              uuid.New(),
		UserID:          userID,
		MentorID:        mentorID,
		SessionType:     req.SessionType,
		ScheduledAt:     start,
		Duration:        req.Duration,
		MeetingType:     models.MeetingType(req.MeetingType),
		Status:          models.SessionStatusPending,
		RecordSession:   req.RecordSession,
		SpecialRequests: req.SpecialRequests,
	}
	if session.MeetingType == models.MeetingTypeVideo {
		session.MeetingLink = fmt.Sprintf("https://meet.prime-interviews.com/room/%s", uuid.New())
	}

	if err := s.sessions.CreateWithConflictCheck(ctx, session); err != nil {
		return nil, err
	}

	s.notifier.BookingCreated(user, mentor, session)

	return session, nil
}

// ListSessions returns the caller's sessions with mentor display data and
// aggregate stats.
func (s *BookingService) ListSessions(ctx context.Context, userID uuid.UUID, f dtos.SessionFilters) (*dtos.SessionListResponse, error) {
	rows, total, err := s.sessions.ListByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	stats, err := s.sessions.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]dtos.SessionWithMentor, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		sessions = append(sessions, dtos.SessionWithMentor{
			SessionResponse: dtos.NewSessionResponse(&row.Session),
			MentorName:      row.MentorName,
			MentorAvatar:    row.MentorAvatar,
			MentorCompany:   row.MentorCompany,
		})
	}

	return &dtos.SessionListResponse{
		Sessions:   sessions,
		Stats:      *stats,
		Pagination: dtos.NewPagination(f.Page, f.Limit, total),
	}, nil
}

// UpdateSession applies a status transition and/or feedback patch on
// behalf of the caller. Only the booking candidate, the session's mentor,
// or an admin may touch a session.
func (s *BookingService) UpdateSession(ctx context.Context, callerID uuid.UUID, callerRole models.UserRole, sessionID uuid.UUID, patch dtos.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	isCandidate := session.UserID == callerID
	isMentor := s.callerOwnsMentorSide(ctx, callerID, session.MentorID)
	isAdmin := callerRole == models.UserRoleAdmin
	if !isCandidate && !isMentor && !isAdmin {
		return nil, apperrors.ErrForbidden
	}

	if patch.Status != nil {
		to := models.SessionStatus(*patch.Status)
		if err := s.transition(ctx, session, to, patch, isMentor || isAdmin); err != nil {
			return nil, err
		}
	}

	if patch.Rating != nil || patch.Feedback != nil {
		if err := s.sessions.UpdateFeedback(ctx, session.ID, patch.Rating, patch.Feedback); err != nil {
			return nil, err
		}
	}

	return s.sessions.GetByID(ctx, sessionID)
}

// transition performs one edge of the state machine and its side effects.
func (s *BookingService) transition(ctx context.Context, session *models.Session, to models.SessionStatus, patch dtos.UpdateSessionRequest, callerMayConfirm bool) error {
	from := session.Status
	if from == to {
		// Re-asserting the current status is still an illegal transition:
		// no silent no-op.
		return &apperrors.InvalidStateTransitionError{From: string(from), To: string(to)}
	}
	if !models.CanTransition(from, to) {
		return &apperrors.InvalidStateTransitionError{From: string(from), To: string(to)}
	}
	if to == models.SessionStatusConfirmed && !callerMayConfirm {
		return apperrors.ErrForbidden
	}
	if to == models.SessionStatusCompleted && time.Now().Before(session.ScheduledAt) {
		return apperrors.Validation("status", "session has not started yet")
	}

	ok, err := s.sessions.UpdateStatus(ctx, session.ID, from, to, patch.CancellationReason)
	if err != nil {
		return err
	}
	if !ok {
		// A concurrent request moved the session first.
		current, err := s.sessions.GetByID(ctx, session.ID)
		if err != nil {
			return err
		}
		return &apperrors.InvalidStateTransitionError{From: string(current.Status), To: string(to)}
	}

	switch to {
	case models.SessionStatusConfirmed:
		s.notifier.SessionConfirmed(ctx, session)
		if session.MeetingType == models.MeetingTypeVideo {
			// Provider failure leaves the session confirmed without a
			// room; the caller retries ProvisionRoom, not the booking.
			if _, err := s.rooms.ProvisionRoom(ctx, session.ID); err != nil {
				log.Warn().Err(err).Str("session_id", session.ID.String()).Msg("room provisioning failed after confirm")
			}
		}
	case models.SessionStatusCancelled:
		s.rooms.EndActiveForSession(ctx, session.ID, "session_cancelled")
	case models.SessionStatusCompleted:
		s.rooms.EndActiveForSession(ctx, session.ID, "session_completed")
	}

	return nil
}

func (s *BookingService) callerOwnsMentorSide(ctx context.Context, callerID, mentorID uuid.UUID) bool {
	mentor, err := s.mentors.FindByUserID(ctx, callerID)
	if err != nil {
		return false
	}
	return mentor.ID == mentorID
}
