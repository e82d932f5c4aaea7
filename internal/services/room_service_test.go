package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
	ws "github.com/kuldeep27396/prime-backend/internal/websocket"
)

type roomFixture struct {
	sessions *fakeSessionStore
	rooms    *fakeRoomStore
	provider *fakeVideoProvider
	svc      *RoomService
}

func newRoomFixture() *roomFixture {
	sessions := newFakeSessionStore()
	rooms := newFakeRoomStore()
	provider := &fakeVideoProvider{}
	return &roomFixture{
		sessions: sessions,
		rooms:    rooms,
		provider: provider,
		svc:      NewRoomService(rooms, sessions, provider, ws.NewHub()),
	}
}

func (fx *roomFixture) seedSession(status models.SessionStatus) *models.Session {
	session := &models.Session{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		MentorID:    uuid.New(),
		ScheduledAt: time.Now().Add(time.Hour),
		Duration:    60,
		MeetingType: models.MeetingTypeVideo,
		Status:      status,
	}
	fx.sessions.mu.Lock()
	fx.sessions.sessions[session.ID] = session
	fx.sessions.mu.Unlock()
	return session
}

func TestProvisionRoom(t *testing.T) {
	tests := []struct {
		name    string
		status  models.SessionStatus
		wantErr func(error) bool
	}{
		{name: "confirmed session gets a room", status: models.SessionStatusConfirmed},
		{name: "pending session rejected", status: models.SessionStatusPending, wantErr: isInvalidTransition},
		{name: "completed session rejected", status: models.SessionStatusCompleted, wantErr: isInvalidTransition},
		{name: "cancelled session rejected", status: models.SessionStatusCancelled, wantErr: isInvalidTransition},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fx := newRoomFixture()
			session := fx.seedSession(test.status)

			room, err := fx.svc.ProvisionRoom(context.Background(), session.ID)

			if test.wantErr == nil {
				if err != nil {
					t.Fatalf("ProvisionRoom() error = %v", err)
				}
				if room.Status != models.RoomStatusActive {
					t.Errorf("room status = %q, want active", room.Status)
				}
				if room.RoomID == "" || room.MentorToken == "" || room.ParticipantToken == "" {
					t.Error("room missing provider identifiers or tokens")
				}
				return
			}
			if err == nil || !test.wantErr(err) {
				t.Fatalf("ProvisionRoom() error = %v, want matching error", err)
			}
			if fx.provider.created != 0 {
				t.Errorf("provider rooms created = %d, want 0 when precondition fails", fx.provider.created)
			}
		})
	}
}

func TestProvisionRoom_SecondActiveRejected(t *testing.T) {
	fx := newRoomFixture()
	session := fx.seedSession(models.SessionStatusConfirmed)

	if _, err := fx.svc.ProvisionRoom(context.Background(), session.ID); err != nil {
		t.Fatalf("first ProvisionRoom() error = %v", err)
	}
	_, err := fx.svc.ProvisionRoom(context.Background(), session.ID)
	if !errors.Is(err, apperrors.ErrRoomActiveExists) {
		t.Fatalf("second ProvisionRoom() error = %v, want ErrRoomActiveExists", err)
	}
	if fx.provider.created != 1 {
		t.Errorf("provider rooms created = %d, want 1", fx.provider.created)
	}
}

func TestProvisionRoom_ProviderFailure(t *testing.T) {
	fx := newRoomFixture()
	fx.provider.createErr = errProviderDown
	session := fx.seedSession(models.SessionStatusConfirmed)

	_, err := fx.svc.ProvisionRoom(context.Background(), session.ID)

	var ese *apperrors.ExternalServiceError
	if !errors.As(err, &ese) {
		t.Fatalf("ProvisionRoom() error = %v, want ExternalServiceError", err)
	}
	if _, err := fx.rooms.GetActiveBySessionID(context.Background(), session.ID); !errors.Is(err, apperrors.ErrRoomNotFound) {
		t.Error("no room row should exist after provider failure")
	}
}

// After a provision succeeds it can be re-run following an end: the
// active-room constraint only covers live rooms.
func TestProvisionRoom_AfterEnd(t *testing.T) {
	fx := newRoomFixture()
	session := fx.seedSession(models.SessionStatusConfirmed)

	first, err := fx.svc.ProvisionRoom(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("first ProvisionRoom() error = %v", err)
	}
	if _, err := fx.svc.EndRoom(context.Background(), first.ID, "manual"); err != nil {
		t.Fatalf("EndRoom() error = %v", err)
	}

	second, err := fx.svc.ProvisionRoom(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("second ProvisionRoom() error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("second provision returned the ended room")
	}
}

func TestEndRoom_Idempotent(t *testing.T) {
	fx := newRoomFixture()
	session := fx.seedSession(models.SessionStatusConfirmed)

	room, err := fx.svc.ProvisionRoom(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("ProvisionRoom() error = %v", err)
	}

	first, err := fx.svc.EndRoom(context.Background(), room.ID, "manual")
	if err != nil {
		t.Fatalf("first EndRoom() error = %v", err)
	}
	if first.Status != models.RoomStatusEnded || first.EndedAt == nil {
		t.Fatalf("room not ended: %+v", first)
	}

	second, err := fx.svc.EndRoom(context.Background(), room.ID, "manual")
	if err != nil {
		t.Fatalf("second EndRoom() error = %v", err)
	}
	if !second.EndedAt.Equal(*first.EndedAt) {
		t.Error("second end mutated the terminal state")
	}
	if second.ActualDuration == nil || *second.ActualDuration != *first.ActualDuration {
		t.Error("second end mutated the recorded duration")
	}
}

func TestEndActiveForSession_NoRoomIsFine(t *testing.T) {
	fx := newRoomFixture()
	session := fx.seedSession(models.SessionStatusConfirmed)

	// Must not panic or error-log loudly; a session without a room is normal.
	fx.svc.EndActiveForSession(context.Background(), session.ID, "session_cancelled")
}
