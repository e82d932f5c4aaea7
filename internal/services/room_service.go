package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/clients"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	ws "github.com/kuldeep27396/prime-backend/internal/websocket"
)

// RoomService manages the 1:1 linkage between a confirmed session and its
// ephemeral provider room.
type RoomService struct {
	rooms    RoomStore
	sessions SessionStore
	provider clients.VideoProvider
	hub      *ws.Hub
}

func NewRoomService(rooms RoomStore, sessions SessionStore, provider clients.VideoProvider, hub *ws.Hub) *RoomService {
	return &RoomService{
		rooms:    rooms,
		sessions: sessions,
		provider: provider,
		hub:      hub,
	}
}

// ProvisionRoom mints a provider room for a confirmed session. The
// provider call runs outside any database transaction; the partial unique
// index catches a concurrent duplicate, in which case the freshly minted
// provider room is disabled best-effort.
func (s *RoomService) ProvisionRoom(ctx context.Context, sessionID uuid.UUID) (*models.VideoRoom, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusConfirmed {
		return nil, &apperrors.InvalidStateTransitionError{From: string(session.Status), To: "room provisioning"}
	}
	if _, err := s.rooms.GetActiveBySessionID(ctx, sessionID); err == nil {
		return nil, apperrors.ErrRoomActiveExists
	} else if !errors.Is(err, apperrors.ErrRoomNotFound) {
		return nil, err
	}

	provisioned, err := s.provider.CreateRoom(ctx, fmt.Sprintf("session-%s", sessionID))
	if err != nil {
		return nil, apperrors.External("video", err)
	}

	room := &models.VideoRoom{
		ID:               uuid.New(),
		SessionID:        sessionID,
		RoomID:           provisioned.RoomID,
		RoomURL:          provisioned.RoomURL,
		ParticipantToken: provisioned.ParticipantToken,
		MentorToken:      provisioned.MentorToken,
		Status:           models.RoomStatusActive,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, apperrors.ErrRoomActiveExists) {
			s.disableProviderRoom(provisioned.RoomID)
		}
		return nil, err
	}

	return room, nil
}

// EndRoom ends a room. Idempotent: ending an already-ended room is a
// no-op success and the stored terminal state is unchanged.
func (s *RoomService) EndRoom(ctx context.Context, roomID uuid.UUID, reason string) (*models.VideoRoom, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	ended, err := s.rooms.End(ctx, roomID, int(time.Since(room.CreatedAt).Minutes()))
	if err != nil {
		return nil, err
	}
	if ended {
		s.hub.CloseRoom(roomID, reason)
		s.disableProviderRoom(room.RoomID)
	}

	return s.rooms.GetByID(ctx, roomID)
}

// EndActiveForSession ends the session's active room if one exists.
// Called on cancellation and completion; a session without a room is fine.
func (s *RoomService) EndActiveForSession(ctx context.Context, sessionID uuid.UUID, reason string) {
	room, err := s.rooms.GetActiveBySessionID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRoomNotFound) {
			log.Error().Err(err).Str("session_id", sessionID.String()).Msg("looking up active room")
		}
		return
	}
	if _, err := s.EndRoom(ctx, room.ID, reason); err != nil {
		log.Error().Err(err).Str("room_id", room.ID.String()).Msg("ending room")
	}
}

// RoomStatusByID reports a room's stored state plus live presence from
// the hub.
func (s *RoomService) RoomStatusByID(ctx context.Context, id uuid.UUID) (*dtos.RoomStatusResponse, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	participants := make([]dtos.RoomParticipant, 0)
	for _, p := range s.hub.Participants(room.ID) {
		participants = append(participants, dtos.RoomParticipant{
			Name:     p.Name,
			Role:     p.Role,
			JoinedAt: p.JoinedAt,
		})
	}

	return &dtos.RoomStatusResponse{
		RoomID:       room.RoomID,
		Status:       string(room.Status),
		Participants: participants,
		RecordingURL: room.RecordingURL,
		Duration:     room.ActualDuration,
	}, nil
}

// SweepExpired ends active rooms whose session window elapsed more than
// grace ago. Invoked by the background worker; sessions themselves are
// never auto-expired.
func (s *RoomService) SweepExpired(ctx context.Context, grace time.Duration) int {
	stale, err := s.rooms.ListStaleActive(ctx, grace)
	if err != nil {
		log.Error().Err(err).Msg("listing stale rooms")
		return 0
	}

	swept := 0
	for _, room := range stale {
		if _, err := s.EndRoom(ctx, room.ID, "expired"); err != nil {
			log.Error().Err(err).Str("room_id", room.ID.String()).Msg("sweeping room")
			continue
		}
		swept++
	}
	return swept
}

// disableProviderRoom is fire-and-forget cleanup on the provider side.
func (s *RoomService) disableProviderRoom(providerRoomID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.provider.DisableRoom(ctx, providerRoomID); err != nil {
			log.Warn().Err(err).Str("room_id", providerRoomID).Msg("disabling provider room")
		}
	}()
}
