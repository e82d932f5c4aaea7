package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/clients"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
)

// In-memory fakes for the store interfaces. Guarded by a mutex so the
// concurrency tests exercise the same serialization the real repositories
// get from row locks.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailExists
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) PromoteToMentor(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = models.UserRoleMentor
	return nil
}

type fakeMentorStore struct {
	mu      sync.Mutex
	mentors map[uuid.UUID]*models.Mentor
}

func newFakeMentorStore() *fakeMentorStore {
	return &fakeMentorStore{mentors: make(map[uuid.UUID]*models.Mentor)}
}

func (f *fakeMentorStore) Create(_ context.Context, m *models.Mentor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.mentors {
		if existing.UserID == m.UserID {
			return apperrors.ErrProfileExists
		}
	}
	cp := *m
	f.mentors[m.ID] = &cp
	return nil
}

func (f *fakeMentorStore) FindByID(_ context.Context, id uuid.UUID) (*models.Mentor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.mentors[id]
	if !ok {
		return nil, apperrors.ErrMentorNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMentorStore) FindByUserID(_ context.Context, userID uuid.UUID) (*models.Mentor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.mentors {
		if m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, apperrors.ErrMentorNotFound
}

func (f *fakeMentorStore) List(_ context.Context, _ dtos.MentorFilters) ([]*models.Mentor, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Mentor, 0, len(f.mentors))
	for _, m := range f.mentors {
		cp := *m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeMentorStore) setRating(id uuid.UUID, rating float64, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.mentors[id]; ok {
		m.Rating = rating
		m.ReviewCount = count
	}
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*models.Session)}
}

// CreateWithConflictCheck mirrors the repository: the overlap scan and the
// insert happen under one lock, so concurrent callers serialize.
func (f *fakeSessionStore) CreateWithConflictCheck(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	end := session.EndsAt()
	for _, existing := range f.sessions {
		if existing.MentorID != session.MentorID {
			continue
		}
		if existing.Status != models.SessionStatusPending && existing.Status != models.SessionStatusConfirmed {
			continue
		}
		if existing.Overlaps(session.ScheduledAt, end) {
			return &apperrors.ConflictError{ConflictingSessionID: existing.ID}
		}
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to models.SessionStatus, cancellationReason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return false, apperrors.ErrSessionNotFound
	}
	if s.Status != from {
		return false, nil
	}
	s.Status = to
	if cancellationReason != nil {
		s.CancellationReason = cancellationReason
	}
	s.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeSessionStore) UpdateFeedback(_ context.Context, id uuid.UUID, rating *int, feedback *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if rating != nil {
		s.Rating = rating
	}
	if feedback != nil {
		s.Feedback = feedback
	}
	return nil
}

func (f *fakeSessionStore) ListByUser(_ context.Context, userID uuid.UUID, _ dtos.SessionFilters) ([]repositories.SessionWithMentorRow, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []repositories.SessionWithMentorRow
	for _, s := range f.sessions {
		if s.UserID == userID {
			rows = append(rows, repositories.SessionWithMentorRow{Session: *s})
		}
	}
	return rows, len(rows), nil
}

func (f *fakeSessionStore) UserStats(_ context.Context, userID uuid.UUID) (*dtos.SessionStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &dtos.SessionStats{}
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		stats.TotalSessions++
		if s.Status == models.SessionStatusCompleted {
			stats.CompletedSessions++
		}
	}
	return stats, nil
}

type fakeRoomStore struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*models.VideoRoom
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: make(map[uuid.UUID]*models.VideoRoom)}
}

func (f *fakeRoomStore) Create(_ context.Context, room *models.VideoRoom) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.SessionID == room.SessionID && r.Status == models.RoomStatusActive {
			return apperrors.ErrRoomActiveExists
		}
	}
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomStore) GetByID(_ context.Context, id uuid.UUID) (*models.VideoRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomStore) GetActiveBySessionID(_ context.Context, sessionID uuid.UUID) (*models.VideoRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rooms {
		if r.SessionID == sessionID && r.Status == models.RoomStatusActive {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperrors.ErrRoomNotFound
}

func (f *fakeRoomStore) End(_ context.Context, id uuid.UUID, actualDuration int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return false, apperrors.ErrRoomNotFound
	}
	if r.Status != models.RoomStatusActive {
		return false, nil
	}
	now := time.Now()
	r.Status = models.RoomStatusEnded
	r.EndedAt = &now
	r.ActualDuration = &actualDuration
	return true, nil
}

func (f *fakeRoomStore) ListStaleActive(_ context.Context, _ time.Duration) ([]*models.VideoRoom, error) {
	return nil, nil
}

type fakeReviewStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*models.Review
	mentors *fakeMentorStore
}

func newFakeReviewStore(mentors *fakeMentorStore) *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[uuid.UUID]*models.Review), mentors: mentors}
}

// CreateAndRecalculate mirrors the repository transaction: insert plus
// mentor aggregate recomputation as one atomic step. Private reviews
// count toward the aggregate.
func (f *fakeReviewStore) CreateAndRecalculate(_ context.Context, review *models.Review) (float64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.SessionID == review.SessionID && r.UserID == review.UserID {
			return 0, 0, apperrors.ErrReviewExists
		}
	}
	review.CreatedAt = time.Now()
	cp := *review
	f.reviews[review.ID] = &cp

	sum, count := 0, 0
	for _, r := range f.reviews {
		if r.MentorID == review.MentorID {
			sum += r.Rating
			count++
		}
	}
	rating := float64(int(float64(sum)/float64(count)*100+0.5)) / 100
	f.mentors.setRating(review.MentorID, rating, count)
	return rating, count, nil
}

func (f *fakeReviewStore) ListPublicByMentor(_ context.Context, mentorID uuid.UUID, _, _ int) ([]*models.Review, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Review
	for _, r := range f.reviews {
		if r.MentorID == mentorID && r.IsPublic {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

// fakeVideoProvider counts provider calls and can be told to fail.
type fakeVideoProvider struct {
	mu        sync.Mutex
	created   int
	disabled  []string
	createErr error
}

func (f *fakeVideoProvider) CreateRoom(_ context.Context, name string) (*clients.ProvisionedRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &clients.ProvisionedRoom{
		RoomID:           fmt.Sprintf("room-%s-%d", name, f.created),
		RoomURL:          "https://video.example.com/" + name,
		ParticipantToken: "participant-token",
		MentorToken:      "mentor-token",
	}, nil
}

func (f *fakeVideoProvider) DisableRoom(_ context.Context, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = append(f.disabled, roomID)
	return nil
}

func (f *fakeVideoProvider) disabledRooms() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.disabled...)
}

// fakeEmailSender records sends; never fails.
type fakeEmailSender struct {
	mu       sync.Mutex
	subjects []string
}

func (f *fakeEmailSender) Send(_ context.Context, _, _, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeEmailSender) IsConfigured() bool { return true }

// fakePaymentStore keys payments by provider order id.
type fakePaymentStore struct {
	mu         sync.Mutex
	byOrderID  map[string]*models.Payment
	setCalls   int
	setFailure error
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byOrderID: map[string]*models.Payment{}}
}

func (f *fakePaymentStore) Create(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byOrderID[p.OrderID]; ok {
		return fmt.Errorf("duplicate order %s", p.OrderID)
	}
	cp := *p
	f.byOrderID[p.OrderID] = &cp
	return nil
}

func (f *fakePaymentStore) GetByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byOrderID[orderID]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) SetStatus(_ context.Context, orderID string, status models.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setFailure != nil {
		return f.setFailure
	}
	p, ok := f.byOrderID[orderID]
	if !ok {
		return apperrors.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

var errProviderDown = errors.New("provider unavailable")
