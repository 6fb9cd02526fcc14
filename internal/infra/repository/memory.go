package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/event"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

// MemoryStore keeps every collection in process maps. It backs local
// development and the test suites.
type MemoryStore struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	users      map[string]models.User
	userOrder  map[string]int64
	facilities map[string]models.Facility
	bookings   map[string]models.Booking
	order      map[string]int64
	requests   map[string]models.AuthenticationRequest
	events     []models.BarangayEvent
	audits     []models.AuditLog
}

var (
	_ account.Repository      = (*MemoryStore)(nil)
	_ facility.Repository     = (*MemoryStore)(nil)
	_ booking.Repository      = (*MemoryStore)(nil)
	_ verification.Repository = (*MemoryStore)(nil)
	_ event.Repository        = (*MemoryStore)(nil)
	_ audit.Store             = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:        time.Now,
		users:      map[string]models.User{},
		userOrder:  map[string]int64{},
		facilities: map[string]models.Facility{},
		bookings:   map[string]models.Booking{},
		order:      map[string]int64{},
		requests:   map[string]models.AuthenticationRequest{},
	}
}

func (s *MemoryStore) next() int64 {
	s.seq++
	return s.seq
}

// byNewest sorts ids by insertion order, newest first.
func (s *MemoryStore) byNewest(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] > s.order[ids[j]] })
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	s.userOrder[u.ID] = s.next()
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) UpdateUserProfile(_ context.Context, id string, patch account.ProfilePatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.ContactNumber != nil {
		u.ContactNumber = *patch.ContactNumber
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *MemoryStore) ListUsersByRole(_ context.Context, role string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.userOrder[out[i].ID] < s.userOrder[out[j].ID] })
	return out, nil
}

// --------------------------------------------------
// Facilities
// --------------------------------------------------

func (s *MemoryStore) CreateFacility(_ context.Context, f *models.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.facilities[f.ID]; ok {
		return domain.ErrDuplicate
	}
	now := s.now()
	f.CreatedAt, f.UpdatedAt = now, now
	s.facilities[f.ID] = *f
	return nil
}

func (s *MemoryStore) GetFacility(_ context.Context, id string) (*models.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.facilities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (s *MemoryStore) ListFacilities(_ context.Context, active *bool) ([]models.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Facility{}
	for _, f := range s.facilities {
		if active != nil && f.Active != *active {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) UpdateFacility(_ context.Context, f *models.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.facilities[f.ID]
	if !ok {
		return domain.ErrNotFound
	}
	f.CreatedAt = existing.CreatedAt
	f.UpdatedAt = s.now()
	s.facilities[f.ID] = *f
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *MemoryStore) CreateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; ok {
		return domain.ErrDuplicate
	}
	now := s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	s.bookings[b.ID] = *b
	s.order[b.ID] = s.next()
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *MemoryStore) listBookings(keep func(models.Booking) bool) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.bookings))
	for id, b := range s.bookings {
		if keep(b) {
			ids = append(ids, id)
		}
	}
	s.byNewest(ids)

	out := make([]models.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.bookings[id])
	}
	return out
}

func (s *MemoryStore) ListBookings(context.Context) ([]models.Booking, error) {
	return s.listBookings(func(models.Booking) bool { return true }), nil
}

func (s *MemoryStore) ListBookingsByUser(_ context.Context, userID string) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (s *MemoryStore) ListBookingsByEmail(_ context.Context, email string) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.UserEmail == email }), nil
}

func (s *MemoryStore) ListBookingsByStatus(_ context.Context, status booking.Status) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.Status == string(status) }), nil
}

func (s *MemoryStore) ListBookingsByFacility(_ context.Context, facilityID string) ([]models.Booking, error) {
	return s.listBookings(func(b models.Booking) bool { return b.FacilityID == facilityID }), nil
}

func (s *MemoryStore) TransitionBooking(_ context.Context, b *models.Booking, from booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != string(from) {
		return domain.ErrStale
	}
	stored.Status = b.Status
	stored.ApprovedBy = b.ApprovedBy
	stored.ApprovedAt = b.ApprovedAt
	stored.DecidedAt = b.DecidedAt
	stored.UpdatedAt = s.now()
	s.bookings[b.ID] = stored
	b.UpdatedAt = stored.UpdatedAt
	return nil
}

// --------------------------------------------------
// Authentication requests
// --------------------------------------------------

func (s *MemoryStore) CreateAuthRequest(_ context.Context, req *models.AuthenticationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[req.ID]; ok {
		return domain.ErrDuplicate
	}
	now := s.now()
	req.CreatedAt, req.UpdatedAt = now, now
	s.requests[req.ID] = *req
	s.order[req.ID] = s.next()
	return nil
}

func (s *MemoryStore) GetAuthRequest(_ context.Context, id string) (*models.AuthenticationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

func (s *MemoryStore) listRequests(keep func(models.AuthenticationRequest) bool) []models.AuthenticationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.requests))
	for id, r := range s.requests {
		if keep(r) {
			ids = append(ids, id)
		}
	}
	s.byNewest(ids)

	out := make([]models.AuthenticationRequest, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.requests[id])
	}
	return out
}

func (s *MemoryStore) ListAuthRequestsByStatus(_ context.Context, status verification.Status) ([]models.AuthenticationRequest, error) {
	return s.listRequests(func(r models.AuthenticationRequest) bool { return r.Status == string(status) }), nil
}

func (s *MemoryStore) ListUnsyncedApprovals(context.Context) ([]models.AuthenticationRequest, error) {
	return s.listRequests(func(r models.AuthenticationRequest) bool {
		return r.Status == string(verification.StatusApproved) && !r.UserSynced
	}), nil
}

func (s *MemoryStore) DecideAuthRequest(_ context.Context, req *models.AuthenticationRequest, from verification.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != string(from) {
		return domain.ErrStale
	}
	stored.Status = req.Status
	stored.ApprovedBy = req.ApprovedBy
	stored.ApprovedAt = req.ApprovedAt
	stored.UserSynced = req.UserSynced
	stored.UpdatedAt = s.now()
	s.requests[req.ID] = stored
	return nil
}

func (s *MemoryStore) ApplyUserVerification(_ context.Context, userID, verificationType string, discount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsAuthenticated = true
	u.VerificationType = verificationType
	u.Discount = discount
	u.UpdatedAt = s.now()
	s.users[userID] = u
	return nil
}

func (s *MemoryStore) MarkAuthRequestSynced(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.UserSynced = true
	req.UpdatedAt = s.now()
	s.requests[id] = req
	return nil
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (s *MemoryStore) CreateEvent(_ context.Context, ev *models.BarangayEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ev.CreatedAt, ev.UpdatedAt = now, now
	s.events = append(s.events, *ev)
	return nil
}

func (s *MemoryStore) ListEvents(context.Context) ([]models.BarangayEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.BarangayEvent, len(s.events))
	copy(out, s.events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EventDate < out[j].EventDate })
	return out, nil
}

// --------------------------------------------------
// Audit logs
// --------------------------------------------------

func (s *MemoryStore) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.CreatedAt = s.now()
	s.audits = append(s.audits, *entry)
	return nil
}

func (s *MemoryStore) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.AuditLog{}
	for i := len(s.audits) - 1; i >= 0; i-- {
		e := s.audits[i]
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && e.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	start := f.Offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return matched[start:end], total, nil
}
