package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/event"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

const pgUniqueViolation = "23505"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// mapErr converts driver errors into the domain sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return mapErr(r.db.WithContext(ctx).Create(u).Error)
}

func (r *GormStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *GormStore) UpdateUserProfile(
	ctx context.Context,
	id string,
	patch account.ProfilePatch,
) (*models.User, error) {

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.ContactNumber != nil {
		updates["contact_number"] = *patch.ContactNumber
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, mapErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}

	return r.GetUserByID(ctx, id)
}

func (r *GormStore) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Facilities
// --------------------------------------------------

func (r *GormStore) CreateFacility(ctx context.Context, f *models.Facility) error {
	return mapErr(r.db.WithContext(ctx).Create(f).Error)
}

func (r *GormStore) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	var f models.Facility
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

func (r *GormStore) ListFacilities(ctx context.Context, active *bool) ([]models.Facility, error) {
	q := r.db.WithContext(ctx).Model(&models.Facility{})
	if active != nil {
		q = q.Where("active = ?", *active)
	}

	var list []models.Facility
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormStore) UpdateFacility(ctx context.Context, f *models.Facility) error {
	return mapErr(r.db.WithContext(ctx).Save(f).Error)
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *GormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return mapErr(r.db.WithContext(ctx).Create(b).Error)
}

func (r *GormStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *GormStore) findBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if query != "" {
		q = q.Where(query, args...)
	}

	var list []models.Booking
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return r.findBookings(ctx, "")
}

func (r *GormStore) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.findBookings(ctx, "user_id = ?", userID)
}

func (r *GormStore) ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.findBookings(ctx, "user_email = ?", email)
}

func (r *GormStore) ListBookingsByStatus(ctx context.Context, status booking.Status) ([]models.Booking, error) {
	return r.findBookings(ctx, "status = ?", string(status))
}

func (r *GormStore) ListBookingsByFacility(ctx context.Context, facilityID string) ([]models.Booking, error) {
	return r.findBookings(ctx, "facility_id = ?", facilityID)
}

func (r *GormStore) TransitionBooking(ctx context.Context, b *models.Booking, from booking.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(from)).
		Updates(map[string]any{
			"status":      b.Status,
			"approved_by": b.ApprovedBy,
			"approved_at": b.ApprovedAt,
			"decided_at":  b.DecidedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOrStale(ctx, &models.Booking{}, b.ID)
	}
	return nil
}

// missingOrStale explains a conditional update that matched no row.
func (r *GormStore) missingOrStale(ctx context.Context, model any, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrStale
}

// --------------------------------------------------
// Authentication requests
// --------------------------------------------------

func (r *GormStore) CreateAuthRequest(ctx context.Context, req *models.AuthenticationRequest) error {
	return mapErr(r.db.WithContext(ctx).Create(req).Error)
}

func (r *GormStore) GetAuthRequest(ctx context.Context, id string) (*models.AuthenticationRequest, error) {
	var req models.AuthenticationRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, mapErr(err)
	}
	return &req, nil
}

func (r *GormStore) ListAuthRequestsByStatus(
	ctx context.Context,
	status verification.Status,
) ([]models.AuthenticationRequest, error) {

	var list []models.AuthenticationRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormStore) ListUnsyncedApprovals(ctx context.Context) ([]models.AuthenticationRequest, error) {
	var list []models.AuthenticationRequest
	if err := r.db.WithContext(ctx).
		Where("status = ? AND user_synced = ?", string(verification.StatusApproved), false).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormStore) DecideAuthRequest(
	ctx context.Context,
	req *models.AuthenticationRequest,
	from verification.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.AuthenticationRequest{}).
		Where("id = ? AND status = ?", req.ID, string(from)).
		Updates(map[string]any{
			"status":      req.Status,
			"approved_by": req.ApprovedBy,
			"approved_at": req.ApprovedAt,
			"user_synced": req.UserSynced,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOrStale(ctx, &models.AuthenticationRequest{}, req.ID)
	}
	return nil
}

func (r *GormStore) ApplyUserVerification(
	ctx context.Context,
	userID string,
	verificationType string,
	discount float64,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"is_authenticated":  true,
			"verification_type": verificationType,
			"discount":          discount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormStore) MarkAuthRequestSynced(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.AuthenticationRequest{}).
		Where("id = ?", id).
		Update("user_synced", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// WithinTransaction runs fn against a store bound to one database transaction.
func (r *GormStore) WithinTransaction(ctx context.Context, fn func(repo verification.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (r *GormStore) CreateEvent(ctx context.Context, ev *models.BarangayEvent) error {
	return mapErr(r.db.WithContext(ctx).Create(ev).Error)
}

func (r *GormStore) ListEvents(ctx context.Context) ([]models.BarangayEvent, error) {
	var list []models.BarangayEvent
	if err := r.db.WithContext(ctx).
		Order("event_date ASC").
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Audit logs
// --------------------------------------------------

func (r *GormStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormStore) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset())
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Compile-time checks
var (
	_ account.Repository      = (*GormStore)(nil)
	_ facility.Repository     = (*GormStore)(nil)
	_ booking.Repository      = (*GormStore)(nil)
	_ verification.Repository = (*GormStore)(nil)
	_ verification.Transactor = (*GormStore)(nil)
	_ event.Repository        = (*GormStore)(nil)
	_ audit.Store             = (*GormStore)(nil)
)
