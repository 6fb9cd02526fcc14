package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/event"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

const (
	colUsers        = "users"
	colFacilities   = "facilities"
	colBookings     = "bookings"
	colAuthRequests = "authenticationRequests"
	colEvents       = "barangayEvents"
	colAuditLogs    = "auditLogs"
)

// MongoStore maps every collection onto one MongoDB database. Writes are
// single-document; the approval dual write relies on reconciliation.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, now: time.Now}
}

func (r *MongoStore) col(name string) *mongo.Collection {
	return r.db.Collection(name)
}

// EnsureIndexes creates the indexes the queries rely on. It is idempotent.
func (r *MongoStore) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		colBookings: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "userEmail", Value: 1}}},
			{Keys: bson.D{{Key: "facilityId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		colAuthRequests: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "userSynced", Value: 1}}},
		},
		colEvents: {
			{Keys: bson.D{{Key: "eventDate", Value: 1}}},
		},
		colAuditLogs: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for name, idx := range specs {
		if _, err := r.col(name).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func mapMongoErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter any) (*T, error) {
	var v T
	if err := c.FindOne(ctx, filter).Decode(&v); err != nil {
		return nil, mapMongoErr(err)
	}
	return &v, nil
}

// casUpdate applies set to the document only while it is still in status from.
func (r *MongoStore) casUpdate(ctx context.Context, name, id, from string, set bson.M) error {
	set["updatedAt"] = r.now()
	res, err := r.col(name).UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col(name).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrStale
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.col(colUsers).InsertOne(ctx, u)
	return mapMongoErr(err)
}

func (r *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.col(colUsers), bson.M{"_id": id})
}

func (r *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.col(colUsers), bson.M{"email": email})
}

func (r *MongoStore) UpdateUserProfile(ctx context.Context, id string, patch account.ProfilePatch) (*models.User, error) {
	set := bson.M{"updatedAt": r.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ContactNumber != nil {
		set["contactNumber"] = *patch.ContactNumber
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := r.col(colUsers).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

func (r *MongoStore) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetProjection(bson.D{{Key: "password", Value: 0}})
	return findAll[models.User](ctx, r.col(colUsers), bson.M{"role": role}, opts)
}

// --------------------------------------------------
// Facilities
// --------------------------------------------------

func (r *MongoStore) CreateFacility(ctx context.Context, f *models.Facility) error {
	now := r.now()
	f.CreatedAt, f.UpdatedAt = now, now
	_, err := r.col(colFacilities).InsertOne(ctx, f)
	return mapMongoErr(err)
}

func (r *MongoStore) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	return findOne[models.Facility](ctx, r.col(colFacilities), bson.M{"_id": id})
}

func (r *MongoStore) ListFacilities(ctx context.Context, active *bool) ([]models.Facility, error) {
	filter := bson.M{}
	if active != nil {
		filter["active"] = *active
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Facility](ctx, r.col(colFacilities), filter, opts)
}

func (r *MongoStore) UpdateFacility(ctx context.Context, f *models.Facility) error {
	f.UpdatedAt = r.now()
	res, err := r.col(colFacilities).ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *MongoStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	now := r.now()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.col(colBookings).InsertOne(ctx, b)
	return mapMongoErr(err)
}

func (r *MongoStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return findOne[models.Booking](ctx, r.col(colBookings), bson.M{"_id": id})
}

func (r *MongoStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.col(colBookings), bson.M{}, newestFirst())
}

func (r *MongoStore) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.col(colBookings), bson.M{"userId": userID}, newestFirst())
}

func (r *MongoStore) ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.col(colBookings), bson.M{"userEmail": email}, newestFirst())
}

func (r *MongoStore) ListBookingsByStatus(ctx context.Context, status booking.Status) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.col(colBookings), bson.M{"status": string(status)}, newestFirst())
}

func (r *MongoStore) ListBookingsByFacility(ctx context.Context, facilityID string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.col(colBookings), bson.M{"facilityId": facilityID}, newestFirst())
}

func (r *MongoStore) TransitionBooking(ctx context.Context, b *models.Booking, from booking.Status) error {
	return r.casUpdate(ctx, colBookings, b.ID, string(from), bson.M{
		"status":     b.Status,
		"approvedBy": b.ApprovedBy,
		"approvedAt": b.ApprovedAt,
		"decidedAt":  b.DecidedAt,
	})
}

// --------------------------------------------------
// Authentication requests
// --------------------------------------------------

func (r *MongoStore) CreateAuthRequest(ctx context.Context, req *models.AuthenticationRequest) error {
	now := r.now()
	req.CreatedAt, req.UpdatedAt = now, now
	_, err := r.col(colAuthRequests).InsertOne(ctx, req)
	return mapMongoErr(err)
}

func (r *MongoStore) GetAuthRequest(ctx context.Context, id string) (*models.AuthenticationRequest, error) {
	return findOne[models.AuthenticationRequest](ctx, r.col(colAuthRequests), bson.M{"_id": id})
}

func (r *MongoStore) ListAuthRequestsByStatus(ctx context.Context, status verification.Status) ([]models.AuthenticationRequest, error) {
	return findAll[models.AuthenticationRequest](ctx, r.col(colAuthRequests), bson.M{"status": string(status)}, newestFirst())
}

func (r *MongoStore) ListUnsyncedApprovals(ctx context.Context) ([]models.AuthenticationRequest, error) {
	filter := bson.M{"status": string(verification.StatusApproved), "userSynced": false}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findAll[models.AuthenticationRequest](ctx, r.col(colAuthRequests), filter, opts)
}

func (r *MongoStore) DecideAuthRequest(ctx context.Context, req *models.AuthenticationRequest, from verification.Status) error {
	return r.casUpdate(ctx, colAuthRequests, req.ID, string(from), bson.M{
		"status":     req.Status,
		"approvedBy": req.ApprovedBy,
		"approvedAt": req.ApprovedAt,
		"userSynced": req.UserSynced,
	})
}

func (r *MongoStore) ApplyUserVerification(ctx context.Context, userID, verificationType string, discount float64) error {
	res, err := r.col(colUsers).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"isAuthenticated":  true,
			"verificationType": verificationType,
			"discount":         discount,
			"updatedAt":        r.now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoStore) MarkAuthRequestSynced(ctx context.Context, id string) error {
	res, err := r.col(colAuthRequests).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"userSynced": true, "updatedAt": r.now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (r *MongoStore) CreateEvent(ctx context.Context, ev *models.BarangayEvent) error {
	now := r.now()
	ev.CreatedAt, ev.UpdatedAt = now, now
	_, err := r.col(colEvents).InsertOne(ctx, ev)
	return mapMongoErr(err)
}

func (r *MongoStore) ListEvents(ctx context.Context) ([]models.BarangayEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "eventDate", Value: 1}, {Key: "createdAt", Value: 1}})
	return findAll[models.BarangayEvent](ctx, r.col(colEvents), bson.M{}, opts)
}

// --------------------------------------------------
// Audit logs
// --------------------------------------------------

func (r *MongoStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	entry.CreatedAt = r.now()
	_, err := r.col(colAuditLogs).InsertOne(ctx, entry)
	return err
}

func (r *MongoStore) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	filter := bson.M{}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	if f.From != nil || f.To != nil {
		created := bson.M{}
		if f.From != nil {
			created["$gte"] = *f.From
		}
		if f.To != nil {
			created["$lte"] = *f.To
		}
		filter["createdAt"] = created
	}

	total, err := r.col(colAuditLogs).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := newestFirst()
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit)).SetSkip(int64(f.Offset()))
	}
	logs, err := findAll[models.AuditLog](ctx, r.col(colAuditLogs), filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Compile-time checks
var (
	_ account.Repository      = (*MongoStore)(nil)
	_ facility.Repository     = (*MongoStore)(nil)
	_ booking.Repository      = (*MongoStore)(nil)
	_ verification.Repository = (*MongoStore)(nil)
	_ event.Repository        = (*MongoStore)(nil)
	_ audit.Store             = (*MongoStore)(nil)
)
