package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/auth"
	"github.com/yelo29/barangayreservetest-1/internal/config"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	domainbooking "github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/infra/repository"
	"github.com/yelo29/barangayreservetest-1/internal/logger"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/timezone"
)

var facilities = []models.Facility{
	{Name: "Basketball Court", Icon: "sports_basketball", Rate: 50, Downpayment: 25, Capacity: 20,
		Description: "Full-size basketball court with proper lighting", Amenities: "Basketball hoops, lighting, benches"},
	{Name: "Multi-Purpose Hall", Icon: "event_seat", Rate: 100, Downpayment: 50, Capacity: 100,
		Description: "Spacious hall for events and meetings", Amenities: "Tables, chairs, sound system, air conditioning"},
	{Name: "Covered Court", Icon: "sports_volleyball", Rate: 75, Downpayment: 35, Capacity: 50,
		Description: "Covered court for various sports activities", Amenities: "Volleyball net, badminton setup, lighting"},
	{Name: "Meeting Room", Icon: "meeting_room", Rate: 30, Downpayment: 15, Capacity: 15,
		Description: "Air-conditioned meeting room with projector", Amenities: "Projector, whiteboard, air conditioning, tables"},
	{Name: "Community Garden", Icon: "park", Rate: 20, Downpayment: 10, Capacity: 30,
		Description: "Open garden space for community events", Amenities: "Garden benches, shaded areas, water access"},
}

func main() {
	officialEmail := flag.String("official-email", "captain@barangay.local", "email of the seeded official")
	officialPassword := flag.String("official-password", "", "password of the seeded official (required)")
	samples := flag.Bool("samples", false, "also seed residents, bookings and verification requests")
	flag.Parse()

	if *officialPassword == "" {
		fmt.Fprintln(os.Stderr, "-official-password is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log, err := logger.Init(logger.Config{Level: cfg.LogLevel, Dev: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("seeding the memory store has no effect; set DB_DRIVER")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	opened, err := repository.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer opened.Close()

	s := &seeder{store: opened.Store, hasher: auth.BcryptHasher{}, log: log}

	if err := s.facilities(ctx); err != nil {
		log.Fatal("seed facilities", zap.Error(err))
	}

	official, err := s.user(ctx, "Barangay Captain", *officialEmail, *officialPassword, account.RoleOfficial)
	if err != nil {
		log.Fatal("seed official", zap.Error(err))
	}

	if *samples {
		if err := s.samples(ctx, official, cfg); err != nil {
			log.Fatal("seed samples", zap.Error(err))
		}
	}

	log.Info("seed complete")
}

type seeder struct {
	store  repository.Store
	hasher auth.PasswordHasher
	log    *zap.Logger
}

func (s *seeder) facilities(ctx context.Context) error {
	existing, err := s.store.ListFacilities(ctx, nil)
	if err != nil {
		return err
	}
	have := map[string]bool{}
	for _, f := range existing {
		have[f.Name] = true
	}

	for _, f := range facilities {
		if have[f.Name] {
			continue
		}
		f.ID = idgen.NewID()
		f.Active = true
		if err := s.store.CreateFacility(ctx, &f); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		s.log.Info("facility created", zap.String("name", f.Name), zap.String("icon", f.Icon))
	}
	return nil
}

// user returns the existing account for email or creates it.
func (s *seeder) user(ctx context.Context, name, email, password, role string) (*models.User, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u = &models.User{
		ID:               idgen.NewID(),
		Name:             name,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		VerificationType: account.VerificationUnverified,
	}
	if role == account.RoleOfficial {
		u.IsAuthenticated = true
		u.VerificationType = account.VerificationOfficial
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.String("email", email), zap.String("role", role))
	return u, nil
}

func (s *seeder) samples(ctx context.Context, official *models.User, cfg *config.Config) error {
	list, err := s.store.ListFacilities(ctx, nil)
	if err != nil || len(list) == 0 {
		return fmt.Errorf("no facilities to book: %v", err)
	}
	hall := list[0]

	resident, err := s.user(ctx, "Juan Dela Cruz", "juan@example.com", "resident123", account.RoleResident)
	if err != nil {
		return err
	}
	applicant, err := s.user(ctx, "Maria Santos", "maria@example.com", "resident123", account.RoleResident)
	if err != nil {
		return err
	}

	policy := verification.DiscountPolicy{Resident: cfg.DiscountResident, NonResident: cfg.DiscountNonResident}
	discount := policy.DiscountFor(verification.TypeResident)
	if err := s.store.ApplyUserVerification(ctx, resident.ID, verification.TypeResident, discount); err != nil {
		return err
	}

	// Stored dates come in both shapes.
	refs := idgen.NewReferences(cfg.SnowflakeNode)
	today := timezone.NowIn(cfg.Timezone)
	dates := []string{
		today.AddDate(0, 0, 3).Format(timezone.ISODate),
		today.AddDate(0, 0, 5).Format("January 2, 2006"),
	}
	quote := domainbooking.QuoteFor(&hall, discount)
	for i, date := range dates {
		b := &models.Booking{
			ID:            idgen.NewID(),
			Reference:     refs.Booking(),
			FacilityID:    hall.ID,
			FacilityName:  hall.Name,
			UserID:        resident.ID,
			UserEmail:     resident.Email,
			UserName:      resident.Name,
			BookingDate:   date,
			TimeSlot:      domainbooking.DefaultTimeSlots[i%len(domainbooking.DefaultTimeSlots)],
			Purpose:       "Community meeting",
			TotalPrice:    quote.TotalPrice,
			Downpayment:   quote.Downpayment,
			DiscountRate:  quote.DiscountRate,
			Status:        string(domainbooking.StatusPending),
			PaymentStatus: domainbooking.PaymentPending,
		}
		if err := s.store.CreateBooking(ctx, b); err != nil {
			return err
		}
	}

	req := &models.AuthenticationRequest{
		ID:               idgen.NewID(),
		UserID:           applicant.ID,
		Name:             applicant.Name,
		Email:            applicant.Email,
		Address:          "Purok 3",
		VerificationType: verification.TypeNonResident,
		Status:           string(verification.StatusPending),
		UserSynced:       true,
	}
	if err := s.store.CreateAuthRequest(ctx, req); err != nil {
		return err
	}

	s.log.Info("samples created",
		zap.String("official", official.Email),
		zap.Int("bookings", len(dates)),
	)
	return nil
}
