// Command seed provisions a development database: one superadmin account, a
// demo minister and 30 days of hourly morning slots (Saturdays skipped, the
// weekly off day in Nepal).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ministry-booking-api/internal/models"
	"github.com/noah-isme/ministry-booking-api/internal/repository"
	"github.com/noah-isme/ministry-booking-api/internal/service"
	"github.com/noah-isme/ministry-booking-api/pkg/config"
	"github.com/noah-isme/ministry-booking-api/pkg/database"
)

func main() {
	var (
		adminEmail    = flag.String("admin-email", "admin@portal.gov.np", "superadmin email")
		adminPassword = flag.String("admin-password", "changeme123", "superadmin password")
		days          = flag.Int("days", 30, "number of days of slots to generate")
		startHour     = flag.Int("start-hour", 10, "first slot hour")
		endHour       = flag.Int("end-hour", 12, "hour after the last slot")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	ministerRepo := repository.NewMinisterRepository(db)
	slotRepo := repository.NewSlotRepository(db)

	if _, err := userRepo.FindByEmail(ctx, *adminEmail); err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		user := &models.User{
			Email:        *adminEmail,
			PasswordHash: string(hash),
			FullName:     "Portal Administrator",
			Role:         models.RoleSuperAdmin,
			Active:       true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to create superadmin: %v", err)
		}
		fmt.Printf("created superadmin %s\n", *adminEmail)
	} else {
		fmt.Printf("superadmin %s already exists\n", *adminEmail)
	}

	minister := &models.Minister{
		Name:         "Hon. Ram Bahadur Thapa",
		Portfolio:    "Minister of Home Affairs",
		MinistryName: "Ministry of Home Affairs",
		Description:  "Receives citizen appointments on administrative matters.",
		Active:       true,
	}
	ministers, _, err := ministerRepo.List(ctx, models.MinisterFilter{Search: minister.Name, PageSize: 1})
	if err != nil {
		log.Fatalf("failed to check ministers: %v", err)
	}
	if len(ministers) > 0 {
		minister = &ministers[0]
		fmt.Printf("minister %q already exists (id %d)\n", minister.Name, minister.ID)
	} else {
		if err := ministerRepo.Create(ctx, minister); err != nil {
			log.Fatalf("failed to create minister: %v", err)
		}
		fmt.Printf("created minister %q (id %d)\n", minister.Name, minister.ID)
	}

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, *days-1)

	saturday := int(time.Saturday)
	slots := service.GenerateHourlySlots(minister.ID, from, to, *startHour, *endHour, &saturday)
	created, err := slotRepo.BulkInsert(ctx, slots)
	if err != nil {
		log.Fatalf("failed to insert slots: %v", err)
	}
	fmt.Printf("created %d slots between %s and %s\n", created, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
