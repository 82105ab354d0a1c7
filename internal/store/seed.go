package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Seed creates the default admin and the sample portfolio. It is safe to run
// on every start; existing rows are left untouched.
func Seed(ctx context.Context, q *Queries) error {
	if err := seedAdmin(ctx, q); err != nil {
		return err
	}
	return seedProjects(ctx, q)
}

func seedAdmin(ctx context.Context, q *Queries) error {
	_, err := q.GetAdminUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.DebugContext(ctx, "admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	created, err := q.CreateAdminUserIfAbsent(ctx, CreateAdminUserParams{
		Username:     DefaultAdminUsername,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if created {
		slog.WarnContext(ctx, "created default admin user, change the password",
			"username", DefaultAdminUsername,
			"password", DefaultAdminPassword,
		)
	}
	return nil
}

func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func status(s model.ProjectStatus) sql.NullString {
	return text(string(s))
}

func count(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: true}
}

func day(year int, month time.Month, d int) sql.NullTime {
	return sql.NullTime{Time: time.Date(year, month, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func amount(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

// SampleProjects is the portfolio shipped with a fresh install.
var SampleProjects = []SeedProjectParams{
	{ID: 1, CreateProjectParams: CreateProjectParams{ProjectParams: ProjectParams{
		Title:          text("Skyline Apartments"),
		Description:    text("Luxury residential complex with modern amenities and stunning city views."),
		Location:       text("Chennai, Tamil Nadu"),
		Status:         status(model.ProjectStatusCompleted),
		Category:       text("Residential"),
		ImageURL:       text("completed.jpg"),
		Area:           text("1200-2500 sq ft"),
		Bedrooms:       count(3),
		Bathrooms:      count(2),
		Price:          amount(8500000),
		CompletionDate: day(2023, time.December, 15),
	}}},
	{ID: 2, CreateProjectParams: CreateProjectParams{ProjectParams: ProjectParams{
		Title:          text("Industrial Complex X"),
		Description:    text("State-of-the-art industrial facility with advanced manufacturing capabilities."),
		Location:       text("Coimbatore, Tamil Nadu"),
		Status:         status(model.ProjectStatusOngoing),
		Category:       text("Industrial"),
		ImageURL:       text("ongoing.jpg"),
		Area:           text("50000 sq ft"),
		Price:          amount(125000000),
		CompletionDate: day(2024, time.August, 30),
	}}},
	{ID: 3, CreateProjectParams: CreateProjectParams{ProjectParams: ProjectParams{
		Title:          text("Blue Horizon Villas"),
		Description:    text("Premium villa community with private gardens and exclusive amenities."),
		Location:       text("Madurai, Tamil Nadu"),
		Status:         status(model.ProjectStatusUpcoming),
		Category:       text("Residential"),
		ImageURL:       text("upcoming.jpg"),
		Area:           text("3000-4500 sq ft"),
		Bedrooms:       count(4),
		Bathrooms:      count(3),
		Price:          amount(15000000),
		CompletionDate: day(2025, time.June, 15),
	}}},
	{ID: 4, CreateProjectParams: CreateProjectParams{ProjectParams: ProjectParams{
		Title:          text("City Center Plaza"),
		Description:    text("Modern commercial complex in the heart of the business district."),
		Location:       text("Bangalore, Karnataka"),
		Status:         status(model.ProjectStatusCompleted),
		Category:       text("Commercial"),
		ImageURL:       text("portfolio-1.jpg"),
		Area:           text("25000 sq ft"),
		Price:          amount(75000000),
		CompletionDate: day(2023, time.September, 20),
	}}},
	{ID: 5, CreateProjectParams: CreateProjectParams{ProjectParams: ProjectParams{
		Title:          text("Emerald Heights"),
		Description:    text("Eco-friendly residential towers with sustainable design features."),
		Location:       text("Kochi, Kerala"),
		Status:         status(model.ProjectStatusOngoing),
		Category:       text("Residential"),
		ImageURL:       text("portfolio-2.jpg"),
		Area:           text("1500-3000 sq ft"),
		Bedrooms:       count(2),
		Bathrooms:      count(2),
		Price:          amount(12000000),
		CompletionDate: day(2024, time.December, 10),
	}}},
	{ID: 6, CreateProjectParams: CreateProjectParams{ProjectParams: ProjectParams{
		Title:          text("Modern Office Hub"),
		Description:    text("Contemporary office spaces with cutting-edge technology infrastructure."),
		Location:       text("Pune, Maharashtra"),
		Status:         status(model.ProjectStatusCompleted),
		Category:       text("Commercial"),
		ImageURL:       text("portfolio-3.jpg"),
		Area:           text("15000 sq ft"),
		Price:          amount(45000000),
		CompletionDate: day(2023, time.November, 5),
	}}},
}

func seedProjects(ctx context.Context, q *Queries) error {
	now := time.Now().UTC()
	inserted := 0
	for _, p := range SampleProjects {
		p.CreatedAt = now
		p.UpdatedAt = now
		ok, err := q.CreateProjectIfAbsent(ctx, p)
		if err != nil {
			return fmt.Errorf("seeding project %d: %w", p.ID, err)
		}
		if ok {
			inserted++
		}
	}
	if inserted > 0 {
		slog.InfoContext(ctx, "seeded sample projects", "count", inserted)
	}
	return nil
}
