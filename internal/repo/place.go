package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/familytrip/tripboard/internal/domain"
)

// PlaceRepo defines the persistence operations for bookmarked Places.
type PlaceRepo interface {
	Create(ctx context.Context, p domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)

	// ListByTripID returns places ordered by city then name. Empty filter
	// fields match everything; the city match is case-insensitive.
	ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error)

	// Update overwrites the editable fields. visit_count is left alone.
	Update(ctx context.Context, p domain.Place) (domain.Place, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// IncrementVisits adds one to visit_count atomically and returns the new row.
	IncrementVisits(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)
}

type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, trip_id, name, city, category, rating, is_kid_friendly, notes,
	address, operating_hours, contact_phone, website_url, google_map_url, lat, lng, visit_count`

func (r *pgPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	const q = `
		INSERT INTO places (trip_id, name, city, category, rating, is_kid_friendly, notes,
			address, operating_hours, contact_phone, website_url, google_map_url, lat, lng)
		VALUES (@trip_id, @name, @city, @category, @rating, @is_kid_friendly, @notes,
			@address, @operating_hours, @contact_phone, @website_url, @google_map_url, @lat, @lng)
		RETURNING ` + placeColumns

	result, err := scanPlace(r.db.QueryRow(ctx, q, placeArgs(p)))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE id = @id AND trip_id = @trip_id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE trip_id = @trip_id
		  AND (@city::text = '' OR lower(city) = lower(@city::text))
		  AND (@category::text = '' OR category = @category::text)
		ORDER BY city, name`

	args := pgx.NamedArgs{
		"trip_id":  tripID,
		"city":     f.City,
		"category": string(f.Category),
	}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListByTripID: %w", err)
	}
	out, err := collect(rows, scanPlace)
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgPlaceRepo) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	const q = `
		UPDATE places
		SET name            = @name,
		    city            = @city,
		    category        = @category,
		    rating          = @rating,
		    is_kid_friendly = @is_kid_friendly,
		    notes           = @notes,
		    address         = @address,
		    operating_hours = @operating_hours,
		    contact_phone   = @contact_phone,
		    website_url     = @website_url,
		    google_map_url  = @google_map_url,
		    lat             = @lat,
		    lng             = @lng
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + placeColumns

	result, err := scanPlace(r.db.QueryRow(ctx, q, placeArgs(p)))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM places WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgPlaceRepo) IncrementVisits(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	const q = `
		UPDATE places
		SET visit_count = visit_count + 1
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + placeColumns

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.IncrementVisits: %w", err)
	}
	return result, nil
}

func placeArgs(p domain.Place) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":              p.ID,
		"trip_id":         p.TripID,
		"name":            p.Name,
		"city":            p.City,
		"category":        string(p.Category),
		"rating":          p.Rating,
		"is_kid_friendly": p.IsKidFriendly,
		"notes":           p.Notes,
		"address":         nullString(p.Address),
		"operating_hours": nullString(p.OperatingHours),
		"contact_phone":   nullString(p.ContactPhone),
		"website_url":     nullString(p.WebsiteURL),
		"google_map_url":  nullString(p.GoogleMapURL),
		"lat":             p.Lat,
		"lng":             p.Lng,
	}
}

func scanPlace(s scanner) (domain.Place, error) {
	var (
		p                                 domain.Place
		id, tripID                        pgtype.UUID
		category                          string
		rating, visits                    int32
		address, hours, phone, web, gmaps *string
	)
	err := s.Scan(&id, &tripID, &p.Name, &p.City, &category, &rating, &p.IsKidFriendly, &p.Notes,
		&address, &hours, &phone, &web, &gmaps, &p.Lat, &p.Lng, &visits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.Category = domain.PlaceCategory(category)
	p.Rating = int(rating)
	p.VisitCount = int(visits)
	p.Address = derefString(address)
	p.OperatingHours = derefString(hours)
	p.ContactPhone = derefString(phone)
	p.WebsiteURL = derefString(web)
	p.GoogleMapURL = derefString(gmaps)
	return p, nil
}
