package attraction

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"backend-sparrow/internal/db"
	"backend-sparrow/internal/shared/geo"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = time.Minute

var ErrTagOnAttraction = errors.New("tag is already on this attraction")

// RatingFilter returns the subset of an attraction's ratings visible to
// the given viewer. It is an injected query collaborator so that the
// visibility policy stays out of this layer.
type RatingFilter func(ctx context.Context, q db.Querier, attractionID, viewerID string) ([]RatingView, error)

// DefaultRatingFilter scopes nothing beyond the attraction itself.
func DefaultRatingFilter(ctx context.Context, q db.Querier, attractionID, _ string) ([]RatingView, error) {
	rows, err := q.Query(ctx, `
		SELECT r.rating, r.comment, u.username
		FROM ratings r
		JOIN users u ON u.id = r.member_id
		WHERE r.attraction_id=$1
		ORDER BY r.created_at DESC
	`, attractionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []RatingView
	for rows.Next() {
		var rv RatingView
		if err := rows.Scan(&rv.Rating, &rv.Comment, &rv.Username); err != nil {
			return nil, err
		}
		ratings = append(ratings, rv)
	}
	return ratings, nil
}

type Service struct {
	db     db.Querier
	cache  *redis.Client
	filter RatingFilter
}

func NewService(db db.Querier, cache *redis.Client, filter RatingFilter) *Service {
	if filter == nil {
		filter = DefaultRatingFilter
	}
	return &Service{db: db, cache: cache, filter: filter}
}

func (s *Service) CreateAttraction(ctx context.Context, input Attraction) (Attraction, error) {
	input.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO attractions (id, name, general_description, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5)
	`, input.ID, input.Name, input.GeneralDescription, input.Latitude, input.Longitude)
	if err != nil {
		return Attraction{}, err
	}
	return input, nil
}

// ListNearby keeps only attractions within radiusKm of the given point,
// sorted nearest first.
func (s *Service) ListNearby(ctx context.Context, lat, lon, radiusKm float64) ([]Attraction, error) {
	attractions, err := s.ListAttractions(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []Attraction
	for _, a := range attractions {
		if geo.HaversineKm(lat, lon, a.Latitude, a.Longitude) <= radiusKm {
			nearby = append(nearby, a)
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return geo.HaversineKm(lat, lon, nearby[i].Latitude, nearby[i].Longitude) <
			geo.HaversineKm(lat, lon, nearby[j].Latitude, nearby[j].Longitude)
	})
	return nearby, nil
}

func (s *Service) ListAttractions(ctx context.Context) ([]Attraction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, general_description, latitude, longitude
		FROM attractions ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attractions []Attraction
	for rows.Next() {
		var a Attraction
		if err := rows.Scan(&a.ID, &a.Name, &a.GeneralDescription, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		attractions = append(attractions, a)
	}
	return attractions, nil
}

// GetAttraction assembles the large projection. The viewer-independent
// part (base fields, images, tags) is served read-through from redis;
// the filtered ratings are always fetched live for the viewer.
func (s *Service) GetAttraction(ctx context.Context, id, viewerID string) (LargeAttraction, error) {
	la, ok := s.cachedProjection(ctx, id)
	if !ok {
		var err error
		la, err = s.loadProjection(ctx, id)
		if err != nil {
			return LargeAttraction{}, err
		}
		s.storeProjection(ctx, la)
	}

	ratings, err := s.filter(ctx, s.db, id, viewerID)
	if err != nil {
		return LargeAttraction{}, err
	}
	la.Ratings = ratings
	return la, nil
}

func (s *Service) UpdateAttraction(ctx context.Context, id string, patch Attraction) (Attraction, error) {
	var a Attraction
	err := s.db.QueryRow(ctx, `
		SELECT id, name, general_description, latitude, longitude
		FROM attractions WHERE id=$1
	`, id).Scan(&a.ID, &a.Name, &a.GeneralDescription, &a.Latitude, &a.Longitude)
	if err != nil {
		return Attraction{}, err
	}

	if patch.Name != "" {
		a.Name = patch.Name
	}
	if patch.GeneralDescription != "" {
		a.GeneralDescription = patch.GeneralDescription
	}
	if patch.Latitude != 0 {
		a.Latitude = patch.Latitude
	}
	if patch.Longitude != 0 {
		a.Longitude = patch.Longitude
	}

	_, err = s.db.Exec(ctx, `
		UPDATE attractions
		SET name=$2, general_description=$3, latitude=$4, longitude=$5
		WHERE id=$1
	`, a.ID, a.Name, a.GeneralDescription, a.Latitude, a.Longitude)
	if err != nil {
		return Attraction{}, err
	}
	s.invalidate(ctx, id)
	return a, nil
}

func (s *Service) DeleteAttraction(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM attractions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) AddTag(ctx context.Context, attractionID, tagName string) (Tag, error) {
	tag := Tag{Name: tagName}
	err := s.db.QueryRow(ctx, `
		INSERT INTO tags (id, name) VALUES ($1,$2)
		ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, uuid.NewString(), tagName).Scan(&tag.ID)
	if err != nil {
		return Tag{}, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO attraction_tags (attraction_id, tag_id)
		VALUES ($1,$2)
	`, attractionID, tag.ID)
	if err != nil {
		if db.UniqueViolation(err) {
			return Tag{}, ErrTagOnAttraction
		}
		return Tag{}, err
	}
	s.invalidate(ctx, attractionID)
	return tag, nil
}

func (s *Service) RemoveTag(ctx context.Context, attractionID, tagID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM attraction_tags WHERE attraction_id=$1 AND tag_id=$2
	`, attractionID, tagID)
	if err != nil {
		return err
	}
	s.invalidate(ctx, attractionID)
	return nil
}

func (s *Service) AddImage(ctx context.Context, attractionID, path string, takenAt time.Time) (Image, error) {
	img := Image{
		ID:      uuid.NewString(),
		Path:    path,
		TakenAt: takenAt,
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO images (id, image_path, attraction_id, taken_at)
		VALUES ($1,$2,$3,$4)
	`, img.ID, img.Path, attractionID, img.TakenAt)
	if err != nil {
		return Image{}, err
	}
	s.invalidate(ctx, attractionID)
	return img, nil
}

func (s *Service) loadProjection(ctx context.Context, id string) (LargeAttraction, error) {
	var la LargeAttraction
	err := s.db.QueryRow(ctx, `
		SELECT id, name, general_description, latitude, longitude
		FROM attractions WHERE id=$1
	`, id).Scan(&la.ID, &la.Name, &la.GeneralDescription, &la.Latitude, &la.Longitude)
	if err != nil {
		return LargeAttraction{}, err
	}

	imgRows, err := s.db.Query(ctx, `
		SELECT id, image_path, taken_at
		FROM images WHERE attraction_id=$1
		ORDER BY taken_at DESC
	`, id)
	if err != nil {
		return LargeAttraction{}, err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img Image
		if err := imgRows.Scan(&img.ID, &img.Path, &img.TakenAt); err != nil {
			return LargeAttraction{}, err
		}
		la.Images = append(la.Images, img)
	}

	tagRows, err := s.db.Query(ctx, `
		SELECT t.id, t.name
		FROM attraction_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.attraction_id=$1
		ORDER BY t.name
	`, id)
	if err != nil {
		return LargeAttraction{}, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tag Tag
		if err := tagRows.Scan(&tag.ID, &tag.Name); err != nil {
			return LargeAttraction{}, err
		}
		la.Tags = append(la.Tags, tag)
	}

	return la, nil
}

func cacheKey(id string) string {
	return "attraction:large:" + id
}

func (s *Service) cachedProjection(ctx context.Context, id string) (LargeAttraction, bool) {
	if s.cache == nil {
		return LargeAttraction{}, false
	}
	payload, err := s.cache.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return LargeAttraction{}, false
	}
	var la LargeAttraction
	if err := json.Unmarshal(payload, &la); err != nil {
		return LargeAttraction{}, false
	}
	return la, true
}

func (s *Service) storeProjection(ctx context.Context, la LargeAttraction) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(la)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, cacheKey(la.ID), payload, cacheTTL).Err()
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKey(id)).Err()
}
