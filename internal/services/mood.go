package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/syncqueue"
)

// MoodService manages mood checkins. Unlike the other entities, mood
// mutations reach the server through the offline queue: every create, update
// and delete is also appended to the durable queue for a later drain.
type MoodService struct {
	checkins *collection[int64, *models.MoodCheckin]
	queue    *syncqueue.Queue
	log      logging.Logger
	now      func() time.Time
}

func NewMoodService(store *kvstore.Store, queue *syncqueue.Queue, log logging.Logger) *MoodService {
	return &MoodService{
		checkins: newCollection[int64, *models.MoodCheckin](store, common.KeyMoodCheckins, log, common.NewNumericID),
		queue:    queue,
		log:      log.With("service", "mood"),
		now:      time.Now,
	}
}

func (s *MoodService) List(ctx context.Context) []*models.MoodCheckin {
	return s.checkins.List(ctx)
}

func (s *MoodService) GetByID(ctx context.Context, id int64) *models.MoodCheckin {
	return s.checkins.GetByID(ctx, id)
}

// Create validates the checkin before any write is attempted: a mood level
// must be present and at least one emotion named.
func (s *MoodService) Create(ctx context.Context, level int, emotions []string, note string) (*models.MoodCheckin, error) {
	if level == 0 {
		return nil, fmt.Errorf("mood_level is required: %w", common.ErrValidation)
	}
	if len(emotions) == 0 {
		return nil, fmt.Errorf("emotions must not be empty: %w", common.ErrValidation)
	}

	rec, err := s.checkins.Create(ctx, &models.MoodCheckin{MoodLevel: level, Emotions: emotions, Note: note})
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.Enqueue(ctx, models.ChangeCreate, rec); err != nil {
		return nil, fmt.Errorf("queueing checkin for sync: %w", err)
	}
	return rec, nil
}

func (s *MoodService) Update(ctx context.Context, id int64, level int, emotions []string, note string) (*models.MoodCheckin, error) {
	rec, err := s.checkins.Update(ctx, id, func(m *models.MoodCheckin) {
		m.MoodLevel = level
		m.Emotions = emotions
		m.Note = note
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.Enqueue(ctx, models.ChangeUpdate, rec); err != nil {
		return nil, fmt.Errorf("queueing checkin update for sync: %w", err)
	}
	return rec, nil
}

func (s *MoodService) Delete(ctx context.Context, id int64) error {
	if err := s.checkins.Delete(ctx, id); err != nil {
		return err
	}
	payload := map[string]int64{"local_id": id}
	if _, err := s.queue.Enqueue(ctx, models.ChangeDelete, payload); err != nil {
		return fmt.Errorf("queueing checkin deletion for sync: %w", err)
	}
	return nil
}

func (s *MoodService) ListForSync(ctx context.Context) []*models.MoodCheckin {
	return s.checkins.ListForSync(ctx)
}

func (s *MoodService) MarkSynced(ctx context.Context, localIDs []int64, serverIDs map[int64]int64) error {
	return s.checkins.MarkSynced(ctx, localIDs, serverIDs)
}

// ByDays returns checkins created within the last n days, with the lower
// bound at local midnight n days ago (inclusive).
func (s *MoodService) ByDays(ctx context.Context, n int) []*models.MoodCheckin {
	now := s.now()
	y, m, d := now.AddDate(0, 0, -n).Date()
	lower := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	var result []*models.MoodCheckin
	for _, rec := range s.checkins.List(ctx) {
		if !rec.CreatedAt.Before(lower) {
			result = append(result, rec)
		}
	}
	return result
}

// ByDaysRange returns checkins in the half-open window
// [now-endDays, now-startDays): inclusive at the older bound, exclusive at
// the newer one. Used for current-period vs prior-period comparisons, e.g.
// ByDaysRange(0, 7) against ByDaysRange(7, 14).
func (s *MoodService) ByDaysRange(ctx context.Context, startDays, endDays int) []*models.MoodCheckin {
	now := s.now()
	lower := now.AddDate(0, 0, -endDays)
	upper := now.AddDate(0, 0, -startDays)

	var result []*models.MoodCheckin
	for _, rec := range s.checkins.List(ctx) {
		if !rec.CreatedAt.Before(lower) && rec.CreatedAt.Before(upper) {
			result = append(result, rec)
		}
	}
	return result
}
