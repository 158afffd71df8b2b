package services

import (
	"context"

	"github.com/dmitrijs2005/daybook/internal/apiclient"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// StartDayService manages morning planning entries.
type StartDayService struct {
	entries *collection[int64, *models.StartDayEntry]
	api     apiclient.Client
	log     logging.Logger
}

func NewStartDayService(store *kvstore.Store, api apiclient.Client, log logging.Logger) *StartDayService {
	return &StartDayService{
		entries: newCollection[int64, *models.StartDayEntry](store, common.KeyStartDayEntries, log, common.NewNumericID),
		api:     api,
		log:     log.With("service", "startday"),
	}
}

func (s *StartDayService) List(ctx context.Context) []*models.StartDayEntry {
	return s.entries.List(ctx)
}

func (s *StartDayService) GetByID(ctx context.Context, id int64) *models.StartDayEntry {
	return s.entries.GetByID(ctx, id)
}

func (s *StartDayService) Create(ctx context.Context, goals []string, focus string) (*models.StartDayEntry, error) {
	return s.entries.Create(ctx, &models.StartDayEntry{Goals: goals, Focus: focus})
}

func (s *StartDayService) Update(ctx context.Context, id int64, goals []string, focus string) (*models.StartDayEntry, error) {
	return s.entries.Update(ctx, id, func(e *models.StartDayEntry) {
		e.Goals = goals
		e.Focus = focus
	})
}

func (s *StartDayService) Delete(ctx context.Context, id int64) error {
	return s.entries.Delete(ctx, id)
}

func (s *StartDayService) ListForSync(ctx context.Context) []*models.StartDayEntry {
	return s.entries.ListForSync(ctx)
}

func (s *StartDayService) MarkSynced(ctx context.Context, localIDs []int64, serverIDs map[int64]int64) error {
	return s.entries.MarkSynced(ctx, localIDs, serverIDs)
}

func (s *StartDayService) Sync(ctx context.Context) error {
	return s.entries.push(ctx, s.api, "/start-day/sync")
}
