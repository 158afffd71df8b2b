package services

import (
	"context"

	"github.com/dmitrijs2005/daybook/internal/apiclient"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// ReflectionService manages evening reflections. Reflections carry opaque
// string identifiers (UUIDs) instead of the chronological numeric scheme,
// and their content is encrypted at rest.
type ReflectionService struct {
	entries *collection[string, *models.EveningReflection]
	api     apiclient.Client
	log     logging.Logger
}

func NewReflectionService(store *kvstore.Store, api apiclient.Client, log logging.Logger) *ReflectionService {
	entries := newCollection[string, *models.EveningReflection](store, common.KeyEveningReflections, log, common.NewStringID)
	entries.encrypt = true

	return &ReflectionService{
		entries: entries,
		api:     api,
		log:     log.With("service", "reflection"),
	}
}

func (s *ReflectionService) List(ctx context.Context) []*models.EveningReflection {
	return s.entries.List(ctx)
}

func (s *ReflectionService) GetByID(ctx context.Context, id string) *models.EveningReflection {
	return s.entries.GetByID(ctx, id)
}

func (s *ReflectionService) Create(ctx context.Context, wentWell, couldImprove, note string) (*models.EveningReflection, error) {
	return s.entries.Create(ctx, &models.EveningReflection{
		WentWell:     wentWell,
		CouldImprove: couldImprove,
		Note:         note,
	})
}

func (s *ReflectionService) Update(ctx context.Context, id string, wentWell, couldImprove, note string) (*models.EveningReflection, error) {
	return s.entries.Update(ctx, id, func(r *models.EveningReflection) {
		r.WentWell = wentWell
		r.CouldImprove = couldImprove
		r.Note = note
	})
}

func (s *ReflectionService) Delete(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

func (s *ReflectionService) ListForSync(ctx context.Context) []*models.EveningReflection {
	return s.entries.ListForSync(ctx)
}

func (s *ReflectionService) MarkSynced(ctx context.Context, localIDs []string, serverIDs map[string]string) error {
	return s.entries.MarkSynced(ctx, localIDs, serverIDs)
}

func (s *ReflectionService) Sync(ctx context.Context) error {
	return s.entries.push(ctx, s.api, "/reflections/sync")
}
