package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/apiclient"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// JournalService manages diary entries plus the parallel template collection
// drafts are created from. Entry content is encrypted at rest.
type JournalService struct {
	entries   *collection[int64, *models.JournalEntry]
	templates *collection[int64, *models.JournalEntry]
	api       apiclient.Client
	log       logging.Logger
}

func NewJournalService(store *kvstore.Store, api apiclient.Client, log logging.Logger) *JournalService {
	entries := newCollection[int64, *models.JournalEntry](store, common.KeyJournalEntries, log, common.NewNumericID)
	entries.encrypt = true
	entries.syncEligible = func(e *models.JournalEntry) bool { return !e.IsTemplate }

	templates := newCollection[int64, *models.JournalEntry](store, common.KeyJournalTemplates, log, common.NewNumericID)
	templates.encrypt = true

	return &JournalService{
		entries:   entries,
		templates: templates,
		api:       api,
		log:       log.With("service", "journal"),
	}
}

func (s *JournalService) List(ctx context.Context) []*models.JournalEntry {
	return s.entries.List(ctx)
}

func (s *JournalService) GetByID(ctx context.Context, id int64) *models.JournalEntry {
	return s.entries.GetByID(ctx, id)
}

func (s *JournalService) Create(ctx context.Context, content string) (*models.JournalEntry, error) {
	e := &models.JournalEntry{Content: content}
	e.RecalcLength()
	return s.entries.Create(ctx, e)
}

func (s *JournalService) Update(ctx context.Context, id int64, content string) (*models.JournalEntry, error) {
	return s.entries.Update(ctx, id, func(e *models.JournalEntry) {
		e.Content = content
		e.RecalcLength()
	})
}

func (s *JournalService) Delete(ctx context.Context, id int64) error {
	return s.entries.Delete(ctx, id)
}

func (s *JournalService) ListForSync(ctx context.Context) []*models.JournalEntry {
	return s.entries.ListForSync(ctx)
}

func (s *JournalService) MarkSynced(ctx context.Context, localIDs []int64, serverIDs map[int64]int64) error {
	return s.entries.MarkSynced(ctx, localIDs, serverIDs)
}

// Templates.

func (s *JournalService) ListTemplates(ctx context.Context) []*models.JournalEntry {
	return s.templates.List(ctx)
}

func (s *JournalService) CreateTemplate(ctx context.Context, content string) (*models.JournalEntry, error) {
	e := &models.JournalEntry{Content: content, IsTemplate: true}
	e.RecalcLength()
	return s.templates.Create(ctx, e)
}

func (s *JournalService) DeleteTemplate(ctx context.Context, id int64) error {
	return s.templates.Delete(ctx, id)
}

// ConvertTemplateToJournal copies a template's content into a fresh journal
// entry, then soft-deletes the template. If the entry cannot be created the
// template is left untouched, so the conversion is atomic from the caller's
// point of view.
func (s *JournalService) ConvertTemplateToJournal(ctx context.Context, templateID int64) (*models.JournalEntry, error) {
	tpl := s.templates.GetByID(ctx, templateID)
	if tpl == nil {
		return nil, fmt.Errorf("template id %d: %w", templateID, common.ErrNotFound)
	}

	entry, err := s.Create(ctx, tpl.Content)
	if err != nil {
		return nil, fmt.Errorf("creating entry from template: %w", err)
	}

	if err := s.templates.Delete(ctx, templateID); err != nil {
		return nil, fmt.Errorf("retiring template after conversion: %w", err)
	}
	return entry, nil
}

// Sync pushes unsynced entries (templates excluded) to the server and
// records the acknowledged server ids.
func (s *JournalService) Sync(ctx context.Context) error {
	return s.entries.push(ctx, s.api, "/journal/sync")
}
