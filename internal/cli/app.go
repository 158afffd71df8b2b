// Package cli implements the daybook diagnostic command tree: storage
// inspection, format repair, and manual sync runs against the same
// persistence core the mobile client embeds.
package cli

import (
	"github.com/dmitrijs2005/daybook/internal/apiclient"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/config"
	"github.com/dmitrijs2005/daybook/internal/cryptox"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/services"
	"github.com/dmitrijs2005/daybook/internal/syncqueue"
)

// App wires the persistence core once at startup and hands the instances to
// the commands. Everything is constructor-injected; there are no
// package-level service singletons.
type App struct {
	cfg *config.Config
	log logging.Logger

	store       *kvstore.Store
	queue       *syncqueue.Queue
	journal     *services.JournalService
	mood        *services.MoodService
	startDay    *services.StartDayService
	reflections *services.ReflectionService
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	medium := kvstore.NewDiskvMedium(cfg.StoragePath)
	codec := cryptox.NewCodec(cfg.SecretKey)
	store := kvstore.New(medium, codec, cfg.KeyPrefix, log)

	api := apiclient.NewHTTPClient(cfg.ServerEndpointAddr, cfg.HTTPTimeout)
	queue := syncqueue.New(store, common.KeyMoodOfflineQueue, "/checkins", api, log)

	return &App{
		cfg:         cfg,
		log:         log,
		store:       store,
		queue:       queue,
		journal:     services.NewJournalService(store, api, log),
		mood:        services.NewMoodService(store, queue, log),
		startDay:    services.NewStartDayService(store, api, log),
		reflections: services.NewReflectionService(store, api, log),
	}
}
