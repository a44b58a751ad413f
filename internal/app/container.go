package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
	"google.golang.org/api/youtube/v3"
	"google.golang.org/api/youtubeanalytics/v2"

	"github.com/kjohnson/ytreport/internal/config"
	"github.com/kjohnson/ytreport/internal/service/analytics"
	"github.com/kjohnson/ytreport/internal/service/auth"
	"github.com/kjohnson/ytreport/internal/service/cache"
	"github.com/kjohnson/ytreport/internal/service/catalog"
	"github.com/kjohnson/ytreport/internal/service/sheets"
	"github.com/kjohnson/ytreport/internal/util"
)

// Container bundles the assembled services for one report run.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Catalog catalogFetcher
	Sheets  sheetWriter

	analyticsAPI *youtubeanalytics.Service
	snapshots    *cache.SnapshotStore
	pacer        *util.Pacer

	closers []func()
}

// Build authorizes against the credential provider and wires every remote
// service client. All heavy initialization happens here so the pipeline
// stays pure orchestration.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	provider, err := auth.NewProvider(cfg.CredentialsFile, cfg.TokenFile, logger)
	if err != nil {
		return nil, err
	}
	client, err := provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	ytSvc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}
	anSvc, err := youtubeanalytics.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}
	shSvc, err := gsheet.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet service: %w", err)
	}

	pacer := util.NewPacer(cfg.PacingDelay)

	// The snapshot cache is optional; a missing or unreachable Redis only
	// costs extra quota, never the report.
	var snapshots *cache.SnapshotStore
	var closers []func()
	if cfg.Redis.Host != "" {
		cacheSvc, err := cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			snapshots = cache.NewSnapshotStore(cacheSvc, logger)
			closers = append(closers, func() { _ = cacheSvc.Close() })
		}
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Catalog:      catalog.NewService(ytSvc, pacer, logger),
		Sheets:       sheets.NewWriter(shSvc, cfg.SpreadsheetID, pacer, logger),
		analyticsAPI: anSvc,
		snapshots:    snapshots,
		pacer:        pacer,
		closers:      closers,
	}, nil
}

// NewAnalytics builds the analytics service once the monetization identity
// has been resolved; the identity is fixed for the rest of the run.
func (c *Container) NewAnalytics(contentOwner string) *analytics.Service {
	return analytics.NewService(c.analyticsAPI, c.snapshots, c.pacer, c.Logger, c.Config.ChannelID, contentOwner)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
