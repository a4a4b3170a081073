package provider

import (
	"context"

	"railbook/internal/shared/config"
	"railbook/pkg/logger"
)

// Provider supplies raw station, train and schedule facts. Implementations
// may block on the network and must honour ctx.
type Provider interface {
	GetAllStations(ctx context.Context) ([]IRStation, error)
	SearchTrains(ctx context.Context, from, to, date string) ([]IRTrain, error)
	// GetTrainSchedule returns nil without error when the train has no
	// published schedule.
	GetTrainSchedule(ctx context.Context, trainNumber string) (*IRTrainSchedule, error)
}

// New picks the remote provider when a base URL is configured and the
// built-in dataset otherwise.
func New(cfg config.ProviderConfig) Provider {
	if cfg.BaseURL == "" {
		logger.GetDefault().Info("No railway API configured, serving the built-in dataset")
		return NewStatic()
	}
	logger.GetDefault().Info("Using remote railway API", "base_url", cfg.BaseURL)
	return NewHTTPProvider(cfg, nil)
}
