package report

import (
	"context"

	"github.com/workforce-signals/ai-jobs-pulse/internal/adzuna"
	"github.com/workforce-signals/ai-jobs-pulse/internal/config"
	"github.com/workforce-signals/ai-jobs-pulse/internal/logger"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
	"github.com/workforce-signals/ai-jobs-pulse/internal/onet"
)

// Lenses is the production LensProvider. Each lens client is nil when its
// credentials are not configured; the corresponding snapshot then degrades
// to a disabled placeholder without failing the run.
type Lenses struct {
	adzunaClient *adzuna.Client
	adzunaParams adzuna.SnapshotParams

	onetClient      *onet.Client
	onetOccupations []onet.Occupation
	onetTopN        int
}

// NewLenses resolves the optional lens clients from configuration once at
// startup.
func NewLenses(cfg *config.Config) *Lenses {
	l := &Lenses{
		adzunaParams: adzuna.SnapshotParams{
			Country:        cfg.Adzuna.Country,
			WindowDays:     cfg.Adzuna.WindowDays,
			Pages:          cfg.Adzuna.Pages,
			ResultsPerPage: cfg.Adzuna.ResultsPerPage,
		},
		onetOccupations: onet.DefaultOccupations,
		onetTopN:        cfg.Onet.TopN,
	}

	if creds := cfg.Adzuna.Credentials(); creds != nil {
		l.adzunaClient = adzuna.NewClient(cfg.Adzuna.APIBaseURL, creds.ID, creds.Key, cfg.Adzuna.Timeout)
	} else {
		logger.Warn("Adzuna credentials not configured; market snapshot lens disabled")
	}

	if creds := cfg.Onet.Credentials(); creds != nil {
		l.onetClient = onet.NewClient(cfg.Onet.APIBaseURL, creds.Username, creds.Password, cfg.Onet.Timeout)
	} else {
		logger.Warn("O*NET credentials not configured; hot technologies lens disabled")
	}

	return l
}

// AdzunaSnapshot computes the sampled market snapshot, or returns the
// disabled placeholder when the lens has no credentials.
func (l *Lenses) AdzunaSnapshot(ctx context.Context) (*models.AdzunaSnapshot, error) {
	if l.adzunaClient == nil {
		return adzuna.DisabledSnapshot(), nil
	}
	return l.adzunaClient.Snapshot(ctx, l.adzunaParams)
}

// OnetSnapshot looks up hot technologies per occupation, or returns the
// disabled placeholder when the lens has no credentials.
func (l *Lenses) OnetSnapshot(ctx context.Context) (*models.OnetSnapshot, error) {
	if l.onetClient == nil {
		return onet.DisabledSnapshot(), nil
	}
	return l.onetClient.HotTechnologies(ctx, l.onetOccupations, l.onetTopN), nil
}
