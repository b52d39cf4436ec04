package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

// RunSummary aggregates the outcome of one import batch.
type RunSummary struct {
	RunID           string
	Platform        domain.Platform
	Accounts        int
	ProfilesWritten int
	ContentRows     int
	Errors          int
	Duration        time.Duration
}

// Importer drives one platform's import batch: list accounts once, then
// fetch and persist each account in source order. Accounts are processed
// one at a time to bound concurrent outbound API load; an account is
// fully persisted before the next one is fetched, so sink writes for two
// accounts never interleave.
type Importer struct {
	platform domain.Platform
	source   ports.AccountSource
	fetcher  *Fetcher
	sink     ports.RecordSink
	log      *logrus.Entry
}

// NewImporter wires an import pipeline for one platform.
func NewImporter(platform domain.Platform, source ports.AccountSource, fetcher *Fetcher, sink ports.RecordSink, log *logrus.Entry) *Importer {
	return &Importer{
		platform: platform,
		source:   source,
		fetcher:  fetcher,
		sink:     sink,
		log:      log,
	}
}

// Run executes the batch. Only an account-listing failure is fatal;
// every per-account failure is logged, counted and skipped past.
func (imp *Importer) Run(ctx context.Context) (RunSummary, error) {
	start := time.Now()
	summary := RunSummary{
		RunID:    uuid.NewString(),
		Platform: imp.platform,
	}
	log := imp.log.WithFields(logrus.Fields{
		"run_id":   summary.RunID,
		"platform": imp.platform,
	})

	accounts, err := imp.source.ListAccounts(ctx, imp.platform)
	if err != nil {
		return summary, fmt.Errorf("list accounts: %w", err)
	}
	log.WithField("accounts", len(accounts)).Info("starting import run")

	for _, account := range accounts {
		if err := account.Validate(); err != nil {
			log.WithError(err).Error("skipping invalid account")
			summary.Errors++
			continue
		}

		result, failures := imp.fetcher.FetchAccount(ctx, account)
		summary.Accounts++
		summary.Errors += failures

		if result.Profile != nil {
			if err := imp.sink.WriteProfile(ctx, result.Profile); err != nil {
				log.WithField("account_id", account.ID).WithError(err).Error("failed to write profile")
				summary.Errors++
			} else {
				summary.ProfilesWritten++
			}
		}

		if len(result.Items) > 0 {
			if err := imp.sink.WriteContent(ctx, result.Items); err != nil {
				log.WithField("account_id", account.ID).WithError(err).Error("failed to write content")
				summary.Errors++
			} else {
				summary.ContentRows += len(result.Items)
			}
		}
	}

	summary.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"accounts":         summary.Accounts,
		"profiles_written": summary.ProfilesWritten,
		"content_rows":     summary.ContentRows,
		"errors":           summary.Errors,
		"duration":         summary.Duration.String(),
	}).Info("import run finished")

	return summary, nil
}
