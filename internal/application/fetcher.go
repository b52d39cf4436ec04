package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

// Fetcher resolves one account's profile and content concurrently.
// Each branch is isolated: a failing profile fetch never aborts the
// content listing, and vice versa. A failed branch contributes nil to the
// result; no error escapes FetchAccount.
type Fetcher struct {
	client ports.MetricsClient
	window *ports.Window
	log    *logrus.Entry
}

// NewFetcher creates a per-account fetcher. window may be nil to list
// without a published-time filter.
func NewFetcher(client ports.MetricsClient, window *ports.Window, log *logrus.Entry) *Fetcher {
	return &Fetcher{
		client: client,
		window: window,
		log:    log,
	}
}

// FetchAccount launches the profile fetch and the content listing
// together and waits for both. The second return value is the number of
// branches that failed with a genuine error (not-found does not count).
func (f *Fetcher) FetchAccount(ctx context.Context, account domain.Account) (domain.AccountResult, int) {
	var (
		profile  *domain.Profile
		items    []domain.ContentItem
		failures int
		mu       sync.Mutex
		wg       sync.WaitGroup
	)

	fail := func() {
		mu.Lock()
		failures++
		mu.Unlock()
	}

	wg.Add(2)

	go func() {
		defer wg.Done()
		p, err := f.client.FetchProfile(ctx, account.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				f.log.WithField("account_id", account.ID).Info("profile not found")
			} else {
				f.log.WithField("account_id", account.ID).WithError(err).Error("failed to fetch profile")
				fail()
			}
			return
		}
		profile = p
	}()

	go func() {
		defer wg.Done()
		list, err := f.client.ListContent(ctx, account.ID, f.window)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				f.log.WithField("account_id", account.ID).Info("no content for account")
			} else {
				f.log.WithField("account_id", account.ID).WithError(err).Error("failed to list content")
				fail()
			}
			return
		}
		items = list
	}()

	wg.Wait()

	return domain.AccountResult{Profile: profile, Items: items}, failures
}
