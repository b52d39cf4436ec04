package application

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

// Mock implementations for testing

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// eventLog records the order of operations across mocks.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type mockMetrics struct {
	profiles    map[string]*domain.Profile
	profileErrs map[string]error
	content     map[string][]domain.ContentItem
	contentErrs map[string]error

	mu         sync.Mutex
	gotWindows []*ports.Window
	log        *eventLog
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{
		profiles:    make(map[string]*domain.Profile),
		profileErrs: make(map[string]error),
		content:     make(map[string][]domain.ContentItem),
		contentErrs: make(map[string]error),
	}
}

func (m *mockMetrics) FetchProfile(ctx context.Context, accountID string) (*domain.Profile, error) {
	if m.log != nil {
		m.log.add("fetch:" + accountID)
	}
	if err, ok := m.profileErrs[accountID]; ok {
		return nil, err
	}
	if p, ok := m.profiles[accountID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockMetrics) ListContent(ctx context.Context, accountID string, window *ports.Window) ([]domain.ContentItem, error) {
	m.mu.Lock()
	m.gotWindows = append(m.gotWindows, window)
	m.mu.Unlock()

	if err, ok := m.contentErrs[accountID]; ok {
		return nil, err
	}
	if items, ok := m.content[accountID]; ok {
		return items, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockMetrics) FetchItemStats(ctx context.Context, itemID string) (*domain.Stats, error) {
	return nil, domain.ErrNotFound
}

type mockSource struct {
	accounts []domain.Account
	err      error
}

func (m *mockSource) ListAccounts(ctx context.Context, platform domain.Platform) ([]domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.accounts, nil
}

type mockSink struct {
	profileErr error
	contentErr error

	mu       sync.Mutex
	profiles []*domain.Profile
	content  [][]domain.ContentItem
	log      *eventLog
}

func (m *mockSink) WriteProfile(ctx context.Context, profile *domain.Profile) error {
	if m.log != nil {
		m.log.add("writeProfile:" + profile.AccountID)
	}
	if m.profileErr != nil {
		return m.profileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, profile)
	return nil
}

func (m *mockSink) WriteContent(ctx context.Context, items []domain.ContentItem) error {
	if m.contentErr != nil {
		return m.contentErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = append(m.content, items)
	return nil
}

func profileFor(id string) *domain.Profile {
	return &domain.Profile{AccountID: id, DisplayName: "Channel " + id}
}

func itemsFor(ids ...string) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.ContentItem{ID: id, Stats: &domain.Stats{ViewCount: 1}})
	}
	return items
}
