package application

import (
	"context"
	"errors"

	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/ports"
)

// FanoutSink writes every record to all configured sinks. Each write is
// attempted on every sink even when an earlier one failed; the combined
// error is returned afterwards.
type FanoutSink struct {
	sinks []ports.RecordSink
}

// NewFanoutSink composes multiple record sinks into one.
func NewFanoutSink(sinks ...ports.RecordSink) *FanoutSink {
	return &FanoutSink{sinks: sinks}
}

// WriteProfile implements ports.RecordSink.
func (f *FanoutSink) WriteProfile(ctx context.Context, profile *domain.Profile) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.WriteProfile(ctx, profile); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteContent implements ports.RecordSink.
func (f *FanoutSink) WriteContent(ctx context.Context, items []domain.ContentItem) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.WriteContent(ctx, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
