// Package service wires the kitty config store, the font catalogues and
// the reload signal into the operations the CLI exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ihatemodels/kittyfont/internal/fonts"
	"github.com/ihatemodels/kittyfont/internal/kitty"
)

var (
	// ErrInvalidSize is returned before any write when a size argument
	// is not a positive integer.
	ErrInvalidSize = errors.New("font size must be a positive integer")

	// ErrUnknownFont is returned before any write when a font name does
	// not resolve through the compatible index.
	ErrUnknownFont = errors.New("font is not in the compatible set")
)

// Reloader notifies running terminal processes after a config write.
// Satisfied by kitty.Reloader.
type Reloader interface {
	Reload(ctx context.Context)
}

// Service implements check, list and the font/size mutations on top of
// a kitty.conf store and the two font catalogues.
type Service struct {
	conf     *kitty.Conf
	enum     *fonts.Enumerator
	cache    *fonts.IndexCache
	strategy fonts.Strategy
	reloader Reloader
	log      zerolog.Logger
}

// New builds a Service. The cache is injected so callers (and tests)
// control when enumeration state is dropped.
func New(conf *kitty.Conf, enum *fonts.Enumerator, cache *fonts.IndexCache, strategy fonts.Strategy, reloader Reloader, log zerolog.Logger) *Service {
	return &Service{
		conf:     conf,
		enum:     enum,
		cache:    cache,
		strategy: strategy,
		reloader: reloader,
		log:      log,
	}
}

// Check reads the configured font family and size fresh from disk.
// Returns kitty.ErrNotConfigured when no font_family line exists; the
// size, if present, is still filled in.
func (s *Service) Check(ctx context.Context) (kitty.Settings, error) {
	set, err := s.conf.Read()
	if err != nil {
		return kitty.Settings{}, err
	}
	if set.Family == "" {
		return set, kitty.ErrNotConfigured
	}
	return set, nil
}

// SetFontRaw writes the family exactly as given, then signals running
// terminals to reload.
func (s *Service) SetFontRaw(ctx context.Context, name string) error {
	if err := s.conf.SetFamily(name); err != nil {
		return err
	}
	s.log.Info().Str("family", name).Msg("font family written")
	s.reloader.Reload(ctx)
	return nil
}

// SetFontByKey resolves name through the compatible-font index first;
// names outside the index are rejected before any write. Both the raw
// and the whitespace-stripped spelling of a compatible font resolve.
func (s *Service) SetFontByKey(ctx context.Context, name string) error {
	raw, ok := s.index(ctx).Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	return s.SetFontRaw(ctx, raw)
}

// SetSize validates that size is a positive integer, writes it and
// signals running terminals to reload.
func (s *Service) SetSize(ctx context.Context, size string) error {
	n, err := strconv.Atoi(size)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	if err := s.conf.SetSize(strconv.Itoa(n)); err != nil {
		return err
	}
	s.log.Info().Int("size", n).Msg("font size written")
	s.reloader.Reload(ctx)
	return nil
}

// AdjustSize steps the configured size by delta and returns the new
// value. Kitty accepts fractional sizes, so half-point steps are fine;
// an absent or malformed size starts from kitty's default of 11.
func (s *Service) AdjustSize(ctx context.Context, delta float64) (string, error) {
	set, err := s.conf.Read()
	if err != nil {
		return "", err
	}

	cur := 11.0
	if set.Size != "" {
		if v, err := strconv.ParseFloat(set.Size, 64); err == nil {
			cur = v
		}
	}
	next := cur + delta
	if next < 1 {
		next = 1
	}

	formatted := strconv.FormatFloat(next, 'f', -1, 64)
	if err := s.conf.SetSize(formatted); err != nil {
		return "", err
	}
	s.log.Info().Str("size", formatted).Msg("font size written")
	s.reloader.Reload(ctx)
	return formatted, nil
}

// List returns the raw names of installed fonts the terminal can
// render, sorted. Enumeration failure yields an empty list, not an
// error.
func (s *Service) List(ctx context.Context) []string {
	return s.index(ctx).Raw()
}

// Keys returns the normalized names, sorted. This is the completion
// surface: keys are typable without quoting.
func (s *Service) Keys(ctx context.Context) []string {
	return s.index(ctx).Keys()
}

// Refresh drops the cached index; the next lookup re-enumerates.
func (s *Service) Refresh() {
	s.cache.Invalidate()
}

// index returns the cached compatible-font index, computing it on first
// use. Only a run where both catalogues answered is cached, so a
// transient tool failure is retried on the next call instead of pinning
// an empty index for the process lifetime.
func (s *Service) index(ctx context.Context) *fonts.Index {
	if ix, ok := s.cache.Get(); ok {
		return ix
	}

	installed, iok := s.enum.ListInstalled(ctx)
	supported, sok := s.enum.ListSupported(ctx)
	ix := fonts.Intersect(installed, supported, s.strategy)
	if iok && sok {
		s.cache.Set(ix)
	}
	return ix
}
