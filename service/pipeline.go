package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foomo/studio-gallery/assetstore"
	"go.uber.org/zap"
)

var (
	ErrNoImages   = errors.New("no images found")
	ErrCursorLoop = errors.New("cursor pagination did not terminate")
	ErrUnexpected = errors.New("unexpected error")
)

// Pipeline tries its strategies in order until one returns assets.
type Pipeline struct {
	Store      assetstore.Store
	Strategies []Strategy
	Logger     *zap.Logger
	Metrics    *Metrics
}

// Resolution is the outcome of the winning strategy.
type Resolution struct {
	Assets     []assetstore.Asset
	Strategy   string
	Kind       string
	Permissive bool
}

// Resolve runs the chain. A failing strategy is logged and skipped; only a
// cancelled context or a panic inside a strategy end the chain with an error.
// ErrNoImages is returned when no strategy produced anything.
func (p *Pipeline) Resolve(ctx context.Context) (*Resolution, error) {
	logger := p.logger()
	for _, s := range p.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("failed to resolve images: %w", err)
		}
		assets, err := p.fetch(ctx, s, logger)
		if err != nil {
			if errors.Is(err, ErrUnexpected) {
				return nil, err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("failed to resolve images: %w", ctxErr)
			}
			logger.Warn("strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
			p.Metrics.stepFailed(s.Kind)
			continue
		}
		if len(assets) == 0 {
			logger.Debug("strategy empty", zap.String("strategy", s.Name()))
			continue
		}
		logger.Info("strategy matched", zap.String("strategy", s.Name()), zap.Int("assets", len(assets)))
		return &Resolution{
			Assets:     assets,
			Strategy:   s.Name(),
			Kind:       s.Kind,
			Permissive: s.Permissive,
		}, nil
	}
	return nil, ErrNoImages
}

func (p *Pipeline) fetch(ctx context.Context, s Strategy, logger *zap.Logger) (assets []assetstore.Asset, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: strategy %s: %v", ErrUnexpected, s.Name(), r)
		}
	}()
	return s.Fetch(ctx, p.Store, logger.With(zap.String("strategy", s.Name())))
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
