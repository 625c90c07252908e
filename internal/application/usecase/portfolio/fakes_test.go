package portfolio

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

type memoryRepo struct {
	mu      sync.Mutex
	doc     *portfolio.Portfolio
	getErr  error
	saves   int
	updates int
}

func (r *memoryRepo) Get(context.Context) (*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.doc.Clone(), nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doc == nil || *r.doc.ID != id {
		return nil, apperror.NewNotFound("portfolio", id.String())
	}
	return r.doc.Clone(), nil
}

func (r *memoryRepo) Save(_ context.Context, p *portfolio.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.doc != nil {
		return apperror.NewConflict("portfolio", "exists")
	}
	r.doc = p.Clone()
	return nil
}

func (r *memoryRepo) Update(_ context.Context, p *portfolio.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.doc == nil || *r.doc.ID != *p.ID {
		return apperror.NewNotFound("portfolio", p.ID.String())
	}
	p.CreatedAt = r.doc.CreatedAt
	r.doc = p.Clone()
	return nil
}

type memoryCache struct {
	mu          sync.Mutex
	doc         *portfolio.Portfolio
	getErr      error
	sets        int
	invalidated int
}

func (c *memoryCache) Get(context.Context) (*portfolio.Portfolio, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.doc == nil {
		return nil, false, nil
	}
	return c.doc.Clone(), true, nil
}

func (c *memoryCache) Set(_ context.Context, p *portfolio.Portfolio) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.doc = p.Clone()
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.doc = nil
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.PortfolioEventPayload
	err    error
}

func (p *recordingPublisher) PublishPortfolioEvent(_ context.Context, payload event.PortfolioEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return p.err
}

func (p *recordingPublisher) Events() []event.PortfolioEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.PortfolioEventPayload(nil), p.events...)
}

var errBoom = errors.New("boom")
