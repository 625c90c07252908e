package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrProjectIndex   = errors.New("project index out of range")
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrSaveFailed     = errors.New("error saving portfolio")
)

// Gateway is the remote store behind the editor.
type Gateway interface {
	// Fetch returns nil when no document exists yet.
	Fetch(ctx context.Context) (*portfolio.Portfolio, error)
	Create(ctx context.Context, p *portfolio.Portfolio) (*portfolio.Portfolio, error)
	Update(ctx context.Context, id uuid.UUID, p *portfolio.Portfolio) (*portfolio.Portfolio, error)
}

type SubmitResult struct {
	Created   bool
	Portfolio *portfolio.Portfolio
}

// Editor holds one editing session. List edits never modify a slice in
// place, so a Draft returned earlier keeps its contents.
type Editor struct {
	gateway Gateway
	logger  logger.Logger

	mu         sync.Mutex
	draft      Draft
	existingID *uuid.UUID
	loading    bool
	saving     bool
}

func New(gw Gateway, log logger.Logger) *Editor {
	return &Editor{
		gateway: gw,
		logger:  log,
		draft:   EmptyDraft(),
		loading: true,
	}
}

// Load reads the current document into the draft. A failed read is logged
// and leaves the empty draft in place.
func (e *Editor) Load(ctx context.Context) {
	p, err := e.gateway.Fetch(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false

	if err != nil {
		e.logger.Error("Error fetching portfolio", err)
		return
	}
	if p == nil {
		return
	}
	e.draft = DraftFromPortfolio(p)
	if p.ID != nil {
		id := *p.ID
		e.existingID = &id
	}
}

// Restore resumes a session from a draft that was round-tripped through a form.
func (e *Editor) Restore(d Draft, existingID *uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if d.Projects == nil {
		d.Projects = []portfolio.Project{}
	} else {
		d.Projects = append([]portfolio.Project{}, d.Projects...)
	}
	e.draft = d
	e.existingID = nil
	if existingID != nil {
		id := *existingID
		e.existingID = &id
	}
	e.loading = false
}

func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

func (e *Editor) ExistingID() *uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.existingID == nil {
		return nil
	}
	id := *e.existingID
	return &id
}

func (e *Editor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

func (e *Editor) SetField(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case "name":
		e.draft.Name = value
	case "title":
		e.draft.Title = value
	case "about":
		e.draft.About = value
	case "skills":
		e.draft.Skills = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func setProjectField(p *portfolio.Project, name, value string) error {
	switch name {
	case "title":
		p.Title = value
	case "description":
		p.Description = value
	case "githubUrl", "github":
		p.GithubURL = value
	case "demoUrl", "demo":
		p.DemoURL = value
	default:
		return fmt.Errorf("%w: project %q", ErrUnknownField, name)
	}
	return nil
}

func (e *Editor) SetProjectField(index int, name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.draft.Projects) {
		return fmt.Errorf("%w: %d", ErrProjectIndex, index)
	}
	projects := append([]portfolio.Project{}, e.draft.Projects...)
	if err := setProjectField(&projects[index], name, value); err != nil {
		return err
	}
	e.draft.Projects = projects
	return nil
}

func (e *Editor) AddProject() {
	e.mu.Lock()
	defer e.mu.Unlock()

	projects := make([]portfolio.Project, len(e.draft.Projects), len(e.draft.Projects)+1)
	copy(projects, e.draft.Projects)
	e.draft.Projects = append(projects, portfolio.Project{})
}

func (e *Editor) RemoveProject(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.draft.Projects) {
		return fmt.Errorf("%w: %d", ErrProjectIndex, index)
	}
	projects := make([]portfolio.Project, 0, len(e.draft.Projects)-1)
	projects = append(projects, e.draft.Projects[:index]...)
	e.draft.Projects = append(projects, e.draft.Projects[index+1:]...)
	return nil
}

func (e *Editor) SetContactField(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case "email":
		e.draft.Contact.Email = value
	case "phone":
		e.draft.Contact.Phone = value
	default:
		return fmt.Errorf("%w: contact %q", ErrUnknownField, name)
	}
	return nil
}

// Submit creates the document when no id is known and updates it otherwise.
// Only one submit runs at a time on a given Editor; a concurrent call gets
// ErrSaveInProgress. That guard covers callers holding one Editor across
// goroutines. The web views build an Editor per request and serialize saves
// per document themselves.
// On failure the draft is kept so the caller can retry.
func (e *Editor) Submit(ctx context.Context) (*SubmitResult, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	e.saving = true
	payload := e.draft.ToPortfolio()
	var id *uuid.UUID
	if e.existingID != nil {
		v := *e.existingID
		id = &v
	}
	e.mu.Unlock()

	var (
		saved *portfolio.Portfolio
		err   error
	)
	if id != nil {
		saved, err = e.gateway.Update(ctx, *id, payload)
	} else {
		saved, err = e.gateway.Create(ctx, payload)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false

	if err != nil {
		e.logger.Error("Portfolio save error", err, zap.Bool("create", id == nil))
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if id == nil && saved != nil && saved.ID != nil {
		newID := *saved.ID
		e.existingID = &newID
	}
	return &SubmitResult{Created: id == nil, Portfolio: saved}, nil
}
