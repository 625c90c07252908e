package portfolio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GithubURL   string `json:"githubUrl"`
	DemoURL     string `json:"demoUrl"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Portfolio is the singleton document behind the site. ID is nil until the
// first create.
type Portfolio struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	About     string     `json:"about"`
	Skills    []string   `json:"skills"`
	Projects  []Project  `json:"projects"`
	Contact   Contact    `json:"contact"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

var (
	ErrNameRequired       = errors.New("name is required")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrPortfolioExists    = errors.New("portfolio already exists")
	ErrInvalidPortfolioID = errors.New("invalid portfolio id")
)

func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Normalize replaces absent collections with empty ones and cleans the skill list.
func (p *Portfolio) Normalize() {
	p.Skills = CleanSkills(p.Skills)
	if p.Projects == nil {
		p.Projects = []Project{}
	}
}

// Clone returns a deep copy; slices of the copy never alias the receiver's.
func (p *Portfolio) Clone() *Portfolio {
	if p == nil {
		return nil
	}
	out := *p
	if p.ID != nil {
		id := *p.ID
		out.ID = &id
	}
	out.Skills = append([]string{}, p.Skills...)
	out.Projects = append([]Project{}, p.Projects...)
	return &out
}

// CleanSkills trims every entry and drops the empty ones.
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type Repository interface {
	// Get returns the stored document, or (nil, nil) when none exists.
	Get(ctx context.Context) (*Portfolio, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Portfolio, error)
	Save(ctx context.Context, p *Portfolio) error
	Update(ctx context.Context, p *Portfolio) error
}

type Cache interface {
	Get(ctx context.Context) (*Portfolio, bool, error)
	Set(ctx context.Context, p *Portfolio) error
	Invalidate(ctx context.Context) error
}
