package http

import (
	"time"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

type ProjectDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GithubURL   string `json:"githubUrl"`
	DemoURL     string `json:"demoUrl"`
}

type ContactDTO struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PortfolioDTO struct {
	ID        string       `json:"id,omitempty"`
	Name      string       `json:"name"`
	Title     string       `json:"title"`
	About     string       `json:"about"`
	Skills    []string     `json:"skills"`
	Projects  []ProjectDTO `json:"projects"`
	Contact   ContactDTO   `json:"contact"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// PortfolioRequest is the body of both create and update. Any id in the body
// is ignored; updates take it from the path.
type PortfolioRequest struct {
	Name     string       `json:"name" binding:"required"`
	Title    string       `json:"title"`
	About    string       `json:"about"`
	Skills   []string     `json:"skills"`
	Projects []ProjectDTO `json:"projects"`
	Contact  ContactDTO   `json:"contact"`
}

type CreatePortfolioResponse struct {
	Portfolio PortfolioDTO `json:"portfolio"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func ToPortfolioDTO(p *portfolio.Portfolio) PortfolioDTO {
	dto := PortfolioDTO{
		Name:      p.Name,
		Title:     p.Title,
		About:     p.About,
		Skills:    append([]string{}, p.Skills...),
		Contact:   ContactDTO(p.Contact),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.ID != nil {
		dto.ID = p.ID.String()
	}
	dto.Projects = make([]ProjectDTO, len(p.Projects))
	for i, pr := range p.Projects {
		dto.Projects[i] = ProjectDTO(pr)
	}
	return dto
}

func (req *PortfolioRequest) ToDomainProjects() []portfolio.Project {
	projects := make([]portfolio.Project, len(req.Projects))
	for i, pr := range req.Projects {
		projects[i] = portfolio.Project(pr)
	}
	return projects
}
