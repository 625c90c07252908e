package editor

import (
	"strings"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

const skillSeparator = ","

// Draft is the editable working copy of a portfolio. Skills is kept in its
// comma-joined display form and only split when the draft is submitted.
type Draft struct {
	Name     string
	Title    string
	About    string
	Skills   string
	Projects []portfolio.Project
	Contact  portfolio.Contact
}

func EmptyDraft() Draft {
	return Draft{Projects: []portfolio.Project{}}
}

// DraftFromPortfolio copies every field of p. Missing collections become empty.
func DraftFromPortfolio(p *portfolio.Portfolio) Draft {
	if p == nil {
		return EmptyDraft()
	}
	d := Draft{
		Name:     p.Name,
		Title:    p.Title,
		About:    p.About,
		Skills:   JoinSkills(p.Skills),
		Projects: append([]portfolio.Project{}, p.Projects...),
		Contact:  p.Contact,
	}
	return d
}

// ToPortfolio builds the wire document, splitting Skills into a list.
func (d Draft) ToPortfolio() *portfolio.Portfolio {
	return &portfolio.Portfolio{
		Name:     d.Name,
		Title:    d.Title,
		About:    d.About,
		Skills:   SplitSkills(d.Skills),
		Projects: append([]portfolio.Project{}, d.Projects...),
		Contact:  d.Contact,
	}
}

// SplitSkills splits on commas, trims every entry and drops empty ones.
func SplitSkills(text string) []string {
	return portfolio.CleanSkills(strings.Split(text, skillSeparator))
}

func JoinSkills(skills []string) string {
	return strings.Join(skills, skillSeparator+" ")
}
