package web

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/khoahotran/portfolio/internal/application/editor"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

const (
	actionSave          = "save"
	actionAddProject    = "add_project"
	actionRemoveProject = "remove_project"
)

// maxProjects bounds the project indices a posted form may name.
const maxProjects = 100

var errMalformedForm = errors.New("malformed admin form")

type projectForm struct {
	Title       string `schema:"title"`
	Description string `schema:"description"`
	GithubURL   string `schema:"githubUrl"`
	DemoURL     string `schema:"demoUrl"`
}

// adminForm mirrors the inputs of admin.html. Project inputs are named
// projects.<i>.<field>.
type adminForm struct {
	ID       string        `schema:"id"`
	Action   string        `schema:"action"`
	Name     string        `schema:"name"`
	Title    string        `schema:"title"`
	About    string        `schema:"about"`
	Skills   string        `schema:"skills"`
	Projects []projectForm `schema:"projects"`
	Email    string        `schema:"email"`
	Phone    string        `schema:"phone"`
}

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.MaxSize(maxProjects)
	d.IgnoreUnknownKeys(false)
	return d
}

// decodeAdminForm rejects repeated keys, out-of-range or gapped project
// indices and unknown fields before anything reaches the editor.
func decodeAdminForm(form url.Values) (*adminForm, error) {
	indices := make(map[int]struct{})
	for key, values := range form {
		if len(values) > 1 {
			return nil, fmt.Errorf("%w: repeated field %q", errMalformedForm, key)
		}
		rest, ok := strings.CutPrefix(key, "projects.")
		if !ok {
			continue
		}
		raw, _, _ := strings.Cut(rest, ".")
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 || idx >= maxProjects {
			return nil, fmt.Errorf("%w: project key %q", errMalformedForm, key)
		}
		indices[idx] = struct{}{}
	}

	var f adminForm
	if err := formDecoder.Decode(&f, form); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedForm, err)
	}
	if len(f.Projects) != len(indices) {
		return nil, fmt.Errorf("%w: %d project indices for %d projects", errMalformedForm, len(indices), len(f.Projects))
	}
	return &f, nil
}

// restoreEditor rebuilds the session from a posted admin form and replays
// every field through the editor.
func restoreEditor(ed *editor.Editor, form url.Values) (*adminForm, error) {
	f, err := decodeAdminForm(form)
	if err != nil {
		return nil, err
	}

	var existingID *uuid.UUID
	if raw := strings.TrimSpace(f.ID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid portfolio id %q: %w", raw, portfolio.ErrInvalidPortfolioID)
		}
		existingID = &id
	}

	ed.Restore(editor.Draft{Projects: make([]portfolio.Project, len(f.Projects))}, existingID)

	fields := map[string]string{"name": f.Name, "title": f.Title, "about": f.About, "skills": f.Skills}
	for name, value := range fields {
		if err := ed.SetField(name, value); err != nil {
			return nil, err
		}
	}
	for i, p := range f.Projects {
		project := map[string]string{
			"title":       p.Title,
			"description": p.Description,
			"githubUrl":   p.GithubURL,
			"demoUrl":     p.DemoURL,
		}
		for name, value := range project {
			if err := ed.SetProjectField(i, name, value); err != nil {
				return nil, err
			}
		}
	}
	if err := ed.SetContactField("email", f.Email); err != nil {
		return nil, err
	}
	if err := ed.SetContactField("phone", f.Phone); err != nil {
		return nil, err
	}
	return f, nil
}

// parseAction splits "remove_project:2" into its action and index.
func parseAction(raw string) (string, int, error) {
	action, arg, found := strings.Cut(raw, ":")
	if action != actionRemoveProject {
		return action, 0, nil
	}
	if !found {
		return "", 0, errors.New("missing project index")
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return "", 0, fmt.Errorf("invalid project index %q", arg)
	}
	return action, idx, nil
}
