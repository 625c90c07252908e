package web

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/khoahotran/portfolio/internal/application/editor"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	msgSaveFailed   = "Error saving portfolio."
	msgNameRequired = "Name is required."
	msgBadForm      = "The form could not be read."
)

var flashes = map[string]string{
	"created": "Portfolio created successfully!",
	"updated": "Portfolio updated successfully!",
}

type homePage struct {
	PageTitle string
	Nav       navData
	Portfolio *portfolio.Portfolio
	Flash     string
	Year      int
}

type adminPage struct {
	PageTitle string
	Nav       navData
	Draft     editor.Draft
	ID        string
	Error     string
}

type ViewHandler struct {
	gateway editor.Gateway
	logger  logger.Logger
	now     func() time.Time

	saves saveLocks
}

// saveLocks serializes writes per document so that each posted draft is sent
// in turn and the last one wins.
type saveLocks struct {
	mu    sync.Mutex
	byKey map[string]*semaphore.Weighted
}

func (l *saveLocks) get(key string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.byKey == nil {
		l.byKey = make(map[string]*semaphore.Weighted)
	}
	sem, ok := l.byKey[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.byKey[key] = sem
	}
	return sem
}

func NewViewHandler(gw editor.Gateway, log logger.Logger) *ViewHandler {
	return &ViewHandler{gateway: gw, logger: log, now: time.Now}
}

// Home renders the read-only page. Anything short of a loaded document shows
// the loading indicator; fetch errors are only logged.
func (h *ViewHandler) Home(c *gin.Context) {
	page := homePage{
		PageTitle: "Portfolio",
		Nav:       newNav(c.Request.URL.Path),
		Flash:     flashes[c.Query("saved")],
		Year:      h.now().Year(),
	}

	p, err := h.gateway.Fetch(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch portfolio", err)
	} else if p != nil {
		page.Portfolio = p
		page.PageTitle = p.Name + " | Portfolio"
	}

	c.HTML(http.StatusOK, "home.html", page)
}

func (h *ViewHandler) renderAdmin(c *gin.Context, status int, ed *editor.Editor, errMsg string) {
	page := adminPage{
		PageTitle: "Admin Panel",
		Nav:       newNav(c.Request.URL.Path),
		Draft:     ed.Draft(),
		Error:     errMsg,
	}
	if id := ed.ExistingID(); id != nil {
		page.ID = id.String()
	}
	c.HTML(status, "admin.html", page)
}

func (h *ViewHandler) Admin(c *gin.Context) {
	ed := editor.New(h.gateway, h.logger)
	ed.Load(c.Request.Context())
	h.renderAdmin(c, http.StatusOK, ed, "")
}

// SubmitAdmin handles every button on the editor form.
func (h *ViewHandler) SubmitAdmin(c *gin.Context) {
	ed := editor.New(h.gateway, h.logger)
	if err := c.Request.ParseForm(); err != nil {
		h.logger.Warn("Failed to parse admin form", zap.Error(err))
		h.renderAdmin(c, http.StatusBadRequest, ed, msgBadForm)
		return
	}
	form, err := restoreEditor(ed, c.Request.PostForm)
	if err != nil {
		h.logger.Warn("Rejected admin form", zap.Error(err))
		h.renderAdmin(c, http.StatusBadRequest, ed, msgBadForm)
		return
	}

	action, index, err := parseAction(form.Action)
	if err != nil {
		h.renderAdmin(c, http.StatusBadRequest, ed, msgBadForm)
		return
	}

	switch action {
	case actionAddProject:
		ed.AddProject()
		h.renderAdmin(c, http.StatusOK, ed, "")
	case actionRemoveProject:
		if err := ed.RemoveProject(index); err != nil {
			h.renderAdmin(c, http.StatusBadRequest, ed, msgBadForm)
			return
		}
		h.renderAdmin(c, http.StatusOK, ed, "")
	case actionSave, "":
		h.save(c, ed)
	default:
		h.renderAdmin(c, http.StatusBadRequest, ed, msgBadForm)
	}
}

func (h *ViewHandler) save(c *gin.Context, ed *editor.Editor) {
	if err := ed.Draft().ToPortfolio().Validate(); err != nil {
		h.renderAdmin(c, http.StatusBadRequest, ed, msgNameRequired)
		return
	}

	key := "create"
	if id := ed.ExistingID(); id != nil {
		key = id.String()
	}
	ctx := c.Request.Context()
	lock := h.saves.get(key)
	if err := lock.Acquire(ctx, 1); err != nil {
		h.logger.Warn("Portfolio save abandoned while waiting", zap.String("key", key), zap.Error(err))
		h.renderAdmin(c, http.StatusBadGateway, ed, msgSaveFailed)
		return
	}
	res, err := ed.Submit(ctx)
	lock.Release(1)
	if err != nil {
		if !errors.Is(err, editor.ErrSaveFailed) {
			h.logger.Error("Portfolio save error", err)
		}
		h.renderAdmin(c, http.StatusBadGateway, ed, msgSaveFailed)
		return
	}

	saved := "updated"
	if res.Created {
		saved = "created"
	}
	c.Redirect(http.StatusSeeOther, "/?saved="+saved)
}
