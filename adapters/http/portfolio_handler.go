package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PortfolioHandler struct {
	getPortfolioUseCase    *portfolioUC.GetPortfolioUseCase
	createPortfolioUseCase *portfolioUC.CreatePortfolioUseCase
	updatePortfolioUseCase *portfolioUC.UpdatePortfolioUseCase
	logger                 logger.Logger
}

func NewPortfolioHandler(
	getUC *portfolioUC.GetPortfolioUseCase,
	createUC *portfolioUC.CreatePortfolioUseCase,
	updateUC *portfolioUC.UpdatePortfolioUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		getPortfolioUseCase:    getUC,
		createPortfolioUseCase: createUC,
		updatePortfolioUseCase: updateUC,
		logger:                 log,
	}
}

// GetPortfolio answers 200 with the document, or 200 null before the first create.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.getPortfolioUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if output.Portfolio == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for portfolio create", err))
		return
	}

	input := portfolioUC.CreatePortfolioInput{
		Name:     req.Name,
		Title:    req.Title,
		About:    req.About,
		Skills:   req.Skills,
		Projects: req.ToDomainProjects(),
		Contact:  portfolio.Contact(req.Contact),
	}
	output, err := h.createPortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, CreatePortfolioResponse{Portfolio: ToPortfolioDTO(output.Portfolio)})
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio ID", portfolio.ErrInvalidPortfolioID))
		return
	}

	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for portfolio update", err))
		return
	}

	input := portfolioUC.UpdatePortfolioInput{
		PortfolioID: id,
		Name:        req.Name,
		Title:       req.Title,
		About:       req.About,
		Skills:      req.Skills,
		Projects:    req.ToDomainProjects(),
		Contact:     portfolio.Contact(req.Contact),
	}
	output, err := h.updatePortfolioUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}
