package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"businessbites/internal/domain"
	"businessbites/internal/usecase"
)

const defaultMarket = "US"

// BitesHandler serves the grouped news endpoints.
type BitesHandler struct {
	bites  *usecase.BiteService
	logger *slog.Logger
}

// NewBitesHandler creates the news handler.
func NewBitesHandler(bites *usecase.BiteService, logger *slog.Logger) *BitesHandler {
	return &BitesHandler{bites: bites, logger: logger}
}

// GetFeed handles GET /api/news/business-bites?market=&page=.
func (h *BitesHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()

	market := marketParam(c)
	page := pageParam(c)

	feed, err := h.bites.MarketFeed(ctx, market, page)
	if err != nil {
		h.logger.Error("feed request failed", "market", market, "page", page, "error", err)
		return c.JSON(http.StatusInternalServerError, newFeedError("news backends unavailable"))
	}

	return c.JSON(http.StatusOK, feed)
}

// GetBite handles GET /api/news/business-bites/:id.
func (h *BitesHandler) GetBite(c echo.Context) error {
	ctx := c.Request().Context()
	newsID := c.Param("id")

	bite, err := h.bites.Bite(ctx, newsID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error:  "article not found",
				NewsID: notFound.NewsID,
			})
		}

		h.logger.Error("bite lookup failed", "news_id", newsID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "news backends unavailable"})
	}

	return c.JSON(http.StatusOK, bite)
}

// Search handles GET /api/news/search?q=&market=&page=.
func (h *BitesHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	term := c.QueryParam("q")
	market := marketParam(c)
	page := pageParam(c)

	feed, err := h.bites.Search(ctx, term, market, page)
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Error()})
		}

		h.logger.Error("search failed", "term", term, "market", market, "error", err)
		return c.JSON(http.StatusInternalServerError, newFeedError("news backends unavailable"))
	}

	return c.JSON(http.StatusOK, feed)
}

// marketParam normalizes the market query value. Stored markets are
// upper-case; normalizing once here keeps every backend's match consistent.
func marketParam(c echo.Context) string {
	market := strings.ToUpper(strings.TrimSpace(c.QueryParam("market")))
	if market == "" {
		return defaultMarket
	}
	return market
}

// pageParam parses the page query value, defaulting to 1. Non-numeric or
// non-positive values also fall back to 1.
func pageParam(c echo.Context) int {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
