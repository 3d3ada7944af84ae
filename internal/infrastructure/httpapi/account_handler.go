package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"businessbites/internal/domain"
	"businessbites/internal/ports"
)

// AccountHandler serves the per-user watchlist, read-later, and feedback
// endpoints. These are plain pass-through operations over the store.
type AccountHandler struct {
	watchlist ports.WatchlistRepository
	readLater ports.ReadLaterRepository
	feedback  ports.FeedbackRepository
	logger    *slog.Logger
}

// NewAccountHandler creates the account handler.
func NewAccountHandler(
	watchlist ports.WatchlistRepository,
	readLater ports.ReadLaterRepository,
	feedback ports.FeedbackRepository,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		watchlist: watchlist,
		readLater: readLater,
		feedback:  feedback,
		logger:    logger,
	}
}

// AddWatchlistRequest is the POST /api/watchlist/:userId body.
type AddWatchlistRequest struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
}

// AddReadLaterRequest is the POST /api/read-later/:userId body.
type AddReadLaterRequest struct {
	NewsID string `json:"business_bites_news_id"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// FeedbackRequest is the POST /api/feedback body.
type FeedbackRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// ListWatchlist handles GET /api/watchlist/:userId.
func (h *AccountHandler) ListWatchlist(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	entries, err := h.watchlist.ListWatchlist(ctx, userID)
	if err != nil {
		h.logger.Error("list watchlist failed", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	if entries == nil {
		entries = []domain.WatchlistEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// AddWatchlist handles POST /api/watchlist/:userId.
func (h *AccountHandler) AddWatchlist(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	var req AddWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "symbol is required"})
	}

	entry := domain.WatchlistEntry{
		UserID:  userID,
		Symbol:  symbol,
		Company: strings.TrimSpace(req.Company),
		AddedAt: time.Now().UTC(),
	}

	if err := h.watchlist.AddWatchlist(ctx, entry); err != nil {
		h.logger.Error("add watchlist failed", "user_id", userID, "symbol", symbol, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	return c.JSON(http.StatusCreated, entry)
}

// RemoveWatchlist handles DELETE /api/watchlist/:userId/:symbol.
func (h *AccountHandler) RemoveWatchlist(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")
	symbol := strings.ToUpper(c.Param("symbol"))

	if err := h.watchlist.RemoveWatchlist(ctx, userID, symbol); err != nil {
		h.logger.Error("remove watchlist failed", "user_id", userID, "symbol", symbol, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "removed"})
}

// ListReadLater handles GET /api/read-later/:userId.
func (h *AccountHandler) ListReadLater(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	entries, err := h.readLater.ListReadLater(ctx, userID)
	if err != nil {
		h.logger.Error("list read-later failed", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	if entries == nil {
		entries = []domain.ReadLaterEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// AddReadLater handles POST /api/read-later/:userId.
func (h *AccountHandler) AddReadLater(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")

	var req AddReadLaterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.NewsID) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "business_bites_news_id is required"})
	}

	entry := domain.ReadLaterEntry{
		UserID:  userID,
		NewsID:  req.NewsID,
		Title:   req.Title,
		Link:    req.Link,
		SavedAt: time.Now().UTC(),
	}

	if err := h.readLater.AddReadLater(ctx, entry); err != nil {
		h.logger.Error("add read-later failed", "user_id", userID, "news_id", req.NewsID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	return c.JSON(http.StatusCreated, entry)
}

// RemoveReadLater handles DELETE /api/read-later/:userId/:newsId.
func (h *AccountHandler) RemoveReadLater(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userId")
	newsID := c.Param("newsId")

	if err := h.readLater.RemoveReadLater(ctx, userID, newsID); err != nil {
		h.logger.Error("remove read-later failed", "user_id", userID, "news_id", newsID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "removed"})
}

// CreateFeedback handles POST /api/feedback.
func (h *AccountHandler) CreateFeedback(c echo.Context) error {
	ctx := c.Request().Context()

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
	}

	ticket := domain.Feedback{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Category:  req.Category,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.feedback.CreateFeedback(ctx, ticket); err != nil {
		h.logger.Error("create feedback failed", "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "store unavailable"})
	}

	return c.JSON(http.StatusCreated, ticket)
}
