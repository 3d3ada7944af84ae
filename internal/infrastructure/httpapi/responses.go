package httpapi

import "businessbites/internal/domain"

// ErrorResponse is the generic error body for 400/404/500 answers.
type ErrorResponse struct {
	Error  string `json:"error"`
	NewsID string `json:"news_id,omitempty"`
}

// FeedErrorResponse is the error body of the feed endpoints: clients expect
// an empty articles list and a zeroed pagination block alongside the message.
type FeedErrorResponse struct {
	Error      string                    `json:"error"`
	Articles   []domain.ArticleAggregate `json:"articles"`
	Pagination domain.PageResult         `json:"pagination"`
}

func newFeedError(message string) FeedErrorResponse {
	return FeedErrorResponse{
		Error:    message,
		Articles: []domain.ArticleAggregate{},
	}
}

// SuccessResponse acknowledges a write without a payload.
type SuccessResponse struct {
	Message string `json:"message"`
}
