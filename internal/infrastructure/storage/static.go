package storage

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"businessbites/internal/domain"
	"businessbites/internal/ports"
)

//go:embed dataset.json
var embeddedDataset []byte

// Static serves article rows from a fixed in-memory dataset. It never fails
// at request time, which makes it a safe mid-chain fallback when the
// relational backends are unreachable.
type Static struct {
	rows []domain.ArticleRow
}

var _ ports.RowSource = (*Static)(nil)

// NewStatic parses the dataset compiled into the binary.
func NewStatic() (*Static, error) {
	return newStaticFromBytes(embeddedDataset)
}

// NewStaticFromFile loads a dataset snapshot from disk instead of the
// embedded one.
func NewStaticFromFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return newStaticFromBytes(raw)
}

func newStaticFromBytes(raw []byte) (*Static, error) {
	var rows []domain.ArticleRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	for i := range rows {
		if rows[i].SequenceNo == 0 {
			rows[i].SequenceNo = int64(i + 1)
		}
	}

	return &Static{rows: rows}, nil
}

// Name identifies the backend inside the fallback chain.
func (s *Static) Name() string {
	return "static"
}

// FetchRows filters the dataset by exact market match, arrival order.
func (s *Static) FetchRows(_ context.Context, market string) ([]domain.ArticleRow, error) {
	out := make([]domain.ArticleRow, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Market == market {
			out = append(out, row)
		}
	}
	return out, nil
}

// FetchRowsByID returns every dataset row of one story.
func (s *Static) FetchRowsByID(_ context.Context, newsID string) ([]domain.ArticleRow, error) {
	out := make([]domain.ArticleRow, 0, 2)
	for _, row := range s.rows {
		if row.NewsID == newsID {
			out = append(out, row)
		}
	}
	return out, nil
}
