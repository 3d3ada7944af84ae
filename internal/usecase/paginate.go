package usecase

import "businessbites/internal/domain"

// Paginate slices the post-grouping collection and computes page metadata.
// The requested page is never clamped: an out-of-range page yields an empty
// slice with HasNext=false while HasPrevious still reflects the request.
func Paginate(aggregates []domain.ArticleAggregate, page, perPage int) ([]domain.ArticleAggregate, domain.PageResult) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	total := len(aggregates)
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	result := domain.PageResult{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalArticles: total,
		HasPrevious:   page > 1,
		HasNext:       page < totalPages,
	}
	if result.HasPrevious {
		prev := page - 1
		result.PreviousPage = &prev
	}
	if result.HasNext {
		next := page + 1
		result.NextPage = &next
	}

	offset := (page - 1) * perPage
	slice := make([]domain.ArticleAggregate, 0, perPage)
	// offset wraps negative when page*perPage exceeds the int range; such a
	// page is far past the end of the collection either way.
	if offset >= 0 && offset < total {
		end := offset + perPage
		if end > total {
			end = total
		}
		slice = append(slice, aggregates[offset:end]...)
	}

	return slice, result
}
