package db

// withDefaults fills unset paging values with page 1 and size 10.
func (p ListRecipesParams) withDefaults() ListRecipesParams {
	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

func (p ListRecipesParams) offset() int64 {
	return int64(p.PageNumber-1) * int64(p.PageSize)
}

// NewPageInfo computes the metadata of a 1-indexed page holding itemsOnPage
// items out of totalItems.
//
// With zero items the page is both the first and the last page, and the
// first/last item ordinals are 0.
func NewPageInfo(pageNumber, pageSize int32, totalItems int64, itemsOnPage int) PageInfo {
	info := PageInfo{
		PageNumber:     pageNumber,
		PageSize:       pageSize,
		TotalItemCount: totalItems,
	}

	if pageSize > 0 {
		info.PageCount = (totalItems + int64(pageSize) - 1) / int64(pageSize)
	}

	if itemsOnPage > 0 {
		info.FirstItemOnPage = int64(pageNumber-1)*int64(pageSize) + 1
		info.LastItemOnPage = info.FirstItemOnPage + int64(itemsOnPage) - 1
	}

	info.HasPreviousPage = pageNumber > 1
	info.HasNextPage = int64(pageNumber) < info.PageCount
	info.IsFirstPage = pageNumber == 1
	info.IsLastPage = int64(pageNumber) >= info.PageCount

	return info
}
