package entity

type (
	// PageMeta describes one page of a paged listing
	PageMeta struct {
		Page            int  `json:"page"`
		Take            int  `json:"take"`
		ItemCount       int  `json:"item_count"`
		PageCount       int  `json:"page_count"`
		HasPreviousPage bool `json:"has_previous_page"`
		HasNextPage     bool `json:"has_next_page"`
	}
)

// NewPageMeta derives the paging flags from the requested window and the
// total number of matching items.
func NewPageMeta(page, take, itemCount int) PageMeta {
	if take <= 0 {
		take = 1
	}

	pageCount := (itemCount + take - 1) / take

	return PageMeta{
		Page:            page,
		Take:            take,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		HasPreviousPage: page > 1,
		HasNextPage:     page < pageCount,
	}
}
