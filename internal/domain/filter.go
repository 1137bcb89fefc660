package domain

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilter - активные фильтры списков продуктов и сырья
type ListFilter struct {
	Search        string `json:"search"`
	SortBy        string `json:"sortBy"`
	SortDirection string `json:"sortDirection"`
}

func NewListFilter() ListFilter {
	return ListFilter{SortDirection: SortAsc}
}

// ListQuery - параметры запроса страницы списка
type ListQuery struct {
	Page   int
	Size   int
	Filter ListFilter
}

func NewListQuery(page, size int, filter ListFilter) ListQuery {
	return ListQuery{Page: page, Size: size, Filter: filter}
}

// SuggestionFilter - активные фильтры рекомендаций по выпуску.
// Пустое направление сортировки означает порядок бэкенда по приоритету.
type SuggestionFilter struct {
	SearchName    string `json:"searchName"`
	SortDirection string `json:"sortDirection"`
}

type SuggestionQuery struct {
	Page   int
	Size   int
	Filter SuggestionFilter
}

func NewSuggestionQuery(page, size int, filter SuggestionFilter) SuggestionQuery {
	return SuggestionQuery{Page: page, Size: size, Filter: filter}
}
