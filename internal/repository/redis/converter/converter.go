package converter

import "github.com/DRSN-tech/production-admin/internal/domain"

// ViewStateConverter переводит состояние экрана между доменом и моделью Redis.
type ViewStateConverter struct{}

func NewViewStateConverter() ViewStateConverter {
	return ViewStateConverter{}
}

func (ViewStateConverter) ToRedisModel(entity *domain.ViewState) *ViewStateRedisModel {
	return &ViewStateRedisModel{
		Products:     toListFilterModel(entity.Products),
		RawMaterials: toListFilterModel(entity.RawMaterials),
		Suggestions: SuggestionFilterRedisModel{
			SearchName:    entity.Suggestions.SearchName,
			SortDirection: entity.Suggestions.SortDirection,
		},
		Version: ViewStateVersion,
	}
}

func (ViewStateConverter) ToDomain(model *ViewStateRedisModel) *domain.ViewState {
	return &domain.ViewState{
		Products:     toListFilter(model.Products),
		RawMaterials: toListFilter(model.RawMaterials),
		Suggestions: domain.SuggestionFilter{
			SearchName:    model.Suggestions.SearchName,
			SortDirection: model.Suggestions.SortDirection,
		},
	}
}

func toListFilterModel(filter domain.ListFilter) ListFilterRedisModel {
	return ListFilterRedisModel{
		Search:        filter.Search,
		SortBy:        filter.SortBy,
		SortDirection: filter.SortDirection,
	}
}

// toListFilter подставляет направление по умолчанию, если оно не сохранено.
func toListFilter(model ListFilterRedisModel) domain.ListFilter {
	filter := domain.NewListFilter()
	filter.Search = model.Search
	filter.SortBy = model.SortBy
	if model.SortDirection != "" {
		filter.SortDirection = model.SortDirection
	}

	return filter
}
