package domain

const (
	ViewProducts              = "products"
	ViewRawMaterials          = "raw-materials"
	ViewProductionSuggestions = "production-suggestions"
)

// ViewState - активные фильтры списков одной сессии.
// Сохраняется между пересозданиями рабочего пространства; номера страниц не сохраняются,
// так как курсоры пагинации всегда берутся из ответа бэкенда.
type ViewState struct {
	Products     ListFilter       `json:"products"`
	RawMaterials ListFilter       `json:"rawMaterials"`
	Suggestions  SuggestionFilter `json:"suggestions"`
}

func NewViewState() *ViewState {
	return &ViewState{
		Products:     NewListFilter(),
		RawMaterials: NewListFilter(),
	}
}
