package converter

// ViewStateVersion - версия формата; записи другой версии считаются промахом.
const ViewStateVersion = 1

type ViewStateRedisModel struct {
	Products     ListFilterRedisModel       `json:"products"`
	RawMaterials ListFilterRedisModel       `json:"raw_materials"`
	Suggestions  SuggestionFilterRedisModel `json:"suggestions"`
	Version      int                        `json:"version"`
}

type ListFilterRedisModel struct {
	Search        string `json:"search,omitempty"`
	SortBy        string `json:"sort_by,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
}

type SuggestionFilterRedisModel struct {
	SearchName    string `json:"search_name,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
}
