package domain

import "fmt"

const (
	DefaultPageSize = 10
)

// PageSizeOptions - размеры страницы, доступные в списках.
var PageSizeOptions = []int{5, 10, 20, 50, 100}

// Page - конверт постраничного ответа инвентарного API.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// Info возвращает курсоры пагинации из конверта.
func (p *Page[T]) Info() PageInfo {
	return PageInfo{
		CurrentPage:   p.PageNumber,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

// PageInfo - курсоры пагинации, которые хранит store.
type PageInfo struct {
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

func NewPageInfo() PageInfo {
	return PageInfo{PageSize: DefaultPageSize}
}

// From - номер первой записи текущей страницы (с единицы), 0 для пустого списка.
func (p PageInfo) From() int64 {
	if p.TotalElements == 0 {
		return 0
	}

	return int64(p.CurrentPage)*int64(p.PageSize) + 1
}

// To - номер последней записи текущей страницы.
func (p PageInfo) To() int64 {
	return min(int64(p.CurrentPage+1)*int64(p.PageSize), p.TotalElements)
}

func (p PageInfo) HasPrevious() bool {
	return p.CurrentPage > 0
}

func (p PageInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages-1
}

// Summary формирует строку вида "Showing 1 to 10 of 47 results".
func (p PageInfo) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d results", p.From(), p.To(), p.TotalElements)
}
