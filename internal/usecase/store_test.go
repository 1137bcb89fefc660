package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/shopspring/decimal"
)

func TestProductStoreDefaults(t *testing.T) {
	store := NewProductStore(&fakeProductAPI{}, logger.NewNopLogger())
	state := store.State()

	if len(state.Items) != 0 || state.Items == nil {
		t.Fatalf("expected empty non-nil items, got %#v", state.Items)
	}
	if state.Loading || state.Error != "" {
		t.Fatalf("expected idle state, got loading=%v error=%q", state.Loading, state.Error)
	}
	if state.Page != (domain.PageInfo{CurrentPage: 0, PageSize: 10, TotalPages: 0, TotalElements: 0}) {
		t.Fatalf("unexpected pagination: %+v", state.Page)
	}
	if state.Filter != (domain.ListFilter{Search: "", SortBy: "", SortDirection: "asc"}) {
		t.Fatalf("unexpected filter: %+v", state.Filter)
	}

	suggestions := NewProductionSuggestionStore(&fakeSuggestionAPI{}, logger.NewNopLogger()).State()
	if suggestions.Filter != (domain.SuggestionFilter{}) {
		t.Fatalf("unexpected suggestion filter: %+v", suggestions.Filter)
	}
}

func TestProductStoreFetchSuccess(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(0, 10, 2, "Widget", "Gadget")}
	store := NewProductStore(api, logger.NewNopLogger())

	filter := domain.ListFilter{Search: "dg", SortBy: "name", SortDirection: domain.SortDesc}
	store.Fetch(context.Background(), 0, 10, filter)

	state := store.State()
	if len(state.Items) != 2 || state.Items[1].Name != "Gadget" {
		t.Fatalf("unexpected items: %+v", state.Items)
	}
	if state.Page.TotalElements != 2 || state.Page.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", state.Page)
	}
	if state.Filter != filter {
		t.Fatalf("filter not persisted: %+v", state.Filter)
	}
	if state.Loading || state.Error != "" {
		t.Fatalf("expected idle state, got loading=%v error=%q", state.Loading, state.Error)
	}
}

func TestProductStoreFetchFailureKeepsItems(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(0, 10, 1, "Widget")}
	store := NewProductStore(api, logger.NewNopLogger())
	store.Fetch(context.Background(), 0, 10, domain.NewListFilter())

	api.listErr = e.NewAPIError(http.StatusBadRequest, "Invalid sort field")
	store.Fetch(context.Background(), 1, 10, domain.ListFilter{SortBy: "bogus", SortDirection: "asc"})

	state := store.State()
	if state.Error != "Invalid sort field" {
		t.Fatalf("expected backend message, got %q", state.Error)
	}
	if len(state.Items) != 1 || state.Items[0].Name != "Widget" {
		t.Fatalf("items must be unchanged, got %+v", state.Items)
	}
	if state.Page.CurrentPage != 0 || state.Filter.SortBy != "" {
		t.Fatalf("pagination and filter must be unchanged, got %+v %+v", state.Page, state.Filter)
	}

	api.listErr = e.ErrTransport
	store.Fetch(context.Background(), 0, 10, domain.NewListFilter())
	if got := store.State().Error; got != "Failed to load products" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestProductStoreRange(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(4, 10, 47, "a", "b", "c", "d", "e", "f", "g")}
	store := NewProductStore(api, logger.NewNopLogger())
	store.Fetch(context.Background(), 4, 10, domain.NewListFilter())

	page := store.State().Page
	if page.From() != 41 || page.To() != 47 {
		t.Fatalf("expected 41 to 47, got %d to %d", page.From(), page.To())
	}
	if page.HasNext() || !page.HasPrevious() {
		t.Fatalf("unexpected navigation flags: next=%v previous=%v", page.HasNext(), page.HasPrevious())
	}
}

func TestProductStoreUpdateInPlace(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(0, 10, 2, "Widget", "Gadget")}
	store := NewProductStore(api, logger.NewNopLogger())
	store.Fetch(context.Background(), 0, 10, domain.NewListFilter())

	input := domain.Product{ID: ptr(1), Name: "Updated", Value: decimal.NewFromInt(200)}
	api.updateResult = &domain.Product{ID: ptr(1), Name: "Updated", Value: decimal.NewFromInt(200)}

	updated, err := store.Update(context.Background(), 1, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Updated" {
		t.Fatalf("unexpected result: %+v", updated)
	}

	if len(api.updateCalls) != 1 || api.updateCalls[0].ID != 1 {
		t.Fatalf("unexpected update calls: %+v", api.updateCalls)
	}
	call := api.updateCalls[0].Product
	if *call.ID != 1 || call.Name != "Updated" || !call.Value.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected update body: %+v", call)
	}

	state := store.State()
	if state.Items[0].Name != "Updated" || state.Items[1].Name != "Gadget" {
		t.Fatalf("expected item 1 replaced in place, got %+v", state.Items)
	}
	if len(api.calls()) != 1 {
		t.Fatalf("update must not refetch, got %d list calls", len(api.calls()))
	}
}

func TestProductStoreUpdateWithoutMatch(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(0, 10, 1, "Widget")}
	store := NewProductStore(api, logger.NewNopLogger())
	store.Fetch(context.Background(), 0, 10, domain.NewListFilter())

	api.updateResult = &domain.Product{ID: ptr(99), Name: "Elsewhere"}
	if _, err := store.Update(context.Background(), 99, domain.Product{Name: "Elsewhere"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := store.State()
	if len(state.Items) != 1 || state.Items[0].Name != "Widget" || state.Error != "" {
		t.Fatalf("cache must be unchanged, got %+v error=%q", state.Items, state.Error)
	}
}

func TestProductStoreUpdateWithEmptyBodyRefetches(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(0, 10, 2, "Widget", "Gadget")}
	store := NewProductStore(api, logger.NewNopLogger())
	store.Fetch(context.Background(), 0, 10, domain.NewListFilter())

	// 204 No Content: клиент возвращает запись без полей.
	api.updateResult = &domain.Product{}
	api.listResult = productPage(0, 10, 2, "Updated", "Gadget")

	if _, err := store.Update(context.Background(), 1, domain.Product{ID: ptr(1), Name: "Updated"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := store.State()
	if len(state.Items) != 2 || state.Items[0].ID == nil || state.Items[0].Name != "Updated" {
		t.Fatalf("cached row must not be blanked, got %+v", state.Items)
	}
	if len(api.calls()) != 2 {
		t.Fatalf("empty update body must trigger one refetch, got %d list calls", len(api.calls()))
	}
}

func TestProductStoreDeleteRefetchesCurrentPage(t *testing.T) {
	api := &fakeProductAPI{listResult: productPage(2, 20, 60, "x")}
	store := NewProductStore(api, logger.NewNopLogger())

	filter := domain.ListFilter{Search: "x", SortDirection: domain.SortAsc}
	store.Fetch(context.Background(), 2, 20, filter)

	if err := store.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := api.calls()
	if len(calls) != 2 {
		t.Fatalf("expected refetch after delete, got %d list calls", len(calls))
	}
	if calls[1] != domain.NewListQuery(2, 20, filter) {
		t.Fatalf("refetch must keep page, size and filter, got %+v", calls[1])
	}
	if store.State().Loading {
		t.Fatalf("loading must be false after delete")
	}
}

func TestProductStoreCreateFailureReraises(t *testing.T) {
	api := &fakeProductAPI{
		listResult: productPage(0, 10, 0),
		createErr:  e.NewAPIError(http.StatusConflict, "Product name already exists"),
	}
	store := NewProductStore(api, logger.NewNopLogger())

	_, err := store.Create(context.Background(), *domain.NewProduct("Widget", decimal.NewFromInt(1)))

	var apiErr *e.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected api error to be re-raised, got %v", err)
	}

	state := store.State()
	if state.Error != "Product name already exists" || state.Loading {
		t.Fatalf("unexpected state: loading=%v error=%q", state.Loading, state.Error)
	}
	if len(api.calls()) != 0 {
		t.Fatalf("failed create must not refetch")
	}
}

func TestStoreDiscardsStaleResponse(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	api := &fakeProductAPI{}
	api.listHook = func(q domain.ListQuery) (*domain.Page[domain.Product], error) {
		if q.Page == 0 {
			close(entered)
			<-release
			return productPage(0, 10, 1, "stale"), nil
		}

		return productPage(q.Page, 10, 20, "fresh"), nil
	}
	store := NewProductStore(api, logger.NewNopLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Fetch(context.Background(), 0, 10, domain.NewListFilter())
	}()

	<-entered
	if !store.State().Loading {
		t.Fatalf("expected loading while a fetch is in flight")
	}

	store.Fetch(context.Background(), 1, 10, domain.NewListFilter())
	close(release)
	wg.Wait()

	state := store.State()
	if len(state.Items) != 1 || state.Items[0].Name != "fresh" || state.Page.CurrentPage != 1 {
		t.Fatalf("stale response must be discarded, got %+v page=%d", state.Items, state.Page.CurrentPage)
	}
	if state.Loading {
		t.Fatalf("loading must be false when nothing is in flight")
	}
}

func TestRawMaterialOptions(t *testing.T) {
	api := &fakeRawMaterialAPI{all: []domain.RawMaterial{{ID: ptr(1), Name: "Steel"}}}
	store := NewRawMaterialStore(api, logger.NewNopLogger())

	if options := store.Options(context.Background()); len(options) != 1 || options[0].Name != "Steel" {
		t.Fatalf("unexpected options: %+v", options)
	}

	api.allErr = e.ErrTransport
	options := store.Options(context.Background())
	if options == nil || len(options) != 0 {
		t.Fatalf("expected empty list on failure, got %#v", options)
	}
	if store.State().Error != "" {
		t.Fatalf("options failure must not touch store state")
	}
}

func TestRawMaterialFetchFallback(t *testing.T) {
	store := NewRawMaterialStore(&fakeRawMaterialAPI{listErr: e.ErrTransport}, logger.NewNopLogger())
	store.Fetch(context.Background(), 0, 10, domain.NewListFilter())

	if got := store.State().Error; got != "Failed to fetch raw materials" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestSuggestionSetters(t *testing.T) {
	api := &fakeSuggestionAPI{}
	store := NewProductionSuggestionStore(api, logger.NewNopLogger())

	store.SetSearchName(context.Background(), "chair")
	store.SetPage(context.Background(), 3)
	store.SetPageSize(context.Background(), 20)

	queries := api.queries()
	if len(queries) != 3 {
		t.Fatalf("expected one fetch per setter, got %d", len(queries))
	}
	if queries[1].Page != 3 || queries[1].Filter.SearchName != "chair" {
		t.Fatalf("SetPage must keep filters, got %+v", queries[1])
	}
	if queries[2].Page != 0 || queries[2].Size != 20 || queries[2].Filter.SearchName != "chair" {
		t.Fatalf("SetPageSize must reset page, got %+v", queries[2])
	}

	store.SetSortDirection(context.Background(), domain.SortAsc)
	queries = api.queries()
	last := queries[len(queries)-1]
	if last.Page != 0 || last.Filter.SortDirection != domain.SortAsc || last.Filter.SearchName != "chair" {
		t.Fatalf("unexpected query after SetSortDirection: %+v", last)
	}
}

func TestSuggestionSetPageSizeFetchesOnce(t *testing.T) {
	api := &fakeSuggestionAPI{}
	store := NewProductionSuggestionStore(api, logger.NewNopLogger())

	store.SetPageSize(context.Background(), 20)

	queries := api.queries()
	if len(queries) != 1 {
		t.Fatalf("expected exactly one fetch, got %d", len(queries))
	}
	if queries[0].Page != 0 || queries[0].Size != 20 {
		t.Fatalf("unexpected query: %+v", queries[0])
	}

	page := store.State().Page
	if page.CurrentPage != 0 || page.PageSize != 20 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
}

func TestAssociationStoreScopedByProduct(t *testing.T) {
	api := &fakeAssociationAPI{byProduct: map[int64][]domain.ProductRawMaterial{
		1: {{ProductID: ptr(1), RawMaterialID: 10, RawMaterialName: "Steel"}},
		2: {{ProductID: ptr(2), RawMaterialID: 20, RawMaterialName: "Wood"}, {ProductID: ptr(2), RawMaterialID: 21, RawMaterialName: "Glue"}},
	}}
	store := NewProductRawMaterialStore(api, logger.NewNopLogger())

	store.Fetch(context.Background(), 1, 0, 10)
	if state := store.State(); state.Filter != 1 || len(state.Items) != 1 {
		t.Fatalf("unexpected state for product 1: %+v", state)
	}

	store.Fetch(context.Background(), 2, 0, 10)
	state := store.State()
	if state.Filter != 2 || len(state.Items) != 2 {
		t.Fatalf("unexpected state for product 2: %+v", state)
	}
	for _, item := range state.Items {
		if *item.ProductID != 2 {
			t.Fatalf("lists of different products must not mix: %+v", state.Items)
		}
	}

	if _, err := store.Update(context.Background(), 2, 21, *domain.NewProductRawMaterial(21, decimal.RequireFromString("1.5"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(context.Background(), 2, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.updateCalls[0] != (associationCall{ProductID: 2, RawMaterialID: 21}) {
		t.Fatalf("unexpected update call: %+v", api.updateCalls[0])
	}
	if api.deleteCalls[0] != (associationCall{ProductID: 2, RawMaterialID: 20}) {
		t.Fatalf("unexpected delete call: %+v", api.deleteCalls[0])
	}
	for _, call := range api.listCalls[2:] {
		if call.ProductID != 2 {
			t.Fatalf("refetch must target product 2, got %+v", call)
		}
	}
}

func TestAssociationRefreshForOtherProductStartsFromFirstPage(t *testing.T) {
	api := &fakeAssociationAPI{byProduct: map[int64][]domain.ProductRawMaterial{}}
	store := NewProductRawMaterialStore(api, logger.NewNopLogger())

	store.Fetch(context.Background(), 1, 3, 5)
	if _, err := store.Create(context.Background(), 2, *domain.NewProductRawMaterial(7, decimal.NewFromInt(1))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := api.listCalls[len(api.listCalls)-1]
	if last != (associationListCall{ProductID: 2, Page: 0, Size: 5}) {
		t.Fatalf("unexpected refresh call: %+v", last)
	}
	if store.State().Filter != 2 {
		t.Fatalf("store must now show product 2")
	}
}

func TestAssociationMutationFailure(t *testing.T) {
	api := &fakeAssociationAPI{byProduct: map[int64][]domain.ProductRawMaterial{}, err: e.ErrTransport}
	store := NewProductRawMaterialStore(api, logger.NewNopLogger())

	err := store.Delete(context.Background(), 1, 2)
	if !errors.Is(err, e.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got := store.State().Error; got != "Failed to delete association" {
		t.Fatalf("unexpected error message %q", got)
	}
	if len(api.listCalls) != 0 {
		t.Fatalf("failed delete must not refetch")
	}
}

func TestAssociationFetchFailureForOtherProductClearsRows(t *testing.T) {
	api := &fakeAssociationAPI{byProduct: map[int64][]domain.ProductRawMaterial{
		1: {{ProductID: ptr(1), RawMaterialID: 10, RawMaterialName: "Steel"}},
	}}
	store := NewProductRawMaterialStore(api, logger.NewNopLogger())

	store.Fetch(context.Background(), 1, 2, 5)
	if state := store.State(); len(state.Items) != 1 {
		t.Fatalf("unexpected state for product 1: %+v", state)
	}

	api.listErr = e.ErrTransport
	store.Fetch(context.Background(), 2, 0, 5)

	state := store.State()
	if state.Filter != 2 {
		t.Fatalf("store must belong to product 2, got %d", state.Filter)
	}
	if len(state.Items) != 0 {
		t.Fatalf("rows of product 1 must not be shown for product 2: %+v", state.Items)
	}
	if state.Page.CurrentPage != 0 || state.Page.TotalElements != 0 || state.Page.PageSize != 5 {
		t.Fatalf("unexpected pagination: %+v", state.Page)
	}
	if state.Error != "Failed to fetch associations" {
		t.Fatalf("unexpected error message %q", state.Error)
	}
}

func TestAssociationFetchFailureForSameProductKeepsRows(t *testing.T) {
	api := &fakeAssociationAPI{byProduct: map[int64][]domain.ProductRawMaterial{
		1: {{ProductID: ptr(1), RawMaterialID: 10, RawMaterialName: "Steel"}},
	}}
	store := NewProductRawMaterialStore(api, logger.NewNopLogger())

	store.Fetch(context.Background(), 1, 0, 10)
	api.listErr = e.NewAPIError(http.StatusNotFound, "Product not found")
	store.Fetch(context.Background(), 1, 0, 10)

	state := store.State()
	if len(state.Items) != 1 {
		t.Fatalf("failed refetch of the same product must keep rows: %+v", state.Items)
	}
	if state.Error != "Product not found" {
		t.Fatalf("backend message must win over fallback, got %q", state.Error)
	}
}

func TestSuggestionFetchFailure(t *testing.T) {
	api := &fakeSuggestionAPI{err: e.ErrTransport}
	store := NewProductionSuggestionStore(api, logger.NewNopLogger())

	store.Refresh(context.Background())

	state := store.State()
	if state.Error != "Failed to load production suggestions" {
		t.Fatalf("unexpected error message %q", state.Error)
	}
	if state.Loading {
		t.Fatalf("loading must be reset after failure")
	}
}

func TestSuggestionSetPageFailureKeepsRequestedPage(t *testing.T) {
	api := &fakeSuggestionAPI{err: e.ErrTransport}
	store := NewProductionSuggestionStore(api, logger.NewNopLogger())

	store.SetSearchName(context.Background(), "chair")
	store.SetPage(context.Background(), 4)

	state := store.State()
	if state.Page.CurrentPage != 4 {
		t.Fatalf("requested page must survive a failed fetch, got %d", state.Page.CurrentPage)
	}
	if state.Filter.SearchName != "chair" {
		t.Fatalf("filter must survive a failed fetch, got %+v", state.Filter)
	}
	if state.Error != "Failed to load production suggestions" {
		t.Fatalf("unexpected error message %q", state.Error)
	}

	queries := api.queries()
	if last := queries[len(queries)-1]; last.Page != 4 {
		t.Fatalf("unexpected query: %+v", last)
	}
}
