package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

func ptr(v int64) *int64 {
	return &v
}

func productPage(page, size int, total int64, names ...string) *domain.Page[domain.Product] {
	content := make([]domain.Product, 0, len(names))
	for i, name := range names {
		content = append(content, domain.Product{ID: ptr(int64(i + 1)), Name: name})
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return &domain.Page[domain.Product]{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

type updateCall struct {
	ID      int64
	Product domain.Product
}

// fakeProductAPI отвечает заранее заданными значениями и запоминает вызовы.
type fakeProductAPI struct {
	mu sync.Mutex

	listResult *domain.Page[domain.Product]
	listErr    error
	listCalls  []domain.ListQuery
	// listHook, если задан, отвечает вместо listResult/listErr.
	listHook func(q domain.ListQuery) (*domain.Page[domain.Product], error)

	createResult *domain.Product
	createErr    error

	updateResult *domain.Product
	updateErr    error
	updateCalls  []updateCall

	deleteErr   error
	deleteCalls []int64
}

func (f *fakeProductAPI) List(_ context.Context, q domain.ListQuery) (*domain.Page[domain.Product], error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, q)
	hook := f.listHook
	result, err := f.listResult, f.listErr
	f.mu.Unlock()

	if hook != nil {
		return hook(q)
	}

	return result, err
}

func (f *fakeProductAPI) GetByID(_ context.Context, productID int64) (*domain.Product, error) {
	return &domain.Product{ID: ptr(productID), Name: "Widget"}, nil
}

func (f *fakeProductAPI) Create(_ context.Context, product domain.Product) (*domain.Product, error) {
	return f.createResult, f.createErr
}

func (f *fakeProductAPI) Update(_ context.Context, productID int64, product domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls = append(f.updateCalls, updateCall{ID: productID, Product: product})
	return f.updateResult, f.updateErr
}

func (f *fakeProductAPI) Delete(_ context.Context, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, productID)
	return f.deleteErr
}

func (f *fakeProductAPI) calls() []domain.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.ListQuery(nil), f.listCalls...)
}

type fakeRawMaterialAPI struct {
	listResult *domain.Page[domain.RawMaterial]
	listErr    error
	all        []domain.RawMaterial
	allErr     error
}

func (f *fakeRawMaterialAPI) List(context.Context, domain.ListQuery) (*domain.Page[domain.RawMaterial], error) {
	return f.listResult, f.listErr
}

func (f *fakeRawMaterialAPI) GetByID(context.Context, int64) (*domain.RawMaterial, error) {
	return nil, e.NewAPIError(404, "Raw material not found")
}

func (f *fakeRawMaterialAPI) Create(_ context.Context, item domain.RawMaterial) (*domain.RawMaterial, error) {
	return &item, nil
}

func (f *fakeRawMaterialAPI) Update(_ context.Context, _ int64, item domain.RawMaterial) (*domain.RawMaterial, error) {
	return &item, nil
}

func (f *fakeRawMaterialAPI) Delete(context.Context, int64) error {
	return nil
}

func (f *fakeRawMaterialAPI) ListAll(context.Context) ([]domain.RawMaterial, error) {
	return f.all, f.allErr
}

type associationListCall struct {
	ProductID  int64
	Page, Size int
}

type associationCall struct {
	ProductID     int64
	RawMaterialID int64
}

// fakeAssociationAPI хранит связи по продуктам и отдает их постранично.
type fakeAssociationAPI struct {
	mu          sync.Mutex
	byProduct   map[int64][]domain.ProductRawMaterial
	listCalls   []associationListCall
	updateCalls []associationCall
	deleteCalls []associationCall
	createCalls []int64
	listErr     error
	err         error
}

func (f *fakeAssociationAPI) List(_ context.Context, productID int64, page, size int) (*domain.Page[domain.ProductRawMaterial], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, associationListCall{ProductID: productID, Page: page, Size: size})
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := f.byProduct[productID]

	return &domain.Page[domain.ProductRawMaterial]{
		Content:       items,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: int64(len(items)),
		TotalPages:    1,
	}, nil
}

func (f *fakeAssociationAPI) Get(_ context.Context, productID, rawMaterialID int64) (*domain.ProductRawMaterial, error) {
	return &domain.ProductRawMaterial{ProductID: ptr(productID), RawMaterialID: rawMaterialID}, nil
}

func (f *fakeAssociationAPI) Create(_ context.Context, productID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls = append(f.createCalls, productID)
	if f.err != nil {
		return nil, f.err
	}

	association.ProductID = ptr(productID)
	f.byProduct[productID] = append(f.byProduct[productID], association)
	return &association, nil
}

func (f *fakeAssociationAPI) Update(_ context.Context, productID, rawMaterialID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls = append(f.updateCalls, associationCall{ProductID: productID, RawMaterialID: rawMaterialID})
	if f.err != nil {
		return nil, f.err
	}

	return &association, nil
}

func (f *fakeAssociationAPI) Delete(_ context.Context, productID, rawMaterialID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, associationCall{ProductID: productID, RawMaterialID: rawMaterialID})
	return f.err
}

type fakeSuggestionAPI struct {
	mu    sync.Mutex
	calls []domain.SuggestionQuery
	pages map[int]*domain.Page[domain.ProductionSuggestion]
	err   error
}

func (f *fakeSuggestionAPI) List(_ context.Context, q domain.SuggestionQuery) (*domain.Page[domain.ProductionSuggestion], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	if page, ok := f.pages[q.Page]; ok {
		return page, nil
	}

	return &domain.Page[domain.ProductionSuggestion]{PageNumber: q.Page, PageSize: q.Size}, nil
}

func (f *fakeSuggestionAPI) queries() []domain.SuggestionQuery {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.SuggestionQuery(nil), f.calls...)
}

// memoryViewStates - ViewStateRepository в памяти для тестов.
type memoryViewStates struct {
	mu      sync.Mutex
	states  map[string]domain.ViewState
	saves   int
	sweeps  int
	failGet error
}

func newMemoryViewStates() *memoryViewStates {
	return &memoryViewStates{states: make(map[string]domain.ViewState)}
}

func (m *memoryViewStates) Get(_ context.Context, sessionID string) (*domain.ViewState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet != nil {
		return nil, m.failGet
	}
	state, ok := m.states[sessionID]
	if !ok {
		return nil, e.ErrSessionNotFound
	}

	return &state, nil
}

func (m *memoryViewStates) Save(_ context.Context, sessionID string, state *domain.ViewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	m.states[sessionID] = *state
	return nil
}

func (m *memoryViewStates) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweeps++
	return 0
}

func (m *memoryViewStates) sweepCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sweeps
}

func (m *memoryViewStates) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, sessionID)
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
}

func (r *recordingAudit) Publish(event *domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

type fakeReportsInfra struct {
	uploads []*UploadReportReq
	err     error
}

func (f *fakeReportsInfra) UploadReport(_ context.Context, req *UploadReportReq) (*UploadReportRes, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.uploads = append(f.uploads, req)
	return NewUploadReportRes("reports/production-suggestions/r1."+req.Format, "http://minio/presigned"), nil
}
