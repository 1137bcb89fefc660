package usecase

import (
	"context"
	"slices"
	"sync"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

// pagedStore хранит последнюю загруженную страницу, курсоры пагинации, активный фильтр
// и статус загрузки/ошибки. Сетевые вызовы выполняются вне блокировки.
//
// Каждая выборка получает порядковый номер; ответ, который старше уже примененного,
// отбрасывается. Loading истинно, пока выполняется хотя бы один вызов.
type pagedStore[T any, F any] struct {
	mu       sync.RWMutex
	items    []T
	page     domain.PageInfo
	filter   F
	inFlight int
	err      string
	issued   uint64
	applied  uint64
	logger   logger.Logger
}

func newPagedStore[T any, F any](filter F, logger logger.Logger) *pagedStore[T, F] {
	return &pagedStore[T, F]{
		items:  []T{},
		page:   domain.NewPageInfo(),
		filter: filter,
		logger: logger,
	}
}

// begin переводит store в фазу загрузки и возвращает номер запроса.
func (s *pagedStore[T, F]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight++
	s.err = ""
	s.issued++

	return s.issued
}

func (s *pagedStore[T, F]) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight--
}

// fetch выполняет выборку страницы. Ошибка не возвращается: она сохраняется в состоянии.
func (s *pagedStore[T, F]) fetch(
	ctx context.Context,
	op string,
	fallback string,
	filter F,
	list func(ctx context.Context) (*domain.Page[T], error),
) {
	seq := s.begin()

	result, err := list(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if seq < s.applied {
		s.logger.Debugf("%s: discarding stale response #%d, #%d already applied", op, seq, s.applied)
		return
	}

	s.applied = seq

	if err != nil {
		s.err = e.MessageOf(err, fallback)
		s.logger.Errorf(e.Wrap(op, err), "%s", s.err)
		return
	}

	s.items = result.Content
	if s.items == nil {
		s.items = []T{}
	}
	s.page = result.Info()
	s.filter = filter
}

// mutate выполняет изменяющий вызов. После успеха выполняется after, пока store еще в фазе загрузки.
// Ошибка сохраняется в состоянии и возвращается вызывающему вместе с сообщением для пользователя.
func (s *pagedStore[T, F]) mutate(op string, fallback string, call func() error, after func()) error {
	s.mu.Lock()
	s.inFlight++
	s.err = ""
	s.mu.Unlock()
	defer s.end()

	if err := call(); err != nil {
		msg := e.MessageOf(err, fallback)

		s.mu.Lock()
		s.err = msg
		s.mu.Unlock()

		s.logger.Errorf(e.Wrap(op, err), "%s", msg)
		return e.WithMessage(e.Wrap(op, err), msg)
	}

	if after != nil {
		after()
	}

	return nil
}

// cursor возвращает запомненные страницу, размер и фильтр.
func (s *pagedStore[T, F]) cursor() (int, int, F) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.page.CurrentPage, s.page.PageSize, s.filter
}

// move меняет курсоры и фильтр до завершения выборки и возвращает новые значения.
func (s *pagedStore[T, F]) move(change func(page *domain.PageInfo, filter *F)) (int, int, F) {
	s.mu.Lock()
	defer s.mu.Unlock()

	change(&s.page, &s.filter)

	return s.page.CurrentPage, s.page.PageSize, s.filter
}

// reset очищает кэш и переключает store на filter. Размер страницы сохраняется.
func (s *pagedStore[T, F]) reset(filter F) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.page.PageSize
	s.items = []T{}
	s.page = domain.NewPageInfo()
	s.page.PageSize = size
	s.filter = filter
}

func (s *pagedStore[T, F]) setFilter(filter F) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = filter
}

func (s *pagedStore[T, F]) currentFilter() F {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter
}

// replace заменяет элемент, для которого match истинно. Если совпадений нет, кэш не меняется.
func (s *pagedStore[T, F]) replace(match func(item T) bool, updated T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if match(s.items[i]) {
			s.items[i] = updated
		}
	}
}

func (s *pagedStore[T, F]) state() StoreState[T, F] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState[T, F]{
		Items:   slices.Clone(s.items),
		Page:    s.page,
		Filter:  s.filter,
		Loading: s.inFlight > 0,
		Error:   s.err,
	}
}
