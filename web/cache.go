package web

import (
	"sync"
	"time"

	"github.com/Vaflel/shift-cleaner/domain"
)

// StoredResult готовая книга, ожидающая скачивания
type StoredResult struct {
	Filename string
	Data     []byte
	Workbook domain.Workbook
}

// ResultCache хранит готовые книги в памяти по идентификатору с временем истечения.
// Доступ синхронизирован мьютексом.
type ResultCache struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]struct {
		result StoredResult
		expiry time.Time // время истечения записи
	}
}

// NewResultCache создаёт новый экземпляр кэша результатов
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl: ttl,
		now: time.Now,
		data: make(map[string]struct {
			result StoredResult
			expiry time.Time
		}),
	}
}

// Get возвращает результат, если он есть и не истёк. Истёкшая запись удаляется.
func (c *ResultCache) Get(id string) (StoredResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.data[id]
	if !exists {
		return StoredResult{}, false
	}

	if c.now().After(entry.expiry) {
		delete(c.data, id)
		return StoredResult{}, false
	}

	return entry.result, true
}

// Set сохраняет результат и попутно вычищает истёкшие записи
func (c *ResultCache) Set(id string, result StoredResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if now.After(entry.expiry) {
			delete(c.data, key)
		}
	}

	c.data[id] = struct {
		result StoredResult
		expiry time.Time
	}{
		result: result,
		expiry: now.Add(c.ttl),
	}
}

// Len количество записей, включая ещё не вычищенные истёкшие
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
