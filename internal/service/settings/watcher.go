package settings

import (
	"context"
	"sync"

	"github.com/m04kA/TDS-BookingService/internal/domain"
)

// subscriberBuffer ёмкость канала подписчика: хватает, чтобы не терять
// одиночное обновление, и при этом отстающий потребитель не держит запись
const subscriberBuffer = 1

// Watcher рассылает изменения настроек подписчикам.
//
// Модель подписки вместо опроса хранилища: Update публикует каждый
// сохранённый документ, подписчики получают его из своего канала.
// Отправка неблокирующая: подписчик с заполненным буфером пропускает
// обновление, издатель никогда не ждёт.
type Watcher struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]chan domain.Settings
}

// NewWatcher создает новый экземпляр наблюдателя настроек
func NewWatcher() *Watcher {
	return &Watcher{
		subs: make(map[int64]chan domain.Settings),
	}
}

// Subscribe регистрирует подписчика и возвращает его канал вместе с функцией
// отписки. Канал закрывается при отписке; отмена контекста отписывает
// автоматически. Функцию отписки можно вызывать повторно.
func (w *Watcher) Subscribe(ctx context.Context) (<-chan domain.Settings, func()) {
	ch := make(chan domain.Settings, subscriberBuffer)

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = ch
	w.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// Publish рассылает настройки всем подписчикам без блокировки
func (w *Watcher) Publish(settings domain.Settings) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ch := range w.subs {
		select {
		case ch <- settings:
		default:
			// Подписчик не успевает - пропускаем обновление для него
		}
	}
}

// SubscriberCount возвращает число активных подписчиков
func (w *Watcher) SubscriberCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}
