package intl

import (
	"strings"
	"sync"

	"intlpipe/pkg/model"
)

const fallbackLocale = "en"

// Subscriber observes locale changes. It receives the newly active locale.
type Subscriber func(locale string)

// Manager owns the active locale and the formatter configuration derived
// from it. It replaces the ambient shared formatting manager found in
// comparable runtimes with an explicit object owned and passed by the
// application.
//
// SetLocale swaps locale and configuration atomically: readers never observe
// a half-updated pair. Notification of subscribers is synchronous and runs on
// the caller's goroutine.
type Manager struct {
	mu     sync.RWMutex
	def    string
	locale string
	config *model.FormatConfig

	subMu sync.Mutex
	subs  []*subscription
}

type subscription struct {
	fn Subscriber
}

// NewManager builds a Manager with the given default locale, which also
// becomes the initial current locale. An empty default falls back to "en" so
// the current locale is never empty.
func NewManager(defaultLocale string) *Manager {
	def := strings.TrimSpace(defaultLocale)
	if def == "" {
		def = fallbackLocale
	}
	return &Manager{
		def:    def,
		locale: def,
		config: model.NewFormatConfig(def),
	}
}

// Locale returns the currently active locale.
func (m *Manager) Locale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.locale
}

// DefaultLocale returns the locale the manager was constructed with.
func (m *Manager) DefaultLocale() string {
	return m.def
}

// Config returns the active formatter configuration.
func (m *Manager) Config() *model.FormatConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// snapshot reads locale and configuration as one consistent pair.
func (m *Manager) snapshot() (string, *model.FormatConfig) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.locale, m.config
}

// SetLocale atomically replaces the active locale and its derived
// configuration, then synchronously notifies every registered subscriber in
// registration order. The locale is not validated here: an unsupported value
// is accepted and surfaces later, if at all, when resolution for it fails.
// An empty locale resets to the default.
func (m *Manager) SetLocale(locale string) {
	next := strings.TrimSpace(locale)
	if next == "" {
		next = m.def
	}
	config := model.NewFormatConfig(next)

	m.mu.Lock()
	m.locale = next
	m.config = config
	m.mu.Unlock()

	for _, sub := range m.subscribers() {
		notify(sub.fn, next)
	}
}

// OnLocaleChange registers a callback invoked on every SetLocale. It returns
// a disposer; calling it more than once, or while a notification round is in
// flight, is safe. A callback disposed mid-round may still be invoked for
// that round.
func (m *Manager) OnLocaleChange(fn Subscriber) func() {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}

	m.subMu.Lock()
	m.subs = append(m.subs, sub)
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, candidate := range m.subs {
			if candidate == sub {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) subscribers() []*subscription {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	out := make([]*subscription, len(m.subs))
	copy(out, m.subs)
	return out
}

// notify shields the notification round from panicking subscribers so one
// bad callback cannot starve the rest.
func notify(fn Subscriber, locale string) {
	defer func() {
		_ = recover()
	}()
	fn(locale)
}
