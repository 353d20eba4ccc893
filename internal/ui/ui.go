// Package ui реакции страницы на события: модальные окна, тень навбара, ленивые картинки,
// появление блоков при прокрутке и оверлей загрузки.
// Состояние элементов хранится здесь же, отрисовка остаётся на стороне страницы.
package ui

import (
	"sync"

	"github.com/squaredbusinessman/hotelkit/internal/events"
)

const (
	KeyEscape = "Escape"

	navbarScrollThreshold = 100
	ShadowScrolled        = "0 4px 20px rgba(0,0,0,0.2)"
	ShadowTop             = "0 4px 16px rgba(0,0,0,0.12)"
)

// ModalSet открытые модальные окна по id
type ModalSet struct {
	mu   sync.Mutex
	open map[string]bool
}

func NewModalSet() *ModalSet {
	return &ModalSet{open: make(map[string]bool)}
}

func (m *ModalSet) Open(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[id] = true
}

func (m *ModalSet) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.open, id)
}

func (m *ModalSet) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[id]
}

// CloseAll возвращает число закрытых окон
func (m *ModalSet) CloseAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.open)
	clear(m.open)
	return n
}

// BindEscape закрывает все открытые окна по Escape
func (m *ModalSet) BindEscape(bus *events.Bus) *events.Subscription {
	return bus.Subscribe(events.TypeKeyDown, func(e events.Event) {
		if e.Key == KeyEscape {
			m.CloseAll()
		}
	})
}

func NavbarShadow(scrollY float64) string {
	if scrollY > navbarScrollThreshold {
		return ShadowScrolled
	}
	return ShadowTop
}

type Navbar struct {
	mu         sync.Mutex
	shadow     string
	lastScroll float64
}

func NewNavbar() *Navbar {
	return &Navbar{shadow: ShadowTop}
}

func (n *Navbar) BindScroll(bus *events.Bus) *events.Subscription {
	return bus.Subscribe(events.TypeScroll, func(e events.Event) {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.shadow = NavbarShadow(e.ScrollY)
		n.lastScroll = e.ScrollY
	})
}

func (n *Navbar) Shadow() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shadow
}

func (n *Navbar) LastScroll() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastScroll
}

// Image картинка с отложенным источником (data-src)
type Image struct {
	ID      string
	Src     string
	DataSrc string
}

// LazyImages подставляет DataSrc в Src при первом попадании картинки в видимую область
type LazyImages struct {
	mu       sync.Mutex
	images   map[string]*Image
	observed map[string]bool
}

func NewLazyImages() *LazyImages {
	return &LazyImages{
		images:   make(map[string]*Image),
		observed: make(map[string]bool),
	}
}

// Observe берёт под наблюдение только картинки с DataSrc
func (l *LazyImages) Observe(images ...*Image) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, img := range images {
		if img.DataSrc == "" {
			continue
		}
		l.images[img.ID] = img
		l.observed[img.ID] = true
	}
}

func (l *LazyImages) Observing(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.observed[id]
}

func (l *LazyImages) Bind(bus *events.Bus) *events.Subscription {
	return bus.Subscribe(events.TypeIntersect, func(e events.Event) {
		l.mu.Lock()
		defer l.mu.Unlock()

		if !l.observed[e.Target] {
			return
		}
		img := l.images[e.Target]
		img.Src = img.DataSrc
		img.DataSrc = ""

		delete(l.observed, e.Target)
		delete(l.images, e.Target)
	})
}
