package ui

import (
	"sync"

	"github.com/squaredbusinessman/hotelkit/internal/events"
)

const (
	fadeInThreshold = 0.1

	OpacityHidden   = "0"
	OpacityVisible  = "1"
	TransformHidden = "translateY(20px)"
	TransformShown  = "translateY(0)"
	FadeTransition  = "opacity 0.6s ease, transform 0.6s ease"
)

// Style инлайновые стили элемента, которые трогают эффекты
type Style struct {
	Opacity    string
	Transform  string
	Transition string
}

// FadeIn блоки, которые проявляются, когда видно хотя бы 10% их площади.
// Наблюдение не снимается: повторное раскрытие ничего не меняет.
type FadeIn struct {
	mu     sync.Mutex
	styles map[string]*Style
}

func NewFadeIn() *FadeIn {
	return &FadeIn{styles: make(map[string]*Style)}
}

// Observe прячет элементы и ставит их под наблюдение
func (f *FadeIn) Observe(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.styles[id] = &Style{
			Opacity:    OpacityHidden,
			Transform:  TransformHidden,
			Transition: FadeTransition,
		}
	}
}

// Style возвращает копию, ok == false для ненаблюдаемого элемента
func (f *FadeIn) Style(id string) (Style, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.styles[id]
	if !ok {
		return Style{}, false
	}
	return *st, true
}

func (f *FadeIn) Bind(bus *events.Bus) *events.Subscription {
	return bus.Subscribe(events.TypeIntersect, func(e events.Event) {
		if e.Ratio < fadeInThreshold {
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		st, ok := f.styles[e.Target]
		if !ok {
			return
		}
		st.Opacity = OpacityVisible
		st.Transform = TransformShown
	})
}

// LoadingOverlay полноэкранный оверлей со спиннером, не больше одного на странице
type LoadingOverlay struct {
	mu      sync.Mutex
	present bool
	shown   int
}

func NewLoadingOverlay() *LoadingOverlay {
	return &LoadingOverlay{}
}

// Show создаёт оверлей, если его ещё нет; возвращает true, если создал
func (o *LoadingOverlay) Show() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.present {
		return false
	}
	o.present = true
	o.shown++
	return true
}

// Hide убирает оверлей; без оверлея ничего не делает и возвращает false
func (o *LoadingOverlay) Hide() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.present {
		return false
	}
	o.present = false
	return true
}

func (o *LoadingOverlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.present
}

// Created сколько раз оверлей создавался с нуля
func (o *LoadingOverlay) Created() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.shown
}
