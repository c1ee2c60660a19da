// Package input переводит опрос устройств в логические действия с
// распознаванием фронтов нажатия и отпускания.
package input

import (
	"fmt"
	"strings"
)

// Action - логическое действие игрока
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	StrafeLeft
	StrafeRight
	Jump
	Descend
	Sprint
	ToggleNoClip
	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:  "forward",
	MoveBackward: "backward",
	StrafeLeft:   "left",
	StrafeRight:  "right",
	Jump:         "jump",
	Descend:      "descend",
	Sprint:       "sprint",
	ToggleNoClip: "noclip",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction находит действие по имени без учёта регистра
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("неизвестное действие %q", s)
}

// Set - набор одновременно активных действий
type Set uint16

// Of собирает набор из списка действий
func Of(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

func (s Set) Has(a Action) bool { return s&(1<<a) != 0 }
func (s Set) With(a Action) Set { return s | 1<<a }
func (s Set) Without(a Action) Set { return s &^ (1 << a) }

func (s Set) String() string {
	var parts []string
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			parts = append(parts, a.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Provider - источник активных действий. Опрашивается один раз за тик.
type Provider interface {
	Poll() Set
}

// ProviderFunc адаптирует функцию к Provider
type ProviderFunc func() Set

func (f ProviderFunc) Poll() Set { return f() }

// State хранит наборы текущего и предыдущего тика
type State struct {
	current  Set
	previous Set
}

// Update сдвигает текущий набор в предыдущий и запоминает новый
func (st *State) Update(active Set) {
	st.previous = st.current
	st.current = active
}

// Poll опрашивает провайдера и обновляет состояние
func (st *State) Poll(p Provider) {
	st.Update(p.Poll())
}

// IsActive - действие активно в текущем тике
func (st *State) IsActive(a Action) bool {
	return st.current.Has(a)
}

// JustActivated - действие стало активным в этом тике
func (st *State) JustActivated(a Action) bool {
	return st.current.Has(a) && !st.previous.Has(a)
}

// JustReleased - действие перестало быть активным в этом тике
func (st *State) JustReleased(a Action) bool {
	return !st.current.Has(a) && st.previous.Has(a)
}

// Current возвращает текущий набор
func (st *State) Current() Set {
	return st.current
}

// Axes сводит движение к осям: forward > 0 вперёд, strafe > 0 вправо
func (st *State) Axes() (forward, strafe float64) {
	if st.IsActive(MoveForward) {
		forward++
	}
	if st.IsActive(MoveBackward) {
		forward--
	}
	if st.IsActive(StrafeRight) {
		strafe++
	}
	if st.IsActive(StrafeLeft) {
		strafe--
	}
	return forward, strafe
}

// Vertical возвращает +1 при Jump, -1 при Descend, 0 если оба или ни одного
func (st *State) Vertical() float64 {
	var v float64
	if st.IsActive(Jump) {
		v++
	}
	if st.IsActive(Descend) {
		v--
	}
	return v
}
