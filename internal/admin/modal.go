package admin

import (
	"errors"
	"fmt"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type ModalState string

const (
	StateClosed     ModalState = "closed"
	StateOpen       ModalState = "open"
	StateSubmitting ModalState = "submitting"
)

var ErrInvalidTransition = errors.New("недопустимый переход модалки")

// Modal - форма создания или редактирования записи.
// closed -> open -> submitting -> closed при успехе или обратно в open с ошибкой.
// Черновиков нет: закрытие сбрасывает всё.
type Modal struct {
	State  ModalState
	Mode   Mode
	ItemID string
	Values map[string]string
	Nested map[string][]NestedRow
	Err    string
}

func NewModal() *Modal {
	return &Modal{State: StateClosed}
}

func (m *Modal) IsOpen() bool { return m.State == StateOpen }

func (m *Modal) OpenCreate() error {
	return m.open(ModeCreate, "", nil, nil)
}

func (m *Modal) OpenEdit(id string, values map[string]string, nested map[string][]NestedRow) error {
	if id == "" {
		return fmt.Errorf("%w: редактирование без id", ErrInvalidTransition)
	}
	return m.open(ModeEdit, id, values, nested)
}

func (m *Modal) open(mode Mode, id string, values map[string]string, nested map[string][]NestedRow) error {
	if m.State != StateClosed {
		return fmt.Errorf("%w: %s -> open", ErrInvalidTransition, m.State)
	}
	if values == nil {
		values = make(map[string]string)
	}
	if nested == nil {
		nested = make(map[string][]NestedRow)
	}
	*m = Modal{State: StateOpen, Mode: mode, ItemID: id, Values: values, Nested: nested}
	return nil
}

// Edit заменяет введённые значения, пока модалка открыта
// (повторный показ формы после добавления или удаления вложенной строки).
func (m *Modal) Edit(values map[string]string, nested map[string][]NestedRow) error {
	if m.State != StateOpen {
		return fmt.Errorf("%w: правка в состоянии %s", ErrInvalidTransition, m.State)
	}
	m.Values = values
	m.Nested = nested
	return nil
}

func (m *Modal) Submit() error {
	if m.State != StateOpen {
		return fmt.Errorf("%w: %s -> submitting", ErrInvalidTransition, m.State)
	}
	m.State = StateSubmitting
	m.Err = ""
	return nil
}

// Succeed закрывает модалку после успешного сохранения.
func (m *Modal) Succeed() error {
	if m.State != StateSubmitting {
		return fmt.Errorf("%w: %s -> closed", ErrInvalidTransition, m.State)
	}
	m.Close()
	return nil
}

// Fail возвращает модалку к вводу с сообщением сервера; введённое сохраняется.
func (m *Modal) Fail(message string) error {
	if m.State != StateSubmitting {
		return fmt.Errorf("%w: %s -> open", ErrInvalidTransition, m.State)
	}
	m.State = StateOpen
	m.Err = message
	return nil
}

func (m *Modal) Close() {
	*m = Modal{State: StateClosed}
}
