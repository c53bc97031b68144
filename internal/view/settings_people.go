package view

import (
	"context"
	"fmt"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/models"
)

// LoadEmployees первая порция сотрудников
func (s *Settings) LoadEmployees(ctx context.Context) error {
	return s.loadEmployees(ctx, false)
}

// MoreEmployees дописывает следующую порцию
func (s *Settings) MoreEmployees(ctx context.Context) error {
	s.mu.Lock()
	more := s.employeesMore
	s.mu.Unlock()
	if !more {
		return nil
	}
	return s.loadEmployees(ctx, true)
}

func (s *Settings) loadEmployees(ctx context.Context, appendRows bool) error {
	s.mu.Lock()
	offset := 0
	if appendRows {
		offset = len(s.employees)
	}
	limit := s.employeesLimit
	s.employeesGen++
	gen := s.employeesGen
	s.mu.Unlock()

	chunk, err := s.api.ListUsers(ctx, apiclient.UsersQuery{Limit: limit, Offset: offset})

	s.mu.Lock()
	if gen != s.employeesGen {
		s.mu.Unlock()
		return nil
	}
	s.employeesReady = true
	if err != nil {
		s.employees, s.employeesMore = nil, false
		s.mu.Unlock()
		s.fail(err, "Не удалось загрузить сотрудников")
		return err
	}
	if appendRows {
		s.employees = append(s.employees, chunk...)
	} else {
		s.employees = chunk
	}
	s.employeesMore = len(chunk) == limit
	s.mu.Unlock()
	return nil
}

func (s *Settings) employeeByID(id int) (models.User, bool) {
	for _, u := range s.employees {
		if u.BitrixID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Settings) OpenEmployeeEdit(id int) error {
	s.mu.Lock()
	_, ok := s.employeeByID(id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.openModal(ModalEmployeeEdit, id)
	return nil
}

// UpdateEmployee сохраняет правку сотрудника от имени текущего администратора
func (s *Settings) UpdateEmployee(ctx context.Context, form EmployeeForm) error {
	s.mu.Lock()
	id := 0
	if s.modal == ModalEmployeeEdit {
		id = s.editID
	}
	orig, ok := s.employeeByID(id)
	s.mu.Unlock()

	if id == 0 || !ok {
		s.notifier.Push("Не выбран сотрудник для сохранения")
		return ErrNoEditTarget
	}

	updated, err := s.api.UpdateEmployee(ctx, id, s.adminID, form.EditPayload(orig))
	if err != nil {
		s.fail(err, "Ошибка обновления сотрудника")
		return err
	}

	s.mu.Lock()
	if updated.BitrixID == 0 {
		updated.BitrixID = id
	}
	for i := range s.employees {
		if s.employees[i].BitrixID == id {
			s.employees[i] = updated
		}
	}
	s.mu.Unlock()

	s.notifier.Push("Данные сотрудника обновлены")
	s.CloseModal()
	fire(ctx, s.onEmployeeChanged)
	return nil
}

// SyncEmployees синхронизация со справочником. Повторный запуск во время работы отклоняется
func (s *Settings) SyncEmployees(ctx context.Context) error {
	if s.adminID == 0 {
		s.notifier.Push("Нет user_id в URL")
		return ErrNoIdentity
	}

	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return ErrBusy
	}
	s.syncing = true
	s.mu.Unlock()

	res, err := s.api.SyncEmployees(ctx, s.adminID)

	s.mu.Lock()
	s.syncing = false
	section := s.section
	s.mu.Unlock()

	if err != nil {
		s.fail(err, "Не удалось обновить сотрудников")
		return err
	}

	switch {
	case res.Count != nil:
		s.notifier.Push(fmt.Sprintf("Сотрудники обновлены (%d)", *res.Count))
	case res.Message != "":
		s.notifier.Push(res.Message)
	default:
		s.notifier.Push("Список сотрудников обновлён")
	}

	if section == SectionEmployees {
		return s.LoadEmployees(ctx)
	}
	return nil
}

// LoadPurchases общая история покупок, первая страница
func (s *Settings) LoadPurchases(ctx context.Context) error {
	return s.failPurchases(s.purchases.reload(ctx))
}

func (s *Settings) PurchasesNext(ctx context.Context) error {
	_, err := s.purchases.next(ctx)
	return s.failPurchases(err)
}

func (s *Settings) PurchasesPrev(ctx context.Context) error {
	_, err := s.purchases.prev(ctx)
	return s.failPurchases(err)
}

func (s *Settings) failPurchases(err error) error {
	if err != nil {
		s.fail(err, "Не удалось загрузить историю покупок")
	}
	return err
}
