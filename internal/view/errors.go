package view

import "errors"

var (
	ErrNoIdentity   = errors.New("в адресе нет user_id")
	ErrNoRecipient  = errors.New("не выбран получатель")
	ErrBadItem      = errors.New("некорректные данные товара")
	ErrNoEditTarget = errors.New("не выбран объект для редактирования")
	ErrBusy         = errors.New("операция уже выполняется")
	ErrNotFound     = errors.New("объект не найден")
	ErrNoFile       = errors.New("файл не выбран")
	ErrBadForm      = errors.New("некорректные данные формы")
)
