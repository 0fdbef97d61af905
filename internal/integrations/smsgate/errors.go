package smsgate

import "errors"

var (
	// ErrRejected возвращается, когда провайдер отклонил сообщение (4xx)
	ErrRejected = errors.New("smsgate client: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgate client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("smsgate client: invalid response")

	// ErrServiceDegraded возвращается, когда провайдер недоступен (5xx, сеть, таймаут).
	// Отправка не критична для бизнес-операции: вызывающий фиксирует предупреждение
	// и продолжает работу.
	ErrServiceDegraded = errors.New("smsgate unavailable: graceful degradation applied")
)
