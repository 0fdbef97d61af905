package smsgate

// SendMessageRequest тело запроса на отправку сообщения
type SendMessageRequest struct {
	To   string `json:"to"`   // Номер в формате +79123456789
	Text string `json:"text"` // Текст сообщения
}

// MessageResponse ответ провайдера на принятое сообщение
type MessageResponse struct {
	ID     string `json:"id"`     // Идентификатор сообщения на стороне провайдера
	Status string `json:"status"` // accepted, queued и т.д.
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
