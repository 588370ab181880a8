package models

import (
	"bytes"
	"encoding/json"
)

// Input - значение поля ввода. Принимает JSON-строку или число и хранит исходный текст,
// приведение к числу выполняется в validators.
type Input string

func (i *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Input(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = Input(n.String())
	return nil
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Username string `json:"username"`
	Pin      Input  `json:"pin"`
}

// TransferRequest - запрос перевода
type TransferRequest struct {
	To     string `json:"to"`
	Amount Input  `json:"amount"`
}

// LoanRequest - запрос кредита
type LoanRequest struct {
	Amount Input `json:"amount"`
}

// CloseRequest - запрос закрытия счёта
type CloseRequest struct {
	Username string `json:"username"`
	Pin      Input  `json:"pin"`
}

// ErrorResponse - тело ответа с кодом отказа
type ErrorResponse struct {
	Error string `json:"error"`
	View  *View  `json:"view,omitempty"`
}
