package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva el detalle del rechazo (faltantes, campo inválido) para armar el mensaje sin releer estado.
type ErrorResponse struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
