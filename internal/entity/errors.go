package entity

import "errors"

// Domain errors
var (
	// Input errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrProblemTooShort  = errors.New("problem is too short")

	// Generation errors
	ErrGenerationFailed = errors.New("llm generation failed")
	ErrEmptyCompletion  = errors.New("llm returned an empty completion")
	ErrUnknownProvider  = errors.New("unknown llm provider")

	// Response errors
	ErrNoValidResults = errors.New("response has no valid results")
)

// User-facing messages (Spanish, as shown in the UI)
const (
	MsgProblemRequired     = "El campo 'problem' es obligatorio."
	MsgProblemInvalid      = "El problema debe ser un texto de al menos 5 caracteres."
	MsgContextInvalid      = "El contexto debe ser un texto."
	MsgProcessingFailed    = "Ocurrió un error procesando tu solicitud."
	MsgInvalidRequestBody  = "El cuerpo de la solicitud debe ser un objeto JSON."
	MsgFormProblemEmpty    = "Por favor, describe tu problema o idea central."
	MsgFormProblemTooShort = "El problema debe tener al menos 5 caracteres."
	MsgFormServerStatus    = "Error del servidor: %d"
	MsgFormConnection      = "No se pudo conectar al servidor o procesar la solicitud."
	MsgFormNoValidResults  = "La respuesta del servidor no contiene resultados válidos."
)

// MinProblemLength is the minimum trimmed problem length, in characters
const MinProblemLength = 5
