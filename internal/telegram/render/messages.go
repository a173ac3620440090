package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf16"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
)

// MaxMessageLength is Telegram's limit for one text message, in characters
const MaxMessageLength = 4096

const (
	// Welcome messages
	MsgWelcome = `👋 ¡Hola! Soy tu asistente de ideación SCAMPER.

Analizo tu problema con siete técnicas creativas:
• Sustituir
• Combinar
• Adaptar
• Modificar
• Otros usos
• Eliminar
• Invertir`

	MsgAskProblem = `🎯 Describe tu problema o idea central.

Necesito al menos 5 caracteres.`

	MsgAskContext = `📋 ¿Quieres añadir contexto adicional? (industria, restricciones, recursos...)

Escríbelo o pulsa "Sin contexto".`

	MsgProcessing = `⏳ Generando ideas con las siete técnicas SCAMPER...

Esto puede tardar un minuto.`

	MsgStillProcessing = `⏳ Todavía estoy analizando tu problema. Espera un momento.`

	MsgResultReady = `✅ ¡Listo! Puedes descargar las ideas o analizar otro problema.

¿Quieres analizar otro problema? (s/n)`

	MsgTextOnly = `❌ Por favor, envía tu respuesta como texto.`

	MsgCancelConfirm = `⚠️ ¿Seguro? Se perderá el problema en curso.`

	MsgContinue = `👍 Seguimos donde lo dejamos.`

	MsgNoSession = `No hay ninguna sesión activa. Usa /start para empezar.`

	// Session finished
	MsgSessionFinished = `👋 ¡Gracias por usar el asistente SCAMPER!

Para empezar de nuevo, pulsa /start`

	MsgHelp = `🤖 Comandos del bot:

/start - Analizar un nuevo problema
/help - Mostrar esta ayuda
/cancel - Cancelar el análisis en curso

Cómo funciona:
1. Describe tu problema (mínimo 5 caracteres)
2. Añade contexto o pulsa "Sin contexto"
3. Recibe ideas de las siete técnicas SCAMPER y un resumen ejecutivo
4. Descarga el resultado en Markdown, PDF o DOCX

Empieza con /start`

	// Errors
	ErrGeneric            = `❌ Ocurrió un error. Inténtalo de nuevo o pulsa /start`
	ErrInvalidState       = `❌ Estado no válido. Pulsa /start para empezar de nuevo.`
	ErrUnknownCommand     = `❌ Comando desconocido. Usa /help`
	ErrNoResult           = `❌ No hay resultados para descargar. Analiza un problema primero.`
	ErrInvalidFormat      = `❌ Formato no válido. Disponibles: markdown, pdf, docx`
	ErrExportFailed       = `❌ No se pudo preparar el archivo.`
	ErrNetworkIssue       = `❌ Problema de conexión. Inténtalo más tarde.`
	ErrServiceUnavailable = `❌ El servicio no está disponible. Inténtalo en unos minutos.`
	ErrTimeout            = `❌ La operación tardó demasiado. Inténtalo de nuevo.`
	ErrProcessing         = `❌ ` + entity.MsgProcessingFailed
)

// Results renders a results view as Telegram messages, each within
// MaxMessageLength.
func Results(v form.View) ([]string, error) {
	var buf bytes.Buffer
	if err := form.WriteText(&buf, v); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}
	return Split(strings.TrimSpace(buf.String()), MaxMessageLength), nil
}

// Split cuts text into chunks of at most limit characters, preferring line
// boundaries. Length is counted in UTF-16 code units, as Telegram does, so an
// emoji outside the BMP counts twice. A single line longer than limit is cut
// between characters.
func Split(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if unitLen(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if chunk := strings.Trim(cur.String(), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		cur.Reset()
		curLen = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := unitLen(line)
		if curLen+n <= limit {
			cur.WriteString(line)
			curLen += n
			continue
		}
		flush()

		for _, r := range line {
			w := runeUnits(r)
			if curLen+w > limit {
				flush()
			}
			cur.WriteRune(r)
			curLen += w
		}
	}
	flush()

	return chunks
}

// unitLen is the length of s in UTF-16 code units
func unitLen(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if w := utf16.RuneLen(r); w > 0 {
		return w
	}
	// Invalid runes are sent as U+FFFD
	return 1
}

// ClassifyError maps an analysis error to a user-friendly message
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	switch {
	case errors.Is(err, entity.ErrGenerationFailed), errors.Is(err, entity.ErrEmptyCompletion):
		return ErrServiceUnavailable
	case strings.Contains(err.Error(), "connection refused"):
		return ErrServiceUnavailable
	}

	return ErrProcessing
}
