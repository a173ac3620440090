package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"markup": form.Markup}).
		ParseFS(templatesFS, "templates/index.html"),
)

// maxFormBytes caps the submitted form size
const maxFormBytes = 64 << 10

// FormSubmitter runs one form submission
type FormSubmitter interface {
	Submit(ctx context.Context, problem, problemContext string) form.View
}

type Handler struct {
	forms FormSubmitter
}

func NewHandler(forms FormSubmitter) *Handler {
	return &Handler{forms: forms}
}

type pageData struct {
	View           form.View
	ResultsSection string
}

// Index handles GET / - empty form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(r.Context(), w, http.StatusOK, form.View{})
}

// Submit handles POST / - validate, call the API and render the results
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitForm")

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	view := h.forms.Submit(ctx, r.PostFormValue("problem"), r.PostFormValue("context"))
	h.render(ctx, w, http.StatusOK, view)
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, view form.View) {
	var buf bytes.Buffer
	data := pageData{View: view, ResultsSection: form.ResultsSection}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		ctxzap.Error(ctx, "failed to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
