package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayloads struct {
	payload *form.Payload
	calls   int
}

func (s *stubPayloads) Submit(ctx context.Context, req entity.ScamperRequest) (*form.Payload, error) {
	s.calls++
	return s.payload, nil
}

func newRouter(sub form.Submitter) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(form.NewHandler(sub, form.NewRenderer())))
	return r
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexHidesResults(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubPayloads{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/#results-section"`)
	assert.Contains(t, body, `<section id="results-section" style="display:none">`)
	assert.NotContains(t, body, "scrollIntoView")
}

func TestSubmitValidationError(t *testing.T) {
	sub := &stubPayloads{}
	rec := postForm(newRouter(sub), url.Values{"problem": {"abc"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "El problema debe tener al menos 5 caracteres.")
	assert.Contains(t, body, "scrollIntoView")
	assert.Zero(t, sub.calls)
}

func TestSubmitRendersResults(t *testing.T) {
	sub := &stubPayloads{payload: &form.Payload{
		OriginalProblem: "Ventas <bajas>",
		HasResults:      true,
		Results: []form.Entry{
			{Technique: entity.TechniqueModify, Explanation: "<b>Escalar</b><script>x()</script>", Ideas: []string{"Más <i>rápido</i>"}},
		},
	}}
	rec := postForm(newRouter(sub), url.Values{"problem": {"Ventas bajas"}, "context": {"tienda"}})

	body := rec.Body.String()
	assert.Equal(t, 1, sub.calls)
	assert.Contains(t, body, "Ventas &lt;bajas&gt;")
	assert.Contains(t, body, "<h4>Modificar - Amplificar o reducir</h4>")
	assert.Contains(t, body, "<b>Escalar</b>")
	assert.NotContains(t, body, "<script>x()")
	assert.Contains(t, body, "<li>Más <i>rápido</i></li>")
	assert.NotContains(t, body, `id="summary-section"`)
	assert.Contains(t, body, ">tienda</textarea>")
}
