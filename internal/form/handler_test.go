package form_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	pkghttp "github.com/futig/scamper-backend/pkg/http"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiStub struct {
	calls   atomic.Int32
	lastReq entity.ScamperRequest
	status  int
	body    string
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)
	_ = json.NewDecoder(r.Body).Decode(&s.lastReq)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	w.Write([]byte(s.body))
}

func newHandler(t *testing.T, stub *apiStub) *form.Handler {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	connector := pkghttp.NewConnector(&pkghttp.ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})
	return form.NewHandler(form.NewClient(connector), form.NewRenderer())
}

func TestSubmit_InvalidProblemNeverCallsAPI(t *testing.T) {
	cases := []struct {
		name    string
		problem string
		want    string
	}{
		{"empty", "", entity.MsgFormProblemEmpty},
		{"whitespace only", " \t\n ", entity.MsgFormProblemEmpty},
		{"too short", "abcd", entity.MsgFormProblemTooShort},
		{"too short after trim", "   ab  ", entity.MsgFormProblemTooShort},
		{"four accented runes", "ñáéí", entity.MsgFormProblemTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &apiStub{status: http.StatusOK, body: `{"results":[]}`}
			h := newHandler(t, stub)

			view := h.Submit(context.Background(), tc.problem, "ctx")

			assert.Equal(t, tc.want, view.Error)
			assert.Equal(t, form.ResultsSection, view.ScrollTo)
			assert.Empty(t, view.Techniques)
			assert.Equal(t, int32(0), stub.calls.Load())
		})
	}
}

func TestSubmit_SendsTrimmedValues(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{"results":[]}`}
	h := newHandler(t, stub)

	view := h.Submit(context.Background(), "  Mejorar reuniones  ", "  equipos remotos ")

	require.Equal(t, int32(1), stub.calls.Load())
	assert.Equal(t, entity.ScamperRequest{Problem: "Mejorar reuniones", Context: "equipos remotos"}, stub.lastReq)
	assert.Empty(t, view.Error)
	assert.Equal(t, "  Mejorar reuniones  ", view.Problem)
}

func TestSubmit_ExactlyFiveCharactersIsSent(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{"results":[]}`}
	h := newHandler(t, stub)

	h.Submit(context.Background(), " abcde ", "")

	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestSubmit_ErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", http.StatusBadRequest, `{"error":"El contexto debe ser un texto."}`, "El contexto debe ser un texto."},
		{"no error field", http.StatusInternalServerError, `{"detail":"boom"}`, "Error del servidor: 500"},
		{"empty error field", http.StatusBadGateway, `{"error":""}`, "Error del servidor: 502"},
		{"non JSON body", http.StatusServiceUnavailable, `<html>down</html>`, "Error del servidor: 503"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &apiStub{status: tc.status, body: tc.body}
			view := newHandler(t, stub).Submit(context.Background(), "problema válido", "")

			assert.Equal(t, tc.want, view.Error)
			assert.Empty(t, view.Techniques)
			assert.False(t, view.ShowSummary)
		})
	}
}

func TestSubmit_MalformedSuccessBody(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{"results": [`}
	view := newHandler(t, stub).Submit(context.Background(), "problema válido", "")

	assert.Equal(t, entity.MsgFormConnection, view.Error)
}

func TestSubmit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	connector := pkghttp.NewConnector(&pkghttp.ConnectorConfig{BaseURL: url, Logger: zap.NewNop()})
	h := form.NewHandler(form.NewClient(connector), form.NewRenderer())

	view := h.Submit(context.Background(), "problema válido", "")
	assert.Equal(t, entity.MsgFormConnection, view.Error)
}

func TestSubmit_MissingResultsArray(t *testing.T) {
	for _, body := range []string{
		`{"original_problem":"p","summary":"s"}`,
		`{"original_problem":"p","results":{"technique":"adapt"},"summary":"s"}`,
		`["not","an","object"]`,
	} {
		stub := &apiStub{status: http.StatusOK, body: body}
		view := newHandler(t, stub).Submit(context.Background(), "problema válido", "")

		assert.Equal(t, entity.MsgFormNoValidResults, view.Error, body)
		assert.Empty(t, view.ProblemAnalyzed, body)
		assert.False(t, view.ShowSummary, body)
		assert.Empty(t, view.Summary, body)
	}
}

func TestClient_MissingResultsArray(t *testing.T) {
	srv := httptest.NewServer(&apiStub{status: http.StatusOK, body: `{"original_problem":"p"}`})
	defer srv.Close()

	connector := pkghttp.NewConnector(&pkghttp.ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})
	payload, err := form.NewClient(connector).Submit(context.Background(), entity.ScamperRequest{Problem: "problema válido"})

	assert.Nil(t, payload)
	require.ErrorIs(t, err, entity.ErrNoValidResults)
	var formErr *form.Error
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, entity.MsgFormNoValidResults, formErr.Message)
}

func TestSubmit_RendersResults(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: `{
		"original_problem": "Reuniones aburridas",
		"results": [
			{"technique": "substitute", "explanation": "Sustituir formato", "ideas": ["Idea 1", "Idea 2"]},
			{"technique": "combine", "ideas": ["sin explicación"]},
			{"technique": "adapt", "explanation": "sin ideas"},
			{"technique": {"value": "REVERSE"}, "explanation": "Invertir orden", "ideas": []},
			{"technique": "brainstorm", "explanation": "desconocida", "ideas": ["x", 42]},
			null
		],
		"summary": "Resumen ejecutivo"
	}`}

	view := newHandler(t, stub).Submit(context.Background(), "Reuniones aburridas", "")

	want := form.View{
		Problem:         "Reuniones aburridas",
		ProblemAnalyzed: "Reuniones aburridas",
		Techniques: []form.TechniqueView{
			{Key: entity.TechniqueSubstitute, Label: "Sustituir - Reemplazar elementos", Explanation: "Sustituir formato", Ideas: []string{"Idea 1", "Idea 2"}},
			{Key: entity.TechniqueReverse, Label: "Invertir - Reorganizar o hacer al revés", Explanation: "Invertir orden", Ideas: []string{}},
			{Key: "brainstorm", Label: "BRAINSTORM", Explanation: "desconocida", Ideas: []string{"x", "42"}},
		},
		Summary:     "Resumen ejecutivo",
		ShowSummary: true,
		ScrollTo:    form.ResultsSection,
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_SummaryVisibility(t *testing.T) {
	cases := []struct {
		body string
		show bool
	}{
		{`{"results":[],"summary":"hay resumen"}`, true},
		{`{"results":[],"summary":""}`, false},
		{`{"results":[]}`, false},
		{`{"results":[],"summary":null}`, false},
	}

	for _, tc := range cases {
		stub := &apiStub{status: http.StatusOK, body: tc.body}
		view := newHandler(t, stub).Submit(context.Background(), "problema válido", "")

		assert.Empty(t, view.Error, tc.body)
		assert.Equal(t, tc.show, view.ShowSummary, tc.body)
	}
}

type countingSubmitter struct {
	calls int
}

func (c *countingSubmitter) Submit(ctx context.Context, req entity.ScamperRequest) (*form.Payload, error) {
	c.calls++
	return &form.Payload{HasResults: true}, nil
}

func TestSubmit_EachSubmissionStartsFromEmptyView(t *testing.T) {
	sub := &countingSubmitter{}
	h := form.NewHandler(sub, form.NewRenderer())

	first := h.Submit(context.Background(), "", "")
	require.NotEmpty(t, first.Error)

	second := h.Submit(context.Background(), "problema válido", "")
	assert.Empty(t, second.Error)
	assert.Equal(t, 1, sub.calls)
}
