package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/daydone/backend/api/transport"
	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/usecase/report"
	"github.com/daydone/backend/usecase/stats"
	todoUC "github.com/daydone/backend/usecase/todo"
)

func newTodoTestHandler(t *testing.T) (*TodoHandler, *todoUC.Service) {
	t.Helper()
	svc := todoUC.New(nopTodoRepo{}, nil)
	exporter := report.New(svc, stats.NewTracker(memState{}, nil), nil)
	return NewTodoHandler(svc, exporter, nil, nil), svc
}

func doRequest(h fasthttp.RequestHandler, method, body string, userValues map[string]interface{}) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetBodyString(body)
	for k, v := range userValues {
		ctx.SetUserValue(k, v)
	}
	h(ctx)
	return ctx
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) transport.Envelope {
	t.Helper()
	var env transport.Envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func TestCreateTodo(t *testing.T) {
	h, svc := newTodoTestHandler(t)

	ctx := doRequest(h.CreateTodo, http.MethodPost, `{"text":"write docs","category":"Work","priority":"High"}`, nil)

	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	assert.Equal(t, "success", env.Status)
	require.Len(t, svc.Snapshot(), 1)
	assert.Equal(t, "write docs", svc.Snapshot()[0].Text)
}

func TestCreateTodo_BlankTextIsBadRequest(t *testing.T) {
	h, _ := newTodoTestHandler(t)

	ctx := doRequest(h.CreateTodo, http.MethodPost, `{"text":"  "}`, nil)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, string(domain.ErrCodeValidation), env.Code)
}

func TestCreateTodo_MalformedBody(t *testing.T) {
	h, _ := newTodoTestHandler(t)

	ctx := doRequest(h.CreateTodo, http.MethodPost, `{"text":`, nil)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestDeleteTodo_NotFound(t *testing.T) {
	h, _ := newTodoTestHandler(t)

	ctx := doRequest(h.DeleteTodo, http.MethodDelete, "", map[string]interface{}{"id": "404"})
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

func TestDeleteTodo_InvalidID(t *testing.T) {
	h, _ := newTodoTestHandler(t)

	ctx := doRequest(h.DeleteTodo, http.MethodDelete, "", map[string]interface{}{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestToggleTodo(t *testing.T) {
	h, svc := newTodoTestHandler(t)

	created := doRequest(h.CreateTodo, http.MethodPost, `{"text":"flip"}`, nil)
	require.Equal(t, http.StatusCreated, created.Response.StatusCode())
	id := svc.Snapshot()[0].ID

	ctx := doRequest(h.ToggleTodo, http.MethodPost, "", map[string]interface{}{"id": fmt.Sprintf("%d", id)})
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.True(t, svc.Snapshot()[0].Completed)
}

func TestImportTodos_RejectsObjectPayload(t *testing.T) {
	h, _ := newTodoTestHandler(t)

	ctx := doRequest(h.ImportTodos, http.MethodPost, `{"todos":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	assert.Equal(t, string(domain.ErrCodeFormat), env.Code)
}

func TestExportTodos_SetsAttachmentHeaders(t *testing.T) {
	h, _ := newTodoTestHandler(t)

	doRequest(h.CreateTodo, http.MethodPost, `{"text":"exported"}`, nil)
	ctx := doRequest(h.ExportTodos, http.MethodGet, "", nil)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), "attachment; filename=\"todos-")

	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "exported", todos[0].Text)
}
