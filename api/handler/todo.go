package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/daydone/backend/api/transport"
	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/pkg/httpcontext"
	"github.com/daydone/backend/usecase/report"
	todoUC "github.com/daydone/backend/usecase/todo"
)

type TodoHandler struct {
	baseHandler
	uc     *todoUC.Service
	export *report.Service
}

func NewTodoHandler(uc *todoUC.Service, export *report.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		export:      export,
	}
}

// @Summary List todos
// @Tags todos
// @Router /api/v1/todos [get]
func (h *TodoHandler) GetTodos(ctx *fasthttp.RequestCtx) {
	q := todoUC.Query{
		Search:   string(ctx.QueryArgs().Peek("search")),
		Category: string(ctx.QueryArgs().Peek("category")),
		Priority: string(ctx.QueryArgs().Peek("priority")),
		Sort:     todoUC.SortMode(ctx.QueryArgs().Peek("sort")),
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Query(q))
}

// @Summary Create todo
// @Tags todos
// @Router /api/v1/todos [post]
func (h *TodoHandler) CreateTodo(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseTodo(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Add(stdCtx, todoUC.Draft{
		Text:      req.Text,
		DueDate:   req.DueDate,
		DueTime:   req.DueTime,
		Category:  domain.Category(req.Category),
		Priority:  domain.Priority(req.Priority),
		Recurring: domain.Recurrence(req.Recurring),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update todo
// @Tags todos
// @Router /api/v1/todos/{id} [put]
func (h *TodoHandler) UpdateTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}
	req, ok := h.parseTodo(ctx)
	if !ok {
		return
	}

	patch := todoUC.Patch{
		Text:      req.Text,
		DueDate:   req.DueDate,
		DueTime:   req.DueTime,
		Category:  domain.Category(req.Category),
		Priority:  domain.Priority(req.Priority),
		Recurring: domain.Recurrence(req.Recurring),
	}
	if req.Subtasks != nil {
		patch.Subtasks = make([]domain.Subtask, 0, len(req.Subtasks))
		for _, st := range req.Subtasks {
			patch.Subtasks = append(patch.Subtasks, domain.Subtask{
				ID:        st.ID,
				Text:      st.Text,
				Completed: st.Completed,
			})
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Edit(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete todo
// @Tags todos
// @Router /api/v1/todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Toggle todo completion
// @Tags todos
// @Router /api/v1/todos/{id}/toggle [post]
func (h *TodoHandler) ToggleTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleComplete(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Toggle subtask completion
// @Tags todos
// @Router /api/v1/todos/{id}/subtasks/{subtaskId}/toggle [post]
func (h *TodoHandler) ToggleSubtask(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}
	subtaskID, err := strconv.ParseInt(pathValue(ctx, "subtaskId"), 10, 64)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid subtask id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleSubtask(stdCtx, id, subtaskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Open an edit session
// @Tags todos
// @Router /api/v1/todos/{id}/edit [post]
func (h *TodoHandler) BeginEdit(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}

	todo, err := h.uc.BeginEdit(id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, todo)
}

// @Summary Cancel the edit session
// @Tags todos
// @Router /api/v1/todos/edit [delete]
func (h *TodoHandler) CancelEdit(ctx *fasthttp.RequestCtx) {
	h.uc.CancelEdit()
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Export todos as JSON
// @Tags todos
// @Router /api/v1/todos/export [get]
func (h *TodoHandler) ExportTodos(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payload, filename, err := h.export.ExportTodos(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondFile(ctx, "application/json", filename, payload)
}

// @Summary Import todos from a JSON array
// @Tags todos
// @Router /api/v1/todos/import [post]
func (h *TodoHandler) ImportTodos(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.export.Import(stdCtx, ctx.PostBody())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]int{"imported": count})
}

func (h *TodoHandler) parseTodo(ctx *fasthttp.RequestCtx) (transport.TodoRequest, bool) {
	var req transport.TodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return req, false
	}
	return req, true
}

func (h *TodoHandler) todoID(ctx *fasthttp.RequestCtx) (int64, bool) {
	id, err := strconv.ParseInt(pathValue(ctx, "id"), 10, 64)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid todo id", nil))
		return 0, false
	}
	return id, true
}

func pathValue(ctx *fasthttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}
