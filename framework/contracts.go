package framework

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"minblog/framework/router"

	"github.com/a-h/templ"
)

type EmptyParams struct{}

type SlugParams struct {
	Slug string
}

type ParamsParser[P interface{}] func(path string) (P, bool)

type PageLoader[C interface{}, P interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
) (VM, error)

type PageRenderer[VM interface{}] func(view VM) templ.Component

type LayoutRenderer[VM interface{}] func(view VM, child templ.Component) templ.Component

type PageModule[C interface{}, P interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	Load        PageLoader[C, P, VM]
	Render      PageRenderer[VM]
	Layouts     []LayoutRenderer[VM]
	// NoStore marks pages that must never be served from a shared cache.
	NoStore bool
}

// ActionResult is the outcome of a form submission: either a redirect or a
// view that is rendered with the page's renderer and layouts.
type ActionResult[VM interface{}] struct {
	RedirectTo string
	View       VM
	StatusCode int
}

func Redirect[VM interface{}](location string) ActionResult[VM] {
	return ActionResult[VM]{RedirectTo: location}
}

func Rerender[VM interface{}](view VM, statusCode int) ActionResult[VM] {
	return ActionResult[VM]{View: view, StatusCode: statusCode}
}

type ActionSubmitter[C interface{}, P interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
) (ActionResult[VM], error)

type ActionModule[C interface{}, P interface{}, VM interface{}] struct {
	Submit ActionSubmitter[C, P, VM]
}

type LiveStateParser[S interface{}] func(r *http.Request) (S, error)

type LiveLoader[C interface{}, P interface{}, S interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
	state S,
) (VM, error)

type LiveModule[C interface{}, P interface{}, S interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	ParseState  LiveStateParser[S]
	Load        LiveLoader[C, P, S, VM]
	Render      PageRenderer[VM]
	SelectorID  string
}

type RenderOptions struct {
	StatusCode int
	NoStore    bool
}

type RuntimeContext[C interface{}] interface {
	AppContext() C
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component, opts RenderOptions) error
	PatchLive(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error
	IsNotFound(err error) bool
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondBadRequest(w http.ResponseWriter, message string)
	RespondServerError(w http.ResponseWriter, err error)
}

type NotFoundSource string

const (
	NotFoundSourcePageLoad       NotFoundSource = "page_load"
	NotFoundSourceAction         NotFoundSource = "action"
	NotFoundSourceLive           NotFoundSource = "live"
	NotFoundSourceUnmatchedRoute NotFoundSource = "unmatched_route"
)

type NotFoundContext struct {
	RequestPath         string
	MatchedRoutePattern string
	Source              NotFoundSource
}

// BadRequestError marks loader or action failures caused by the request itself.
type BadRequestError struct {
	Message string
	Err     error
}

func (e *BadRequestError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}

func BadRequest(message string, err error) error {
	return &BadRequestError{Message: message, Err: err}
}

type RouteHandler[C interface{}] interface {
	RouteID() string
	TryServe(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
}

type PageOnlyRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
}

func (h PageOnlyRouteHandler[C, P, VM]) RouteID() string {
	return router.NormalizeRouteID(h.Page.Pattern)
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServe(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	params, ok := h.Page.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	if !isReadMethod(r.Method) {
		respondMethodNotAllowed(w, http.MethodGet, http.MethodHead)
		return true
	}

	servePageModule(runtime, w, r, h.Page, params)
	return true
}

type PageActionRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page   PageModule[C, P, VM]
	Action ActionModule[C, P, VM]
}

func (h PageActionRouteHandler[C, P, VM]) RouteID() string {
	return router.NormalizeRouteID(h.Page.Pattern)
}

func (h PageActionRouteHandler[C, P, VM]) TryServe(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	params, ok := h.Page.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	switch {
	case isReadMethod(r.Method):
		servePageModule(runtime, w, r, h.Page, params)
	case r.Method == http.MethodPost && h.Action.Submit != nil:
		serveActionModule(runtime, w, r, h.Page, h.Action, params)
	default:
		respondMethodNotAllowed(w, http.MethodGet, http.MethodHead, http.MethodPost)
	}
	return true
}

type LiveRouteHandler[C interface{}, P interface{}, S interface{}, VM interface{}] struct {
	Live LiveModule[C, P, S, VM]
}

func (h LiveRouteHandler[C, P, S, VM]) RouteID() string {
	return router.NormalizeRouteID(h.Live.Pattern)
}

func (h LiveRouteHandler[C, P, S, VM]) TryServe(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	params, ok := h.Live.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		respondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		return true
	}

	state, err := h.Live.ParseState(r)
	if err != nil {
		runtime.RespondBadRequest(w, "invalid datastar signal payload")
		return true
	}

	view, err := h.Live.Load(r.Context(), runtime.AppContext(), r, params, state)
	if err != nil {
		handleLoadError(runtime, w, r, err, h.Live.Pattern, NotFoundSourceLive)
		return true
	}

	if err := runtime.PatchLive(w, r, h.Live.SelectorID, h.Live.Render(view)); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("patch live route %q: %w", h.Live.Pattern, err))
	}
	return true
}

// ExactPath matches a route ID without params.
func ExactPath(routeID string) ParamsParser[EmptyParams] {
	return func(path string) (EmptyParams, bool) {
		_, ok := router.MatchPathPattern(routeID, path)
		return EmptyParams{}, ok
	}
}

// SlugPath matches a route ID carrying a [slug] segment.
func SlugPath(routeID string) ParamsParser[SlugParams] {
	return func(path string) (SlugParams, bool) {
		params, ok := router.MatchPathPattern(routeID, path)
		if !ok {
			return SlugParams{}, false
		}

		slug := strings.TrimSpace(params["slug"])
		if slug == "" {
			return SlugParams{}, false
		}
		return SlugParams{Slug: slug}, true
	}
}

func applyLayouts[VM interface{}](
	layouts []LayoutRenderer[VM],
	view VM,
	child templ.Component,
) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](view, wrapped)
	}
	return wrapped
}

func servePageModule[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module PageModule[C, P, VM],
	params P,
) {
	view, err := module.Load(r.Context(), runtime.AppContext(), r, params)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourcePageLoad)
		return
	}

	renderView(runtime, w, r, module, view, RenderOptions{NoStore: module.NoStore})
}

func serveActionModule[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	page PageModule[C, P, VM],
	action ActionModule[C, P, VM],
	params P,
) {
	result, err := action.Submit(r.Context(), runtime.AppContext(), r, params)
	if err != nil {
		handleLoadError(runtime, w, r, err, page.Pattern, NotFoundSourceAction)
		return
	}

	if result.RedirectTo != "" {
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
		return
	}

	renderView(runtime, w, r, page, result.View, RenderOptions{
		StatusCode: result.StatusCode,
		NoStore:    true,
	})
}

func renderView[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module PageModule[C, P, VM],
	view VM,
	opts RenderOptions,
) {
	component := applyLayouts(module.Layouts, view, module.Render(view))
	if err := runtime.RenderPage(r, w, component, opts); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("render route %q: %w", module.Pattern, err))
	}
}

func handleLoadError[C interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	err error,
	routePattern string,
	source NotFoundSource,
) {
	if runtime.IsNotFound(err) {
		runtime.RespondNotFound(w, r, NotFoundContext{
			RequestPath:         r.URL.Path,
			MatchedRoutePattern: routePattern,
			Source:              source,
		})
		return
	}

	var badRequest *BadRequestError
	if errors.As(err, &badRequest) {
		runtime.RespondBadRequest(w, badRequest.Message)
		return
	}

	runtime.RespondServerError(w, fmt.Errorf("load route %q: %w", routePattern, err))
}

func isReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func respondMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
