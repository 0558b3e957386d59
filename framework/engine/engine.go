package engine

import (
	"errors"
	"fmt"
	"net/http"

	"minblog/framework"
	"minblog/framework/router"

	"github.com/a-h/templ"
)

type Config[C interface{}] struct {
	AppContext C
	Handlers   []framework.RouteHandler[C]

	RenderPage func(r *http.Request, w http.ResponseWriter, component templ.Component, opts framework.RenderOptions) error
	PatchLive  func(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error

	IsNotFoundError   func(err error) bool
	HandleNotFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	HandleBadRequest  func(w http.ResponseWriter, message string)
	HandleServerError func(w http.ResponseWriter, err error)
}

type Engine[C interface{}] struct {
	appContext C
	router     *router.AppRouter
	handlers   map[string]framework.RouteHandler[C]

	renderPage func(r *http.Request, w http.ResponseWriter, component templ.Component, opts framework.RenderOptions) error
	patchLive  func(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error

	isNotFound  func(err error) bool
	notFound    func(w http.ResponseWriter, r *http.Request, notFoundContext framework.NotFoundContext)
	badRequest  func(w http.ResponseWriter, message string)
	serverError func(w http.ResponseWriter, err error)
}

func New[C interface{}](cfg Config[C]) (*Engine[C], error) {
	if cfg.RenderPage == nil {
		return nil, errors.New("render page callback is required")
	}

	patchLive := cfg.PatchLive
	if patchLive == nil {
		patchLive = func(http.ResponseWriter, *http.Request, string, templ.Component) error {
			return errors.New("live patching is not configured")
		}
	}

	routeIDs := make([]string, 0, len(cfg.Handlers))
	handlers := make(map[string]framework.RouteHandler[C], len(cfg.Handlers))
	for _, handler := range cfg.Handlers {
		routeID := handler.RouteID()
		if _, exists := handlers[routeID]; exists {
			return nil, fmt.Errorf("duplicate route %q", routeID)
		}
		handlers[routeID] = handler
		routeIDs = append(routeIDs, routeID)
	}

	appRouter, err := router.NewAppRouter(routeIDs)
	if err != nil {
		return nil, fmt.Errorf("build app router: %w", err)
	}

	isNotFound := cfg.IsNotFoundError
	if isNotFound == nil {
		isNotFound = func(error) bool { return false }
	}

	notFound := cfg.HandleNotFound
	if notFound == nil {
		notFound = func(w http.ResponseWriter, r *http.Request, _ framework.NotFoundContext) {
			http.NotFound(w, r)
		}
	}

	badRequest := cfg.HandleBadRequest
	if badRequest == nil {
		badRequest = func(w http.ResponseWriter, message string) {
			http.Error(w, message, http.StatusBadRequest)
		}
	}

	serverError := cfg.HandleServerError
	if serverError == nil {
		serverError = func(w http.ResponseWriter, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return &Engine[C]{
		appContext:  cfg.AppContext,
		router:      appRouter,
		handlers:    handlers,
		renderPage:  cfg.RenderPage,
		patchLive:   patchLive,
		isNotFound:  isNotFound,
		notFound:    notFound,
		badRequest:  badRequest,
		serverError: serverError,
	}, nil
}

// ServeRoute dispatches the request to the most specific matching route and
// reports whether any route accepted it.
func (engine *Engine[C]) ServeRoute(w http.ResponseWriter, r *http.Request) bool {
	match, ok := engine.router.Match(r.URL.Path)
	if !ok {
		return false
	}

	handler, ok := engine.handlers[match.ID]
	if !ok {
		return false
	}

	return handler.TryServe(engine, w, r)
}

func (engine *Engine[C]) AppContext() C {
	return engine.appContext
}

func (engine *Engine[C]) RenderPage(
	r *http.Request,
	w http.ResponseWriter,
	component templ.Component,
	opts framework.RenderOptions,
) error {
	return engine.renderPage(r, w, component, opts)
}

func (engine *Engine[C]) PatchLive(
	w http.ResponseWriter,
	r *http.Request,
	selectorID string,
	component templ.Component,
) error {
	return engine.patchLive(w, r, selectorID, component)
}

func (engine *Engine[C]) IsNotFound(err error) bool {
	return engine.isNotFound(err)
}

func (engine *Engine[C]) RespondNotFound(
	w http.ResponseWriter,
	r *http.Request,
	notFoundContext framework.NotFoundContext,
) {
	engine.notFound(w, r, notFoundContext)
}

func (engine *Engine[C]) RespondBadRequest(w http.ResponseWriter, message string) {
	engine.badRequest(w, message)
}

func (engine *Engine[C]) RespondServerError(w http.ResponseWriter, err error) {
	engine.serverError(w, err)
}
