package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	dashwidgets "github.com/goliatone/go-dashwidgets"
	"github.com/goliatone/go-dashwidgets/pkg/form"
	"github.com/goliatone/go-dashwidgets/pkg/render"
	"github.com/goliatone/go-dashwidgets/pkg/widget"
)

// AssetsPrefix is where the widget stylesheet is served.
const AssetsPrefix = "/assets/"

// Routes returns the host's HTTP handler.
func (a *App) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(a.logger))

	r.Get("/healthz", a.handleHealth)
	r.Handle(AssetsPrefix+"*", dashwidgets.AssetsHandler(AssetsPrefix))

	r.Get("/table", a.handleTable)
	r.Post("/table/open", a.handleTableOpen)
	r.Post("/table/submit", a.handleTableSubmit)

	r.Get("/form", a.handleForm)
	r.Post("/form/submit", a.handleFormSubmit)
	return r
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "version": a.version})
}

func (a *App) handleTable(w http.ResponseWriter, r *http.Request) {
	if a.table == nil {
		http.NotFound(w, r)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeTable(w, r, http.StatusOK)
}

func (a *App) handleTableOpen(w http.ResponseWriter, r *http.Request) {
	if a.table == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if intent := r.PostForm.Get(render.HiddenIntent); intent != "" && intent != render.IntentOpen {
		http.Error(w, fmt.Sprintf("unsupported intent %q", intent), http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	a.table.OpenForm()
	a.mu.Unlock()
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}

func (a *App) handleTableSubmit(w http.ResponseWriter, r *http.Request) {
	if a.table == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch intent := r.PostForm.Get(render.HiddenIntent); intent {
	case render.IntentCancel:
		a.table.CancelForm()
	case "", render.IntentSubmit:
		if posted := r.PostForm.Get(render.HiddenVersion); posted != "" && posted != a.tableVersion() {
			http.Error(w, "table data changed since the dialog was opened", http.StatusConflict)
			return
		}
		if err := a.table.SubmitValues(render.StripReserved(r.PostForm)); err != nil {
			if errors.Is(err, widget.ErrDialogClosed) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			a.internalError(w, r, err)
			return
		}
		if err := a.flush(r.Context()); err != nil {
			a.internalError(w, r, err)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("unsupported intent %q", intent), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/table", http.StatusSeeOther)
}

func (a *App) handleForm(w http.ResponseWriter, r *http.Request) {
	if a.form == nil {
		http.NotFound(w, r)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeForm(w, r, http.StatusOK)
}

func (a *App) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if a.form == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch intent := r.PostForm.Get(render.HiddenIntent); intent {
	case render.IntentOpen:
		a.form.OpenForm()
	case render.IntentCancel, render.IntentReset:
		a.form.ResetForm()
	case "", render.IntentSubmit:
		_, err := a.form.SubmitValues(render.StripReserved(r.PostForm))
		var verr *form.ValidationError
		switch {
		case errors.As(err, &verr):
			a.writeForm(w, r, http.StatusUnprocessableEntity)
			return
		case errors.Is(err, widget.ErrDialogClosed):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			a.internalError(w, r, err)
			return
		}
		if err := a.flush(r.Context()); err != nil {
			a.internalError(w, r, err)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("unsupported intent %q", intent), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/form", http.StatusSeeOther)
}

func (a *App) tableVersion() string {
	return fmt.Sprint(a.table.TransposeCount())
}

// writeTable renders the table with the renderer named by ?renderer=.
// Callers hold a.mu.
func (a *App) writeTable(w http.ResponseWriter, r *http.Request, status int) {
	renderer, err := a.renderers.Registry.Get(r.URL.Query().Get("renderer"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	out, err := renderer.RenderTable(r.Context(), a.table.View(), render.RenderOptions{
		Action:       "/table/submit",
		OpenAction:   "/table/open",
		HiddenFields: render.MergeHiddenFields(nil, render.InputVersion(a.tableVersion())),
		Theme:        a.theme,
	})
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.writePage(w, renderer.ContentType(), status, out)
}

// writeForm renders the form. Callers hold a.mu.
func (a *App) writeForm(w http.ResponseWriter, r *http.Request, status int) {
	renderer, err := a.renderers.Registry.Get(r.URL.Query().Get("renderer"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	out, err := renderer.RenderForm(r.Context(), a.form.View(), render.RenderOptions{
		Action:     "/form/submit",
		OpenAction: "/form/submit",
		Theme:      a.theme,
	})
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.writePage(w, renderer.ContentType(), status, out)
}

func (a *App) writePage(w http.ResponseWriter, contentType string, status int, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		a.logger.Debug("write response", "error", err)
	}
}

func (a *App) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", middleware.GetReqID(r.Context()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
