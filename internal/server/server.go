// Package server serves the interactive invoice form over HTTP.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	invoiceform "github.com/porticus-lab/go-invoice-form"
)

// Server routes form edits and exports to per-session forms.
type Server struct {
	store    *Store
	exporter *invoiceform.Exporter
	router   *mux.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithStore sets the session store. By default each Server gets its own
// [NewStore] with default limits.
func WithStore(st *Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// New returns a Server exporting through exp.
func New(exp *invoiceform.Exporter, opts ...Option) *Server {
	s := &Server{store: NewStore(), exporter: exp, router: mux.NewRouter()}
	for _, o := range opts {
		o(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleSave).Methods(http.MethodPost)
	s.router.HandleFunc("/items", s.handleAddItem).Methods(http.MethodPost)
	s.router.HandleFunc("/fields/{name}", s.handleUpdateField).Methods(http.MethodPost)
	s.router.HandleFunc("/items/{index:[0-9]+}/{field}", s.handleUpdateItem).Methods(http.MethodPost)
	s.router.HandleFunc("/totals", s.handleTotals).Methods(http.MethodGet)
	s.router.HandleFunc("/invoice.pdf", s.handleDownload).Methods(http.MethodGet, http.MethodPost)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// WithLogging logs method, path and duration of every request.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f := s.store.session(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := invoiceform.Render(w, f.Invoice(), invoiceform.RenderOptions{
		Editable:       true,
		SaveAction:     "/",
		AddItemAction:  "/items",
		DownloadAction: "/invoice.pdf",
	})
	if err != nil {
		log.Printf("render form: %v", err)
	}
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	f := s.store.session(w, r)
	if err := applyForm(f, r); err != nil {
		writeEditError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	f := s.store.session(w, r)
	if err := applyForm(f, r); err != nil {
		writeEditError(w, err)
		return
	}
	f.AddItem()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	f := s.store.session(w, r)
	name := invoiceform.Field(mux.Vars(r)["name"])
	if err := f.UpdateField(name, r.FormValue("value")); err != nil {
		writeEditError(w, err)
		return
	}
	writeState(w, f)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	f := s.store.session(w, r)
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid item index", vars["index"])
		return
	}
	if err := f.UpdateItem(index, invoiceform.ItemField(vars["field"]), r.FormValue("value")); err != nil {
		writeEditError(w, err)
		return
	}
	writeState(w, f)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	f := s.store.peek(r)
	writeJSON(w, http.StatusOK, totalsResponse(f.Totals()))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	// Plain downloads only read state; a session is started only when the
	// request carries edits.
	f := s.store.peek(r)
	if r.Method == http.MethodPost {
		f = s.store.session(w, r)
		if err := applyForm(f, r); err != nil {
			writeEditError(w, err)
			return
		}
	}

	res, err := s.exporter.Export(r.Context(), f.Invoice())
	if err != nil {
		log.Printf("export failed: %v", err)
		writeJSONError(w, http.StatusBadGateway, "export failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(res.Len()))
	if _, err := res.WriteTo(w); err != nil {
		log.Printf("writing pdf: %v", err)
	}
}

// applyForm applies every submitted invoice field of r to f in one batch.
// Item inputs are named "items.<index>.<field>"; unrelated keys such as
// button names are ignored.
func applyForm(f *invoiceform.Form, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	values := r.PostForm
	return f.Apply(func(inv invoiceform.Invoice) (invoiceform.Invoice, error) {
		var err error
		for _, field := range invoiceform.Fields {
			if _, ok := values[string(field)]; !ok {
				continue
			}
			if inv, err = inv.WithField(field, values.Get(string(field))); err != nil {
				return inv, err
			}
		}
		for key := range values {
			rest, ok := strings.CutPrefix(key, "items.")
			if !ok {
				continue
			}
			idx, field, ok := strings.Cut(rest, ".")
			if !ok {
				return inv, fmt.Errorf("%w: %q", invoiceform.ErrUnknownField, key)
			}
			i, convErr := strconv.Atoi(idx)
			if convErr != nil {
				return inv, fmt.Errorf("%w: %q", invoiceform.ErrItemIndex, key)
			}
			if inv, err = inv.WithItem(i, invoiceform.ItemField(field), values.Get(key)); err != nil {
				return inv, err
			}
		}
		return inv, nil
	})
}

type stateResponse struct {
	Invoice invoiceform.Invoice `json:"invoice"`
	Totals  totalsPayload       `json:"totals"`
}

type totalsPayload struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func totalsResponse(t invoiceform.Totals) totalsPayload {
	return totalsPayload{
		Subtotal: invoiceform.FormatMoney(t.Subtotal),
		Tax:      invoiceform.FormatMoney(t.Tax),
		Total:    invoiceform.FormatMoney(t.Total),
	}
}

func writeState(w http.ResponseWriter, f *invoiceform.Form) {
	inv := f.Invoice()
	writeJSON(w, http.StatusOK, stateResponse{
		Invoice: inv,
		Totals:  totalsResponse(invoiceform.ComputeTotals(inv)),
	})
}

func writeEditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoiceform.ErrUnknownField):
		writeJSONError(w, http.StatusBadRequest, "unknown field", err.Error())
	case errors.Is(err, invoiceform.ErrItemIndex):
		writeJSONError(w, http.StatusBadRequest, "invalid item index", err.Error())
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid form", err.Error())
	}
}
