package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/internal/reports"
	"github.com/JaimeStill/spotlight/pkg/web"
)

const (
	msgSaved        = "Data berhasil disimpan!"
	msgTeamRequired = "Harap isi Nama Tim terlebih dahulu."
	msgNothingSaved = "Belum ada data tersimpan. Simpan data terlebih dahulu."
	msgPublished    = "PDF berhasil diunggah!"
	msgBusy         = "Ekspor lain sedang berjalan. Coba lagi sebentar."
	msgUploadFailed = "Gagal mengunggah PDF."
)

type notice struct {
	Kind     string
	Message  string
	Link     string
	Download string
}

type option struct {
	Value    string
	Selected bool
}

type fieldView struct {
	Key     string
	Caption string
	Type    string
	Options []option
	Min     int
	Value   string
}

type groupView struct {
	Heading string
	Fields  []fieldView
}

type pageData struct {
	Title     string
	Subtitle  string
	Groups    []groupView
	Notice    *notice
	Saved     bool
	SavedAt   string
	SavedJSON string
	Preview   template.HTML
}

type handler struct {
	cfg       Config
	def       *form.Definition
	pub       Publisher
	slot      *form.Slot
	templates *web.TemplateSet
	logger    *slog.Logger
}

func newHandler(cfg Config, def *form.Definition, pub Publisher, templates *web.TemplateSet, logger *slog.Logger) *handler {
	return &handler{
		cfg:       cfg,
		def:       def,
		pub:       pub,
		slot:      &form.Slot{},
		templates: templates,
		logger:    logger.With("handler", "app"),
	}
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, nil)
}

func (h *handler) save(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodySize)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub := form.Submission{Values: make(map[string]string, len(h.def.Fields))}
	for _, f := range h.def.Fields {
		sub.Values[f.Key] = strings.ReplaceAll(r.PostForm.Get(f.Key), "\r\n", "\n")
	}

	h.slot.Save(sub)
	h.logger.Info("submission saved", "team", sub.Team(h.def), "period", sub.Period(h.def))
	h.render(w, http.StatusOK, &notice{Kind: "success", Message: msgSaved})
}

func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	sub, _, ok := h.slot.Load()
	if !ok {
		h.render(w, http.StatusBadRequest, &notice{Kind: "warning", Message: msgNothingSaved})
		return
	}
	if sub.Team(h.def) == "" {
		h.render(w, http.StatusBadRequest, &notice{Kind: "warning", Message: msgTeamRequired})
		return
	}

	rpt, err := h.pub.Submit(r.Context(), sub)
	if err != nil {
		h.render(w, reports.MapHTTPStatus(err), h.failure(err))
		return
	}

	h.render(w, http.StatusOK, &notice{
		Kind:     "success",
		Message:  msgPublished,
		Link:     rpt.URL,
		Download: fmt.Sprintf("%s/reports/%s/download", h.cfg.APIBasePath, rpt.ID),
	})
}

func (h *handler) failure(err error) *notice {
	switch {
	case errors.Is(err, form.ErrTeamRequired):
		return &notice{Kind: "warning", Message: msgTeamRequired}
	case errors.Is(err, reports.ErrInvalidSubmission):
		return &notice{Kind: "warning", Message: err.Error()}
	case errors.Is(err, reports.ErrBusy):
		return &notice{Kind: "warning", Message: msgBusy}
	default:
		h.logger.Error("export failed", "error", err)
		return &notice{Kind: "error", Message: msgUploadFailed}
	}
}

func (h *handler) render(w http.ResponseWriter, status int, n *notice) {
	data := h.pageData(n)
	if err := h.templates.Render(w, status, layout, formView, h.def.Title, data); err != nil {
		h.logger.Error("render page failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) pageData(n *notice) pageData {
	sub, savedAt, saved := h.slot.Load()

	data := pageData{
		Title:    h.def.Title,
		Subtitle: h.def.Subtitle,
		Groups:   groups(h.def, sub),
		Notice:   n,
		Saved:    saved,
	}
	if !saved {
		return data
	}

	data.SavedAt = savedAt.Format("02 Jan 2006 15:04:05")
	if raw, err := json.MarshalIndent(labelled(h.def, sub), "", "  "); err == nil {
		data.SavedJSON = string(raw)
	}

	p, err := h.pub.Preview(sub)
	if err != nil {
		h.logger.Warn("preview failed", "error", err)
		return data
	}
	// preview HTML is sanitized by the report pipeline
	data.Preview = template.HTML(p.HTML)
	return data
}

func groups(def *form.Definition, sub form.Submission) []groupView {
	var out []groupView
	for _, g := range def.Groups() {
		gv := groupView{Heading: g.Heading}
		for _, f := range g.Fields {
			value := sub.Get(f.Key)
			if f.Type == form.TypeNumber && value == "" {
				value = fmt.Sprint(f.Min)
			}
			fv := fieldView{
				Key:     f.Key,
				Caption: f.Caption(),
				Type:    string(f.Type),
				Min:     f.Min,
				Value:   value,
			}
			for _, o := range f.Options {
				fv.Options = append(fv.Options, option{Value: o, Selected: o == value})
			}
			gv.Fields = append(gv.Fields, fv)
		}
		out = append(out, gv)
	}
	return out
}

type labelledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// labelled lists the saved answers under their report labels in form order.
func labelled(def *form.Definition, sub form.Submission) []labelledValue {
	out := make([]labelledValue, 0, len(def.Fields))
	for _, f := range def.Fields {
		out = append(out, labelledValue{Label: f.Label, Value: sub.Get(f.Key)})
	}
	return out
}
