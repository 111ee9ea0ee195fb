package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/pkg/handlers"
	"github.com/JaimeStill/spotlight/pkg/openapi"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/routes"
)

type formHandler struct {
	def         *form.Definition
	logger      *slog.Logger
	maxBodySize int64
}

type validation struct {
	Valid    bool     `json:"valid"`
	Filename string   `json:"filename,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

func newFormHandler(def *form.Definition, logger *slog.Logger, maxBodySize int64) *formHandler {
	return &formHandler{
		def:         def,
		logger:      logger.With("handler", "form"),
		maxBodySize: maxBodySize,
	}
}

func (h *formHandler) routes() routes.Group {
	return routes.Group{
		Prefix:  "/form",
		Tags:    []string{"Form"},
		Schemas: formSchemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.definition, OpenAPI: formDefinitionOp},
			{Method: "POST", Pattern: "/validate", Handler: h.validate, OpenAPI: formValidateOp},
		},
	}
}

func (h *formHandler) definition(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.def)
}

// validate checks a submission without publishing it. An invalid
// submission is still a 200 response; the body lists each problem.
func (h *formHandler) validate(w http.ResponseWriter, r *http.Request) {
	var sub form.Submission
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &sub); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	err := sub.Validate(h.def)
	if err == nil {
		handlers.RespondJSON(w, http.StatusOK, validation{
			Valid:    true,
			Filename: sub.Filename(h.def, pdf.Extension),
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, validation{Errors: messages(err)})
}

func messages(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, messages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

var formDefinitionOp = &openapi.Operation{
	Summary: "Get the form definition",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Form definition", "FormDefinition"),
	},
}

var formValidateOp = &openapi.Operation{
	Summary:     "Validate a submission",
	Description: "Checks a submission without publishing it. Problems are listed in the body of a 200 response.",
	RequestBody: openapi.RequestBodyJSON("Submission", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Validation result", "Validation"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("TooLarge"),
	},
}

var formSchemas = map[string]*openapi.Schema{
	"FormField": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":     {Type: "string"},
			"label":   {Type: "string"},
			"prompt":  {Type: "string"},
			"type":    {Type: "string", Enum: []any{form.TypeTextarea, form.TypeSelect, form.TypeNumber}},
			"options": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"min":     {Type: "integer"},
			"heading": {Type: "string"},
		},
	},
	"FormDefinition": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":      {Type: "string"},
			"subtitle":   {Type: "string"},
			"team_key":   {Type: "string"},
			"period_key": {Type: "string"},
			"fields":     openapi.ArrayOf("FormField"),
		},
	},
	"Validation": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"valid":    {Type: "boolean"},
			"filename": {Type: "string"},
			"errors":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
		},
	},
}
