package reports

import "github.com/JaimeStill/spotlight/pkg/openapi"

type spec struct {
	List     *openapi.Operation
	Find     *openapi.Operation
	Download *openapi.Operation
	Submit   *openapi.Operation
	Preview  *openapi.Operation
	Search   *openapi.Operation
}

// Spec holds the OpenAPI operations of the report endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List published reports",
		Description: "Returns a page of registry entries, newest first unless sort says otherwise.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches team or filename", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("team", "string", "Exact team name", false),
			openapi.QueryParam("period", "string", "Exact reporting period", false),
			openapi.QueryParam("filename", "string", "Exact published filename", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report page", "ReportPage"),
			500: openapi.ResponseRef("InternalFailure"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a report",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Report ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary:     "Download a report",
		Description: "Streams the published PDF from blob storage as an attachment.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Report ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Published PDF", "application/pdf"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Submit: &openapi.Operation{
		Summary:     "Publish a report",
		Description: "Validates the submission, renders the classified PDF, uploads it, and records the registry entry. Only one publish runs at a time.",
		RequestBody: openapi.RequestBodyJSON("Submission", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Published report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("TooLarge"),
			502: openapi.ResponseRef("BadGateway"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
	Preview: &openapi.Operation{
		Summary:     "Preview a report",
		Description: "Classifies the submission and returns it as Markdown and sanitized HTML without publishing.",
		RequestBody: openapi.RequestBodyJSON("Submission", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Preview", "Preview"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search published reports",
		RequestBody: openapi.RequestBodyJSON("ReportSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report page", "ReportPage"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalFailure"),
		},
	},
}

// Schemas returns the component schemas the report operations reference.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Submission": {
			Type:     "object",
			Required: []string{"values"},
			Properties: map[string]*openapi.Schema{
				"values": {
					Type:        "object",
					Description: "Answers keyed by form field key",
					Example:     map[string]string{"team": "[DS] Tim Data Science", "period": "Maret 2025"},
				},
			},
		},
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"team":         {Type: "string"},
				"period":       {Type: "string"},
				"filename":     {Type: "string", Example: "[DS] Tim Data Science_Maret 2025.pdf"},
				"storage_key":  {Type: "string"},
				"url":          {Type: "string", Format: "uri"},
				"content_type": {Type: "string"},
				"size_bytes":   {Type: "integer"},
				"page_count":   {Type: "integer"},
				"submission":   openapi.SchemaRef("Submission"),
				"created_at":   {Type: "string", Format: "date-time"},
				"published_at": {Type: "string", Format: "date-time"},
			},
		},
		"ReportPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Report"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"ReportSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort":      {Type: "string", Description: "Comma-separated sort fields"},
				"team":      {Type: "string"},
				"period":    {Type: "string"},
				"filename":  {Type: "string"},
			},
		},
		"Preview": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"filename": {Type: "string"},
				"markdown": {Type: "string"},
				"html":     {Type: "string"},
			},
		},
	}
}
