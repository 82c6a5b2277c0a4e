package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const (
	// SubmissionPath is the endpoint receiving completed records.
	SubmissionPath = "/submissions"
	// SubmitOperationID identifies the submission operation.
	SubmitOperationID = "submitForm"
	// ErrorsName is the component name of the field error payload.
	ErrorsName = "FieldErrors"
)

// DocumentOption customises the generated document.
type DocumentOption func(*openapi3.T)

// WithTitle overrides info.title.
func WithTitle(title string) DocumentOption {
	return func(doc *openapi3.T) {
		if title != "" {
			doc.Info.Title = title
		}
	}
}

// WithVersion overrides info.version.
func WithVersion(version string) DocumentOption {
	return func(doc *openapi3.T) {
		if version != "" {
			doc.Info.Version = version
		}
	}
}

// WithServer adds a server URL.
func WithServer(url string) DocumentOption {
	return func(doc *openapi3.T) {
		if url != "" {
			doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
		}
	}
}

// Document builds and validates the OpenAPI description of the submission
// endpoint.
func Document(ctx context.Context, options ...DocumentOption) (*openapi3.T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	record := openapi3.NewSchemaRef(RecordRef, RecordSchema())
	fieldErrors := openapi3.NewSchemaRef("#/components/schemas/"+ErrorsName, errorsSchema())

	op := &openapi3.Operation{
		OperationID: SubmitOperationID,
		Summary:     "Submit a completed wizard record",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(record),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusAccepted, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Submission accepted"),
			}),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Submission rejected with field errors").
					WithJSONSchemaRef(fieldErrors),
			}),
		),
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Form Wizard",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(SubmissionPath, &openapi3.PathItem{Post: op}),
		),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				RecordName: openapi3.NewSchemaRef("", RecordSchema()),
				ErrorsName: openapi3.NewSchemaRef("", errorsSchema()),
			},
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(doc)
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("schema: validate document: %w", err)
	}
	return doc, nil
}

// errorsSchema describes the rejection payload understood by the HTTP
// transport: {"errors": {"field": ["message"]}, "message": "..."}.
func errorsSchema() *openapi3.Schema {
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	s := openapi3.NewObjectSchema().
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(messages)).
		WithProperty("message", openapi3.NewStringSchema())
	s.Title = ErrorsName
	return s
}

// Format names accepted by Marshal.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Marshal encodes doc as indented JSON or block-style YAML.
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("schema: document is nil")
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode json: %w", err)
	}
	switch format {
	case "", FormatJSON:
		return append(raw, '\n'), nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("schema: decode json as yaml: %w", err)
		}
		blockStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("schema: encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("schema: unsupported format %s", strconv.Quote(format))
	}
}

// blockStyle clears the flow and quoting styles left by the JSON source.
// The encoder still quotes scalars that would otherwise change type.
func blockStyle(node *yaml.Node) {
	if node == nil {
		return
	}
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
