package data

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type dataService interface {
	Export(ctx context.Context, scope auth.Identity) (ledger.Document, service.Result)
	Import(ctx context.Context, scope auth.Identity, doc ledger.Document) service.Result
}

type ExportInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	Format        string `query:"format" default:"json" doc:"json or yaml"`
}

type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type ImportInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	ContentType   string `header:"Content-Type"`
	Format        string `query:"format" doc:"json or yaml; defaults from Content-Type"`
	RawBody       []byte
}

type ImportOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// Handler serves GET /v1/export and POST /v1/import.
type Handler struct {
	Auth        guard.Authenticator
	DataService dataService
}

func NewHandler(a guard.Authenticator, svc dataService) *Handler {
	return &Handler{Auth: a, DataService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-data",
		Method:      http.MethodGet,
		Path:        "/v1/export",
		Summary:     "Export data",
		Description: "Downloads every transaction, the categories and the settings as one document.",
		Tags:        []string{"Data"},
	}, h.export)
	huma.Register(api, huma.Operation{
		OperationID: "import-data",
		Method:      http.MethodPost,
		Path:        "/v1/import",
		Summary:     "Import data",
		Description: "Validates an exported document and replaces all of the user's data with it.",
		Tags:        []string{"Data"},
	}, h.importData)
}

func (h *Handler) export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	format, err := ledger.ParseFormat(input.Format)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	doc, res := h.DataService.Export(ctx, identity)
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}
	encoded, err := ledger.EncodeDocument(doc, format)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to encode export", err)
	}
	logging.GetLogData(ctx).AddData("transactions", len(doc.Expenses))

	filename := fmt.Sprintf("budget_%s_%s.%s", doc.Username, doc.ExportDate.Format("20060102"), format)
	return &ExportOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               encoded,
	}, nil
}

// importFormat prefers the explicit query parameter over the Content-Type header.
func importFormat(query, contentType string) (ledger.Format, error) {
	if query != "" {
		return ledger.ParseFormat(query)
	}
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return ledger.FormatYAML, nil
	}
	return ledger.FormatJSON, nil
}

func (h *Handler) importData(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	format, err := importFormat(input.Format, input.ContentType)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	doc, err := ledger.DecodeDocument(input.RawBody, format)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	res := h.DataService.Import(ctx, identity, doc)
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}

	out := &ImportOutput{}
	out.Body.Message = res.Message
	return out, nil
}
