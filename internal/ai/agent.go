package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finpulse/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"github.com/shopspring/decimal"
)

// AgentService extracts a structured invoice from raw document text.
type AgentService interface {
	ExtractInvoice(ctx context.Context, documentText, sourcePDF string) (*core.Invoice, error)
}

type Agent struct {
	client *openai.Client
	model  shared.ChatModel
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client, model: shared.ChatModelGPT4o}
}

// extractedInvoice is the structured-output shape the model fills in.
// Amounts are strings so the model cannot emit float artifacts; they are
// parsed into decimals afterwards, defaulting to zero when unparseable.
type extractedInvoice struct {
	DocumentCategory string  `json:"document_category" jsonschema_description:"One of: revenue, expense, asset, liability. Use revenue for sales invoices issued by us, expense for purchase bills."`
	InvoiceNumber    string  `json:"invoice_number" jsonschema_description:"The invoice number printed on the document, or empty if absent"`
	VendorName       string  `json:"vendor_name" jsonschema_description:"The name of the party issuing the document"`
	CustomerName     string  `json:"customer_name" jsonschema_description:"The name of the party billed by the document"`
	CustomerGSTIN    string  `json:"customer_gstin" jsonschema_description:"The customer's 15-character GSTIN if printed, else empty"`
	VendorGSTIN      string  `json:"vendor_gstin" jsonschema_description:"The vendor's 15-character GSTIN if printed, else empty"`
	DateOfIssue      string  `json:"date_of_issue" jsonschema_description:"Invoice date in YYYY-MM-DD format"`
	DueDate          string  `json:"due_date" jsonschema_description:"Due date in YYYY-MM-DD format, or empty if absent"`
	TaxableAmount    string  `json:"taxable_amount" jsonschema_description:"Taxable value before GST as a plain number string, e.g. '1000.00'"`
	CGST             string  `json:"cgst" jsonschema_description:"CGST amount as a plain number string, '0' if not applicable"`
	SGST             string  `json:"sgst" jsonschema_description:"SGST amount as a plain number string, '0' if not applicable"`
	IGST             string  `json:"igst" jsonschema_description:"IGST amount as a plain number string, '0' if not applicable"`
	PlaceOfSupply    string  `json:"place_of_supply" jsonschema_description:"The place of supply or state name printed on the document, verbatim"`
	ExpenseAccount   string  `json:"expense_account" jsonschema_description:"A short expense account label for the purchase, e.g. 'Office Supplies', or empty"`
	Confidence       float64 `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
}

// ExtractInvoice sends document text through structured-output extraction and
// returns a normalized pending invoice. Totals are recomputed from the GST
// components, so an inconsistent model answer still yields a structurally
// valid record.
func (a *Agent) ExtractInvoice(ctx context.Context, documentText, sourcePDF string) (*core.Invoice, error) {
	prompt := fmt.Sprintf(`You are an expert Indian accountant.
Extract the invoice fields from the document text below.
Rules:
1. Amounts must be exact plain number strings (e.g. "1000.00"), never formatted with currency symbols or commas.
2. CGST and SGST apply to intra-state invoices, IGST to inter-state. Report only what the document shows.
3. Dates must be YYYY-MM-DD.
4. Leave fields you cannot find empty rather than guessing.
5. Provide a confidence score (0.0-1.0).

Document:
%s`, documentText)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(a.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "invoice_extraction",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Structured fields extracted from an Indian GST invoice"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var extracted extractedInvoice
	if err := json.Unmarshal([]byte(content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}

	inv := extracted.toInvoice(sourcePDF, string(a.model))
	inv.Normalize()
	return inv, nil
}

// toInvoice converts the wire shape into the domain invoice. Unparseable
// amounts and dates default to zero values; extraction is best-effort and the
// review queue catches the gaps.
func (e *extractedInvoice) toInvoice(sourcePDF, model string) *core.Invoice {
	inv := &core.Invoice{
		DocumentCategory: core.DocumentCategory(e.DocumentCategory),
		InvoiceNumber:    e.InvoiceNumber,
		VendorName:       e.VendorName,
		CustomerName:     e.CustomerName,
		CustomerGSTIN:    e.CustomerGSTIN,
		VendorGSTIN:      e.VendorGSTIN,
		TaxableAmount:    parseAmount(e.TaxableAmount),
		CGST:             parseAmount(e.CGST),
		SGST:             parseAmount(e.SGST),
		IGST:             parseAmount(e.IGST),
		Status:           core.StatusPending,
		PlaceOfSupply:    e.PlaceOfSupply,
		ExpenseAccount:   e.ExpenseAccount,
		SourcePDF:        sourcePDF,
		ExtractionModel:  model,
		Confidence:       decimal.NewFromFloat(e.Confidence),
	}

	if d, err := time.Parse("2006-01-02", e.DateOfIssue); err == nil {
		inv.DateOfIssue = d
	}
	if d, err := time.Parse("2006-01-02", e.DueDate); err == nil {
		inv.DueDate = &d
	}

	return inv
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v extractedInvoice
	return reflector.Reflect(v)
}
