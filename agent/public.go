package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/drezende/apura"
	"github.com/drezende/apura/docs"
	"github.com/drezende/apura/renderer"
)

const model = "gemini-2.5-pro"

// ReportSource computes the report of one year. The cmd layer supplies an
// implementation wired to its ledger and quote files.
type ReportSource func(year int) (*apura.Report, error)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his investment positions and the Brazilian
			capital-gains taxes due on his sales. Devise a plan of questions to ask each expert
			and come up with the best response to the user's request.

			The user will assume that you know about his accounts; check the Fiscal expert first
			to understand what they are.
		`}}},
		},
		Toolbox: NewToolbox(experts),
	}
}

// NewAnalyst creates the market analyst expert, grounded in search results.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		well aware of financial products, companies, and the latest market news.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds, and you leverage
			Google Search to ground your assertions. You know the latest news and
			how to relate them to the user's request.
				`}}},
		},
	}
}

// NewFiscal creates the fiscal expert: the one that reads the user's ledger
// and computes positions and taxes.
func NewFiscal(source ReportSource) *Expert {
	lib := []Function{
		newReportFunc("Holdings", `Holdings lists the user's open positions as of December 31st
		of a year, with quantity, average cost and acquisition value.`, source, renderer.HoldingsMarkdown),
		newReportFunc("Disposals", `Disposals lists every sale the user realized in a year, with
		the average cost it was priced against and the resulting profit or loss.`, source, renderer.DisposalsMarkdown),
		newReportFunc("TaxSummary", `TaxSummary computes the monthly capital-gains taxes of a year:
		taxable profit and tax due per month, exempt income, and sales requiring manual filing.`, source,
			func(r *apura.Report) string { return renderer.TaxMarkdown(r.Tax) }),
	}

	return &Expert{
		Name: "Fiscal",
		Description: `This is the Fiscal expert. He reads the user's asset ledger and
		computes positions, realized sales and the Brazilian capital-gains taxes due.
		Ask him anything about what the user owns, sold, or owes.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a fiscal expert in charge of the user's asset ledger.
				You know how to use the Tools to compute the user's positions, realized
				sales and taxes for any year. You are part of a team of experts; pardon
				their approximative language and figure out what they meant.

				The tax rules you apply are documented below:

			` + must(docs.Topic("darf")) + must(docs.Topic("classes"))}}},
		},
		Toolbox: NewToolbox(lib),
	}
}

// reportFunc exposes one rendered view of a year's report as a callable tool.
type reportFunc struct {
	name        string
	description string
	source      ReportSource
	render      func(*apura.Report) string
}

func newReportFunc(name, description string, source ReportSource, render func(*apura.Report) string) *reportFunc {
	return &reportFunc{name: name, description: description, source: source, render: render}
}

func (f *reportFunc) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        f.name,
		Description: f.description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"year": {
					Type:        genai.TypeInteger,
					Description: "The calendar year to report on.",
				},
			},
			Required: []string{"year"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted report.",
		},
	}
}

func (f *reportFunc) Call(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
	year, err := parseYear(args)
	if err != nil {
		return errorResponse(id, f.name, err)
	}
	report, err := f.source(year)
	if err != nil {
		return errorResponse(id, f.name, err)
	}
	return &genai.FunctionResponse{
		ID:       id,
		Name:     f.name,
		Response: map[string]any{"output": f.render(report)},
	}
}

func parseYear(args map[string]any) (int, error) {
	iyear, ok := args["year"]
	if !ok {
		return apura.Today().Year(), nil
	}
	// genai decodes JSON numbers as float64.
	switch y := iyear.(type) {
	case float64:
		return int(y), nil
	case int:
		return y, nil
	default:
		return 0, fmt.Errorf("argument 'year' is not a number as expected but %T", iyear)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
