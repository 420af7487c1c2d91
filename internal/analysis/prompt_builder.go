package analysis

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const systemPrompt = "Você é um analista de negócios que ajuda pequenos comerciantes a entender suas vendas. " +
	"Seja objetivo e use apenas os números fornecidos."

var brazil = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	cents := model.Cents(d)
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return brazil.Sprintf("R$ %s%v", sign, number.Decimal(cents/100)) + fmt.Sprintf(",%02d", cents%100)
}

// FormatDate renders a YYYY-MM-DD date as DD/MM/YYYY.
func FormatDate(s string) string {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// PromptBuilder renders the summary prompt template.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the embedded template.
func NewPromptBuilder() (*PromptBuilder, error) {
	funcMap := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	tmpl, err := template.New("summary_prompt.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/summary_prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template summary_prompt: %w", err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

type promptLine struct {
	Name    string
	Revenue string
	Orders  int
}

type promptData struct {
	Period       string
	TotalRevenue string
	AverageOrder string
	OrdersPerDay string
	TopProducts  []promptLine
	Weekdays     []promptLine
	OrderCount   int
	ActiveDays   int
}

// Build renders the prompt for summary with every amount in reais.
func (b *PromptBuilder) Build(summary *analytics.Summary) (string, error) {
	data := promptData{
		Period:       period(summary.Range),
		TotalRevenue: FormatBRL(summary.KPIs.TotalRevenue),
		AverageOrder: FormatBRL(summary.KPIs.AverageOrderValue),
		OrdersPerDay: brazil.Sprintf("%v", number.Decimal(summary.KPIs.AverageOrdersPerDay.InexactFloat64(), number.Scale(1))),
		OrderCount:   summary.KPIs.OrderCount,
		ActiveDays:   summary.KPIs.ActiveDays,
	}
	for _, p := range summary.TopProducts {
		data.TopProducts = append(data.TopProducts, promptLine{Name: p.Name, Revenue: FormatBRL(p.Revenue), Orders: p.Orders})
	}
	for _, w := range summary.Weekdays {
		data.Weekdays = append(data.Weekdays, promptLine{Name: w.Name, Revenue: FormatBRL(w.Revenue), Orders: w.Orders})
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template summary_prompt: %w", err)
	}
	return buf.String(), nil
}

func period(r analytics.Range) string {
	switch {
	case r.DateFrom != "" && r.DateTo != "":
		return FormatDate(r.DateFrom) + " a " + FormatDate(r.DateTo)
	case r.DateFrom != "":
		return "desde " + FormatDate(r.DateFrom)
	case r.DateTo != "":
		return "até " + FormatDate(r.DateTo)
	}
	return "todo o histórico"
}
