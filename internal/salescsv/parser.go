// Package salescsv turns uploaded CSV text into validated sale records.
//
// Row-level problems never fail a parse: each bad line is reported as a
// model.RejectedLine and parsing continues. Only an empty upload or one that
// exceeds the configured line ceiling fails the whole call.
package salescsv

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultMaxLines is the default ceiling on data lines per upload.
const DefaultMaxLines = 50000

// ErrTooManyLines is wrapped by the validation error returned for oversized uploads.
var ErrTooManyLines = errors.New("too many lines")

// headerMarkers are the substrings that identify a header row.
var headerMarkers = []string{"data", "date", "produto", "product"}

var dayMonthYear = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Result is the outcome of parsing one upload.
type Result struct {
	Records   []model.SaleRecord
	Rejected  []model.RejectedLine
	Delimiter string
	HasHeader bool
}

// DataLines returns the number of lines that were considered as sales.
func (r *Result) DataLines() int {
	return len(r.Records) + len(r.Rejected)
}

// Parser validates CSV sales uploads.
type Parser struct {
	maxLines int
}

// NewParser creates a parser that refuses uploads with more than maxLines data lines.
// A non-positive maxLines uses DefaultMaxLines.
func NewParser(maxLines int) *Parser {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Parser{maxLines: maxLines}
}

// MaxLines returns the configured line ceiling.
func (p *Parser) MaxLines() int {
	return p.maxLines
}

// Parse validates text and returns the accepted records and rejected lines in input order.
// Returned records carry no owner or batch; the caller assigns them.
func (p *Parser) Parse(text string) (*Result, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, common.Validation("empty CSV: a header and at least one data line are required")
	}

	if len(lines)-1 > p.maxLines {
		return nil, common.NewError(common.KindValidation,
			"upload exceeds the maximum of lines", ErrTooManyLines).
			WithDetails(map[string]int{"max_lines": p.maxLines, "lines": len(lines) - 1})
	}

	delimiter := detectDelimiter(lines)
	hasHeader := isHeader(lines[0])

	dataLines := lines
	firstLine := 1
	if hasHeader {
		dataLines = lines[1:]
		firstLine = 2
	}

	result := &Result{
		Records:   make([]model.SaleRecord, 0, len(dataLines)),
		Delimiter: delimiter,
		HasHeader: hasHeader,
	}
	seen := make(map[string]struct{}, len(dataLines))

	for i, raw := range dataLines {
		lineNum := firstLine + i

		record, reason := parseLine(raw, delimiter)
		if reason == "" {
			key := record.Key()
			if _, dup := seen[key]; dup {
				reason = model.RejectDuplicate
			} else {
				seen[key] = struct{}{}
			}
		}

		if reason != "" {
			result.Rejected = append(result.Rejected, model.RejectedLine{
				Line:   lineNum,
				Reason: reason,
				Raw:    raw,
			})
			continue
		}

		result.Records = append(result.Records, record)
	}

	return result, nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.TrimSpace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// detectDelimiter picks a single delimiter for the whole upload.
func detectDelimiter(lines []string) string {
	for _, l := range lines {
		if strings.Contains(l, ";") {
			return ";"
		}
	}
	return ","
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range headerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func parseLine(raw, delimiter string) (model.SaleRecord, model.RejectReason) {
	parts := strings.Split(raw, delimiter)
	if len(parts) < 3 {
		return model.SaleRecord{}, model.RejectTooFewFields
	}

	date, ok := NormalizeDate(strings.TrimSpace(parts[0]))
	if !ok {
		return model.SaleRecord{}, model.RejectInvalidDate
	}

	product, ok := NormalizeProduct(strings.TrimSpace(parts[1]))
	if !ok {
		return model.SaleRecord{}, model.RejectInvalidProduct
	}

	amount, ok := NormalizeAmount(strings.TrimSpace(parts[2]))
	if !ok {
		return model.SaleRecord{}, model.RejectInvalidAmount
	}

	return model.SaleRecord{
		Date:        date,
		ProductName: product,
		Amount:      amount,
	}, ""
}

// NormalizeDate converts D/M/YYYY into YYYY-MM-DD and checks the result is a real calendar day.
func NormalizeDate(s string) (string, bool) {
	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		s = m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1])
	}

	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// EscapeProduct applies the escaping stored product names carry, so search terms match them.
func EscapeProduct(s string) string {
	return htmlEscaper.Replace(s)
}

// NormalizeProduct escapes HTML-significant characters and enforces the length limit.
func NormalizeProduct(s string) (string, bool) {
	escaped := EscapeProduct(s)
	if escaped == "" || utf8.RuneCountInString(escaped) > model.MaxProductNameLength {
		return "", false
	}
	return escaped, true
}

// NormalizeAmount parses a decimal amount, accepting a decimal comma, and rounds it to the cent.
func NormalizeAmount(s string) (decimal.Decimal, bool) {
	s = strings.Replace(s, ",", ".", 1)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if !amount.IsPositive() || amount.GreaterThan(model.MaxAmount) {
		return decimal.Decimal{}, false
	}

	amount = model.RoundMoney(amount)
	if !amount.IsPositive() {
		return decimal.Decimal{}, false
	}
	return amount, true
}
