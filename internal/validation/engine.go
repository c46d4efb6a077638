package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/rezonia/mydata-validator/internal/model"
)

// Rule logic variants. The vocabulary is closed: a rule document can only
// combine these, never define new evaluation strategies.
const (
	LogicLineValueAllowed           = "line_value_allowed"
	LogicHeaderDependencyLine       = "header_dependency_line"
	LogicCounterpartRequired        = "counterpart_required"
	LogicClassificationRequired     = "classification_required"
	LogicCurrencyExchangeRate       = "currency_exchange_rate"
	LogicCounterpartCountry         = "counterpart_country"
	LogicNegativeAmountsOnly        = "negative_amounts_only"
	LogicNoNegativeAmounts          = "no_negative_amounts"
	LogicClassificationTypeRequired = "classification_type_required"
)

// RuleLogic is the tagged variant payload of a rule. Type selects the
// evaluation strategy; only the fields that strategy reads are set.
type RuleLogic struct {
	Type string `yaml:"type" json:"type"`

	// line_value_allowed / header_dependency_line
	FieldPath      string   `yaml:"field_path,omitempty" json:"field_path,omitempty"`
	AllowedValues  []string `yaml:"allowed_values,omitempty" json:"allowed_values,omitempty"`
	HeaderField    string   `yaml:"header_field,omitempty" json:"header_field,omitempty"`
	HeaderValue    string   `yaml:"header_value,omitempty" json:"header_value,omitempty"`
	LineCheckField string   `yaml:"line_check_field,omitempty" json:"line_check_field,omitempty"`

	// invoice-type scoped variants
	InvoiceTypes []string `yaml:"invoice_types,omitempty" json:"invoice_types,omitempty"`

	// classification_required
	MinClassifications int `yaml:"min_classifications,omitempty" json:"min_classifications,omitempty"`

	// currency_exchange_rate
	DefaultCurrency string `yaml:"default_currency,omitempty" json:"default_currency,omitempty"`

	// counterpart_country
	ExcludedCountries []string `yaml:"excluded_countries,omitempty" json:"excluded_countries,omitempty"`

	// classification_type_required
	RequiredTypes []string `yaml:"required_types,omitempty" json:"required_types,omitempty"`
}

// RuleDefinition is one declaratively configured rule
type RuleDefinition struct {
	ID          string    `yaml:"id" json:"id"`
	Description string    `yaml:"description" json:"description"`
	Severity    Severity  `yaml:"severity" json:"severity"`
	Logic       RuleLogic `yaml:"logic" json:"logic"`
	// ErrorMessage supports {line}, {count} and {type} placeholders
	ErrorMessage string `yaml:"error_message" json:"error_message"`
}

// RuleSet is a versioned rule document
type RuleSet struct {
	Version string           `yaml:"version" json:"version"`
	Rules   []RuleDefinition `yaml:"rules" json:"rules"`
}

// Engine evaluates a loaded rule set against invoices. It is immutable
// after construction and safe for concurrent use.
type Engine struct {
	version string
	rules   []RuleDefinition
}

// LoadRuleSet parses a YAML rule document into an engine
func LoadRuleSet(content []byte) (*Engine, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(content, &rs); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}
	return &Engine{version: rs.Version, rules: rs.Rules}, nil
}

// Version returns the rule document version
func (e *Engine) Version() string {
	return e.version
}

// Rules returns the loaded rule definitions
func (e *Engine) Rules() []RuleDefinition {
	return e.rules
}

// Apply evaluates every rule against the invoice in a single linear pass.
// Rules are independent; evaluation order only affects finding order.
func (e *Engine) Apply(inv *model.Invoice, report *Report) {
	for i := range e.rules {
		e.applyRule(&e.rules[i], inv, report)
	}
}

func (e *Engine) applyRule(rule *RuleDefinition, inv *model.Invoice, report *Report) {
	logic := &rule.Logic
	invType := inv.Header.InvoiceType.String()

	switch logic.Type {
	case LogicLineValueAllowed:
		for idx, line := range inv.Lines {
			v, ok := lineFieldValue(&line, logic.FieldPath)
			if !ok {
				// Unrecognized field names are a no-match, not a
				// failure, so newer rule documents stay loadable
				continue
			}
			if !contains(logic.AllowedValues, v) {
				addRuleFinding(report, rule,
					lineMessage(rule.ErrorMessage, idx+1),
					fmt.Sprintf("line[%d].%s", idx+1, logic.FieldPath), v)
			}
		}

	case LogicHeaderDependencyLine:
		hv, ok := headerFieldValue(inv, logic.HeaderField)
		if !ok || hv != logic.HeaderValue {
			return
		}
		for idx, line := range inv.Lines {
			v, ok := lineFieldValue(&line, logic.LineCheckField)
			if !ok {
				continue
			}
			if !contains(logic.AllowedValues, v) {
				addRuleFinding(report, rule,
					lineMessage(rule.ErrorMessage, idx+1),
					fmt.Sprintf("line[%d].%s", idx+1, logic.LineCheckField), v)
			}
		}

	case LogicCounterpartRequired:
		if contains(logic.InvoiceTypes, invType) && inv.Counterpart == nil {
			addRuleFinding(report, rule, rule.ErrorMessage, "counterpart", "")
		}

	case LogicClassificationRequired:
		if contains(logic.InvoiceTypes, invType) &&
			len(inv.IncomeClassifications) < logic.MinClassifications {
			msg := strings.ReplaceAll(rule.ErrorMessage, "{count}",
				strconv.Itoa(len(inv.IncomeClassifications)))
			addRuleFinding(report, rule, msg, "incomeClassification", "")
		}

	case LogicCurrencyExchangeRate:
		if inv.Header.Currency != logic.DefaultCurrency && inv.Header.ExchangeRate == nil {
			addRuleFinding(report, rule, rule.ErrorMessage, "exchangeRate", inv.Header.Currency)
		}

	case LogicCounterpartCountry:
		if contains(logic.InvoiceTypes, invType) && inv.Counterpart != nil {
			if contains(logic.ExcludedCountries, inv.Counterpart.Country) {
				addRuleFinding(report, rule, rule.ErrorMessage,
					"counterpart.country", inv.Counterpart.Country)
			}
		}

	case LogicNegativeAmountsOnly:
		if contains(logic.InvoiceTypes, invType) {
			for idx, line := range inv.Lines {
				// Zero is not negative: a 0.00 line violates the rule too
				if !line.NetValue.IsNegative() {
					addRuleFinding(report, rule,
						lineMessage(rule.ErrorMessage, idx+1),
						fmt.Sprintf("line[%d].netValue", idx+1), line.NetValue.String())
				}
			}
		}

	case LogicNoNegativeAmounts:
		if contains(logic.InvoiceTypes, invType) {
			for idx, line := range inv.Lines {
				if line.NetValue.IsNegative() {
					addRuleFinding(report, rule,
						lineMessage(rule.ErrorMessage, idx+1),
						fmt.Sprintf("line[%d].netValue", idx+1), line.NetValue.String())
				}
			}
		}

	case LogicClassificationTypeRequired:
		if contains(logic.InvoiceTypes, invType) {
			for _, required := range logic.RequiredTypes {
				if !hasClassificationType(inv, required) {
					msg := strings.ReplaceAll(rule.ErrorMessage, "{type}", required)
					addRuleFinding(report, rule, msg, "incomeClassification", required)
				}
			}
		}
	}
	// An unrecognized logic type is skipped: the vocabulary is closed but
	// a newer document must not crash older validators.
}

// lineFieldValue resolves a named line field through the fixed accessor
// table. Unknown names report no match.
func lineFieldValue(line *model.Line, field string) (string, bool) {
	switch field {
	case "vat_category":
		return line.VatCategory.String(), true
	default:
		return "", false
	}
}

// headerFieldValue resolves a named header field
func headerFieldValue(inv *model.Invoice, field string) (string, bool) {
	switch field {
	case "invoice_type":
		return inv.Header.InvoiceType.String(), true
	default:
		return "", false
	}
}

func lineMessage(template string, lineIndex int) string {
	return strings.ReplaceAll(template, "{line}", strconv.Itoa(lineIndex))
}

func hasClassificationType(inv *model.Invoice, classificationType string) bool {
	for _, c := range inv.IncomeClassifications {
		if c.ClassificationType == classificationType {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// addRuleFinding escalates the report according to the rule severity.
// Info findings are reserved and currently recorded nowhere.
func addRuleFinding(report *Report, rule *RuleDefinition, message, field, value string) {
	switch rule.Severity {
	case SeverityError:
		report.AddError(rule.ID, message, field, value)
	case SeverityWarning:
		report.AddWarning(rule.ID, message)
	case SeverityInfo:
	}
}
