package input

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/deposit-calculator/internal/filter"
	"github.com/iwvelando/deposit-calculator/internal/store"
	"github.com/iwvelando/deposit-calculator/pkg/datetime"
)

// ErrValidation matches every error returned for rejected form values.
var ErrValidation = errors.New("invalid input")

var validate *validator.Validate

var nonSpace = regexp.MustCompile(`\S`)

func init() {
	validate = validator.New()

	// notblank: not empty and not only whitespace
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonSpace.MatchString(fl.Field().String())
	})
}

// messages holds the user-facing message for each validated field.
var messages = map[string]string{
	"Institution": "La entidad es obligatoria",
	"Principal":   "El valor a invertir debe ser mayor que cero",
	"TermDays":    "El plazo en días debe ser mayor que cero",
	"Amount":      "El valor debe ser mayor que cero",
	"BaseDate":    "La fecha base es obligatoria",
	"Days":        "Los días a sumar no pueden ser negativos",
}

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// InvestmentForm holds the raw values of the investment form.
type InvestmentForm struct {
	Institution     string `json:"institution"`
	Principal       string `json:"principal"`
	AnnualRate      string `json:"annualRate"`
	TermDays        string `json:"termDays"`
	WithholdingRate string `json:"withholdingRate"`
	AppliesTax      string `json:"appliesTransactionTax"`
}

type investmentValues struct {
	Institution string  `validate:"notblank"`
	Principal   float64 `validate:"gt=0"`
	TermDays    int     `validate:"gt=0"`
}

// Parse validates the form. defaultWithholding is used when the withholding
// field is blank. A blank tax flag applies the tax.
func (f InvestmentForm) Parse(defaultWithholding float64) (store.InvestmentInput, error) {
	in := store.InvestmentInput{
		Institution:           strings.TrimSpace(f.Institution),
		Principal:             Amount(f.Principal),
		AnnualRate:            Rate(f.AnnualRate),
		TermDays:              Days(f.TermDays),
		WithholdingRate:       Withholding(f.WithholdingRate, defaultWithholding),
		AppliesTransactionTax: strings.TrimSpace(f.AppliesTax) == "" || Flag(f.AppliesTax),
	}
	if err := check(investmentValues{
		Institution: in.Institution,
		Principal:   in.Principal,
		TermDays:    in.TermDays,
	}); err != nil {
		return store.InvestmentInput{}, err
	}
	return in, nil
}

type taxValues struct {
	Amount float64 `validate:"gt=0"`
}

// ParseTaxAmount validates the 4x1000 form amount.
func ParseTaxAmount(s string) (float64, error) {
	amount := Amount(s)
	if err := check(taxValues{Amount: amount}); err != nil {
		return 0, err
	}
	return amount, nil
}

type dateValues struct {
	BaseDate string `validate:"notblank"`
	Days     int    `validate:"gte=0"`
}

// DateForm holds the raw values of the date offset form.
type DateForm struct {
	BaseDate string `json:"baseDate"`
	Days     string `json:"days"`
}

// Parse validates the form for saving. The base date may be ISO or dd/mm/yyyy.
func (f DateForm) Parse() (datetime.Date, int, error) {
	days := Days(f.Days)
	if err := check(dateValues{BaseDate: f.BaseDate, Days: days}); err != nil {
		return datetime.Date{}, 0, err
	}
	base, err := datetime.ParseAny(f.BaseDate)
	if err != nil {
		return datetime.Date{}, 0, &ValidationError{Fields: []FieldError{{
			Field:   "BaseDate",
			Message: "La fecha base no es válida",
		}}}
	}
	return base, days, nil
}

// Preview reads the form for the live preview: any number of days is
// accepted and a missing or unreadable base date yields nil.
func (f DateForm) Preview() (*datetime.Date, int) {
	days := Days(f.Days)
	if strings.TrimSpace(f.BaseDate) == "" {
		return nil, days
	}
	base, err := datetime.ParseAny(f.BaseDate)
	if err != nil {
		return nil, days
	}
	return &base, days
}

// FilterForm holds the raw values of the investment filters.
type FilterForm struct {
	Institution string `json:"institution"`
	Rate        string `json:"rate"`
	MinAmount   string `json:"minAmount"`
	MaxAmount   string `json:"maxAmount"`
	MinDays     string `json:"minDays"`
	MaxDays     string `json:"maxDays"`
}

// Criteria converts the form. Blank institution and rate match everything,
// blank minimums are zero and blank or zero maximums are unbounded.
func (f FilterForm) Criteria() filter.Criteria {
	c := filter.Criteria{
		MinAmount: MinBound(f.MinAmount, Amount),
		MaxAmount: MaxBound(f.MaxAmount, Amount),
		MinDays:   MinBound(f.MinDays, DaysValue),
		MaxDays:   MaxBound(f.MaxDays, DaysValue),
	}
	if institution := strings.TrimSpace(f.Institution); institution != "" {
		c.Institution = &institution
	}
	if strings.TrimSpace(f.Rate) != "" {
		rate := Rate(strings.TrimSuffix(strings.TrimSpace(f.Rate), "%"))
		c.Rate = &rate
	}
	return c
}
