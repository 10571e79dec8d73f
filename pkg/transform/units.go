package transform

import (
	"context"
	"math"
	"strings"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/validate"
)

const (
	cmPerInch  = 2.54
	lbPerKg    = 2.20462
	unitDigits = 2
)

// pairConversion converts between two units. When both sides are given the
// second one is recomputed from the first.
type pairConversion struct {
	from, to         string // input field names
	fromUnit, toUnit string // display labels
	forward          func(float64) float64
	backward         func(float64) float64
	missing          string
}

func (c pairConversion) run(_ context.Context, in domain.Input) (domain.Output, error) {
	a, okA := validate.Number(in[c.from])
	b, okB := validate.Number(in[c.to])

	var fromVal, toVal string
	switch {
	case okA:
		fromVal = shownValue(in[c.from], a)
		toVal = validate.FormatFixed(c.forward(a), unitDigits)
	case okB:
		toVal = shownValue(in[c.to], b)
		fromVal = validate.FormatFixed(c.backward(b), unitDigits)
	default:
		return domain.Output{}, domain.Validation("%s", c.missing)
	}

	return domain.Output{
		Text:   fromVal + " " + c.fromUnit + " = " + toVal + " " + c.toUnit,
		Fields: map[string]string{c.from: fromVal, c.to: toVal},
	}, nil
}

// shownValue keeps what the user typed in the field that was not recomputed.
func shownValue(raw any, v float64) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return validate.FormatFixed(v, 0)
	}
	return validate.FormatFixed(v, -1)
}

var (
	lengthConversion = pairConversion{
		from: "cm", to: "in", fromUnit: "cm", toUnit: "in",
		forward:  func(cm float64) float64 { return cm / cmPerInch },
		backward: func(in float64) float64 { return in * cmPerInch },
		missing:  "Please enter at least one value (cm or inches).",
	}
	weightConversion = pairConversion{
		from: "kg", to: "lb", fromUnit: "kg", toUnit: "lb",
		forward:  func(kg float64) float64 { return kg * lbPerKg },
		backward: func(lb float64) float64 { return lb / lbPerKg },
		missing:  "Please enter at least one value (kg or pounds).",
	}
	temperatureConversion = pairConversion{
		from: "c", to: "f", fromUnit: "°C", toUnit: "°F",
		forward:  CelsiusToFahrenheit,
		backward: FahrenheitToCelsius,
		missing:  "Please enter at least one value (°C or °F).",
	}
)

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

// ConvertLength converts between centimetres ("cm") and inches ("in").
func ConvertLength(ctx context.Context, in domain.Input) (domain.Output, error) {
	return lengthConversion.run(ctx, in)
}

// ConvertWeight converts between kilograms ("kg") and pounds ("lb").
func ConvertWeight(ctx context.Context, in domain.Input) (domain.Output, error) {
	return weightConversion.run(ctx, in)
}

// ConvertTemperature converts between Celsius ("c") and Fahrenheit ("f").
func ConvertTemperature(ctx context.Context, in domain.Input) (domain.Output, error) {
	return temperatureConversion.run(ctx, in)
}
