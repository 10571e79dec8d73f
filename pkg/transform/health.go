package transform

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/aretw0/workbench/pkg/validate"
)

// BMI categories.
const (
	Underweight = "Underweight"
	Normal      = "Normal"
	Overweight  = "Overweight"
	Obese       = "Obese"
)

// Age failure messages.
const (
	MsgMissingDOB = "Please select your date of birth."
	MsgInvalidDOB = "Please enter a valid date of birth (YYYY-MM-DD)."
	MsgFutureDOB  = "Date of birth cannot be in the future."
)

// BMIValue computes the body mass index of weight kg at height cm.
func BMIValue(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// BMICategory classifies a body mass index.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// BMI computes the body mass index from "weight" (kg) and "height" (cm).
func BMI(_ context.Context, in domain.Input) (domain.Output, error) {
	w, okW := validate.Number(in["weight"])
	h, okH := validate.Number(in["height"])
	if !okW || !okH || w <= 0 || h <= 0 || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return domain.Output{}, domain.Validation("Please enter valid weight and height.")
	}

	bmi := BMIValue(w, h)
	category := BMICategory(bmi)
	value := validate.FormatFixed(bmi, 1)
	return domain.Output{
		Text:   "BMI: " + value + " (" + category + ")",
		Fields: map[string]string{"bmi": value, "category": category},
	}, nil
}

// AgeSpan is an elapsed calendar duration.
type AgeSpan struct {
	Years, Months, Days int
}

// AgeOn returns the calendar age of someone born on dob at the date of today.
// A negative day count borrows the length of the month before today, and of
// the month before that while it stays negative (born on the 31st, measured
// just after a short February); a negative month count borrows a year. Both
// dates are compared by their calendar fields.
func AgeOn(dob, today time.Time) AgeSpan {
	years := today.Year() - dob.Year()
	months := int(today.Month()) - int(dob.Month())
	days := today.Day() - dob.Day()

	for back := 0; days < 0; back++ {
		months--
		// Day 0 of a month is the last day of the one before it.
		days += time.Date(today.Year(), today.Month()-time.Month(back), 0, 0, 0, 0, 0, time.UTC).Day()
	}
	if months < 0 {
		years--
		months += 12
	}
	return AgeSpan{Years: years, Months: months, Days: days}
}

// Age returns an age transform that measures "dob" against clock.
func Age(clock ports.Clock) registry.Transform {
	if clock == nil {
		clock = ports.SystemClock()
	}
	return func(_ context.Context, in domain.Input) (domain.Output, error) {
		raw := strings.TrimSpace(validate.Text(in["dob"]))
		if raw == "" {
			return domain.Output{}, domain.Validation(MsgMissingDOB)
		}

		now := clock.Now()
		dob, err := validate.ParseDate(raw, now.Location())
		if err != nil {
			return domain.Output{}, &domain.ToolError{Kind: domain.KindValidation, Message: MsgInvalidDOB, Err: err}
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if dob.After(today) {
			return domain.Output{}, domain.Validation(MsgFutureDOB)
		}

		span := AgeOn(dob, today)
		return domain.Output{
			Text: "Age: " + strconv.Itoa(span.Years) + " years, " +
				strconv.Itoa(span.Months) + " months, " +
				strconv.Itoa(span.Days) + " days",
			Fields: map[string]string{
				"years":  strconv.Itoa(span.Years),
				"months": strconv.Itoa(span.Months),
				"days":   strconv.Itoa(span.Days),
			},
		}, nil
	}
}
