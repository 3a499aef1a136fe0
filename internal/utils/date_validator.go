package utils

import (
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatDashDate    DateFormat = "01-02-2006"
	FormatMonthDay    DateFormat = "January 2, 2006"
	FormatShortMonth  DateFormat = "Jan 2, 2006"
)

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

// DateValidator accepts the date shapes the intake form produces and
// normalizes them to an ISO-8601 date.
type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatISO8601,
			FormatUSDate,
			FormatDashDate,
			FormatMonthDay,
			FormatShortMonth,
		},
		standardFormat: FormatISO8601Date,
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{
		IsValid:       false,
		OriginalValue: input,
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		if parsedTime, err := time.Parse(string(format), input); err == nil {
			result.IsValid = true
			result.DetectedFormat = format
			result.ParsedTime = parsedTime
			result.StandardFormat = parsedTime.Format(string(dv.standardFormat))
			return result
		}
	}

	return result
}
