// Package redact scrubs sensitive information from strings before they are
// logged or shown to a console user. It covers database connection strings,
// passwords, subscriber phone numbers, SQL fragments, hosts, file paths and
// stack traces that can surface in driver error messages.
package redact

import (
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
	replace     func(string) string
}

// Rules are applied in order; connection strings go before hosts so the
// credential part is caught first.
var rules = []rule{
	// postgres://user:pass@ and friends
	{
		re:          regexp.MustCompile(`(?i)(postgres|postgresql|pgx)://[^@\s]+@`),
		placeholder: RedactedCredentialPlaceholder,
	},
	// password=secret in key/value DSNs and messages
	{
		re:          regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		placeholder: "[STACK_TRACE_REDACTED]",
	},
	{
		re: regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|TRUNCATE|CREATE|ALTER|DROP)\b[\s\w,*().$=']+?\b(FROM|INTO|SET|TABLE)\b[\s\w,*().$=']*`,
		),
		placeholder: RedactedSQLPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		re: regexp.MustCompile(
			`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
		),
		placeholder: RedactedHostPlaceholder,
	},
	{
		re:          regexp.MustCompile(`\b(?:localhost|\d{1,3}(?:\.\d{1,3}){3}):\d{1,5}\b`),
		placeholder: RedactedHostPlaceholder,
	},
	{
		re:      regexp.MustCompile(`\+\d{7,15}\b`),
		replace: Phone,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		if r.replace != nil {
			result = r.re.ReplaceAllStringFunc(result, r.replace)
			continue
		}
		result = r.re.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Phone masks a phone number, keeping the leading "+" and the last four digits.
// Inputs with four digits or fewer are fully masked.
func Phone(phone string) string {
	digits := strings.TrimPrefix(phone, "+")
	prefix := phone[:len(phone)-len(digits)]

	if len(digits) <= 4 {
		return prefix + strings.Repeat("*", len(digits))
	}
	return prefix + strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
