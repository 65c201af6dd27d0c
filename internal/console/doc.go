// Package console implements the interactive text menu of the billing
// application. It reads commands line by line from an io.Reader, calls the
// stores and prints results in Russian to an io.Writer.
//
// Every menu action runs with its own correlation_id attached to the context
// logger. Store errors are printed with their localized message; anything the
// stores did not classify is logged and shown redacted.
package console
