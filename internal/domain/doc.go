// Package domain contains the core business entities of the telecom billing
// system: subscribers, the service catalog and invoices. It is independent of
// any specific storage or delivery mechanism.
package domain
