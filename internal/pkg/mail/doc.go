// Package mail delivers transactional email (verification codes) over SMTP.
//
// Use cases depend on the Mail interface. NewRetrying adds Fibonacci backoff
// around any Mail, and Log replaces SMTP for local runs.
package mail
