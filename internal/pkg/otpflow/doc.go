// Package otpflow implements the one-time code prompt shared by employee
// registration and the company manager email change.
//
// A Flow is a pure state reducer over input events (digit typed, paste, key
// press) that returns focus hints for the UI, plus two remote operations:
// Submit, which verifies the joined code, and Resend, which asks for a new
// code and starts a per-second cooldown. The cooldown ticker is created through
// an injectable TickerFactory and must be released with Close.
package otpflow
