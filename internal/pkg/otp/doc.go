// Package otp derives short numeric verification codes with HOTP (RFC 4226).
//
// Every issued code gets its own random secret and counter; the pair is kept
// server side and the code itself is only ever delivered by email. Codes are
// 5 or 6 digits long depending on the flow that requests them.
package otp
