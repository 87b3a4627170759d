// Package jwt issues and verifies the HS512 access tokens of the platform.
//
// Tokens carry the account id, email and user type (employee, company or
// admin); the user type doubles as the casbin subject for authorization.
package jwt
