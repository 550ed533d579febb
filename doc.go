// Package credentials manages the lifecycle of user credentials:
// registration, authentication, password rotation, and account
// deactivation, plus issuance and claim extraction of signed bearer
// tokens.
//
// Lifecycle:
//   - Users are soft deleted. Inactivate flips the Active flag and the
//     record becomes invisible to every lookup, including the duplicate
//     check performed by Register, so emails are not permanently
//     reserved after deactivation.
//   - Every operation normalizes the email to lower case and runs the
//     same gauntlet: authorization, format validation, active-record
//     lookup, password verification, mutation. The order is part of the
//     contract; an unauthorized caller never learns whether the account
//     exists.
//
// Tokens:
//   - TokenService signs HS256 JWTs carrying a single email claim with a
//     configurable expiry defaulting to one hour. ExtractClaim reads the
//     claim back from an Authorization header without verifying the
//     token; verification is the auth middleware's job and happens
//     before any service call.
package credentials
