// Package sentinel defines a const-declarable error type.
//
// Errors created with errors.New live in package-level vars and can be
// reassigned by anything that links the package. Declaring sentinels as
// consts of the string-backed Error type removes that mutability while
// keeping errors.Is matching through wrapped chains intact.
package sentinel
