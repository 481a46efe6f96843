// Package errors provides the structured error type shared by the SDK.
//
// Configuration defects are returned as *AppError from constructors.
// Transport failures never reach the caller of a dispatch as an error;
// they are folded into a classified result whose code comes from CodeOf.
package errors
