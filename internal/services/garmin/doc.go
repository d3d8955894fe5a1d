// Package garmin is the Garmin Connect collaborator: an HTTP client for the
// Connect API, an ordered list of authentication strategies, and a file-backed
// store for the reusable session blob.
//
// The sync pipeline consumes only the narrow API interface; everything about
// transport, tokens, and login order stays inside this package.
package garmin
