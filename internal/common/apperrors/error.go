// Package apperrors implements the error system used throughout the module.
// Errors form chains: a package declares sentinel errors derived from a base
// error, and call sites attach messages or causes without losing errors.Is
// compatibility with any ancestor in the chain.
package apperrors

// Error is the interface all application errors satisfy. It extends the
// standard error interface with chaining and status-code support. Methods
// return Error so declarations can be built fluently.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // derive a new sentinel from this error
	Msg(msg string) Error                  // new error with message, wrapping this one
	MsgErr(msg string, err ...error) Error // new error with message and extra causes
	Err(err ...error) Error                // attach causes, keeping this message
	SetExpandError(bool) Error             // controls whether ErrorAll expands causes
	SetStatusCode(int) Error               // HTTP-style status code for the error
	StatusCode() int                       // current status code
	ErrorAll() string                      // message including attached causes
	UnwrapAll() []error                    // all attached causes
}
