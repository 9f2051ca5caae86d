package errortypes

// Timeout should be used to flag that the exchange failed to answer a request
// because the deadline derived from tmax (or the configured default) expired
// before the pipeline finished.
type Timeout struct {
	Message string
}

func (err *Timeout) Error() string {
	return err.Message
}

func (err *Timeout) Code() int {
	return TimeoutErrorCode
}

func (err *Timeout) Severity() Severity {
	return SeverityFatal
}

// BadInput should be used when returning errors which are caused by bad input.
// It should _not_ be used if the error is a server-side issue (e.g. the
// inventory source failed to load).
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// SourceUnavailable flags that the screen inventory source could not be read.
// This is distinct from a request that matched zero screens, which is a valid
// empty response and not an error at all.
type SourceUnavailable struct {
	Message string
}

func (err *SourceUnavailable) Error() string {
	return err.Message
}

func (err *SourceUnavailable) Code() int {
	return SourceUnavailableErrorCode
}

func (err *SourceUnavailable) Severity() Severity {
	return SeverityFatal
}

// Warning is a generic non-fatal error. The request is still answered; the
// warning explains which invalid or ambiguous part of it was ignored.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
