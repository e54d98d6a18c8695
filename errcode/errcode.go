package errcode

// Code is a stable, log-facing error identifier for bring-up failures.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

const (
	OK             Code = "ok"
	InvalidParams  Code = "invalid_params"
	UnknownPin     Code = "unknown_pin"
	PinInUse       Code = "pin_in_use"
	UnknownBackend Code = "unknown_backend"
	UnknownBus     Code = "unknown_bus"
	BusFault       Code = "bus_fault"
	NoConfig       Code = "no_config"
	BadConfig      Code = "bad_config"

	Error Code = "error" // generic fallback
)

// E carries a Code with the failing operation and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += " (" + e.Err.Error() + ")"
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap returns an *E for op. A nil cause is allowed.
func Wrap(op string, c Code, err error) error {
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
