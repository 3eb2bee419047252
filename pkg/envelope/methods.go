// pkg/envelope/methods.go
package envelope

import "net/http"

// optionsArg pulls the optional *Options out of a formatter's argument list.
func optionsArg(args []any) *Options {
	for _, a := range args {
		if o, ok := a.(*Options); ok && o != nil {
			return o
		}
	}
	return &Options{}
}

func successFormatter(s Sender, args ...any) Sender {
	o := optionsArg(args)
	code := o.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	msg := o.Message
	if msg == "" {
		msg = "Success"
	}
	return s.SetStatusCode(code).SendJSON(Envelope{
		Success:    true,
		Message:    msg,
		Data:       o.Data,
		StatusCode: code,
	})
}

// errorFormatter builds the badRequest/notFound/serverError family: same
// envelope, different default message and status.
func errorFormatter(defaultMessage string, defaultCode int) Formatter {
	return func(s Sender, args ...any) Sender {
		o := optionsArg(args)
		code := o.StatusCode
		if code == 0 {
			code = defaultCode
		}
		msg := o.Message
		if msg == "" {
			msg = defaultMessage
		}
		return s.SetStatusCode(code).SendJSON(Envelope{
			Success:    false,
			Message:    msg,
			StatusCode: code,
			Errors:     o.Errors,
		})
	}
}

func validationFormatter(s Sender, args ...any) Sender {
	var verr DetailedError
	for _, a := range args {
		if d, ok := a.(DetailedError); ok && d != nil {
			verr = d
			break
		}
	}
	if verr == nil || verr.Details() == nil {
		// Caller contract violation, not a runtime condition.
		panic("envelope: validationError requires an error carrying details")
	}
	o := optionsArg(args)
	code := o.StatusCode
	if code == 0 {
		code = http.StatusBadRequest
	}
	details := verr.Details()
	errs := make([]FieldError, len(details))
	copy(errs, details)
	return s.SetStatusCode(code).SendJSON(Envelope{
		Success:    false,
		Message:    "Validation Error",
		StatusCode: code,
		Errors:     errs,
	})
}
