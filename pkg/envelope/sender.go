// pkg/envelope/sender.go
package envelope

import (
	"net/http"

	"github.com/ali-hajeh/response-handler/pkg/codec"
)

// Sender is the minimal response contract formatters write through:
// set a status, send one JSON body. Both return the same Sender so calls
// chain; SendJSON terminates the response.
type Sender interface {
	SetStatusCode(code int) Sender
	SendJSON(body any) Sender
}

type httpSender struct {
	w      http.ResponseWriter
	status int
	sent   bool
}

// NewHTTPSender wraps w as a Sender. Status defaults to 200 until set.
func NewHTTPSender(w http.ResponseWriter) Sender {
	return &httpSender{w: w, status: http.StatusOK}
}

func (s *httpSender) SetStatusCode(code int) Sender {
	s.status = code
	return s
}

func (s *httpSender) SendJSON(body any) Sender {
	if s.sent {
		return s
	}
	b, err := codec.JSON.Marshal(body)
	if err != nil {
		http.Error(s.w, "response encoding failed", http.StatusInternalServerError)
		s.sent = true
		return s
	}
	s.w.Header().Set("Content-Type", codec.JSON.ContentType())
	s.w.WriteHeader(s.status)
	_, _ = s.w.Write(b)
	s.sent = true
	return s
}

func (s *httpSender) Status() int { return s.status }

// Recorder captures what a formatter produced without touching the network.
// Tests bind methods to one; the middleware also falls back to a Recorder
// when asked for methods on a request it never saw.
type Recorder struct {
	Code int
	Body any
	Sent bool
}

func NewRecorder() *Recorder { return &Recorder{Code: http.StatusOK} }

func (r *Recorder) SetStatusCode(code int) Sender {
	r.Code = code
	return r
}

func (r *Recorder) SendJSON(body any) Sender {
	r.Body = body
	r.Sent = true
	return r
}

func (r *Recorder) Status() int { return r.Code }
