package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	glyphcode "github.com/ledgerline/glyphcode"
	"github.com/ledgerline/glyphcode/encoder"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type matrixResponse struct {
	Value     string   `json:"value"`
	Dimension int      `json:"dimension"`
	Checksum  int      `json:"checksum"`
	Dark      int      `json:"dark"`
	Rows      []string `json:"rows"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK\n"))
}

// handleCode renders ?value= in the format named by the path. size, fg, bg,
// logo_size and logo_mark override the configured defaults.
func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	format, err := glyphcode.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	size := s.cfg.Render.Size
	if raw := q.Get("size"); raw != "" {
		if size, err = strconv.ParseFloat(raw, 64); err != nil {
			s.writeError(w, r, badRequest("size must be a number"))
			return
		}
	}
	if size > s.cfg.Render.MaxSize {
		s.writeError(w, r, fmt.Errorf("%w: size %v exceeds the limit of %v", glyphcode.ErrInvalidArgument, size, s.cfg.Render.MaxSize))
		return
	}
	opts := s.cfg.EncodeOptions()
	if fg := q.Get("fg"); fg != "" {
		opts.Foreground = fg
	}
	if bg := q.Get("bg"); bg != "" {
		opts.Background = bg
	}
	if mark := q.Get("logo_mark"); mark != "" {
		opts.LogoMark = mark
	}
	if raw := q.Get("logo_size"); raw != "" {
		if opts.LogoSize, err = strconv.ParseFloat(raw, 64); err != nil {
			s.writeError(w, r, badRequest("logo_size must be a number"))
			return
		}
	}

	var buf bytes.Buffer
	if err := glyphcode.Encode(&buf, q.Get("value"), format, size, opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	m := encoder.Generate(value)
	writeJSON(w, http.StatusOK, matrixResponse{
		Value:     value,
		Dimension: m.Dimension(),
		Checksum:  encoder.Checksum(value),
		Dark:      m.DarkCount(),
		Rows:      m.Rows(),
	})
}

type badRequest string

func (e badRequest) Error() string { return string(e) }

func statusFor(err error) int {
	var br badRequest
	switch {
	case errors.As(err, &br),
		errors.Is(err, glyphcode.ErrInvalidArgument),
		errors.Is(err, glyphcode.ErrColor):
		return http.StatusBadRequest
	case errors.Is(err, glyphcode.ErrUnknownFormat):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", zap.Error(err), zap.String("request_id", requestIDFrom(r.Context())))
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, RequestID: requestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
