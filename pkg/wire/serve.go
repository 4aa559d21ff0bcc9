package wire

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mfeldt/renderbox/pkg/errors"
)

// Handler processes one decoded request payload and returns the response
// payload. Errors are reported to the peer as error responses, not by
// tearing down the stream.
type Handler func(ctx context.Context, payload []byte) ([]byte, error)

// ErrorResponse is the JSON body sent for a failed request.
type ErrorResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Serve runs a request/response loop over a framed stream until the
// reader is exhausted or the context is canceled. Each request gets a
// request ID for log correlation.
func Serve(ctx context.Context, r io.Reader, w io.Writer, handler Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload, err := ReadFrame(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, errors.ErrCodeFrameTooLarge) {
				// The stream position is still coherent after an oversized
				// header, but the peer is misbehaving. Report and stop.
				_ = writeError(w, "", err)
			}
			return err
		}

		reqID := uuid.NewString()
		reqLog := logger.With("request_id", reqID)
		start := time.Now()

		resp, err := handler(ctx, payload)
		if err != nil {
			reqLog.Error("request failed", "error", err, "duration", time.Since(start))
			if werr := writeError(w, reqID, err); werr != nil {
				return werr
			}
			continue
		}

		reqLog.Info("request handled", "bytes", len(resp), "duration", time.Since(start))
		if err := WriteFrame(w, resp); err != nil {
			return err
		}
	}
}

func writeError(w io.Writer, reqID string, err error) error {
	body, merr := json.Marshal(ErrorResponse{
		ID:    reqID,
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
	if merr != nil {
		return merr
	}
	return WriteFrame(w, body)
}
