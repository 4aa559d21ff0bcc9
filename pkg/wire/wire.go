// Package wire implements the framed message protocol used by the
// daemon mode.
//
// Messages are length-prefixed: a 4-byte big-endian payload length
// followed by the payload bytes. Payloads are JSON documents; the
// framing layer does not inspect them. A reader that sees a clean EOF
// between frames treats the stream as finished; an EOF inside a frame is
// a protocol error.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/mfeldt/renderbox/pkg/errors"
)

// MaxFrameSize caps a single payload at 16 MiB. Markup documents and
// encoded artifacts are far smaller; anything bigger is a corrupt or
// hostile stream.
const MaxFrameSize = 16 << 20

// ReadFrame reads one length-prefixed payload. It returns io.EOF
// unwrapped when the stream ends cleanly before a frame starts.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(errors.ErrCodeFrameTruncated, err, "read frame header")
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return nil, errors.New(errors.ErrCodeFrameTooLarge,
			"frame of %d bytes exceeds limit of %d", size, MaxFrameSize)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFrameTruncated, err, "read %d byte payload", size)
	}
	return payload, nil
}

// WriteFrame writes one length-prefixed payload.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return errors.New(errors.ErrCodeFrameTooLarge,
			"frame of %d bytes exceeds limit of %d", len(payload), MaxFrameSize)
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write frame header")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write frame payload")
	}
	return nil
}
