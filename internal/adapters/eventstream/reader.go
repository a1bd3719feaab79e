// Package eventstream reads build lifecycle notifications from newline-delimited JSON.
package eventstream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxLineSize bounds a single event line.
const maxLineSize = 4 << 20

// Stats summarizes a stream.
type Stats struct {
	// Delivered counts events accepted by the listener.
	Delivered int
	// Skipped counts lines that were undecodable, unknown, or rejected by the listener.
	Skipped int
}

// Reader feeds a ports.BuildListener from an NDJSON stream.
type Reader struct {
	logger ports.Logger
}

// NewReader creates a new Reader.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read delivers every event of r to l in order until EOF or ctx is done.
// Bad lines and listener errors are logged and skipped.
func (rd *Reader) Read(ctx context.Context, r io.Reader, l ports.BuildListener) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line++

		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			stats.Skipped++
			rd.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrEventDecodeFailed.Error()), "line", line))
			continue
		}

		ok, err := rec.dispatch(l)
		if !ok {
			stats.Skipped++
			rd.logger.Error(zerr.With(zerr.With(domain.ErrUnknownEvent, "event", rec.Event), "line", line))
			continue
		}
		if err != nil {
			stats.Skipped++
			rd.logger.Error(zerr.With(zerr.Wrap(err, fmt.Sprintf("%s rejected", rec.Event)), "line", line))
			continue
		}
		stats.Delivered++
	}

	if err := scanner.Err(); err != nil {
		return stats, zerr.Wrap(err, domain.ErrEventStreamFailed.Error())
	}
	return stats, nil
}
