package plugin

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// maxMessageSize limits single inbound line, stylesheets could be large.
const maxMessageSize = 16 * 1024 * 1024

// Serve runs message loop over newline delimited JSON: requests are read
// from r and responses written to w. Requests are handled one at a time in
// arrival order. Loop ends on close request, end of input or context
// cancellation.
func (h *Handler) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	send := func(msgs []any) error {
		for _, m := range msgs {
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("unable to send message: %w", err)
			}
		}
		return nil
	}

	if err := send(h.Init(ctx)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			h.log.Warn("Malformed request", zap.Error(err))
			if err := send([]any{newError("malformed request: " + err.Error())}); err != nil {
				return err
			}
			continue
		}
		out, done := h.Handle(ctx, req)
		if err := send(out); err != nil {
			return err
		}
		if done {
			h.log.Debug("Close requested")
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("unable to read requests: %w", err)
	}
	return nil
}
