package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
)

// maxStreamLineBytes bounds a single stream line. Individual chunks are
// small content fragments, but a stored full message can be large.
const maxStreamLineBytes = 1 << 20

// ChunkStream is a pull-based decoder for a streaming generation
// response. It reads the response body one line at a time, skips
// blank and non-data lines, and decodes each `data: ` payload into a
// ResponseChunk. Malformed payloads are logged and skipped; only
// transport failures surface through Err.
//
// The zero value is not usable; streams are obtained from
// Client.GenerateStream. Iteration is single-consumer, but Close may
// be called from another goroutine to abandon a blocked Next; an
// explicit Close ends iteration without an error.
//
// Typical use follows the bufio.Scanner idiom:
//
//	stream, err := client.GenerateStream(id, nil)
//	if err != nil { ... }
//	defer stream.Close()
//	for stream.Next() {
//		chunk := stream.Chunk()
//		...
//	}
//	if err := stream.Err(); err != nil { ... }
type ChunkStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	logger  zerolog.Logger

	mu      sync.Mutex
	chunk   models.ResponseChunk
	err     error
	closed  bool
	dropped int
}

func newChunkStream(body io.ReadCloser, logger zerolog.Logger) *ChunkStream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLineBytes)
	return &ChunkStream{
		body:    body,
		scanner: scanner,
		logger:  logger,
	}
}

// Next advances to the next decoded chunk. It returns false when the
// stream is exhausted, closed, or the underlying read fails; check Err
// afterwards to distinguish clean EOF from a broken connection. A
// concurrent Close unblocks a pending Next without surfacing an error.
func (s *ChunkStream) Next() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	for s.scanner.Scan() {
		line := strings.TrimRight(s.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Non-data lines (keep-alives, comments) carry no payload.
		// The protocol gives no way to tell them from garbage, so
		// they are skipped without diagnostics.
		if !strings.HasPrefix(line, models.StreamDataPrefix) {
			continue
		}

		payload := line[len(models.StreamDataPrefix):]
		var chunk models.ResponseChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			s.mu.Lock()
			s.dropped++
			s.mu.Unlock()
			s.logger.Warn().
				Err(err).
				Str("payload", truncatePayload(payload)).
				Msg("skipping malformed stream chunk")
			continue
		}

		s.mu.Lock()
		s.chunk = chunk
		s.mu.Unlock()
		return true
	}

	s.mu.Lock()
	// A scan interrupted by an explicit Close is a user-initiated
	// stop, not a transport failure.
	if err := s.scanner.Err(); err != nil && !s.closed {
		s.err = apierrors.NewNetworkError("read stream", "", err)
	}
	alreadyClosed := s.closed
	s.closed = true
	s.mu.Unlock()

	if !alreadyClosed {
		_ = s.body.Close()
	}
	return false
}

// Chunk returns the chunk decoded by the last successful call to Next
func (s *ChunkStream) Chunk() models.ResponseChunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunk
}

// Err returns the first transport error encountered, if any. Malformed
// chunks and explicit closes never produce an error here.
func (s *ChunkStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dropped returns how many malformed chunks were skipped
func (s *ChunkStream) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close releases the underlying connection, unblocking a Next that is
// waiting on it. It is idempotent and safe to call after Next has
// returned false or from another goroutine.
func (s *ChunkStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.body.Close()
}

// GenerateStream asks the server to produce the next response in a
// conversation and returns a ChunkStream over the incremental output.
// The caller owns the stream and must close it, including when
// abandoning it early.
func (c *Client) GenerateStream(id string, opts *GenerateOptions) (*ChunkStream, error) {
	if id == "" {
		return nil, fmt.Errorf("conversation id cannot be empty")
	}

	payload := models.GenerateRequest{
		Model:  c.resolveModel(opts),
		Stream: true,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	path := models.GeneratePath(id)
	req, err := c.newRequest(http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.do("generate response", path, req)
	if err != nil {
		return nil, err
	}

	// A non-success status before any chunk is a request-level failure
	if err := checkStatus(resp, path); err != nil {
		return nil, err
	}

	return newChunkStream(resp.Body, c.logger), nil
}
