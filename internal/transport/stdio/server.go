package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cyclone1070/confine/internal/logging"
	"github.com/Cyclone1070/confine/internal/toolset"
)

// maxLineSize bounds a single request line. Write requests carry whole files.
// Longer lines are discarded and answered with an error.
const maxLineSize = 16 * 1024 * 1024

// Request is one line read from the orchestrator.
type Request struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// Response is one line written back. Operation failures are rendered into
// Result with IsError set; Error is reserved for requests that could not be read.
// Result is always present since an empty listing is a valid result.
type Response struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Result  string `json:"result"`
	IsError bool   `json:"is_error,omitempty"`
	Error   string `json:"error,omitempty"`
}

// invoker runs a named operation.
type invoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) toolset.Result
}

// Server serves newline-delimited JSON requests sequentially.
type Server struct {
	in      io.Reader
	out     io.Writer
	invoker invoker
	logger  *logging.Logger
	maxLine int
}

// NewServer creates a server reading from in and writing to out.
func NewServer(in io.Reader, out io.Writer, invoker invoker, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		in:      in,
		out:     out,
		invoker: invoker,
		logger:  logger,
		maxLine: maxLineSize,
	}
}

type line struct {
	text    string
	tooLong bool
	err     error
}

// Serve handles requests until the input ends or ctx is cancelled.
// It returns nil on end of input.
func (s *Server) Serve(ctx context.Context) error {
	lines := make(chan line)
	go s.readLoop(ctx, lines)

	enc := json.NewEncoder(s.out)
	s.logger.Info("serving requests")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping", zap.Error(ctx.Err()))
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				s.logger.Info("input closed")
				return nil
			}
			if l.err != nil {
				return fmt.Errorf("failed to read request: %w", l.err)
			}
			var resp Response
			if l.tooLong {
				resp = s.rejectLong()
			} else {
				resp = s.handle(ctx, l.text)
			}
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

func (s *Server) readLoop(ctx context.Context, lines chan<- line) {
	defer close(lines)

	reader := bufio.NewReaderSize(s.in, 64*1024)
	for {
		raw, tooLong, err := readLine(reader, s.maxLine)
		if err != nil {
			if err != io.EOF {
				select {
				case lines <- line{err: err}:
				case <-ctx.Done():
				}
			}
			return
		}
		text := strings.TrimSpace(string(raw))
		if text == "" && !tooLong {
			continue
		}
		select {
		case lines <- line{text: text, tooLong: tooLong}:
		case <-ctx.Done():
			return
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// limit is consumed to its end and reported as tooLong with no content.
func readLine(r *bufio.Reader, limit int) ([]byte, bool, error) {
	var buf []byte
	tooLong := false
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || tooLong) {
				return buf, tooLong, nil
			}
			return nil, false, err
		}
		if !tooLong {
			if len(buf)+len(frag) > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			return buf, tooLong, nil
		}
	}
}

// rejectLong answers a line that was too long to read.
func (s *Server) rejectLong() Response {
	id := uuid.NewString()
	s.logger.Warn("request line too long", zap.String("id", id), zap.Int("limit", s.maxLine))
	return Response{ID: id, Error: fmt.Sprintf("request line exceeds %d bytes", s.maxLine)}
}

// handle decodes and runs one request line.
func (s *Server) handle(ctx context.Context, text string) Response {
	var req Request
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		id := uuid.NewString()
		s.logger.Warn("malformed request", zap.String("id", id), zap.Error(err))
		return Response{ID: id, Error: fmt.Sprintf("malformed request: %v", err)}
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start := time.Now()
	res := s.invoker.Invoke(ctx, req.Name, req.Args)
	s.logger.Debug("handled request",
		zap.String("id", req.ID),
		zap.String("name", req.Name),
		zap.Bool("is_error", res.Err != nil),
		zap.Duration("duration", time.Since(start)),
	)

	return Response{
		ID:      req.ID,
		Name:    req.Name,
		Result:  res.Text(),
		IsError: res.Err != nil,
	}
}
