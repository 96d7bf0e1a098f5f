// Package assist defines the contract with the external text parser that
// turns free-form input into structured task fields.
package assist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// ErrMalformed is returned for parser output that has no usable title.
var ErrMalformed = errors.New("assist: malformed parser output")

// PartialTask is what the parser extracts from a sentence.
type PartialTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Category    string   `json:"category,omitempty"`
	Subtasks    []string `json:"subtasks,omitempty"`
	IsImportant bool     `json:"isImportant,omitempty"`
}

// Parser extracts a task from free text. Implementations talk to an external
// service and may fail in any way; callers fall back to plain titles.
type Parser interface {
	Parse(ctx context.Context, input string, now time.Time) (PartialTask, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx context.Context, input string, now time.Time) (PartialTask, error)

func (f ParserFunc) Parse(ctx context.Context, input string, now time.Time) (PartialTask, error) {
	return f(ctx, input, now)
}

// DecodePartialTask parses the JSON the external service answers with.
func DecodePartialTask(data []byte) (PartialTask, error) {
	var p PartialTask
	if err := sonic.Unmarshal(data, &p); err != nil {
		return PartialTask{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(p.Title) == "" {
		return PartialTask{}, ErrMalformed
	}
	return p, nil
}

// Fields converts the parser output into task fields. Unknown priorities
// degrade to MEDIUM rather than failing the whole task.
func (p PartialTask) Fields() domain.TaskFields {
	prio, err := domain.ParsePriority(p.Priority)
	if err != nil {
		prio = domain.PriorityMedium
	}
	f := domain.TaskFields{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Priority:    prio,
		Category:    p.Category,
		IsImportant: p.IsImportant,
	}
	for _, s := range p.Subtasks {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		f.Subtasks = append(f.Subtasks, domain.Subtask{ID: domain.NewSubtaskID(), Title: s})
	}
	return f
}

const maxResponseSize = 64 << 10

// HTTPParser posts the input to a JSON endpoint and decodes a PartialTask
// from the response body.
type HTTPParser struct {
	URL    string
	Client *http.Client
}

type parseRequest struct {
	Input       string `json:"input"`
	CurrentDate string `json:"currentDate"`
}

func (h *HTTPParser) Parse(ctx context.Context, input string, now time.Time) (PartialTask, error) {
	body, err := sonic.Marshal(parseRequest{Input: input, CurrentDate: now.Format(domain.DateKeyLayout)})
	if err != nil {
		return PartialTask{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return PartialTask{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return PartialTask{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PartialTask{}, fmt.Errorf("assist: parser returned %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return PartialTask{}, err
	}
	return DecodePartialTask(data)
}
