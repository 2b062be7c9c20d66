package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/i474232898/weather-screen/internal/metrics"
	"github.com/i474232898/weather-screen/internal/weather"
)

// ChatModel sends one prompt in a fresh chat with no history. ok is false
// when the provider returned no response object.
type ChatModel interface {
	Send(ctx context.Context, prompt string) (text string, ok bool, err error)
}

// Client turns weather into a short piece of advice.
type Client struct {
	model   ChatModel
	logger  *slog.Logger
	metrics *metrics.Collector
}

func NewClient(model ChatModel, logger *slog.Logger, m *metrics.Collector) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{model: model, logger: logger, metrics: m}
}

// Prompt builds the single prompt sent to the model.
func Prompt(req weather.SuggestionRequest) string {
	return fmt.Sprintf(
		"It's %s in %s, where the temperature is %s°C with %s. "+
			"Provide one concise and practical suggestion (4-7 words) on what to wear, "+
			"activities to consider, or warnings if needed and nothing else.",
		req.TimeOfDay,
		req.Location,
		strconv.FormatFloat(req.TempC, 'f', -1, 64),
		strings.ToLower(req.Condition),
	)
}

// GetSuggestion returns the model's answer split into trimmed lines. It never
// fails: a missing response or an error yields an empty slice.
func (c *Client) GetSuggestion(ctx context.Context, req weather.SuggestionRequest) []string {
	if c.model == nil {
		return []string{}
	}

	text, ok, err := c.model.Send(ctx, Prompt(req))
	if err != nil {
		c.logger.Error("suggestion request failed", "location", req.Location, "err", err)
		c.metrics.RecordSuggestion("error")
		return []string{}
	}
	if !ok {
		c.logger.Warn("no response from suggestion model", "location", req.Location)
		c.metrics.RecordSuggestion("empty")
		return []string{}
	}

	lines := SplitLines(text)
	c.logger.Debug("suggestion received", "location", req.Location, "lines", lines)
	if len(lines) == 0 {
		c.metrics.RecordSuggestion("empty")
	} else {
		c.metrics.RecordSuggestion("ok")
	}
	return lines
}

// SplitLines splits on newlines and trims each line. Blank lines are dropped.
func SplitLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
