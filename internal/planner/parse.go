package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/arturoeanton/health-planner/internal/port"
)

// Leading and trailing fence markers are matched separately so a reply cut
// off before its closing fence still parses.
var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_-]*[ \\t]*\\r?\\n?")
	trailingFence = regexp.MustCompile("\\r?\\n?```$")
)

// StripFence removes one leading and one trailing fence marker, whichever
// are present. Other text is returned trimmed but otherwise unchanged.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllLiteralString(s, "")
	s = trailingFence.ReplaceAllLiteralString(s, "")
	return strings.TrimSpace(s)
}

type rawStep struct {
	Tool *string         `json:"tool"`
	Args json.RawMessage `json:"args"`
}

type rawPlan struct {
	Steps []json.RawMessage `json:"steps"`
}

// ParseSteps strips fences from the model output, decodes it as a single
// JSON object and converts every entry of "steps" into a typed Step. All
// steps are decoded before any is returned, so a bad step N rejects the
// whole plan. A missing or null "steps" yields no steps.
func ParseSteps(raw string) ([]Step, error) {
	cleaned := StripFence(raw)

	var plan rawPlan
	if err := decodeObject(cleaned, &plan); err != nil {
		return nil, &port.UpstreamError{
			Kind:     port.UpstreamBadJSON,
			Detail:   "model output is not a JSON object",
			Raw:      raw,
			Fragment: cleaned,
			Err:      err,
		}
	}

	steps := make([]Step, 0, len(plan.Steps))
	for i, item := range plan.Steps {
		var rs rawStep
		if err := json.Unmarshal(item, &rs); err != nil {
			return nil, withRaw(&port.UpstreamError{
				Kind:     port.UpstreamBadJSON,
				Detail:   fmt.Sprintf("step %d is not an object", i),
				Fragment: string(item),
				Err:      err,
			}, raw)
		}
		if rs.Tool == nil {
			return nil, withRaw(&port.UpstreamError{
				Kind:     port.UpstreamMissingArg,
				Detail:   fmt.Sprintf("step %d: missing \"tool\"", i),
				Fragment: string(item),
			}, raw)
		}
		s, err := DecodeStep(*rs.Tool, rs.Args)
		if err != nil {
			var ue *port.UpstreamError
			if errors.As(err, &ue) {
				return nil, withRaw(ue, raw)
			}
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func withRaw(e *port.UpstreamError, raw string) *port.UpstreamError {
	e.Raw = raw
	return e
}

// decodeObject requires s to hold exactly one JSON object.
func decodeObject(s string, v any) error {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return errors.New("expected a JSON object")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}
