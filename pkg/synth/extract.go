package synth

import (
	"encoding/json"

	"github.com/matzehuels/mend/pkg/canvas"
	"github.com/matzehuels/mend/pkg/errors"
	"github.com/matzehuels/mend/pkg/response"
)

// Report carries the diagnostics of a successful [Parse].
type Report struct {
	Fenced   bool     // payload came from a fenced code block
	Warnings Warnings // recoverable validation issues
}

// Extract returns the JSON payload of a model response: the body of the first
// fenced code block if there is one, otherwise the text from the first '{' to
// the last '}'.
func Extract(resp string) (string, error) {
	payload, ok := response.Payload(resp, '{', '}')
	if !ok || payload == "" {
		return "", errors.New(errors.ErrCodeParse, "no JSON payload in response")
	}
	return payload, nil
}

// Parse extracts, decodes and validates the graph proposed by resp.
func Parse(resp string) (canvas.Graph, Report, error) {
	payload, err := Extract(resp)
	if err != nil {
		return canvas.Graph{}, Report{}, err
	}
	_, fenced := response.FencedBlock(resp)

	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return canvas.Graph{}, Report{}, errors.Wrap(errors.ErrCodeParse, err, "decode graph payload")
	}

	g, warnings, err := Validate(v)
	if err != nil {
		return canvas.Graph{}, Report{}, err
	}
	return g, Report{Fenced: fenced, Warnings: warnings}, nil
}
