package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

type InterpretationKind int

const (
	InterpretationDecoded InterpretationKind = iota
	InterpretationMalformed
)

func (k InterpretationKind) String() string {
	switch k {
	case InterpretationDecoded:
		return "decoded"
	case InterpretationMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("InterpretationKind(%d)", int(k))
	}
}

// Interpretation is the outcome of decoding one model reply. For a
// malformed reply Record is models.ParseFailedRecord and Err says why.
type Interpretation struct {
	Kind   InterpretationKind
	Record models.ScreeningRecord
	Raw    string
	Err    error
}

type ResponseInterpreter struct {
	stripCodeFences bool
}

// NewResponseInterpreter returns a strict decoder. With stripCodeFences a
// reply wrapped in a markdown code block is unwrapped first.
func NewResponseInterpreter(stripCodeFences bool) *ResponseInterpreter {
	return &ResponseInterpreter{stripCodeFences: stripCodeFences}
}

func (ri *ResponseInterpreter) Interpret(raw string) Interpretation {
	text := raw
	if ri.stripCodeFences {
		text = stripCodeFence(text)
	}

	record, err := decodeRecord(text)
	if err != nil {
		return Interpretation{
			Kind:   InterpretationMalformed,
			Record: models.ParseFailedRecord,
			Raw:    raw,
			Err:    err,
		}
	}

	return Interpretation{
		Kind:   InterpretationDecoded,
		Record: record,
		Raw:    raw,
	}
}

// InterpretResponse decodes raw strictly, without fence stripping.
func InterpretResponse(raw string) Interpretation {
	return NewResponseInterpreter(false).Interpret(raw)
}

func decodeRecord(text string) (models.ScreeningRecord, error) {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return models.ScreeningRecord{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if fields == nil {
		return models.ScreeningRecord{}, errors.New("response is not a JSON object")
	}

	return models.ScreeningRecord{
		BasicQualified:          fieldText(fields["basic_qualified"]),
		PreferredQualifications: fieldText(fields["preferred_qualifications"]),
		MatchScore:              fieldText(fields["match_score"]),
		Summary:                 fieldText(fields["summary"]),
		Recommendation:          fieldText(fields["recommendation"]),
	}, nil
}

// fieldText returns a JSON string value verbatim and any other value as
// its compact JSON text. Missing and null values become "".
func fieldText(value json.RawMessage) string {
	if len(value) == 0 || string(value) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return string(value)
	}
	return compact.String()
}

// stripCodeFence removes a surrounding ```json ... ``` block the model may add.
func stripCodeFence(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
