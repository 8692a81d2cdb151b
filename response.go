package tailwrite

import "fmt"

// outcome is the sealed classification of a decoded inference reply. Only
// package types implement it via isOutcome().
type outcome interface {
	isOutcome()
}

// generated is the success shape: a single-element sequence holding a
// mapping with a generated_text string.
type generated struct {
	text string
}

func (generated) isOutcome() {}

// serviceFailure is the service-error shape: a mapping whose "error" value
// is a sequence of messages.
type serviceFailure struct {
	messages []string
}

func (serviceFailure) isOutcome() {}

// malformed is anything else. Carries the raw reply for postmortems.
type malformed struct {
	raw any
}

func (malformed) isOutcome() {}

// classify inspects the reply shape. Checks run in priority order: success,
// then service failure, then malformed. Matching is structural only; the
// generated text is accepted verbatim, whatever the model produced.
func classify(raw any) outcome {
	if seq, ok := raw.([]any); ok && len(seq) == 1 {
		if obj, ok := seq[0].(map[string]any); ok {
			if text, ok := obj["generated_text"].(string); ok {
				return generated{text: text}
			}
		}
	}
	if obj, ok := raw.(map[string]any); ok {
		if seq, ok := obj["error"].([]any); ok {
			messages := make([]string, len(seq))
			for i, m := range seq {
				if s, ok := m.(string); ok {
					messages[i] = s
				} else {
					messages[i] = fmt.Sprint(m)
				}
			}
			return serviceFailure{messages: messages}
		}
	}
	return malformed{raw: raw}
}
