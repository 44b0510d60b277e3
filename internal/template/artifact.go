package template

import (
	"encoding/json"
	"fmt"
)

// Artifact is the decoded form of a `jsona` compiled artifact: one locale,
// one node sequence per message key. encoding/json sorts map keys, so
// encoding the same artifact twice yields identical bytes.
type Artifact struct {
	Locale   string            `json:"locale"`
	Messages map[string][]Node `json:"messages"`
}

// EncodeArtifact serializes a compiled artifact.
func EncodeArtifact(locale string, messages map[string][]Node) ([]byte, error) {
	artifact := Artifact{Locale: locale, Messages: messages}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("template: encode artifact: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeArtifact parses a compiled artifact.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("template: decode artifact: %w", err)
	}
	if artifact.Messages == nil {
		artifact.Messages = make(map[string][]Node)
	}
	return &artifact, nil
}

// Templates wraps every message of an artifact as an executable Template.
func (a *Artifact) Templates() map[string]*Template {
	out := make(map[string]*Template, len(a.Messages))
	for key, nodes := range a.Messages {
		out[key] = New(nodes)
	}
	return out
}
