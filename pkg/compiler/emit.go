package compiler

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"intlpipe/internal/template"
)

const (
	// FormatJSON is the native keyed-JSON artifact format.
	FormatJSON = "jsona"
	// FormatTOML is a go-i18n compatible per-locale message file.
	FormatTOML = "toml"
)

// defaultRegistry wires the built-in emitters.
func defaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(jsonEmitter{})
	registry.MustRegister(tomlEmitter{})
	return registry
}

type jsonEmitter struct{}

func (jsonEmitter) Name() string { return FormatJSON }

func (jsonEmitter) Emit(locale string, messages map[string][]template.Node) ([]byte, error) {
	return template.EncodeArtifact(locale, messages)
}

// tomlEmitter flattens each message to its textual form with go-i18n style
// {{.name}} placeholders, so the artifact loads straight into a go-i18n
// bundle. Rich structure does not survive this format.
type tomlEmitter struct{}

func (tomlEmitter) Name() string { return FormatTOML }

func (tomlEmitter) Emit(locale string, messages map[string][]template.Node) ([]byte, error) {
	flat := make(map[string]string, len(messages))
	for key, nodes := range messages {
		flat[key] = goTemplateText(nodes)
	}
	data, err := toml.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("compiler: emit toml for %s: %w", locale, err)
	}
	return data, nil
}

func goTemplateText(nodes []template.Node) string {
	var out strings.Builder
	appendGoTemplateText(&out, nodes)
	return out.String()
}

func appendGoTemplateText(out *strings.Builder, nodes []template.Node) {
	for _, node := range nodes {
		switch node.Kind {
		case template.NodeLiteral:
			out.WriteString(node.Text)
		case template.NodePlaceholder:
			out.WriteString("{{.")
			out.WriteString(node.Name)
			out.WriteString("}}")
		case template.NodeRich:
			appendGoTemplateText(out, node.Children)
		}
	}
}
