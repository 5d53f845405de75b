package compose

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/compose-xdebug/internal/model"
)

// ErrVerification is returned when a YAML parse of the patched document
// disagrees with the requested action.
var ErrVerification = errors.New("patched document failed verification")

// Verify parses data as YAML and checks that the service's environment
// contains the variable after disable and lacks it after enable.
//
// The service is looked up under the top-level "services" mapping first,
// then as a top-level key (the pre-"services:" compose format). Both list
// ("- VAR=value") and mapping ("VAR: value") environments are understood.
func Verify(data []byte, action model.Action, opts Options) error {
	opts = opts.withDefaults()

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}

	service := findService(&doc, opts.Service)
	if service == nil {
		if action == model.ActionEnable {
			return nil
		}
		return fmt.Errorf("%w: service %q not found", ErrVerification, opts.Service)
	}

	present := hasVariable(mappingValue(service, "environment"), opts.Variable)
	switch {
	case action == model.ActionDisable && !present:
		return fmt.Errorf("%w: %s missing from environment of service %q", ErrVerification, opts.Variable, opts.Service)
	case action == model.ActionEnable && present:
		return fmt.Errorf("%w: %s still set in environment of service %q", ErrVerification, opts.Variable, opts.Service)
	}
	return nil
}

// findService returns the mapping node of the named service, or nil.
func findService(doc *yaml.Node, name string) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]

	if services := mappingValue(root, "services"); services != nil {
		if svc := mappingValue(services, name); svc != nil {
			return svc
		}
	}
	return mappingValue(root, name)
}

// mappingValue returns the value node stored under key in a mapping node.
// Mapping content alternates key and value nodes.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func hasVariable(env *yaml.Node, variable string) bool {
	if env == nil {
		return false
	}

	switch env.Kind {
	case yaml.SequenceNode:
		for _, item := range env.Content {
			name, _, _ := strings.Cut(item.Value, "=")
			if item.Kind == yaml.ScalarNode && strings.TrimSpace(name) == variable {
				return true
			}
		}
	case yaml.MappingNode:
		return mappingValue(env, variable) != nil
	}
	return false
}
