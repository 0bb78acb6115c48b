// ABOUTME: Localized text sum type decoded once from YAML
// ABOUTME: Scalar and List variants; decoding a node of the wrong shape fails

package content

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"folio/locale"
)

// Text is localized copy: either a single string or a list of strings
// per language. Only Scalar and List implement it.
type Text interface {
	Lines(lang locale.Lang) []string
	missing() []locale.Lang
}

// Scalar is a single localized string
type Scalar struct {
	KO string
	EN string
}

// Get returns the string for lang
func (s Scalar) Get(lang locale.Lang) string {
	if lang == locale.EN {
		return s.EN
	}

	return s.KO
}

// Lines implements Text
func (s Scalar) Lines(lang locale.Lang) []string {
	return []string{s.Get(lang)}
}

func (s Scalar) missing() []locale.Lang {
	var langs []locale.Lang

	if s.KO == "" {
		langs = append(langs, locale.KO)
	}

	if s.EN == "" {
		langs = append(langs, locale.EN)
	}

	return langs
}

// UnmarshalYAML decodes {ko: string, en: string}
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	return decodeLocalized(node, yaml.ScalarNode, func(lang locale.Lang, value *yaml.Node) error {
		if lang == locale.EN {
			s.EN = value.Value
		} else {
			s.KO = value.Value
		}

		return nil
	})
}

// List is a localized list of strings
type List struct {
	KO []string
	EN []string
}

// Get returns the list for lang
func (l List) Get(lang locale.Lang) []string {
	if lang == locale.EN {
		return l.EN
	}

	return l.KO
}

// Lines implements Text
func (l List) Lines(lang locale.Lang) []string {
	return l.Get(lang)
}

func (l List) missing() []locale.Lang {
	var langs []locale.Lang

	if len(l.KO) == 0 {
		langs = append(langs, locale.KO)
	}

	if len(l.EN) == 0 {
		langs = append(langs, locale.EN)
	}

	return langs
}

// UnmarshalYAML decodes {ko: [string], en: [string]}
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	return decodeLocalized(node, yaml.SequenceNode, func(lang locale.Lang, value *yaml.Node) error {
		var items []string
		if err := value.Decode(&items); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}

		if lang == locale.EN {
			l.EN = items
		} else {
			l.KO = items
		}

		return nil
	})
}

// Localized holds a field that may be written as either shape.
// The variant is fixed when the document is loaded.
type Localized struct {
	Text
}

// Lines returns the lines for lang, or nil for an absent field
func (l Localized) Lines(lang locale.Lang) []string {
	if l.Text == nil {
		return nil
	}

	return l.Text.Lines(lang)
}

// UnmarshalYAML picks Scalar or List from the shape of the first value
func (l *Localized) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) < 2 {
		return fmt.Errorf("line %d: expected a ko/en mapping", node.Line)
	}

	switch node.Content[1].Kind {
	case yaml.SequenceNode:
		var list List
		if err := list.UnmarshalYAML(node); err != nil {
			return err
		}

		l.Text = list
	default:
		var scalar Scalar
		if err := scalar.UnmarshalYAML(node); err != nil {
			return err
		}

		l.Text = scalar
	}

	return nil
}

func decodeLocalized(node *yaml.Node, kind yaml.Kind, set func(locale.Lang, *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a ko/en mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		lang, err := locale.Parse(key.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}

		if value.Kind != kind {
			return fmt.Errorf("line %d: %s value has the wrong shape", value.Line, lang)
		}

		if err := set(lang, value); err != nil {
			return err
		}
	}

	return nil
}
