package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prashantgupta17/evaltemplates/templates"
	"gopkg.in/yaml.v3"
)

// TemplateFile is the YAML layout of a custom evaluation template.
//
//	name: politeness
//	description: Checks whether a reply is polite.
//	rails: [polite, rude]
//	template: |
//	  Is the following reply polite? {text}
type TemplateFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Template    string   `yaml:"template"`
	Rails       []string `yaml:"rails"`
	Delimiters  []string `yaml:"delimiters"`
}

// LoadTemplates loads every .yaml/.yml file in dir. A missing or empty dir yields no templates.
func LoadTemplates(dir string) ([]templates.EvalTemplate, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading template dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	loaded := make([]templates.EvalTemplate, 0, len(names))
	for _, name := range names {
		t, err := loadTemplateFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("error loading template %s: %w", name, err)
		}
		loaded = append(loaded, t)
	}
	return loaded, nil
}

// loadTemplateFromFile parses one template file.
func loadTemplateFromFile(filePath string) (templates.EvalTemplate, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return templates.EvalTemplate{}, fmt.Errorf("error reading template file: %w", err)
	}

	var tf TemplateFile
	if err := yaml.Unmarshal(content, &tf); err != nil {
		return templates.EvalTemplate{}, fmt.Errorf("error decoding YAML: %w", err)
	}

	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	if strings.TrimSpace(tf.Template) == "" {
		return templates.EvalTemplate{}, errors.New("template text is empty")
	}
	if len(tf.Rails) != 2 {
		return templates.EvalTemplate{}, fmt.Errorf("expected 2 rails (positive, negative), got %d", len(tf.Rails))
	}

	var opts []templates.Option
	switch len(tf.Delimiters) {
	case 0:
	case 2:
		if tf.Delimiters[0] == "" || tf.Delimiters[1] == "" {
			return templates.EvalTemplate{}, errors.New("delimiters must not be empty")
		}
		opts = append(opts, templates.WithDelimiters(tf.Delimiters[0], tf.Delimiters[1]))
	default:
		return templates.EvalTemplate{}, fmt.Errorf("expected 2 delimiters, got %d", len(tf.Delimiters))
	}

	return templates.EvalTemplate{
		Name:        tf.Name,
		Description: tf.Description,
		Template:    templates.NewPromptTemplate(tf.Template, opts...),
		Rails:       templates.NewRailsMap(tf.Rails[0], tf.Rails[1]),
	}, nil
}
