// Package messages provides the user-facing reply strings.
//
// Defaults are embedded from default.yaml. An override file may replace
// any subset of keys; keys it does not mention keep their defaults.
package messages

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Catalog holds every reply template.
type Catalog struct {
	Submitted     string `yaml:"submitted"`
	NotFound      string `yaml:"not_found"`
	Cleared       string `yaml:"cleared"`
	NoneYet       string `yaml:"none_yet"`
	EmptyRecord   string `yaml:"empty_record"`
	CardTitle     string `yaml:"card_title"`
	FieldName     string `yaml:"field_name"`
	FieldValue    string `yaml:"field_value"`
	ListTitle     string `yaml:"list_title"`
	ListFieldName string `yaml:"list_field_name"`
	Usage         string `yaml:"usage"`
	Denied        string `yaml:"denied"`
	HelpHeader    string `yaml:"help_header"`
	Errors        Errors `yaml:"errors"`
}

// Errors holds the generic retry messages shown when a command fails.
type Errors struct {
	Submit  string `yaml:"submit"`
	View    string `yaml:"view"`
	List    string `yaml:"list"`
	Clear   string `yaml:"clear"`
	Default string `yaml:"default"`
}

// For returns the failure message for the named command.
func (e Errors) For(command string) string {
	var msg string
	switch command {
	case "submit":
		msg = e.Submit
	case "view":
		msg = e.View
	case "list":
		msg = e.List
	case "clear":
		msg = e.Clear
	}
	if msg == "" {
		return e.Default
	}
	return msg
}

// Vars are the values substituted into a template.
type Vars struct {
	ID      string
	Author  string
	Text    string
	Time    string
	Usage   string
	Command string
}

// Format substitutes vars into tmpl.
func Format(tmpl string, v Vars) string {
	r := strings.NewReplacer(
		"{id}", v.ID,
		"{author}", v.Author,
		"{text}", v.Text,
		"{time}", v.Time,
		"{usage}", v.Usage,
		"{command}", v.Command,
	)
	return r.Replace(tmpl)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	var c Catalog
	if err := decode(bytes.NewReader(defaultYAML), &c); err != nil {
		panic(fmt.Sprintf("messages: embedded catalog: %v", err))
	}
	return &c
}

// Load returns the default catalog with the keys in the YAML file at path
// applied on top. An empty path returns the defaults.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open messages: %w", err)
	}
	defer f.Close()
	if err := decode(f, c); err != nil {
		return nil, fmt.Errorf("parse messages %s: %w", path, err)
	}
	return c, nil
}

// decode unmarshals into c, leaving absent keys untouched and rejecting
// unknown ones.
func decode(r io.Reader, c *Catalog) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
