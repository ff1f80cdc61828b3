package internal

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type scriptCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Fails  bool   `yaml:"fails"`
}

func loadScripts(t *testing.T, path string) []scriptCase {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var cases []scriptCase
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cases); err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	return cases
}

func TestScripts(t *testing.T) {
	for _, c := range loadScripts(t, "testdata/scripts.yaml") {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			tp := &testPrinter{}
			ok := RunSourceWithPrinter(c.Name, c.Source, tp)
			if ok == c.Fails {
				t.Errorf("run succeeded: %v, output:\n%s", ok, tp.printed)
			}
			if got, want := strings.TrimRight(tp.printed, "\n"), strings.TrimRight(c.Output, "\n"); got != want {
				t.Errorf("Expected:\n----\n%s\n----\nFound:\n----\n%s\n----", want, got)
			}
		})
	}
}
