package generator_test

import (
	"testing"

	"github.com/Hermes08/FastMVP-Core/internal/generator"
)

func TestRenderString(t *testing.T) {
	r := generator.NewRenderer()

	out, err := r.RenderString("greeting", "Hello, {{ .Name }}!", map[string]string{"Name": "World"})
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if string(out) != "Hello, World!" {
		t.Errorf("got %q", out)
	}
}

func TestRenderString_Default(t *testing.T) {
	r := generator.NewRenderer()

	out, err := r.RenderString("desc", `{{ default "fallback" .Description }}`, map[string]string{"Description": ""})
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if string(out) != "fallback" {
		t.Errorf("got %q, want fallback", out)
	}

	out, err = r.RenderString("desc", `{{ default "fallback" .Description }}`, map[string]string{"Description": "real"})
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if string(out) != "real" {
		t.Errorf("got %q, want real", out)
	}
}

func TestRenderString_CachedTemplateReused(t *testing.T) {
	r := generator.NewRenderer()

	first, err := r.RenderString("cached", "{{ .V }}", map[string]string{"V": "one"})
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	second, err := r.RenderString("cached", "{{ .V }}", map[string]string{"V": "two"})
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}

	if string(first) != "one" || string(second) != "two" {
		t.Errorf("cache broke rendering: %q, %q", first, second)
	}
}

func TestRenderString_ParseError(t *testing.T) {
	r := generator.NewRenderer()

	_, err := r.RenderString("bad", "{{ .Unclosed", nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
}
