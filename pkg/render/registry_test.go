package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/render"
	"github.com/appform-io/formkit/pkg/render/html"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *compiler.CompiledForm) ([]byte, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		t.Fatalf("new html renderer: %v", err)
	}
	reg.MustRegister(htmlRenderer)
	reg.MustRegister(stubRenderer{name: "plain"})

	got, err := reg.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got.ContentType())
	}

	if diff := cmp.Diff([]string{"html", "plain"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsDuplicatesAndUnknown(t *testing.T) {
	reg := render.NewRegistry()
	if err := reg.Register(stubRenderer{name: "plain"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(stubRenderer{name: "plain"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatal("expected empty name to fail")
	}
	if _, err := reg.Get("jsx"); err == nil {
		t.Fatal("expected lookup miss")
	}
}
