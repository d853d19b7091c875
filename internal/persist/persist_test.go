package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"citymap/internal/catalog"
	"citymap/internal/config"
	"citymap/internal/scene"
	"citymap/internal/store"
	"citymap/internal/store/memory"
)

func samplePlan(t *testing.T) []scene.Object {
	t.Helper()
	s := scene.New()
	for i, typ := range catalog.Types() {
		if _, err := s.Place(typ, float64(50+i*60), float64(80+i*10)); err != nil {
			t.Fatalf("place: %v", err)
		}
	}
	return s.Objects()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := New(memory.New(), "", nil)
	if g.Key() != config.DefaultStorageKey {
		t.Fatalf("key = %q", g.Key())
	}
	want := samplePlan(t)
	if err := g.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := g.Load(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveWritesJSONArray(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	g := New(st, "plan", nil)
	if err := g.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, rc, err := st.Get(ctx, "plan")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(rc)
	if buf.String() != "[]" {
		t.Fatalf("payload = %q", buf.String())
	}
	if info.ContentType != "application/json" {
		t.Fatalf("content type = %q", info.ContentType)
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	got := New(memory.New(), "", nil).Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestLoadMalformedFallsBackAndLogs(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	if _, err := st.Put(ctx, config.DefaultStorageKey, strings.NewReader("{not json"), store.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	var logs bytes.Buffer
	g := New(st, "", slog.New(slog.NewTextHandler(&logs, nil)))
	if got := g.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty scene, got %d objects", len(got))
	}
	if !strings.Contains(logs.String(), "load plan failed") {
		t.Fatalf("expected error log, got %q", logs.String())
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"syntax":       `[{"id":1,`,
		"object":       `{"id":1}`,
		"unknown type": `[{"id":1,"type":"castle","x":1,"y":1,"size":40}]`,
		"duplicate id": `[{"id":1,"type":"house","x":1,"y":1,"size":40},{"id":1,"type":"park","x":2,"y":2,"size":50}]`,
		"zero size":    `[{"id":1,"type":"house","x":1,"y":1,"size":0}]`,
	}
	for name, in := range cases {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrDeserialize) {
			t.Fatalf("%s: err = %v, want ErrDeserialize", name, err)
		}
	}
}

func TestDecodeAccepts(t *testing.T) {
	objs, err := Decode([]byte(` [{"id":7,"type":"road","x":10,"y":20,"size":50,"label":"Road","color":"#4A90E2"}] `))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := scene.Object{ID: 7, Type: catalog.Road, X: 10, Y: 20, Size: 50, Label: "Road", Color: "#4A90E2"}
	if len(objs) != 1 || objs[0] != want {
		t.Fatalf("got %+v", objs)
	}
	if objs, err := Decode([]byte("null")); err != nil || objs == nil {
		t.Fatalf("null should decode to empty list, got %v %v", objs, err)
	}
}
