package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wgdzlh/maskcoco"
	"github.com/wgdzlh/maskcoco/log"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	log.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

func testDocument(t *testing.T) *maskcoco.Document {
	t.Helper()
	a := &maskcoco.Grid{Width: 4, Height: 3, Pix: []uint16{
		0, 2, 2, 0,
		0, 2, 2, 0,
		5, 0, 0, 0,
	}}
	b := &maskcoco.Grid{Width: 4, Height: 3, Pix: make([]uint16, 12)}
	b.Pix[11] = 2
	src := maskcoco.NewMemorySource().Add("a.tif", a).Add("b.tif", b).Add("c.tif", &maskcoco.Grid{Width: 1, Height: 1, Pix: []uint16{0}})
	doc, _, err := maskcoco.NewConverter().Convert(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func openIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Failed to open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndex_ExportAndQuery(t *testing.T) {
	doc := testDocument(t)
	idx := openIndex(t)
	if err := idx.Export(doc); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	counts, err := idx.CountByCategory()
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"Class0": 0, "Class2": 2, "Class5": 1}; !reflect.DeepEqual(counts, want) {
		t.Errorf("CountByCategory = %v, expected %v", counts, want)
	}

	anns, err := idx.AnnotationsByImage("a.tif")
	if err != nil {
		t.Fatal(err)
	}
	var want []maskcoco.Annotation
	for _, a := range doc.Annotations {
		if a.ImageId == 1 {
			want = append(want, a)
		}
	}
	if !reflect.DeepEqual(anns, want) {
		t.Errorf("AnnotationsByImage = %+v, expected %+v", anns, want)
	}

	none, err := idx.AnnotationsByImage("c.tif")
	if err != nil || len(none) != 0 {
		t.Errorf("expected no annotations for c.tif, got %v %v", none, err)
	}
}

func TestIndex_ExportReplaces(t *testing.T) {
	doc := testDocument(t)
	idx := openIndex(t)
	for i := 0; i < 2; i++ {
		if err := idx.Export(doc); err != nil {
			t.Fatalf("Export #%d failed: %v", i, err)
		}
	}
	counts, err := idx.CountByCategory()
	if err != nil {
		t.Fatal(err)
	}
	if counts["Class2"] != 2 {
		t.Errorf("expected 2 Class2 annotations after re-export, got %d", counts["Class2"])
	}
}

func TestIndex_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err = idx.Export(testDocument(t)); err != nil {
		t.Fatal(err)
	}
	idx.Close()

	idx, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	anns, err := idx.AnnotationsByImage("b.tif")
	if err != nil {
		t.Fatal(err)
	}
	if len(anns) != 1 || anns[0].Bbox != [4]float64{3, 2, 1, 1} {
		t.Errorf("unexpected annotations %+v", anns)
	}
}
