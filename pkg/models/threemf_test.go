package models

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/hpinc/go3mf"
	"github.com/taigrr/meshview/pkg/math3d"
)

const threeMFContentTypes = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>`

const threeMFRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Target="/3D/3dmodel.model" Id="rel0" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>`

// threeMFDoc wraps resources and build markup in a core-namespace model.
func threeMFDoc(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<model unit="millimeter" xml:lang="en-US" xmlns="http://schemas.microsoft.com/3dmanufacturing/core/2015/02">
` + body + `
</model>`
}

// Object 1 is a unit right triangle, object 2 places two copies of it
// side by side through components.
var threeMFModel = threeMFDoc(`  <resources>
    <object id="1" name="tri" type="model">
      <mesh>
        <vertices>
          <vertex x="0" y="0" z="0"/>
          <vertex x="1" y="0" z="0"/>
          <vertex x="0" y="1" z="0"/>
          <vertex x="0" y="0" z="1"/>
        </vertices>
        <triangles>
          <triangle v1="0" v2="2" v3="1"/>
          <triangle v1="0" v2="1" v3="3"/>
        </triangles>
      </mesh>
    </object>
    <object id="2" name="pair" type="model">
      <components>
        <component objectid="1"/>
        <component objectid="1" transform="1 0 0 0 1 0 0 0 1 9 0 0"/>
      </components>
    </object>
  </resources>
  <build>
    <item objectid="2" transform="2 0 0 0 2 0 0 0 2 0 0 0"/>
  </build>`)

func build3MF(t testing.TB, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// pack3MF builds a complete package around one model part.
func pack3MF(t testing.TB, model string) []byte {
	t.Helper()
	return build3MF(t, map[string]string{
		"[Content_Types].xml": threeMFContentTypes,
		"_rels/.rels":         threeMFRels,
		"3D/3dmodel.model":    model,
	})
}

func TestParse3MF(t *testing.T) {
	data := pack3MF(t, threeMFModel)

	m, err := Parse3MF("pair.3mf", data)
	if err != nil {
		t.Fatal(err)
	}
	if m.Format != "3mf" || m.Strategy != StrategyGrouped {
		t.Errorf("format/strategy = %s/%s", m.Format, m.Strategy)
	}
	if len(m.Parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(m.Parts))
	}
	if m.TriangleCount() != 4 {
		t.Errorf("triangles = %d, want 4", m.TriangleCount())
	}

	// Build item scales by 2, the second component moves by 9 first.
	want := math3d.NewBox(math3d.V3(0, 0, 0), math3d.V3(20, 2, 2))
	if b := m.Bounds(); !b.Min.ApproxEqual(want.Min, 1e-9) || !b.Max.ApproxEqual(want.Max, 1e-9) {
		t.Errorf("bounds = %v, want %v", b, want)
	}
	if !m.Parts[1].Bounds.Min.ApproxEqual(math3d.V3(18, 0, 0), 1e-9) {
		t.Errorf("second part min = %v, want (18, 0, 0)", m.Parts[1].Bounds.Min)
	}
}

func TestParse3MFGroupedNormalization(t *testing.T) {
	data := pack3MF(t, threeMFModel)
	m, err := Parse3MF("pair.3mf", data)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Normalize(m); err != nil {
		t.Fatal(err)
	}

	// Parts stay apart after normalization.
	gap := m.Parts[1].Bounds.Min.X - m.Parts[0].Bounds.Max.X
	if gap <= 0 {
		t.Errorf("parts overlap after grouped normalization (gap %v)", gap)
	}
	assertFitted(t, m.Bounds())
}

func TestParse3MFNoBuild(t *testing.T) {
	model := threeMFDoc(`<resources>
  <object id="5" name="solo" type="model"><mesh>
    <vertices><vertex x="0" y="0" z="0"/><vertex x="3" y="0" z="0"/><vertex x="0" y="3" z="0"/></vertices>
    <triangles><triangle v1="0" v2="1" v3="2"/></triangles>
  </mesh></object>
</resources>`)
	m, err := Parse3MF("solo.3mf", pack3MF(t, model))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Parts) != 1 || m.Parts[0].Name != "solo" {
		t.Fatalf("parts = %d", len(m.Parts))
	}
}

func TestParse3MFErrors(t *testing.T) {
	badIndex := threeMFDoc(`<resources><object id="1" type="model"><mesh>
  <vertices><vertex x="0" y="0" z="0"/></vertices>
  <triangles><triangle v1="0" v2="1" v3="2"/></triangles>
</mesh></object></resources><build><item objectid="1"/></build>`)
	noObjects := threeMFDoc(`<resources/><build/>`)
	missingObject := threeMFDoc(`<resources><object id="1" type="model"><mesh>
  <vertices><vertex x="0" y="0" z="0"/><vertex x="1" y="0" z="0"/><vertex x="0" y="1" z="0"/></vertices>
  <triangles><triangle v1="0" v2="1" v3="2"/></triangles>
</mesh></object></resources><build><item objectid="7"/></build>`)
	cycle := threeMFDoc(`<resources>
  <object id="1" type="model"><components><component objectid="2"/></components></object>
  <object id="2" type="model"><components><component objectid="1"/></components></object>
</resources><build><item objectid="1"/></build>`)

	tests := []struct {
		name string
		data []byte
	}{
		{"not a zip", []byte("solid nope")},
		{"no model part", build3MF(t, map[string]string{
			"[Content_Types].xml": threeMFContentTypes,
			"_rels/.rels":         `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
		})},
		{"bad xml", pack3MF(t, "<model><resources>")},
		{"no objects", pack3MF(t, noObjects)},
		{"vertex index out of range", pack3MF(t, badIndex)},
		{"missing object", pack3MF(t, missingObject)},
		{"component cycle", pack3MF(t, cycle)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse3MF("bad.3mf", tc.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParse3MFMirroredItem(t *testing.T) {
	const model = `<?xml version="1.0" encoding="UTF-8"?>
<model unit="millimeter" xmlns="http://schemas.microsoft.com/3dmanufacturing/core/2015/02">
  <resources>
    <object id="1" type="model">
      <mesh>
        <vertices>
          <vertex x="0" y="0" z="0"/>
          <vertex x="1" y="0" z="0"/>
          <vertex x="0" y="1" z="0"/>
        </vertices>
        <triangles>
          <triangle v1="0" v2="1" v3="2"/>
        </triangles>
      </mesh>
    </object>
  </resources>
  <build>
    <item objectid="1" transform="-1 0 0 0 1 0 0 0 1 0 0 0"/>
  </build>
</model>`
	m, err := Parse3MF("mirror.3mf", pack3MF(t, model))
	if err != nil {
		t.Fatal(err)
	}
	part := m.Parts[0]
	if got := part.Bounds.Min.X; got != -1 {
		t.Errorf("min x = %v, want -1", got)
	}
	_, n := part.GetVertex(0)
	if !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("normal = %v, want (0, 0, 1) after mirroring", n)
	}
}

func TestThreeMFMatrix(t *testing.T) {
	translate := go3mf.Matrix{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 4, 5, 6, 1}
	if got := threeMFMatrix(translate).MulVec3(math3d.V3(1, 1, 1)); !got.ApproxEqual(math3d.V3(5, 6, 7), 1e-12) {
		t.Errorf("translate = %v, want (5, 6, 7)", got)
	}

	// Rotation of 90 degrees about Z: X maps to Y
	rotate := go3mf.Matrix{0, 1, 0, 0, -1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if got := threeMFMatrix(rotate).MulVec3(math3d.V3(1, 0, 0)); !got.ApproxEqual(math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("rotate = %v, want (0, 1, 0)", got)
	}

	if id := threeMFMatrix(go3mf.Matrix{}); id != math3d.Identity() {
		t.Errorf("missing transform = %v, want identity", id)
	}
}
