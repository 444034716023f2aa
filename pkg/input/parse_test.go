package input

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/stepviz/pkg/errors"
)

func TestParseArray(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []int
		wantErr bool
	}{
		{name: "Simple", text: "5,3,8,1", want: []int{5, 3, 8, 1}},
		{name: "Spaces", text: " 5, 3 ,8 ", want: []int{5, 3, 8}},
		{name: "DropsNonNumeric", text: "5, x, 3, 2.5, 8", want: []int{5, 3, 8}},
		{name: "Negative", text: "-1,0,1", want: []int{-1, 0, 1}},
		{name: "CommaOnly", text: "1 2,3;4,5", want: []int{5}},
		{name: "Tabs", text: "\t7,\t8\n", want: []int{7, 8}},
		{name: "SingleValue", text: "42", want: []int{42}},
		{name: "Empty", text: "", wantErr: true},
		{name: "OnlyJunk", text: "a,b,c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArray(tt.text)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Fatalf("ParseArray(%q) error = %v, want INVALID_INPUT", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArray(%q): %v", tt.text, err)
			}
			if !slices.Equal(got.Values, tt.want) {
				t.Errorf("ParseArray(%q) = %v, want %v", tt.text, got.Values, tt.want)
			}
		})
	}
}

func TestDecodeArray(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"JSONList", `[5, 3, 8, 1]`, FormatJSON},
		{"JSONObject", `{"values": [5, 3, 8, 1]}`, FormatJSON},
		{"YAMLList", "- 5\n- 3\n- 8\n- 1\n", FormatYAML},
		{"YAMLObject", "values: [5, 3, 8, 1]\n", FormatYAML},
		{"TOML", "values = [5, 3, 8, 1]\n", FormatTOML},
		{"Text", "5,3,8,1", FormatText},
		{"TextLines", "5\n3\r\n8,1\n", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode([]byte(tt.data), FamilyArray, tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			a, ok := d.(Array)
			if !ok {
				t.Fatalf("Decode returned %T, want Array", d)
			}
			if !slices.Equal(a.Values, []int{5, 3, 8, 1}) {
				t.Errorf("values = %v", a.Values)
			}
		})
	}
}

func TestDecodeGraph(t *testing.T) {
	data := `{
		"nodes": [{"id": "A"}, {"id": "B", "value": 7}],
		"edges": [{"from": "A", "to": "B"}],
		"startNode": "A",
		"endNode": "B"
	}`
	d, err := Decode([]byte(data), FamilyGraph, FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	g := d.(*Graph)
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if got := g.Nodes[1].DisplayLabel(); got != "7" {
		t.Errorf("DisplayLabel = %q, want 7", got)
	}
	if adj := g.Adjacency(); !slices.Equal(adj["B"], []string{"A"}) {
		t.Errorf("undirected adjacency of B = %v", adj["B"])
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		family Family
		data   string
	}{
		{"BadJSON", FamilyGraph, `{"nodes": [`},
		{"UnknownField", FamilyGraph, `{"nodes": [{"id": "A"}], "startNode": "A", "colour": 1}`},
		{"MissingStart", FamilyGraph, `{"nodes": [{"id": "A"}]}`},
		{"DanglingEdge", FamilyGraph, `{"nodes": [{"id": "A"}], "edges": [{"from": "A", "to": "Z"}], "startNode": "A"}`},
		{"DuplicateNode", FamilyGraph, `{"nodes": [{"id": "A"}, {"id": "A"}], "startNode": "A"}`},
		{"MixedTree", FamilyTree, `{"value": 1, "children": [{"value": 2}], "left": {"value": 3}}`},
		{"GridOutOfBounds", FamilyGrid, `{"rows": 2, "cols": 2, "start": {"row": 0, "col": 0}, "end": {"row": 2, "col": 0}}`},
		{"WallOnStart", FamilyGrid, `{"rows": 2, "cols": 2, "start": {"row": 0, "col": 0}, "end": {"row": 1, "col": 1}, "walls": [{"row": 0, "col": 0}]}`},
		{"EmptyArray", FamilyArray, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode([]byte(tt.data), tt.family, FormatJSON)
			if err == nil {
				t.Fatalf("Decode succeeded with %#v", d)
			}
			if d != nil {
				t.Errorf("Decode returned data alongside error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "maze.yaml")
	maze := "rows: 3\ncols: 3\nstart: {row: 0, col: 0}\nend: {row: 2, col: 2}\nwalls:\n  - {row: 1, col: 1}\n"
	if err := os.WriteFile(yamlPath, []byte(maze), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := ReadFile(yamlPath, FamilyGrid)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	g := d.(*Grid)
	if !g.WallSet()[Cell{1, 1}] {
		t.Errorf("wall 1,1 missing: %v", g.Walls)
	}

	tomlPath := filepath.Join(dir, "tree.toml")
	tree := "value = 1\n[left]\nvalue = 2\n[right]\nvalue = 3\n"
	if err := os.WriteFile(tomlPath, []byte(tree), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err = ReadFile(tomlPath, FamilyTree)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if n := d.(*Tree).Normalize().Size(); n != 3 {
		t.Errorf("tree size = %d, want 3", n)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"), FamilyArray)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a.toml": FormatTOML,
		"a.txt":  FormatText,
		"a.csv":  FormatText,
		"noext":  FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}
