package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSnippet(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		flags   snippetFlags
		want    string
		wantErr bool
	}{
		{
			name:  "component values",
			kind:  "component",
			flags: snippetFlags{name: "hello", image: "wso2cellery/hello", varName: "helloComponent"},
			want: "cellery:Component helloComponent = {\n" +
				"\tname: \"hello\",\n" +
				"\tsrc: {\n" +
				"\t\timage: \"wso2cellery/hello\"\n" +
				"\t}\n" +
				"};\n",
		},
		{
			name:  "cell components",
			kind:  "cell",
			flags: snippetFlags{components: []string{"helloComponent=hello", "db"}},
			want: "cellery:CellImage cell = {\n" +
				"\tcomponents: {\n" +
				"\t\thello: helloComponent,\n" +
				"\t\tdb: db\n" +
				"\t}\n" +
				"};\n",
		},
		{
			name:  "raw keeps tab stops",
			kind:  "composite",
			flags: snippetFlags{raw: true, imageVar: "ignored"},
			want: "cellery:Composite ${1:composite} = {\n" +
				"\tcomponents: {}\n" +
				"};\n",
		},
		{name: "unknown kind", kind: "service", wantErr: true},
		{name: "bad component", kind: "cell", flags: snippetFlags{components: []string{"=hello"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := writeSnippet(&out, tt.kind, &tt.flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("writeSnippet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && out.String() != tt.want {
				t.Errorf("writeSnippet() =\n%s\nwant\n%s", out.String(), tt.want)
			}
		})
	}
}

func TestListSnippets(t *testing.T) {
	var out bytes.Buffer
	listSnippets(&out)

	for _, want := range []string{"component", "cell", "composite", "build-cell", "build-composite", "run"} {
		if !strings.Contains(out.String(), "  "+want+" ") {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestScaffoldFile(t *testing.T) {
	t.Run("writes cell file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello.bal")

		if err := scaffoldFile(path, &snippetFlags{name: "hello", imageVar: "helloCell"}); err != nil {
			t.Fatalf("scaffoldFile() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		for _, want := range []string{
			"import celleryio/cellery;",
			"name: \"hello\",",
			"cellery:CellImage helloCell = {",
			"public function run(",
		} {
			if !strings.Contains(string(data), want) {
				t.Errorf("file missing %q", want)
			}
		}
	})

	t.Run("composite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello.bal")

		if err := scaffoldFile(path, &snippetFlags{composite: true}); err != nil {
			t.Fatalf("scaffoldFile() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "cellery:Composite composite = {") {
			t.Errorf("file missing composite:\n%s", data)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello.bal")
		if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := scaffoldFile(path, &snippetFlags{}); err == nil {
			t.Error("expected error for existing file")
		}
		if data, _ := os.ReadFile(path); string(data) != "keep" {
			t.Errorf("existing file changed to %q", data)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello.bal")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := scaffoldFile(path, &snippetFlags{force: true}); err != nil {
			t.Fatalf("scaffoldFile() error = %v", err)
		}
		if data, _ := os.ReadFile(path); !strings.HasPrefix(string(data), "import celleryio/cellery;") {
			t.Errorf("file not overwritten: %q", data)
		}
	})

	t.Run("rejects non-bal file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hello.txt")

		if err := scaffoldFile(path, &snippetFlags{}); err == nil {
			t.Error("expected error for non-.bal file")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("no file should be written")
		}
	})
}
