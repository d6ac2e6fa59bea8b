// Package snippet generates Cellery Ballerina source fragments: component,
// cell and composite definitions and the build and run entry points that
// `cellery build` and `cellery run` call.
//
// Templates use editor tab stops (${1:default}). Template returns them as
// is; Render replaces each tab stop with a supplied value or its default.
package snippet

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind names a snippet.
type Kind string

const (
	KindComponent      Kind = "component"
	KindCell           Kind = "cell"
	KindComposite      Kind = "composite"
	KindCellBuild      Kind = "build-cell"
	KindCompositeBuild Kind = "build-composite"
	KindRun            Kind = "run"
)

// Kinds returns every snippet kind in display order.
func Kinds() []Kind {
	return []Kind{KindComponent, KindCell, KindComposite, KindCellBuild, KindCompositeBuild, KindRun}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown snippet %q (valid: %s)", s, strings.Join(kindNames(), ", "))
}

func kindNames() []string {
	var names []string
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return names
}

// Description returns a one-line summary of the snippet.
func (k Kind) Description() string {
	switch k {
	case KindComponent:
		return "Cellery component definition"
	case KindCell:
		return "Cell image holding components"
	case KindComposite:
		return "Composite image holding components"
	case KindCellBuild:
		return "build function creating a cell image"
	case KindCompositeBuild:
		return "build function creating a composite image"
	case KindRun:
		return "run function creating an instance"
	}
	return ""
}

// Component is an entry of a cell or composite components map.
type Component struct {
	// Var is the Ballerina variable holding the component.
	Var string
	// Name is the component name used as the map key.
	Name string
}

// ParseComponent parses "var=name". A bare "var" uses var as the name.
func ParseComponent(s string) (Component, error) {
	v, name, found := strings.Cut(s, "=")
	v, name = strings.TrimSpace(v), strings.TrimSpace(name)
	if v == "" || (found && name == "") {
		return Component{}, fmt.Errorf("invalid component %q, expected var=name", s)
	}
	if !found {
		name = v
	}
	return Component{Var: v, Name: name}, nil
}

// Values fill the tab stops of a snippet. Empty fields keep the default.
type Values struct {
	ComponentName string
	Image         string
	ComponentVar  string
	// ImageVar is the variable holding the cell or composite image.
	ImageVar string
	// Components populate the map of the cell and composite snippets.
	Components []Component
}

type field func(Values) string

func componentName(v Values) string { return v.ComponentName }
func image(v Values) string         { return v.Image }
func componentVar(v Values) string  { return v.ComponentVar }
func imageVar(v Values) string      { return v.ImageVar }

// tabStops maps each kind's tab stop numbers to the value filling them.
var tabStops = map[Kind]map[string]field{
	KindComponent:      {"1": componentName, "2": image, "3": componentVar},
	KindCell:           {"1": imageVar},
	KindComposite:      {"1": imageVar},
	KindCellBuild:      {"1": componentName, "2": image, "3": componentVar, "4": imageVar},
	KindCompositeBuild: {"1": componentName, "2": image, "3": componentVar, "4": imageVar},
	KindRun:            {"1": imageVar},
}

var tabStopPattern = regexp.MustCompile(`\$\{(\d+):([^}]*)\}`)

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

// Template returns the snippet with its tab stops. components is used by
// the cell and composite kinds only.
func Template(kind Kind, components []Component) (string, error) {
	switch kind {
	case KindComponent:
		return lines(
			"cellery:Component ${3:component} = {",
			"\tname: \"${1:componentName}\",",
			"\tsrc: {",
			"\t\timage: \"${2:image}\"",
			"\t}",
			"};",
		), nil
	case KindCell:
		return lines(
			"cellery:CellImage ${1:cell} = {",
			"\tcomponents: "+componentsMap(components, "\t"),
			"};",
		), nil
	case KindComposite:
		return lines(
			"cellery:Composite ${1:composite} = {",
			"\tcomponents: "+componentsMap(components, "\t"),
			"};",
		), nil
	case KindCellBuild:
		return buildFunction("cellery:CellImage", "cell"), nil
	case KindCompositeBuild:
		return buildFunction("cellery:Composite", "composite"), nil
	case KindRun:
		return lines(
			"public function run(cellery:ImageName iName, map<cellery:ImageName> instances, "+
				"boolean startDependencies, boolean shareDependencies) returns (cellery:InstanceState[]|error?) {",
			"\tcellery:CellImage|cellery:Composite ${1:image} = cellery:constructImage(iName);",
			"\treturn <@untainted> cellery:createInstance(${1:image}, iName, "+
				"instances, startDependencies, shareDependencies);",
			"}",
		), nil
	}
	return "", fmt.Errorf("unknown snippet %q", kind)
}

func buildFunction(imageType, imageDefault string) string {
	return lines(
		"public function build(cellery:ImageName iName) returns error? {",
		"\tcellery:Component ${3:component} = {",
		"\t\tname: \"${1:component-name}\",",
		"\t\tsrc: {",
		"\t\t\timage: \"${2:image}\"",
		"\t\t}",
		"\t};",
		"\t"+imageType+" ${4:"+imageDefault+"} = {",
		"\t\tcomponents: {",
		"\t\t\t\"${1:component-name}\": ${3:component}",
		"\t\t}",
		"\t};",
		"\treturn <@untainted> cellery:createImage(${4:"+imageDefault+"}, iName);",
		"}",
	)
}

// componentsMap renders the components map literal. An empty map is "{}".
func componentsMap(components []Component, padding string) string {
	if len(components) == 0 {
		return "{}"
	}
	entries := make([]string, 0, len(components))
	for _, c := range components {
		entries = append(entries, "\n"+padding+"\t"+c.Name+": "+c.Var)
	}
	return "{" + strings.Join(entries, ",") + "\n" + padding + "}"
}

// Render returns the snippet with every tab stop replaced.
func Render(kind Kind, v Values) (string, error) {
	tmpl, err := Template(kind, v.Components)
	if err != nil {
		return "", err
	}
	stops := tabStops[kind]
	return tabStopPattern.ReplaceAllStringFunc(tmpl, func(stop string) string {
		m := tabStopPattern.FindStringSubmatch(stop)
		if f, ok := stops[m[1]]; ok {
			if value := f(v); value != "" {
				return value
			}
		}
		return m[2]
	}), nil
}

// File renders a complete cell file: the cellery import, a build function
// and a run function. composite selects the composite build function.
func File(composite bool, v Values) (string, error) {
	buildKind := KindCellBuild
	if composite {
		buildKind = KindCompositeBuild
	}
	build, err := Render(buildKind, v)
	if err != nil {
		return "", err
	}
	run, err := Render(KindRun, v)
	if err != nil {
		return "", err
	}
	return "import celleryio/cellery;\n\n" + build + "\n\n" + run + "\n", nil
}
