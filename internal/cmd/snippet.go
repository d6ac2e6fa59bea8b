package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cellery-io/cellery-dev/internal/snippet"
)

var snippetCmd = &cobra.Command{
	Use:   "snippet [kind]",
	Short: "Print a Cellery source snippet",
	Long: `Snippet prints a Ballerina fragment for a Cellery cell file. Without a
kind it lists the available snippets.

Values not given by flags keep their defaults. Use --raw to keep the
editor tab stops (${1:default}) instead.

Examples:
  cellery-dev snippet component --name hello --image wso2cellery/hello
  cellery-dev snippet cell --component helloComponent=hello
  cellery-dev snippet run --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnippet,
}

var newCmd = &cobra.Command{
	Use:   "new <file.bal>",
	Short: "Create a cell file with build and run functions",
	Long: `New writes a cell file holding one component, a build function and a
run function, ready for cellery-dev build.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

type snippetFlags struct {
	raw        bool
	name       string
	image      string
	varName    string
	imageVar   string
	components []string
	composite  bool
	force      bool
}

var (
	snippetOpts snippetFlags
	newOpts     snippetFlags
)

func addValueFlags(cmd *cobra.Command, flags *snippetFlags) {
	cmd.Flags().StringVar(&flags.name, "name", "", "Component name")
	cmd.Flags().StringVar(&flags.image, "image", "", "Component source image")
	cmd.Flags().StringVar(&flags.varName, "var", "", "Component variable")
	cmd.Flags().StringVar(&flags.imageVar, "image-var", "", "Cell or composite variable")
}

func init() {
	rootCmd.AddCommand(snippetCmd)
	addValueFlags(snippetCmd, &snippetOpts)
	snippetCmd.Flags().BoolVar(&snippetOpts.raw, "raw", false, "Keep editor tab stops")
	snippetCmd.Flags().StringArrayVar(&snippetOpts.components, "component", nil, "Components map entry as var=name (repeatable)")

	rootCmd.AddCommand(newCmd)
	addValueFlags(newCmd, &newOpts)
	newCmd.Flags().BoolVar(&newOpts.composite, "composite", false, "Build a composite instead of a cell")
	newCmd.Flags().BoolVarP(&newOpts.force, "force", "f", false, "Overwrite an existing file")
}

func (f *snippetFlags) values() (snippet.Values, error) {
	v := snippet.Values{
		ComponentName: f.name,
		Image:         f.image,
		ComponentVar:  f.varName,
		ImageVar:      f.imageVar,
	}
	for _, s := range f.components {
		c, err := snippet.ParseComponent(s)
		if err != nil {
			return snippet.Values{}, err
		}
		v.Components = append(v.Components, c)
	}
	return v, nil
}

func runSnippet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		listSnippets(cmd.OutOrStdout())
		return nil
	}
	return writeSnippet(cmd.OutOrStdout(), args[0], &snippetOpts)
}

func listSnippets(out io.Writer) {
	fmt.Fprintln(out, "Snippets:")
	for _, k := range snippet.Kinds() {
		fmt.Fprintf(out, "  %-16s %s\n", k, k.Description())
	}
}

func writeSnippet(out io.Writer, name string, flags *snippetFlags) error {
	kind, err := snippet.ParseKind(name)
	if err != nil {
		return err
	}
	v, err := flags.values()
	if err != nil {
		return err
	}

	var text string
	if flags.raw {
		text, err = snippet.Template(kind, v.Components)
	} else {
		text, err = snippet.Render(kind, v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func runNew(cmd *cobra.Command, args []string) error {
	if err := scaffoldFile(args[0], &newOpts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", args[0])
	return nil
}

func scaffoldFile(path string, flags *snippetFlags) error {
	if filepath.Ext(path) != ".bal" {
		return fmt.Errorf("%s is not a .bal file", path)
	}
	if !flags.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	v, err := flags.values()
	if err != nil {
		return err
	}
	content, err := snippet.File(flags.composite, v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
