package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// HandleOutput writes data to the command's output according to the
// template or format flag.
func HandleOutput(cmd *cobra.Command, data any) error {
	templateFlag, _ := cmd.Flags().GetString("template")
	formatFlag, _ := cmd.Flags().GetString("format")
	return Render(cmd.OutOrStdout(), data, formatFlag, templateFlag)
}

// Render writes data to w. A non-empty tmpl takes precedence over format;
// format is "yaml" or anything else for JSON.
func Render(w io.Writer, data any, format, tmpl string) error {
	if tmpl != "" {
		t, err := template.New("output").Parse(tmpl)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}

		if err := t.Execute(w, data); err != nil {
			return fmt.Errorf("failed to execute template: %w", err)
		}
		fmt.Fprintln(w)
		return nil
	}

	var output []byte
	var err error

	switch format {
	case "yaml":
		output, err = yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		// yaml output already ends with a newline.
		_, err = w.Write(output)
		return err
	default:
		output, err = json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
	}

	fmt.Fprintln(w, string(output))
	return nil
}
