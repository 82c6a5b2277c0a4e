package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

var schemaFlags struct {
	format string
	server string
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the OpenAPI document describing submissions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var options []schema.DocumentOption
		if schemaFlags.server != "" {
			options = append(options, schema.WithServer(schemaFlags.server))
		}
		doc, err := schema.Document(cmd.Context(), options...)
		if err != nil {
			return err
		}
		data, err := schema.Marshal(doc, schemaFlags.format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaFlags.format, "format", "f", schema.FormatJSON, "Output format: json or yaml")
	schemaCmd.Flags().StringVar(&schemaFlags.server, "server", "", "Server URL to include in the document")
}
