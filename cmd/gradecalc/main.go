package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gradecalc",
		Short:         "Calculate midterm and finals grades from JSON files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(termCmd("midterm", "Calculate midterm grades"), termCmd("finals", "Calculate finals grades"))
	return root
}

func termCmd(term, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   term,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, term)
		},
	}
	f := cmd.Flags()
	f.StringP("records", "r", "", "Grade records JSON file (required)")
	f.StringP("weights", "w", "", "Component weights JSON file (required)")
	f.StringP("scale", "s", "", "Grade equivalents JSON file (required)")
	f.StringP("format", "f", "json", "Output format (json, csv, pdf)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("title", "Grade Sheet", "Sheet title for csv and pdf output")
	f.String("log-level", "warn", "Log level (debug, info, warn, error)")
	return cmd
}

// viperForCmd binds a command's flags and GRADECALC_ environment variables.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	v.SetEnvPrefix("GRADECALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}
