package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/sharktrack-backend-go/internal/repository"
)

func newVerifyCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the generated files and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			if out != "" {
				a.cfg.Generator.OutputDir = out
			}

			report, err := repository.NewCSVRepository(a.cfg.Generator.OutputDir).Verify(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range report.Files {
				if !f.Exists {
					fmt.Fprintf(w, "  %-32s missing\n", f.Name)
					continue
				}
				fmt.Fprintf(w, "  %-32s %8d bytes %6d rows\n", f.Name, f.Bytes, f.Rows)
			}
			if !report.Complete {
				return fmt.Errorf("dataset in %s is incomplete", a.cfg.Generator.OutputDir)
			}
			fmt.Fprintf(w, "tag validation accuracy: %.1f%%\n", report.Accuracy*100)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "directory holding the CSV files")
	return cmd
}
