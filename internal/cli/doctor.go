package cli

import (
	"studybuddy/internal/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errDoctorIssuesFound = errors.New("doctor found errors")

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check stored data for dangling references and invalid values",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			report := store.Doctor(root)
			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{
					"issues":    len(report.Issues),
					"hasErrors": report.HasErrors(),
				},
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
