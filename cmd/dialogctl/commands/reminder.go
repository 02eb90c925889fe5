package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskvoice/internal/nlp"
)

// NewReminderCmd creates the reminder command
func NewReminderCmd() *cobra.Command {
	var (
		value   int
		unit    string
		trigger string
	)

	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Compile or describe a reminder trigger",
		Long:  "Compile a reminder offset into an iCal TRIGGER string, or describe an existing one in Russian",
		RunE: func(cmd *cobra.Command, args []string) error {
			if trigger != "" {
				fmt.Printf("Trigger:     %s\n", trigger)
				fmt.Printf("Description: %s\n", nlp.FormatReminder(trigger))
				return nil
			}

			if unit == "" {
				return fmt.Errorf("either --trigger or --unit is required")
			}

			compiled := nlp.CompileReminder(&value, unit)
			if compiled == "" {
				return fmt.Errorf("no trigger for value=%d unit=%q", value, unit)
			}

			fmt.Printf("Trigger:     %s\n", compiled)
			fmt.Printf("Description: %s\n", nlp.FormatReminder(compiled))
			return nil
		},
	}

	cmd.Flags().IntVar(&value, "value", 0, "Offset before the due time (0 means at the due time)")
	cmd.Flags().StringVar(&unit, "unit", "", "Offset unit (minute, hour, day)")
	cmd.Flags().StringVar(&trigger, "trigger", "", "Existing TRIGGER string to describe")

	return cmd
}
