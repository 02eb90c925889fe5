package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskvoice/internal/nlp"
)

// NewRecurrenceCmd creates the recurrence command
func NewRecurrenceCmd() *cobra.Command {
	var (
		freq     string
		interval int
		monthDay int
		rrule    string
	)

	cmd := &cobra.Command{
		Use:   "recurrence",
		Short: "Compile or describe a recurrence rule",
		Long:  "Compile frequency slots into an RRULE string, or describe an existing RRULE in Russian",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rrule != "" {
				fmt.Printf("RRULE:       %s\n", rrule)
				fmt.Printf("Description: %s\n", nlp.FormatRecurrence(rrule))
				return nil
			}

			rule := nlp.CompileRecurrence(freq, interval, monthDay)
			if rule == nil {
				return fmt.Errorf("no rule for freq=%q interval=%d monthday=%d", freq, interval, monthDay)
			}

			compiled := rule.RRule()
			fmt.Printf("RRULE:       %s\n", compiled)
			fmt.Printf("Description: %s\n", nlp.FormatRecurrence(compiled))
			return nil
		},
	}

	cmd.Flags().StringVar(&freq, "freq", "", "Frequency token (day, week, month, year, weekday name)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Repeat interval (plain frequencies only)")
	cmd.Flags().IntVar(&monthDay, "monthday", 0, "Day of month (overrides frequency)")
	cmd.Flags().StringVar(&rrule, "rrule", "", "Existing RRULE string to describe")

	return cmd
}
