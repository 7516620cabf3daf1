package cmd

import (
	"fmt"
	"io"

	"foodies/internal/model"

	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSettings(cmd.OutOrStdout(), a.settings.Get())
			return nil
		},
	}

	var (
		currency       string
		locale         string
		fractionDigits int
		pageSize       int
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Long: `Change settings. Only the flags given are updated; the result is
validated as a whole and nothing is saved when any value is invalid.

Example:
  foodies settings set --currency USD --locale en-US --fraction-digits 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.SettingsPatch
			flags := cmd.Flags()
			if flags.Changed("currency") {
				patch.Currency = &currency
			}
			if flags.Changed("locale") {
				patch.Locale = &locale
			}
			if flags.Changed("fraction-digits") {
				patch.PriceFractionDigits = &fractionDigits
			}
			if flags.Changed("page-size") {
				patch.DefaultPageSize = &pageSize
			}
			if patch == (model.SettingsPatch{}) {
				return fmt.Errorf("nothing to change: pass at least one of --currency, --locale, --fraction-digits, --page-size")
			}

			st, err := a.settings.Save(patch)
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), st)
			return nil
		},
	}
	setCmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code, e.g. VND")
	setCmd.Flags().StringVar(&locale, "locale", "", "BCP 47 locale, e.g. vi-VN")
	setCmd.Flags().IntVar(&fractionDigits, "fraction-digits", 0, "digits after the decimal point in prices")
	setCmd.Flags().IntVar(&pageSize, "page-size", 0, "default rows per table page")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.settings.Reset()
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), st)
			return nil
		},
	}

	settingsCmd.AddCommand(showCmd, setCmd, resetCmd)
	return settingsCmd
}

func printSettings(w io.Writer, st model.Settings) {
	fmt.Fprintf(w, "currency:        %s\n", st.Currency)
	fmt.Fprintf(w, "locale:          %s\n", st.Locale)
	fmt.Fprintf(w, "fraction digits: %d\n", st.PriceFractionDigits)
	fmt.Fprintf(w, "page size:       %d\n", st.DefaultPageSize)
}
