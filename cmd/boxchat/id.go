package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/boxchat/internal/appconfig"
	"pkt.systems/boxchat/internal/hostid"
	"pkt.systems/pslog"
)

func newIDCmd() *cobra.Command {
	var cfgPath string
	var lenient bool
	var verbose bool
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Print the host identity assigned to users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			strict := cfg.Identity.Strict
			if cmd.Flags().Changed("lenient") {
				strict = !lenient
			}
			id, err := hostid.New(strict).Identity()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if verbose {
				hw, hwErr := hostid.PrimaryHardwareAddr()
				host, hostErr := hostid.Hostname()
				_, _ = fmt.Fprintf(out, "hardware_addr: %s\nhostname: %s\n",
					describeInput(hostid.FormatHardwareAddr(hw), hwErr),
					describeInput(host, hostErr))
			}
			pslog.Ctx(cmd.Context()).Debug("host identity computed", "strict", strict)
			_, err = fmt.Fprintln(out, id)
			return err
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "derive the identity from whichever input is available")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print the hashed inputs")
	return cmd
}

// describeInput renders one hashed input, or why it could not be read.
func describeInput(value string, err error) string {
	if err != nil {
		return "unavailable (" + err.Error() + ")"
	}
	return value
}
