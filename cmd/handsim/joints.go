package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/LdDl/hands-go/hands"
	"github.com/spf13/cobra"
)

var jointsCmd = &cobra.Command{
	Use:   "joints",
	Short: "Print device to canonical joint mapping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJoints(cmd.OutOrStdout())
	},
}

func printJoints(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tID\tCANONICAL\tID")
	for _, d := range hands.DeviceJoints() {
		j := hands.CanonicalJoint(d)
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", d, int(d), j, int(j))
	}
	return w.Flush()
}
