package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/kimor79/jass/internal/utils"
)

// Version is the jass release version.
const Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jass version",
	Run: func(cmd *cobra.Command, args []string) {
		if utils.StdoutIsTerminal() {
			banner := figure.NewColorFigure("jass", "alligator2", "green", true)
			banner.Print()
		}
		fmt.Fprintln(cmd.OutOrStdout(), "jass version "+Version)
	},
}
