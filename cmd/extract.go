package cmd

import (
	"fmt"

	"github.com/investco-dev/investco/extractor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts statement(s)",
	Long: `Extracts a given statement or statements.
This command will detect the statement type of each file
and run the respective extraction pipeline.`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")
	fmt.Println("scanning ", target)
	extractor.ExecuteAgainstPath(target)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("folder", "f", ".", "Folder in which investco will scan for files")
	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))
}
