package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/graphbind/graphbind/config"
	"github.com/graphbind/graphbind/storage/bolt"
)

var stateCommand = &cobra.Command{
	Use:   "state [dir]",
	Short: "List resources recorded for the project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		loader := &config.Loader{}
		rootDir, err := loader.Root(args[0])
		if err != nil {
			fatal(err)
		}
		if rootDir == "" {
			fmt.Fprintln(os.Stderr, "Project not found")
			os.Exit(2)
		}
		project, err := loader.Load(rootDir)
		if err != nil {
			fatal(err)
		}

		stateFile, err := bolt.DefaultFile()
		if err != nil {
			fatal(err)
		}
		state, err := bolt.New(stateFile)
		if err != nil {
			fatal(err)
		}
		defer state.Close()

		records, err := state.List(context.Background(), project.Name)
		if err != nil {
			fatal(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tKEY\tID\tDEPLOYMENT\tCREATED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Kind, r.Key, r.ID, r.Deployment, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		if err := w.Flush(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	Graphbind.AddCommand(stateCommand)
}
