package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample projects, tags and tasks",
	Long:  "Inserts the built-in sample data, or the YAML fixture given with --file. Rows that already exist are left alone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := loadFixture(seedFile)
		if err != nil {
			return err
		}

		a := newApp(config.Load())
		defer a.Close()

		res, err := seed.NewSeeder(a.taskRepo, a.projectRepo, a.tagRepo).Run(cmd.Context(), fixture)
		if err != nil {
			return err
		}

		log.Printf("seed data created: %d projects, %d tags, %d tasks", res.Projects, res.Tags, res.Tasks)
		return nil
	},
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.DefaultFixture()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixture to load instead of the built-in one")
	rootCmd.AddCommand(seedCmd)
}
