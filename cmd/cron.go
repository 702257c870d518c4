package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inventory.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if jobName != "" {
			fmt.Printf("Running cron job: %s\n", jobName)
			return cron.RunJob(cmd.Context(), cron.Merge(a.Jobs()), jobName)
		}
		fmt.Println("Starting cron scheduler...")
		c, err := cron.StartCron(a.Jobs(), a.Logger)
		if err != nil {
			return err
		}
		fmt.Println("Cron scheduler started. Press Ctrl+C to exit.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
