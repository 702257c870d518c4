package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"inventory.GO/cron"
	"inventory.GO/server"
)

var serveWithCron bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, GraphQL endpoint and (optionally) the sync scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		e := server.New(a.Deps())

		if serveWithCron {
			c, err := cron.StartCron(a.Jobs(), a.Logger)
			if err != nil {
				return err
			}
			defer c.Stop()
		}

		fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d", "puffy", "rectangles"}
		figure.NewFigure("Inventory ->", fonts[rand.Intn(len(fonts))], true).Print()
		fmt.Println()

		port := a.Config.Port
		log.Printf("Server running on :%s (GraphQL at /graphql, playground at /playground)", port)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server: %v", err)
				stop()
			}
		}()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithCron, "cron", true, "Run the scheduled sync inside the server process")
	rootCmd.AddCommand(serveCmd)
}
