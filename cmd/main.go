package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/muhammadheryan/mogadishu-rentals/docs"
	"github.com/spf13/cobra"
)

// @title MOGADISHU RENTALS API
// @version 1.0
// @description Rental listings, wishlists and photo storage
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:           "rentals",
		Short:         "Mogadishu rentals service and command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		consumeCmd(),
		browseCmd(),
		saveCmd(),
		publishCmd(),
		deleteCmd(),
		googleSignInCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
