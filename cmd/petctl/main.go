// petctl es el cliente de línea de comandos de la API de Pet House.
package main

import (
	"fmt"
	"os"
	"time"

	"pet-house/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

type app struct {
	apiURL  string
	timeout time.Duration

	client *httpclient.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "petctl",
		Short: "Administra mascotas, vacunas y recordatorios de Pet House",
		Long: `petctl habla con la API HTTP de Pet House.

La URL de la API se toma de --api o de PETHOUSE_API (default http://localhost:8080).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := httpclient.New(a.apiURL, a.timeout)
			if err != nil {
				return err
			}
			a.client = c
			return nil
		},
	}

	defaultAPI := os.Getenv("PETHOUSE_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", defaultAPI, "URL base de la API")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", httpclient.DefaultTimeout, "Timeout por request")

	root.AddCommand(
		a.petsCmd(),
		a.vaccinesCmd(),
		a.remindersCmd(),
		a.askCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
