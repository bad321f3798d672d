package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davicafu/gymlab/internal/apiclient"
	"github.com/davicafu/gymlab/pkg/logger"
)

var (
	serverAddr  string
	sessionPath string
	jsonOutput  bool
	verbose     bool

	api *apiclient.Client
)

func defaultServer() string {
	if s := os.Getenv("GYMLAB_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:           "gymctl",
	Short:         "Consola de administración de Gymlab",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := sessionPath
		if path == "" {
			var err error
			if path, err = apiclient.DefaultSessionPath(); err != nil {
				return fmt.Errorf("resolving session path: %w", err)
			}
		}
		logger.InitConsole(verbose)
		api = apiclient.New(serverAddr, apiclient.NewFileStore(path), apiclient.WithLogger(logger.Logger()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", defaultServer(), "URL del backend")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "fichero de sesión (por defecto ~/.config/gymlab/session.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "salida en JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log de las llamadas HTTP")

	rootCmd.AddGroup(&cobra.Group{ID: "auth", Title: "Sesión:"}, &cobra.Group{ID: "entities", Title: "Listados:"})
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(entityCommands()...)
	rootCmd.AddCommand(notifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe traduce los errores del cliente HTTP al mensaje que ve el usuario.
func describe(err error) string {
	var se *apiclient.StatusError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "Sesión expirada o sin permisos. Ejecuta 'gymctl login'."
	case errors.As(err, &se):
		return se.Title() + ": " + se.Message
	case errors.Is(err, apiclient.ErrTransport):
		return "No se pudo contactar con el servidor: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// expire limpia la sesión local cuando el backend la rechaza.
func expire(err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		_ = api.Store().Clear()
	}
	return err
}
