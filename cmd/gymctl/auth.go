package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Inicia sesión y guarda el token",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			fmt.Print("Usuario: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		password, err := readPassword()
		if err != nil {
			return err
		}

		user, err := api.Login(context.Background(), username, password)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Sesión iniciada como %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

// readPassword lee sin eco si stdin es una terminal, si no una línea.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Print("Contraseña: ")
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Cierra la sesión",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("Sesión cerrada")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Muestra el usuario de la sesión",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := api.Store().Load()
		if err != nil {
			return err
		}
		user, ok := session.User()
		if session.Token == "" || !ok {
			fmt.Println("Sin sesión")
			return nil
		}
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(user)
		}
		fmt.Printf("%s (%s) id=%d\n", user.Username, user.Role, user.ID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "usuario")
}
