package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	httpserver "github.com/fairyhunter13/skills-gap-navigator/internal/adapter/httpserver"
)

// hash-password [password]: reads stdin when no argument is given.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "hash-password [password]",
		Short:       "Print an argon2id hash suitable for ADMIN_PASSWORD",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipDeps: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				sc := bufio.NewScanner(cmd.InOrStdin())
				if sc.Scan() {
					pw = sc.Text()
				}
			}
			pw = strings.TrimSpace(pw)
			if pw == "" {
				return errors.New("password is required")
			}
			h, err := httpserver.HashPassword(pw, httpserver.DefaultArgon2Params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
