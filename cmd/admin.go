package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"gift-registry/internal/routes"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin account utilities",
}

var hashPasscodeCmd = &cobra.Command{
	Use:   "hash-passcode [passcode]",
	Short: "Hash an admin passcode for the admin_passcode_hash config value",
	Long: `Derives an argon2id hash of the passcode. Store the output as
admin_passcode_hash (or the ADMIN_PASSCODE_HASH environment variable)
instead of keeping the plaintext passcode in the configuration.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating salt: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(routes.HashPasscode(args[0], salt))
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(hashPasscodeCmd)
}
