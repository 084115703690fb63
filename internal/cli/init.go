package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/specmentor/internal/config"
	"github.com/example/specmentor/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the SpecMentor database and config",
		Long:  `Initialize the SpecMentor database at ~/.specmentor/specmentor.db and write a starter config.json in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.DefaultDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing SpecMentor database at %s\n", dbPath)

			if _, err := db.GetDB(""); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			userID, _ := cmd.Flags().GetString("user")
			if err := initConfig(userID); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			fmt.Println("✓ Config file created at .specmentor/config.json")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  specmentor project create \"My First Project\"")
			fmt.Println("  specmentor workflow status PROJ-001")

			return nil
		},
	}
	cmd.Flags().String("user", "", "Default acting user ID to store in the config")
	return cmd
}

// initConfig writes a starter config.json, skipping if one already exists.
func initConfig(userID string) error {
	if _, err := config.LoadConfig("."); err == nil {
		return nil
	}
	if userID == "" {
		userID = os.Getenv("USER")
	}
	return config.SaveConfig(".", &config.Config{
		Version: "1",
		UserID:  userID,
	})
}
