package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"azai/storage"
)

var (
	deleteDBPath string
	deleteID     string
	deleteFile   bool
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete stored timesheets",
	Long: `Remove timesheets from the local SQLite database.

With --id only that timesheet is removed. Without it, every stored timesheet
is removed; --file deletes the complete SQLite database file instead.
Bulk deletion requires an interactive security prompt answered with exactly "Y".`,
	Example: `
  # Delete one timesheet
  azai delete --id 6f1c2d3e-... --db ./azai.db

  # Delete all stored timesheets (requires interactive confirmation)
  azai delete --db ./azai.db

  # Delete the complete SQLite file (requires interactive confirmation)
  azai delete --file --db ./azai.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := runDelete(deletePromptInput, deletePromptOutput, deleteDBPath, deleteID, deleteFile)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil
	},
}

// runDelete removes one timesheet by id, or after confirmation every stored
// timesheet or the whole database file. It returns the summary line to print.
func runDelete(input io.Reader, output io.Writer, dbPath, id string, wholeFile bool) (string, error) {
	if id = strings.TrimSpace(id); id != "" {
		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return "", err
		}
		defer store.Close()

		deleted, err := store.DeleteTimesheet(id)
		if err != nil {
			return "", err
		}
		if !deleted {
			return "", fmt.Errorf("%w: %s", storage.ErrTimesheetNotFound, id)
		}
		return "Deleted timesheet: " + id, nil
	}

	target := "all timesheets in " + dbPath
	if wholeFile {
		target = "database file " + dbPath
	}
	confirmed, err := confirmDeletePrompt(input, output, target)
	if err != nil {
		return "", err
	}
	if !confirmed {
		return "", fmt.Errorf("delete aborted: confirmation was not 'Y'")
	}

	if wholeFile {
		if err := removeDatabaseFile(dbPath); err != nil {
			return "", err
		}
		return "Deleted database file: " + dbPath, nil
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	removed, err := store.DeleteAllTimesheets()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted timesheets: %d", removed), nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "./azai.db", "Path to local SQLite database")
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "Document id of a single timesheet to delete")
	deleteCmd.Flags().BoolVar(&deleteFile, "file", false, "Delete the complete database file")
	deleteCmd.MarkFlagsMutuallyExclusive("id", "file")
}

func confirmDeletePrompt(input io.Reader, output io.Writer, target string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete %s? Type Y to confirm: ", target); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
