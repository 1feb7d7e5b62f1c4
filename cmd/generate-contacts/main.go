package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-contacts/internal/model"
	"github.com/pstuifzand/tui-contacts/internal/provider"
)

func main() {
	var opts provider.GenerateOptions
	var output string

	cmd := &cobra.Command{
		Use:          "generate-contacts",
		Short:        "Write a generated address book as JSON",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Contacts < 1 {
				return fmt.Errorf("contacts must be at least 1")
			}
			book := provider.GenerateAddressBook(opts)
			if err := provider.SaveAddressBook(output, book); err != nil {
				return err
			}

			info, err := os.Stat(output)
			if err != nil {
				return err
			}
			fmt.Printf("Generated %d contacts and %d directories (%d remote contacts)\n",
				len(book.Contacts), len(book.Directories), countDirectoryContacts(book))
			fmt.Printf("Saved to: %s\n", output)
			fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Contacts, "contacts", 1000, "Number of local contacts to generate")
	cmd.Flags().IntVar(&opts.Directories, "directories", 3, "Number of remote directories")
	cmd.Flags().IntVar(&opts.DirectoryContacts, "directory-contacts", 250, "Contacts per remote directory")
	cmd.Flags().BoolVar(&opts.Profile, "profile", true, "Include a user profile")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&output, "output", "contacts.json", "Output file path")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func countDirectoryContacts(book *model.AddressBook) int {
	count := 0
	for _, d := range book.Directories {
		count += len(d.Contacts)
	}
	return count
}
