package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-contacts/internal/app"
	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	"github.com/pstuifzand/tui-contacts/internal/model"
	"github.com/pstuifzand/tui-contacts/internal/provider"
	"github.com/pstuifzand/tui-contacts/internal/ui"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [query]",
	Short: "Print the contact list",
	Long:  "Print the contact list the way the browser shows it. With a query the remote directories are searched too. Example:\n  tui-contacts dump ann",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if phones, _ := cmd.Flags().GetBool("phones"); phones {
			cfg.List.PhoneNumbers = true
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		listing, err := app.Snapshot(ctx, cfg, store, query)
		if err != nil {
			return err
		}

		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			spew.Fdump(cmd.OutOrStdout(), listing.Directories)
		}
		out := cmd.OutOrStdout()
		for _, e := range listing.Entries {
			if e.Kind == contactlist.EntryHeader {
				fmt.Fprintf(out, "== %s (%d)\n", ui.HeaderText(e), e.ResultCount)
				continue
			}
			section := "  "
			if e.Placement.SectionHeader != "" {
				section = ui.PadStringToWidth(e.Placement.SectionHeader, 2)
			}
			star := " "
			if e.Starred {
				star = "*"
			}
			line := fmt.Sprintf("%s %s %s", section, star, e.DisplayName)
			if e.Detail != "" {
				line += "  " + e.Detail
			}
			fmt.Fprintln(out, strings.TrimRight(line, " "))
		}
		return nil
	},
}

var directoriesCmd = &cobra.Command{
	Use:   "directories",
	Short: "List the registered contact directories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.Directories(cmd.Context(), directory.Predicate{})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range records {
			count, err := store.ContactCount(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			name := r.DisplayName
			if name == "" {
				name = r.TypeLabel
			}
			fmt.Fprintf(out, "%3d  %-30s %-12s %5d contacts\n", r.ID, name, r.PackageName, count)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the contact database",
	Long:  "Fill the contact database with generated contacts, or import an address book from JSON. Examples:\n  tui-contacts seed --contacts 500 --directories 2\n  tui-contacts seed --from book.json",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		var book *model.AddressBook
		if from, _ := cmd.Flags().GetString("from"); from != "" {
			book, err = provider.LoadAddressBook(from)
			if err != nil {
				return err
			}
		} else {
			contacts, _ := cmd.Flags().GetInt("contacts")
			dirs, _ := cmd.Flags().GetInt("directories")
			dirContacts, _ := cmd.Flags().GetInt("directory-contacts")
			seed, _ := cmd.Flags().GetInt64("seed")
			book = provider.GenerateAddressBook(provider.GenerateOptions{
				Contacts:          contacts,
				Directories:       dirs,
				DirectoryContacts: dirContacts,
				Profile:           true,
				Seed:              seed,
			})
		}

		stats, err := provider.Import(cmd.Context(), store, book)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts and %d directories into %s\n",
			stats.Contacts, stats.Directories, store.Path())
		return nil
	},
}

func init() {
	dumpCmd.Flags().Bool("phones", false, "List phone numbers instead of contacts")
	dumpCmd.Flags().Bool("debug", false, "Dump the directory partitions")
	dumpCmd.Flags().Duration("timeout", 10*time.Second, "Give up waiting for directories after this long")
	rootCmd.AddCommand(dumpCmd)

	rootCmd.AddCommand(directoriesCmd)

	seedCmd.Flags().String("from", "", "Import this JSON address book instead of generating one")
	seedCmd.Flags().Int("contacts", 200, "Number of local contacts to generate")
	seedCmd.Flags().Int("directories", 2, "Number of remote directories to generate")
	seedCmd.Flags().Int("directory-contacts", 100, "Contacts per generated directory")
	seedCmd.Flags().Int64("seed", 1, "Random seed")
	rootCmd.AddCommand(seedCmd)
}
