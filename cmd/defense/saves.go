package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var savesCmd = &cobra.Command{
	Use:   "saves [delete <slot>]",
	Short: "List or delete save slots",
	Long: `List the save slots stored in the database, or delete one.

Examples:
  defense saves
  defense saves delete td_save_realistic-alice`,
	Args: cobra.RangeArgs(0, 2),
	Run:  runSaves,
}

func runSaves(_ *cobra.Command, args []string) {
	s, err := loadSetup(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	store := s.openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()
	ctx := context.Background()

	if len(args) > 0 {
		if args[0] != "delete" || len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: defense saves delete <slot>")
			os.Exit(1)
		}
		if err := store.Delete(ctx, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", args[1], err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", args[1])
		return
	}

	saves, err := store.ListSaves(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}
	if len(saves) == 0 {
		fmt.Println("No saves yet. Press S in a game to save.")
		return
	}

	maxSlot := 4 // "Slot" header
	for _, sv := range saves {
		if len(sv.Slot) > maxSlot {
			maxSlot = len(sv.Slot)
		}
	}
	fmt.Printf("  %-*s  %-8s  %s\n", maxSlot, "Slot", "Size", "Updated")
	fmt.Printf("  %-*s  %-8s  %s\n", maxSlot, "----", "----", "-------")
	for _, sv := range saves {
		fmt.Printf("  %-*s  %-8s  %s\n", maxSlot, sv.Slot, humanize.Bytes(uint64(sv.Size)), humanize.Time(sv.UpdatedAt))
	}
}
