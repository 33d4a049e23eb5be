package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quiverlabs/nlsh/internal/app"
)

func newCacheCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the translation cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.CacheStore.Entries()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "cache is empty")
				return nil
			}
			for _, entry := range entries {
				age := humanize.Time(time.Unix(entry.CreatedAt, 0))
				fmt.Fprintf(out, "%-14s %-20s %s\n", age, entry.Model, entry.Command)
			}
			fmt.Fprintf(out, "\n%d entries, %s on disk\n", len(entries), humanize.Bytes(dirSize(container.CacheStore.Dir())))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.CacheStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})

	return cmd
}

func dirSize(dir string) uint64 {
	var total uint64
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += uint64(info.Size())
		}
		return nil
	})
	return total
}
