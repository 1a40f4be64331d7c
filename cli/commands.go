package cli

import (
	"fmt"

	"smash/pdf"

	"github.com/spf13/cobra"
)

func newCompressCommand(a *app) *cobra.Command {
	var output, preset string
	cmd := &cobra.Command{
		Use:   "compress <input.pdf>",
		Short: "Re-render a PDF with a Ghostscript quality preset",
		Long: `Presets: screen (72 dpi), ebook (150 dpi), printer (300 dpi), prepress.
Without -o the output is written next to the input as <name>-compressed.pdf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.Compress(cmd.Context(), args[0], output, preset)
			if err != nil {
				return err
			}
			return a.print(res, fmt.Sprintf("%s → %s (%s, saved %.1f%%)",
				humanSize(res.OriginalSize), humanSize(res.CompressedSize), res.OutputPath, res.SavingsPercent))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&preset, "preset", pdf.PresetEbook, "Quality preset")
	return cmd
}

func newMergeCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge <a.pdf> <b.pdf> [more.pdf...]",
		Short: "Concatenate PDFs in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.Merge(cmd.Context(), args, output)
			if err != nil {
				return err
			}
			return a.print(res, fmt.Sprintf("merged %d files → %s (%s)", len(args), res.OutputPath, humanSize(res.Size)))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (required)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newSplitCommand(a *app) *cobra.Command {
	var (
		outputDir  string
		mode       string
		start, end int
		pages      string
		everyN     int
	)
	cmd := &cobra.Command{
		Use:   "split <input.pdf>",
		Short: "Split a PDF by page range, page list or every N pages",
		Example: `  smash split book.pdf -d out --mode range --start 3 --end 7
  smash split book.pdf -d out --mode extract --pages 1,4-6
  smash split book.pdf -d out --mode every-n --every 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pdf.SplitOptions{Mode: mode}
			flags := cmd.Flags()
			if flags.Changed("start") {
				opts.RangeStart = &start
			}
			if flags.Changed("end") {
				opts.RangeEnd = &end
			}
			if flags.Changed("every") {
				opts.EveryN = &everyN
			}
			opts.PageSpec = pages

			res, err := a.tools.Split(cmd.Context(), args[0], outputDir, opts)
			if err != nil {
				return err
			}
			text := fmt.Sprintf("split %d pages into %d files", res.TotalPages, len(res.OutputPaths))
			for _, p := range res.OutputPaths {
				text += "\n  " + p
			}
			return a.print(res, text)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", ".", "Directory for the output files")
	cmd.Flags().StringVar(&mode, "mode", pdf.SplitModeRange, "Split mode: range, extract, every-n")
	cmd.Flags().IntVar(&start, "start", 1, "First page for range mode")
	cmd.Flags().IntVar(&end, "end", 0, "Last page for range mode (default: last page)")
	cmd.Flags().StringVar(&pages, "pages", "", "Pages for extract mode, e.g. 1,3,5-7")
	cmd.Flags().IntVar(&everyN, "every", 1, "Pages per file for every-n mode")
	return cmd
}

func newPagesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pages <input.pdf>",
		Short: "Print the page count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.tools.PageCount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(map[string]int{"page_count": n}, fmt.Sprint(n))
		},
	}
}

func newProtectCommand(a *app) *cobra.Command {
	var output, userPassword, ownerPassword string
	cmd := &cobra.Command{
		Use:   "protect <input.pdf>",
		Short: "Encrypt a PDF with AES-256",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.Protect(cmd.Context(), args[0], output, userPassword, ownerPassword)
			if err != nil {
				return err
			}
			return a.print(res, "protected → "+res.OutputPath)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&userPassword, "password", "", "Password required to open the file")
	cmd.Flags().StringVar(&ownerPassword, "owner-password", "", "Owner password (default: same as --password)")
	return cmd
}

func newUnlockCommand(a *app) *cobra.Command {
	var output, password string
	cmd := &cobra.Command{
		Use:   "unlock <input.pdf>",
		Short: "Remove encryption from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.Unlock(cmd.Context(), args[0], output, password)
			if err != nil {
				return err
			}
			return a.print(res, "unlocked → "+res.OutputPath)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&password, "password", "", "Current password")
	return cmd
}

func newOptimizeCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "optimize <input.pdf>",
		Short: "Linearize a PDF and compress its streams with qpdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.Optimize(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			return a.print(res, fmt.Sprintf("optimized → %s (%s)", res.OutputPath, humanSize(res.Size)))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func newRemovePagesCommand(a *app) *cobra.Command {
	var output, pages string
	cmd := &cobra.Command{
		Use:   "remove-pages <input.pdf>",
		Short: "Write a copy of a PDF without the given pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.RemovePages(cmd.Context(), args[0], output, pages)
			if err != nil {
				return err
			}
			return a.print(res, "pages removed → "+res.OutputPath)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&pages, "pages", "", "Pages to remove, e.g. 2,4-6 (required)")
	_ = cmd.MarkFlagRequired("pages")
	return cmd
}

func newEncryptedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypted <input.pdf>",
		Short: "Report whether a PDF is encrypted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encrypted, err := a.tools.IsEncrypted(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(map[string]bool{"encrypted": encrypted}, fmt.Sprint(encrypted))
		},
	}
}

type toolStatus struct {
	Tool      string `json:"tool"`
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newToolsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Show where Ghostscript and qpdf were found and their versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []toolStatus
			text := ""
			for _, tool := range []pdf.Tool{pdf.Ghostscript, pdf.QPDF} {
				st := toolStatus{Tool: string(tool)}
				if path, err := a.tools.Resolve(tool); err != nil {
					st.Error = err.Error()
				} else if version, err := a.tools.Version(cmd.Context(), tool); err != nil {
					st.Path, st.Error = path, err.Error()
				} else {
					st.Available, st.Path, st.Version = true, path, version
				}
				statuses = append(statuses, st)

				if st.Available {
					text += fmt.Sprintf("%-12s %s (%s)\n", tool.DisplayName(), st.Version, st.Path)
				} else {
					text += fmt.Sprintf("%-12s unavailable: %s\n", tool.DisplayName(), st.Error)
				}
			}
			return a.print(statuses, text[:len(text)-1])
		},
	}
}
