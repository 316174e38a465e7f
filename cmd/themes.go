package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/doro/internal/theme"
)

// themesCmd represents the themes command
var themesCmd = &cobra.Command{
	Use:   "themes [query]",
	Short: "List color themes",
	Long:  `List the color themes with a swatch of their accents. An optional query fuzzy-filters the names.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := theme.Names()
		if len(args) == 1 {
			names = theme.Search(args[0], names)
		}
		current := app.settings.ThemeName()

		if jsonOutput {
			return outputThemesJSON(cmd.OutOrStdout(), names, current)
		}
		printThemes(cmd.OutOrStdout(), names, current)
		return nil
	},
}

func printThemes(w io.Writer, names []string, current string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No matching theme.")
		return
	}
	for _, name := range names {
		t := theme.Lookup(name)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(t.Accent[0])).Render("  ") +
			lipgloss.NewStyle().Background(lipgloss.Color(t.Accent[1])).Render("  ") +
			lipgloss.NewStyle().Background(lipgloss.Color(t.Background)).Render("  ")

		marker := "  "
		if name == current {
			marker = "▸ "
		}
		fmt.Fprintf(w, "%s%s %s\n", marker, swatch, name)
	}
	fmt.Fprintf(w, "\nFonts: %v\n", theme.Fonts())
}

func outputThemesJSON(w io.Writer, names []string, current string) error {
	themes := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		t := theme.Lookup(name)
		themes = append(themes, map[string]interface{}{
			"name":       t.Name,
			"accent":     t.Accent,
			"background": t.Background,
			"text":       t.Text,
			"current":    t.Name == current,
		})
	}
	jsonData, err := json.MarshalIndent(map[string]interface{}{"themes": themes, "fonts": theme.Fonts()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal themes: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
