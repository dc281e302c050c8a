package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lp/internal/client"
	"github.com/nikbrunner/lp/internal/config"
	"github.com/nikbrunner/lp/internal/exporter"
	"github.com/nikbrunner/lp/internal/panel"
	"github.com/nikbrunner/lp/internal/picker"
	"github.com/nikbrunner/lp/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			var filePath string
			if len(os.Args) >= 3 {
				filePath = os.Args[2]
			}
			runImport(filePath)
			return
		case "export":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: lp export <group> [path]\n")
				os.Exit(1)
			}
			var outputPath string
			if len(os.Args) >= 4 {
				outputPath = os.Args[3]
			}
			runExport(os.Args[2], outputPath)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `lp - link panel

Usage:
  lp                    Open interactive TUI
  lp import [file]      Import links from YAML (picker when no file given)
  lp export <group> [path]
                        Export a group's links to YAML
  lp help               Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    h/l         Focus groups / open group
    gg/G        Jump to top/bottom
    n/p         Step the active link forward/back
    [/]         Previous/next page

  Ordering:
    J/K         Move link down/up, Enter commits, Esc cancels

  Selection:
    space       Toggle link
    a           Toggle whole page

  Actions:
    /           Search the loaded page
    c           Create link in the open group
    d           Delete selected links
    e           Export selected links
    i           Import from a YAML file
    Y           Copy URL to clipboard
    r           Refresh from server

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/lp/config.json  (LP_SERVER_URL, LP_PAGE_SIZE, LP_EXPORT_DIR override)
`
	fmt.Print(help)
}

// loadSetup loads the configuration and builds a panel over the
// configured resource API.
func loadSetup() (*config.Config, *panel.Panel) {
	configPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	api := client.New(cfg.ServerURL)
	return cfg, panel.New(panel.Params{Resource: api, PageSize: cfg.PageSize})
}

// exportDir resolves the directory exports are written to and imports
// are picked from.
func exportDir(cfg *config.Config) string {
	if cfg.ExportDir != "" {
		return cfg.ExportDir
	}
	if path, err := exporter.DefaultExportPath(); err == nil {
		return filepath.Dir(path)
	}
	return "."
}

// runTUI runs the full interactive TUI.
func runTUI() {
	cfg, p := loadSetup()

	app := tui.NewApp(tui.AppParams{Panel: p, ExportDir: cfg.ExportDir})
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runImport handles the import subcommand. Without a file argument the
// export directory's YAML candidates are offered in a picker.
func runImport(filePath string) {
	cfg, p := loadSetup()

	if filePath == "" {
		dir := exportDir(cfg)
		files, err := picker.ListImportFiles(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing %s: %v\n", dir, err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Printf("No .yaml/.yml files in %s\n", dir)
			return
		}

		program := tea.NewProgram(picker.New(files, dir))
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		filePath = finalPicker.SelectedFile()
		if filePath == "" {
			return
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	created, err := p.Import(context.Background(), file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d links from %s\n", created, filePath)
}

// runExport handles the export subcommand: the named group's full
// membership is written as YAML.
func runExport(groupName, outputPath string) {
	cfg, p := loadSetup()
	ctx := context.Background()

	if err := p.LoadGroups(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading groups: %v\n", err)
		os.Exit(1)
	}

	index := -1
	for i, g := range p.Groups() {
		if strings.EqualFold(g.Name, groupName) {
			index = i
			break
		}
	}
	if index == -1 {
		fmt.Fprintf(os.Stderr, "No group named %q\n", groupName)
		os.Exit(1)
	}

	if err := p.Select(ctx, index); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading links: %v\n", err)
		os.Exit(1)
	}

	// Widen the page so the export covers the whole membership.
	if p.Total() > len(p.Page()) {
		if err := p.ChangePage(ctx, 1, p.Total()); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading links: %v\n", err)
			os.Exit(1)
		}
	}

	if len(p.Page()) == 0 {
		fmt.Printf("Group %q has no links\n", groupName)
		return
	}

	if outputPath == "" {
		outputPath = filepath.Join(exportDir(cfg), exporter.ExportFileName)
	}

	p.ToggleAll(true)
	if err := p.ExportChecked(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d links to %s\n", p.CheckedCount(), outputPath)
}
