package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"jobtracker/config"
	"jobtracker/engine"
	"jobtracker/logging"
	"jobtracker/settings"
	"jobtracker/store"
	"jobtracker/ui"
)

const version = "1.0.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("Job Application Tracker v%s\n", version)
			return
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) > 1 {
		logging.InitLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		tracker := openTracker(cfg)
		if err := runCommand(tracker, os.Args[1], os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	tracker, logFile, err := openInteractive(cfg)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	slog.Info("starting interactive session", "version", version, "storage_dir", tracker.Settings().StorageDirectory())

	p := tea.NewProgram(ui.NewModel(tracker), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

func openTracker(cfg *config.Config) *engine.Tracker {
	opts := []engine.Option{engine.WithLogger(slog.Default())}
	if cfg.PointerFile != "" {
		opts = append(opts, engine.WithPointerFile(cfg.PointerFile))
	}
	return engine.Open(cfg.Home, opts...)
}

// openInteractive starts logging to a file before the tracker is opened, so
// the settings store and repository keep the file logger. The terminal UI owns
// stdout, so interactive sessions never log to the terminal.
func openInteractive(cfg *config.Config) (*engine.Tracker, *os.File, error) {
	logPath := cfg.LogFile
	if logPath == "" {
		res := settings.ResolveDataDirectory(cfg.Home, pointerPath(cfg))
		logPath = filepath.Join(res.Dir, "jobtracker.log")
	}
	logFile, err := logging.OpenLogFile(logPath)
	if err != nil {
		return nil, nil, err
	}
	logging.InitLogger(logFile, cfg.LogLevel, cfg.LogFormat)
	return openTracker(cfg), logFile, nil
}

func pointerPath(cfg *config.Config) string {
	if cfg.PointerFile != "" {
		return cfg.PointerFile
	}
	path, err := settings.DefaultPointerPath()
	if err != nil {
		return ""
	}
	return path
}

// runCommand executes a non-interactive subcommand, writing its output to w
func runCommand(t *engine.Tracker, name string, args []string, w io.Writer) error {
	switch name {
	case "stats":
		return printStats(t, w)

	case "where":
		s := t.Settings()
		fmt.Fprintf(w, "Storage directory: %s\n", s.StorageDirectory())
		fmt.Fprintf(w, "Resolved from:     %s\n", s.StorageSource())
		fmt.Fprintf(w, "Settings file:     %s\n", s.SettingsPath())
		fmt.Fprintf(w, "Records file:      %s\n", s.RecordsPath())
		return nil

	case "search":
		if len(args) != 2 {
			return errors.New("usage: jobtracker search <link|company> <term>")
		}
		mode, err := store.ParseSearchMode(args[0])
		if err != nil {
			return err
		}
		results := t.Repository().Search(args[1], mode)
		for _, app := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", app.AppliedDate, app.Company, app.Role, app.Link)
		}
		fmt.Fprintf(w, "%d result(s)\n", len(results))
		return nil

	case "export":
		if len(args) != 1 {
			return errors.New("usage: jobtracker export <file.db>")
		}
		n, err := t.ExportArchive(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported %d application(s) to %s\n", n, args[0])
		return nil

	case "import":
		if len(args) != 1 {
			return errors.New("usage: jobtracker import <file.db>")
		}
		if err := t.LoadWarning(); err != nil {
			return fmt.Errorf("refusing to import over an unreadable records file: %w", err)
		}
		res, err := t.ImportArchive(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Imported %d application(s), skipped %d duplicate(s) and %d invalid record(s)\n",
			res.Added, res.Duplicates, res.Invalid)
		return nil

	default:
		return fmt.Errorf("unknown command %q, run 'jobtracker --help' for usage", name)
	}
}

func printStats(t *engine.Tracker, w io.Writer) error {
	if err := t.LoadWarning(); err != nil {
		return err
	}

	sum := t.Stats()
	fmt.Fprintf(w, "Total applications: %d\n", sum.TotalApplications)
	fmt.Fprintf(w, "Unique companies:   %d\n", sum.UniqueCompanies)
	fmt.Fprintf(w, "Days tracked:       %d\n", sum.TotalDays)
	fmt.Fprintf(w, "Daily rate:         %.2f\n", sum.DailyRate)

	roles := sum.RolesByCount()
	if len(roles) > 0 {
		fmt.Fprintln(w, "\nBy role:")
		for _, rc := range roles {
			fmt.Fprintf(w, "  %-30s %d\n", rc.Role, rc.Count)
		}
	}
	return nil
}

func printHelp() {
	fmt.Printf(`Job Application Tracker v%s

USAGE:
    jobtracker [command]

COMMANDS:
    stats                 Print application statistics
    where                 Show where settings and applications are stored
    search <mode> <term>  List applications by exact link or company substring
                          (mode is link or company)
    export <file.db>      Write all applications to a SQLite file
    import <file.db>      Add applications from a SQLite export, skipping known links
    --help, -h            Show this help message
    --version, -v         Show version information

INTERACTIVE MODE (default):
    When no command is provided, the tracker starts in interactive mode.

KEYBOARD SHORTCUTS:
    a               Add an application
    enter           Show application details
    c               Copy the job link to the clipboard
    d               Delete the selected application
    D               Delete all applications (type DELETE to confirm)
    /               Search by company or exact link (tab switches)
    s               Statistics
    p               Settings (name, job roles, storage directory)
    q, ctrl+c       Quit

ENVIRONMENT:
    JOBTRACKER_HOME           Install directory (default: executable directory)
    JOBTRACKER_POINTER_FILE   Storage pointer file location
    JOBTRACKER_LOG_LEVEL      debug, info, warn, error (default: info)
    JOBTRACKER_LOG_FORMAT     text or json (default: text)
    JOBTRACKER_LOG_FILE       Log file for interactive mode
`, version)
}
