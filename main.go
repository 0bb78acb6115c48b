// ABOUTME: Entry point for folio, a terminal portfolio
// ABOUTME: Handles command-line parsing, profiling, and routing to print or interactive modes

// Package main provides the entry point for folio, a scrollable terminal portfolio.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"folio/config"
	"folio/contact"
	"folio/content"
	"folio/signal"
	"folio/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	contentPath := flag.String("content", "", "portfolio content file (YAML, default: built-in)")
	lang := flag.String("lang", "", "display language: ko or en (default: config, then $LANG)")
	mode := flag.String("mode", "", "scroll binding: window or container (default: config)")
	configFile := flag.String("config", "", "settings file (default: ./folio.toml, then ~/.config/folio/config.toml)")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	printPage := flag.Bool("print", false, "print the page to stdout instead of starting the interactive view")
	width := flag.Int("width", 80, "page width for -print")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Println("Usage: folio [flags]")
		fmt.Println("Example: folio -content portfolio.yaml -lang en")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *debug {
		if err := SetupDebugLog(debugLogFile); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	configPath := *configFile
	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: %v (using defaults)", err)
	}

	language, err := resolveLang(*lang, cfg.Lang, os.Getenv)
	if err != nil {
		log.Printf("Error: %v", err)

		return 1
	}

	opts := tui.Options{
		ContentPath: *contentPath,
		Lang:        language,
		Mode:        *mode,
	}
	if opts.ContentPath == "" {
		opts.ContentPath = cfg.Content
	}

	if *printPage {
		if err := RunPrint(os.Stdout, opts, cfg, *width); err != nil {
			log.Printf("Print error: %v", err)

			return 1
		}

		return 0
	}

	if err := runInteractive(opts, cfg, configPath); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	return 0
}

// runInteractive wires the collaborators and starts the page shell
func runInteractive(opts tui.Options, cfg config.Config, configPath string) error {
	if err := contact.LoadEnv(); err != nil {
		debugf("[CONTACT] %v", err)
	}

	smtpCfg := contact.ConfigFromEnv(os.Getenv)
	if !smtpCfg.Configured() {
		debugf("[CONTACT] SMTP not configured, messages are simulated")
	}

	deps := tui.Dependencies{
		Config:      cfg,
		ConfigPath:  configPath,
		SaveConfig:  config.SaveConfig,
		LoadContent: content.Load,
		Sender:      contact.NewSender(smtpCfg),
		Copy:        contact.CopyAddress,
		Bus:         signal.New(),
		Debugf:      debugf,
	}

	// Live reload only applies to a file on disk
	if opts.ContentPath != "" {
		w, err := content.Watch(opts.ContentPath, debugf)
		if err != nil {
			log.Printf("Warning: live reload disabled: %v", err)
		} else {
			debugf("[CONTENT] watching %s", w.Path())
			deps.Watcher = w
		}
	}

	return tui.Run(opts, deps)
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
