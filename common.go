// ABOUTME: Shared initialization code for print and interactive modes
// ABOUTME: Provides debug logging and display language resolution

package main

import (
	"fmt"
	"log"
	"os"

	"folio/locale"
)

const debugLogFile = "folio-debug.log"

var debugLog *log.Logger

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == debugLogFile && isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...any) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// resolveLang picks the display language: flag, then config, then environment
func resolveLang(flagValue, configValue string, getenv func(string) string) (locale.Lang, error) {
	for _, v := range []string{flagValue, configValue} {
		if v == "" {
			continue
		}

		lang, err := locale.Parse(v)
		if err != nil {
			return "", fmt.Errorf("invalid language: %w", err)
		}

		return lang, nil
	}

	return locale.Detect(getenv), nil
}
