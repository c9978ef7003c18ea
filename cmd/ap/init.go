package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	appack "github.com/catforgor/appack"
	"github.com/catforgor/appack/internal/config"
)

// runInit walks through first-time setup, writing answers into the saved
// config. Blank answers keep the current values.
func runInit() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "ap setup")
	fmt.Fprintln(os.Stderr)

	in := bufio.NewReader(os.Stdin)

	if name := prompt(in, "Student name (e.g. JoeBloggs)"); name != "" {
		if cfg.Name, err = appack.CleanName(name, "name"); err != nil {
			return err
		}
	}
	if id := prompt(in, "Student ID"); id != "" {
		if cfg.StudentID, err = appack.CleanName(id, "student ID"); err != nil {
			return err
		}
	}
	if theme := prompt(in, "Theme (default, light, dracula, monokai, solarized, custom)"); theme != "" {
		cfg.Theme = theme
	}

	auto := strings.ToLower(prompt(in, "Enable auto-doc? [Y/n]"))
	enabled := auto == "" || auto == "y" || auto == "yes"
	cfg.AutoDoc = &enabled

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr)
	logger.Info("config saved")
	printConfig(path, cfg)
	return nil
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Fprintf(os.Stderr, "  %s ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
