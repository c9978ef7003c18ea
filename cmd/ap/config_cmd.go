package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	flag "github.com/spf13/pflag"

	appack "github.com/catforgor/appack"
	"github.com/catforgor/appack/internal/config"
)

// knownEditors are probed in order when neither the saved editor nor
// $VISUAL/$EDITOR resolve.
var knownEditors = []string{
	"code --wait", "codium --wait", "zed --wait", "subl --wait",
	"hx", "nvim", "vim", "nano", "micro", "emacs -nw", "kak", "notepad",
}

// runConfigCommand dispatches `ap config <subcommand>`.
func runConfigCommand(args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		printConfig(path, cfg)
		return nil
	case "path":
		fmt.Println(path)
		return nil
	case "set":
		return runConfigSet(path, args)
	case "reset":
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("can't remove config: %w", err)
		}
		logger.Info("config reset", "path", path)
		return nil
	case "edit":
		return runConfigEdit(path)
	default:
		return fmt.Errorf("%w: unknown config subcommand %q (use show|path|set|reset|edit)", errUsage, sub)
	}
}

// runConfigSet updates individual saved fields from flags.
func runConfigSet(path string, args []string) error {
	fs := flag.NewFlagSet("ap config set", flag.ContinueOnError)
	name := fs.String("name", "", "Student name")
	id := fs.String("id", "", "Student ID")
	outputDir := fs.String("output-dir", "", "Default output directory")
	autoDoc := fs.String("auto-doc", "", "Enable auto-doc by default (true/false)")
	runCommand := fs.String("run-command", "", "Default run command")
	clearRunCommand := fs.Bool("clear-run-command", false, "Clear the saved run command")
	runTemplate := fs.String("run-display-template", "", "Default display template")
	clearRunTemplate := fs.Bool("clear-run-display-template", false, "Clear the saved display template")
	theme := fs.String("theme", "", "Default theme")
	clearTheme := fs.Bool("clear-theme", false, "Clear the saved theme")
	editor := fs.String("editor", "", "Editor command for `ap config edit`")
	clearEditor := fs.Bool("clear-editor", false, "Clear the saved editor")
	watermark := fs.String("watermark", "", "Include the watermark caption (true/false)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	changed := false
	if *name != "" {
		if cfg.Name, err = appack.CleanName(*name, "name"); err != nil {
			return err
		}
		changed = true
	}
	if *id != "" {
		if cfg.StudentID, err = appack.CleanName(*id, "student ID"); err != nil {
			return err
		}
		changed = true
	}
	if *outputDir != "" {
		info, statErr := os.Stat(*outputDir)
		if statErr != nil || !info.IsDir() {
			return fmt.Errorf("%w: not a directory: %s", errUsage, *outputDir)
		}
		cfg.OutputDir = *outputDir
		changed = true
	}
	if *autoDoc != "" {
		v, parseErr := parseBool(*autoDoc)
		if parseErr != nil {
			return parseErr
		}
		cfg.AutoDoc = &v
		changed = true
	}
	if *clearRunCommand {
		cfg.RunCommand = ""
		changed = true
	}
	if *runCommand != "" {
		cfg.RunCommand = strings.TrimSpace(*runCommand)
		changed = true
	}
	if *clearRunTemplate {
		cfg.RunDisplayTemplate = ""
		changed = true
	}
	if *runTemplate != "" {
		cfg.RunDisplayTemplate = strings.TrimSpace(*runTemplate)
		changed = true
	}
	if *clearTheme {
		cfg.Theme = ""
		changed = true
	}
	if *theme != "" {
		cfg.Theme = strings.TrimSpace(*theme)
		changed = true
	}
	if *clearEditor {
		cfg.Editor = ""
		changed = true
	}
	if *editor != "" {
		cfg.Editor = strings.TrimSpace(*editor)
		changed = true
	}
	if *watermark != "" {
		v, parseErr := parseBool(*watermark)
		if parseErr != nil {
			return parseErr
		}
		cfg.Watermark = &v
		changed = true
	}

	if !changed {
		return fmt.Errorf("%w: nothing to update, pass at least one flag", errUsage)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("config updated")
	printConfig(path, cfg)
	return nil
}

// runConfigEdit opens the config file in an editor, creating the file
// first so the editor has something to save over.
func runConfigEdit(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err := config.Save(path, cfg); err != nil {
			return err
		}
	}

	editor := findEditor(cfg)
	if editor == "" {
		return fmt.Errorf("%w: no editor found, set $EDITOR or `ap config set --editor`", errUsage)
	}

	logger.Info("Opening", "path", path, "editor", editor)
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		logger.Warn("editor exited with error", "err", err)
	}

	// Remember the editor for next time
	if cfg.Editor != editor {
		cfg.Editor = editor
		if err := config.Save(path, cfg); err != nil {
			return err
		}
	}
	return nil
}

// findEditor picks the saved editor, then $VISUAL/$EDITOR, then the first
// known editor on the search path.
func findEditor(cfg *config.File) string {
	candidates := []string{cfg.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")}
	candidates = append(candidates, knownEditors...)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if _, err := exec.LookPath(strings.Fields(candidate)[0]); err == nil {
			return candidate
		}
	}
	return ""
}

func printConfig(path string, cfg *config.File) {
	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	boolDash := func(b *bool) string {
		if b == nil {
			return "-"
		}
		return fmt.Sprintf("%t", *b)
	}

	fmt.Printf("path                  %s\n", path)
	fmt.Printf("name                  %s\n", dash(cfg.Name))
	fmt.Printf("id                    %s\n", dash(cfg.StudentID))
	fmt.Printf("output_dir            %s\n", dash(cfg.OutputDir))
	fmt.Printf("auto_doc              %s\n", boolDash(cfg.AutoDoc))
	fmt.Printf("run_command           %s\n", dash(cfg.RunCommand))
	fmt.Printf("run_display_template  %s\n", dash(cfg.RunDisplayTemplate))
	fmt.Printf("theme                 %s\n", dash(cfg.Theme))
	fmt.Printf("editor                %s\n", dash(cfg.Editor))
	fmt.Printf("watermark             %s\n", boolDash(cfg.Watermark))
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected true or false, got %q", errUsage, s)
}
