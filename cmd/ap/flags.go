package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// packFlags holds the flags for the default pack command.
type packFlags struct {
	assignment         string
	name               string
	studentID          string
	cFile              string
	docFile            string
	autoDoc            bool
	runCommand         string
	runDisplayTemplate string
	theme              string
	outputDir          string
	noWatermark        bool
	force              bool
	verbose            bool
	version            bool
	help               bool
}

// newPackFlagSet builds the flag set for the pack command.
func newPackFlagSet(f *packFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("ap", flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&f.assignment, "assignment", "a", "", "Assignment number or label (e.g. 7 or Assignment7)")
	fs.StringVarP(&f.name, "name", "n", "", "Student name (e.g. JoeBloggs)")
	fs.StringVarP(&f.studentID, "id", "i", "", "Student ID")
	fs.StringVarP(&f.cFile, "c-file", "c", "", "Path to the .c source file")
	fs.StringVarP(&f.docFile, "doc-file", "d", "", "Path to an existing .doc file")
	fs.BoolVar(&f.autoDoc, "auto-doc", false, "Generate the .doc from the source and a captured run screenshot")
	fs.StringVar(&f.runCommand, "run-command", "", "Shell command to run the program (runs as-is via sh/powershell)")
	fs.StringVar(&f.runDisplayTemplate, "run-display-template", "", "Template for the prompt line shown in the screenshot")
	fs.StringVarP(&f.theme, "theme", "t", "", "Screenshot theme (default, light, dracula, monokai, solarized, or a custom name)")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "Output directory for the submission folder and zip")
	fs.BoolVar(&f.noWatermark, "no-watermark", false, "Omit the watermark caption from the generated doc")
	fs.BoolVarP(&f.force, "force", "f", false, "Overwrite existing submission folder and zip")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "Show help")

	fs.Usage = func() { fmt.Print(usageText) }
	return fs
}

const usageText = `ap - packs C assignment submissions for LMS upload

Usage:
  ap [flags]               pack a submission
  ap init                  interactive first-time setup
  ap config <subcommand>   show|path|set|reset|edit saved defaults

Flags:
  -a, --assignment string           Assignment number or label (e.g. 7 or Assignment7)
  -n, --name string                 Student name (e.g. JoeBloggs)
  -i, --id string                   Student ID
  -c, --c-file string               Path to the .c source file
  -d, --doc-file string             Path to an existing .doc file
      --auto-doc                    Generate the .doc from a captured run
      --run-command string          Shell command to run the program
      --run-display-template string Template for the screenshot prompt line
  -t, --theme string                Screenshot theme
  -o, --output-dir string           Output directory
      --no-watermark                Omit the watermark caption
  -f, --force                       Overwrite existing outputs
  -v, --verbose                     Verbose output
      --version                     Print version and exit
  -h, --help                        Show help

Examples:
  ap -a 7 -n JoeBloggs -i 123456789 -c main.c --auto-doc
  ap -a 7 -c main.c -d Assignment7_JoeBloggs_123456789.doc
  ap -a 7 -c main.c --auto-doc --run-command 'echo 3 | ./a.out'
`
