// Package appack packages a C assignment submission: it compiles and runs
// the student's program under a wall-clock bound, renders the captured
// transcript as a themed terminal screenshot, and composes an RTF document
// embedding source, image, and output.
//
// # Quick Start
//
//	svc := appack.New(appack.WithThemesDir(themesDir))
//	res, err := svc.Document(ctx, &appack.Config{
//	    Assignment:       "Assignment7",
//	    AssignmentNumber: 7,
//	    Name:             "JoeBloggs",
//	    StudentID:        "123456789",
//	    CFile:            "main.c",
//	    AutoDoc:          true,
//	    Watermark:        true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("Assignment7_JoeBloggs_123456789.doc", res.Doc, 0644)
//
// # Pipeline
//
// Document runs these stages in order, each pure given its inputs except
// the sandbox:
//
//  1. Display template expansion ({assignment}, {name}, {c_stem}, ...)
//  2. Theme resolution (builtins, then TOML files under the themes dir)
//  3. Sandboxed compile and run (gcc then clang; 30 second bound)
//  4. Terminal screenshot rendering (monospace cell grid, PNG)
//  5. RTF composition (escaped source, embedded image, transcript)
//
// The sandbox is a timeout plus stream capture, not an isolation layer.
// Programs that wait for input block until the timeout unless the caller
// supplies input through Config.RunCommand (e.g. "echo 3 | ./prog").
//
// Bundle assembly (submission folder, zip, manifest) lives in the same
// package; see PrepareOutput, CopyNonBinaryFiles, and CreateZip.
package appack
