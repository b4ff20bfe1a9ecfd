package main

import (
	"os"

	"studybuddy/internal/cli"
	"studybuddy/internal/store"
)

// rewriteDirectLookupArgs turns `studybuddy <id>` into `studybuddy show <id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so we look for the first
// positional token rather than argv[1].
func rewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":   true,
		"--data-dir": true,
		"--backend":  true,
		"--format":   true,
		"--server":   true,
	}

	for i := 1; i < len(argv); i++ {
		a := argv[i]
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && store.LooksLikeID(argv[i+1]) {
				return insertShow(argv, i+1)
			}
			return argv
		}
		if a[0] == '-' {
			// Unknown flags are skipped without consuming a value so the id
			// is never swallowed.
			if valueFlags[a] {
				i++
			}
			continue
		}
		if store.LooksLikeID(a) {
			return insertShow(argv, i)
		}
		return argv
	}
	return argv
}

func insertShow(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[:at]...)
	out = append(out, "show")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
