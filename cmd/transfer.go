package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/illarion/passkeep/internal/core"
	"github.com/illarion/passkeep/internal/git"
	"github.com/illarion/passkeep/internal/merge"
	"github.com/illarion/passkeep/internal/strategy"
	"golang.org/x/term"
)

// ImportOptions selects how an import treats the resident vault
type ImportOptions struct {
	Replace bool // discard the resident vault, take the artifact as is
	KeepOld bool
	TakeNew bool
	Abort   bool
}

var errConflictingFlags = errors.New("-clear, -keep-old, -take-new and -abort are mutually exclusive")

// operator returns the collision handler the options ask for
func (o ImportOptions) operator() (merge.Operator, error) {
	n := 0
	for _, set := range []bool{o.Replace, o.KeepOld, o.TakeNew, o.Abort} {
		if set {
			n++
		}
	}
	if n > 1 {
		return nil, errConflictingFlags
	}

	switch {
	case o.KeepOld:
		return merge.FixedOperator{Way: merge.WayOld}, nil
	case o.TakeNew:
		return merge.FixedOperator{Way: merge.WayNew}, nil
	case o.Abort:
		return merge.FixedOperator{Way: merge.WayAbort}, nil
	default:
		return terminal, nil
	}
}

// transferPaths fills in the default artifact and key paths
func transferPaths(v *core.Vault, args []string) (artifact, key string) {
	cfg := v.Config()
	artifact, key = cfg.TransferPath, cfg.KeyPath
	if len(args) > 0 {
		artifact = args[0]
		key = artifact + ".key"
	}
	if len(args) > 1 {
		key = args[1]
	}
	return artifact, key
}

// Export writes the vault encrypted under a passphrase
func Export(args []string, clearAfter bool) {
	v := OpenVault()
	defer v.Close()

	artifact, _ := transferPaths(v, args)
	runExport(v, artifact, passphraseStrategy(v), clearAfter)
}

// RSAExport writes the vault encrypted under a fresh key pair and saves
// the private key next to it
func RSAExport(args []string, clearAfter bool) {
	v := OpenVault()
	defer v.Close()

	artifact, key := transferPaths(v, args)
	runExport(v, artifact, strategy.KeyPair{KeyPath: key}, clearAfter)

	fmt.Printf("Private key written to %s\n", key)
	if out := git.FormatLeakStatus(git.CheckLeaks(key, v.Config().VaultPath)); out != "" {
		fmt.Fprint(os.Stderr, out)
	}
}

func runExport(v *core.Vault, artifact string, s strategy.Strategy, clearAfter bool) {
	entries := v.Len()
	Log.Debugf("exporting %d entries with %s to %s", entries, s.Name(), artifact)

	var err error
	if _, ok := s.(strategy.KeyPair); ok {
		stop := startSpinner(" Generating key pair...")
		err = v.Export(artifact, s, clearAfter)
		stop()
	} else {
		err = v.Export(artifact, s, clearAfter)
	}
	if err != nil {
		HandleError(err)
	}

	if clearAfter {
		FlushOrExit(v)
	}
	fmt.Printf("Exported %d entries to %s\n", entries, artifact)
}

// Import reads a passphrase-encrypted artifact into the vault
func Import(args []string, opts ImportOptions) {
	v := OpenVault()
	defer v.Close()

	artifact, _ := transferPaths(v, args)
	runImport(v, artifact, passphraseStrategy(v), opts)
}

// RSAImport reads a key-pair-encrypted artifact into the vault
func RSAImport(args []string, opts ImportOptions) {
	v := OpenVault()
	defer v.Close()

	artifact, key := transferPaths(v, args)
	runImport(v, artifact, strategy.KeyPair{KeyPath: key}, opts)
}

func runImport(v *core.Vault, artifact string, s strategy.Strategy, opts ImportOptions) {
	op, err := opts.operator()
	if err != nil {
		HandleError(err)
	}
	Log.Debugf("importing from %s with %s", artifact, s.Name())

	result, err := v.Import(artifact, s, op, opts.Replace)
	if err != nil {
		HandleError(err)
	}
	if printResult(result) {
		FlushOrExit(v)
	}
}

// printResult reports what a resolution did and whether there is
// anything to save
func printResult(result *merge.Result) bool {
	if result.Outcome == merge.OutcomeAborted {
		fmt.Println("Aborted, nothing changed")
		return false
	}

	fmt.Printf("Added %d, replaced %d (%s)\n", len(result.Added), len(result.Replaced), result.Outcome)
	for _, key := range result.Replaced {
		Log.Infof("replaced %q", key)
	}
	return true
}

// startSpinner shows a spinner on stderr when it is a terminal
func startSpinner(suffix string) (stop func()) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
