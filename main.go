package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/illarion/passkeep/cmd"
	"github.com/illarion/passkeep/internal/logger"
)

func main() {
	global := flag.NewFlagSet("passkeep", flag.ExitOnError)
	global.Usage = printUsage
	verbose := global.Bool("v", false, "Verbose output")
	debug := global.Bool("debug", false, "Debug output")
	if err := global.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Log = logger.Logger{
		Verbose: *verbose,
		Debug:   *debug,
	}

	args := global.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "add":
		runAdd(args[1:])
	case "rm":
		runRm(args[1:])
	case "update":
		runUpdate(args[1:])
	case "list", "ls":
		runList(args[1:])
	case "show":
		runShow(args[1:])
	case "rename":
		runRename(args[1:])
	case "clear":
		runClear(args[1:])
	case "copy":
		runCopy(args[1:])
	case "paste":
		runPaste(args[1:])
	case "madd":
		runMulti("madd", args[1:])
	case "mrm":
		runMulti("mrm", args[1:])
	case "mupd":
		runMulti("mupd", args[1:])
	case "export", "rsa-export":
		runExport(args[0], args[1:])
	case "import", "rsa-import":
		runImport(args[0], args[1:])
	case "status":
		runStatus(args[1:])
	case "keyring":
		runKeyring(args[1:])
	case "completion":
		runCompletion(args[1:])
	case "help", "-h", "--help":
		if len(args) < 2 {
			printUsage()
			return
		}
		printCommandHelp(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

// parse parses subcommand flags and checks the positional argument count
func parse(fs *flag.FlagSet, args []string, minArgs, maxArgs int) []string {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	rest := fs.Args()
	if len(rest) < minArgs || (maxArgs >= 0 && len(rest) > maxArgs) {
		fmt.Fprintf(os.Stderr, "Error: wrong number of arguments\n\n")
		printCommandHelp(fs.Name())
		os.Exit(1)
	}
	return rest
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	cmd.Add(parse(fs, args, 1, 2))
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	yes := fs.Bool("y", false, "Remove without confirmation")
	rest := parse(fs, args, 1, 1)

	cmd.Remove(rest[0], *yes)
}

func runUpdate(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	cmd.Update(parse(fs, args, 1, 2))
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	parse(fs, args, 0, 0)

	cmd.List()
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	rest := parse(fs, args, 1, 1)

	cmd.Show(rest[0])
}

func runRename(args []string) {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	rest := parse(fs, args, 2, 2)

	cmd.Rename(rest[0], rest[1])
}

func runClear(args []string) {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("y", false, "Clear without confirmation")
	parse(fs, args, 0, 0)

	cmd.Clear(*yes)
}

func runCopy(args []string) {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	rest := parse(fs, args, 1, 1)

	cmd.Copy(rest[0])
}

func runPaste(args []string) {
	fs := flag.NewFlagSet("paste", flag.ExitOnError)
	rest := parse(fs, args, 1, 1)

	cmd.Paste(rest[0])
}

func runMulti(name string, args []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	yes := new(bool)
	if name == "mrm" {
		yes = fs.Bool("y", false, "Remove without confirmation")
	}
	keys := parse(fs, args, 1, -1)

	switch name {
	case "madd":
		cmd.MultiAdd(keys)
	case "mrm":
		cmd.MultiRemove(keys, *yes)
	case "mupd":
		cmd.MultiUpdate(keys)
	}
}

func runExport(name string, args []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	clearAfter := fs.Bool("clear", false, "Empty the vault after a successful export")
	rest := parse(fs, args, 0, 2)

	if name == "rsa-export" {
		cmd.RSAExport(rest, *clearAfter)
		return
	}
	if len(rest) > 1 {
		fmt.Fprintf(os.Stderr, "Error: export takes no key file\n")
		os.Exit(1)
	}
	cmd.Export(rest, *clearAfter)
}

func runImport(name string, args []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var opts cmd.ImportOptions
	fs.BoolVar(&opts.Replace, "clear", false, "Replace the vault with the imported entries")
	fs.BoolVar(&opts.KeepOld, "keep-old", false, "Keep resident values on collision")
	fs.BoolVar(&opts.TakeNew, "take-new", false, "Take imported values on collision")
	fs.BoolVar(&opts.Abort, "abort", false, "Abort if any key collides")
	rest := parse(fs, args, 0, 2)

	if name == "rsa-import" {
		cmd.RSAImport(rest, opts)
		return
	}
	if len(rest) > 1 {
		fmt.Fprintf(os.Stderr, "Error: import takes no key file\n")
		os.Exit(1)
	}
	cmd.Import(rest, opts)
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	parse(fs, args, 0, 0)

	cmd.Status()
}

func runKeyring(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passkeep keyring <save|delete|status>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave()
	case "delete":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", args[0])
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passkeep completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("passkeep - local credential vault with encrypted transfer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  passkeep [-v] [-debug] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add         Add a secret (prompts when omitted)")
	fmt.Println("  rm          Remove a secret")
	fmt.Println("  update      Replace an existing secret")
	fmt.Println("  list, ls    List keys")
	fmt.Println("  show        Print a secret")
	fmt.Println("  rename      Rename a key")
	fmt.Println("  clear       Remove every secret")
	fmt.Println("  copy        Copy a secret to the clipboard")
	fmt.Println("  paste       Add a secret from the clipboard")
	fmt.Println("  madd        Add one secret under several keys")
	fmt.Println("  mrm         Remove several keys")
	fmt.Println("  mupd        Update several keys with one secret")
	fmt.Println("  export      Export the vault encrypted with a passphrase")
	fmt.Println("  import      Import a passphrase-encrypted export")
	fmt.Println("  rsa-export  Export the vault encrypted with a fresh key pair")
	fmt.Println("  rsa-import  Import a key-pair export using its private key")
	fmt.Println("  status      Show vault status and transfer history")
	fmt.Println("  keyring     Manage the transfer passphrase in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Global flags:")
	fmt.Println("  -v          Verbose output")
	fmt.Println("  -debug      Debug output (or set PASSKEEP_DEBUG=1)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  passkeep add mail                 # Prompt for the secret of 'mail'")
	fmt.Println("  passkeep export -clear            # Export and empty the vault")
	fmt.Println("  passkeep import                   # Import, resolving collisions")
	fmt.Println()
	fmt.Println("The vault lives next to the executable unless PASSKEEP_HOME is set.")
	fmt.Println("Use 'passkeep help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "add":
		fmt.Println("passkeep add <key> [secret]")
		fmt.Println()
		fmt.Println("Stores a new secret. Without a secret argument it is read from the")
		fmt.Println("terminal without echo and must be entered twice.")
		fmt.Println("Fails if the key already exists; use 'update' instead.")
	case "rm":
		fmt.Println("passkeep rm [-y] <key>")
		fmt.Println()
		fmt.Println("Removes a secret after confirmation.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -y    Remove without confirmation")
	case "update":
		fmt.Println("passkeep update <key> [secret]")
		fmt.Println()
		fmt.Println("Replaces the secret of an existing key.")
	case "list", "ls":
		fmt.Println("passkeep list")
		fmt.Println()
		fmt.Println("Prints every key, one per line, in sorted order.")
	case "show":
		fmt.Println("passkeep show <key>")
		fmt.Println()
		fmt.Println("Prints the secret stored under key.")
	case "rename":
		fmt.Println("passkeep rename <old> <new>")
		fmt.Println()
		fmt.Println("Moves a secret to a new key. Fails if the new key exists.")
	case "clear":
		fmt.Println("passkeep clear [-y]")
		fmt.Println()
		fmt.Println("Removes every secret after confirmation.")
	case "copy":
		fmt.Println("passkeep copy <key>")
		fmt.Println()
		fmt.Println("Copies the secret stored under key to the clipboard.")
	case "paste":
		fmt.Println("passkeep paste <key>")
		fmt.Println()
		fmt.Println("Adds a new key holding the clipboard contents.")
	case "madd":
		fmt.Println("passkeep madd <key> [key...]")
		fmt.Println()
		fmt.Println("Prompts for one secret and stores it under every key.")
		fmt.Println("Existing keys are collisions and open the import menu.")
	case "mrm":
		fmt.Println("passkeep mrm [-y] <key> [key...]")
		fmt.Println()
		fmt.Println("Removes several keys after one confirmation.")
		fmt.Println("Missing keys are reported and skipped.")
	case "mupd":
		fmt.Println("passkeep mupd <key> [key...]")
		fmt.Println()
		fmt.Println("Prompts for one secret and sets it on every existing key.")
		fmt.Println("Missing keys are reported and skipped.")
	case "export", "rsa-export":
		fmt.Println("passkeep export [-clear] [file]")
		fmt.Println("passkeep rsa-export [-clear] [file] [keyfile]")
		fmt.Println()
		fmt.Println("Writes the vault to an encrypted file, 'data_exported' next to the")
		fmt.Println("vault by default.")
		fmt.Println()
		fmt.Println("export asks for a passphrase twice (or uses PASSKEEP_PASSPHRASE or")
		fmt.Println("the keyring). rsa-export generates a new key pair and writes the")
		fmt.Println("private key to keyfile (default: file + '.key'). Key-pair exports")
		fmt.Println("hold at most 190 bytes of encoded vault.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -clear    Empty the vault after a successful export")
	case "import", "rsa-import":
		fmt.Println("passkeep import [-clear|-keep-old|-take-new|-abort] [file]")
		fmt.Println("passkeep rsa-import [-clear|-keep-old|-take-new|-abort] [file] [keyfile]")
		fmt.Println()
		fmt.Println("Reads an encrypted export into the vault. When keys collide you can")
		fmt.Println("keep OLD values, take NEW values, MERGE key by key or ABORT.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -clear      Replace the vault with the imported entries")
		fmt.Println("  -keep-old   Keep resident values on collision")
		fmt.Println("  -take-new   Take imported values on collision")
		fmt.Println("  -abort      Abort if any key collides")
	case "status":
		fmt.Println("passkeep status")
		fmt.Println()
		fmt.Println("Shows vault location, entry count, timestamps, the last export and")
		fmt.Println("import, keyring state and git exposure of plaintext files.")
	case "keyring":
		fmt.Println("passkeep keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Caches the transfer passphrase in the OS keyring so export and")
		fmt.Println("import stop asking for it.")
	case "completion":
		fmt.Println("passkeep completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(passkeep completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(passkeep completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  passkeep completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
