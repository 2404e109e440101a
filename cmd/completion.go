package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_passkeep() {
    local cur prev words cword
    _init_completion || return

    local commands="add rm update list show rename clear copy paste madd mrm mupd export import rsa-export rsa-import status keyring completion help"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        rm|update|show|rename|copy|mrm|mupd)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-y" -- "$cur"))
            else
                COMPREPLY=($(compgen -W "$(passkeep list 2>/dev/null)" -- "$cur"))
            fi
            ;;
        clear)
            COMPREPLY=($(compgen -W "-y" -- "$cur"))
            ;;
        export|rsa-export)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-clear" -- "$cur"))
            else
                _filedir
            fi
            ;;
        import|rsa-import)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-clear -keep-old -take-new -abort" -- "$cur"))
            else
                _filedir
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _passkeep passkeep
`

const zshCompletion = `#compdef passkeep

_passkeep() {
    local -a commands
    commands=(
        'add:Add a secret'
        'rm:Remove a secret'
        'update:Replace a secret'
        'list:List keys'
        'show:Print a secret'
        'rename:Rename a key'
        'clear:Remove every secret'
        'copy:Copy a secret to the clipboard'
        'paste:Add a secret from the clipboard'
        'madd:Add one secret under many keys'
        'mrm:Remove many keys'
        'mupd:Update many keys'
        'export:Export with a passphrase'
        'import:Import with a passphrase'
        'rsa-export:Export with a fresh key pair'
        'rsa-import:Import with a private key file'
        'status:Show vault status'
        'keyring:Manage passphrase in OS keyring'
        'completion:Generate shell completions'
        'help:Show help for a command'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'passkeep commands' commands
            ;;
        args)
            case "${words[2]}" in
                rm|update|show|rename|copy|mrm|mupd)
                    _arguments '-y[Do not ask for confirmation]' '*:key:_passkeep_keys'
                    ;;
                export|rsa-export)
                    _arguments '-clear[Empty the vault after export]' '*:file:_files'
                    ;;
                import|rsa-import)
                    _arguments \
                        '-clear[Replace the vault with the imported one]' \
                        '-keep-old[Keep resident values on collision]' \
                        '-take-new[Take imported values on collision]' \
                        '-abort[Abort on any collision]' \
                        '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'passkeep commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_passkeep_keys() {
    local -a keys
    keys=(${(f)"$(passkeep list 2>/dev/null)"})
    _describe -t keys 'keys' keys
}

_passkeep "$@"
`

const fishCompletion = `# passkeep fish completions

set -l commands add rm update list show rename clear copy paste madd mrm mupd export import rsa-export rsa-import status keyring completion help

complete -c passkeep -f

# Commands
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a add -d 'Add a secret'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove a secret'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a update -d 'Replace a secret'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a list -d 'List keys'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a show -d 'Print a secret'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a rename -d 'Rename a key'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a clear -d 'Remove every secret'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a copy -d 'Copy a secret to the clipboard'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a paste -d 'Add a secret from the clipboard'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a madd -d 'Add one secret under many keys'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a mrm -d 'Remove many keys'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a mupd -d 'Update many keys'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a export -d 'Export with a passphrase'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a import -d 'Import with a passphrase'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a rsa-export -d 'Export with a key pair'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a rsa-import -d 'Import with a private key'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage passphrase in OS keyring'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'
complete -c passkeep -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'

# key arguments
complete -c passkeep -n "__fish_seen_subcommand_from rm update show rename copy mrm mupd" -a "(passkeep list 2>/dev/null)"
complete -c passkeep -n "__fish_seen_subcommand_from rm clear mrm" -o y -d 'Do not ask for confirmation'

# transfer flags and files
complete -c passkeep -n "__fish_seen_subcommand_from export rsa-export import rsa-import" -F
complete -c passkeep -n "__fish_seen_subcommand_from export rsa-export" -o clear -d 'Empty the vault after export'
complete -c passkeep -n "__fish_seen_subcommand_from import rsa-import" -o clear -d 'Replace the vault'
complete -c passkeep -n "__fish_seen_subcommand_from import rsa-import" -o keep-old -d 'Keep resident values'
complete -c passkeep -n "__fish_seen_subcommand_from import rsa-import" -o take-new -d 'Take imported values'
complete -c passkeep -n "__fish_seen_subcommand_from import rsa-import" -o abort -d 'Abort on collision'

# keyring subcommands
complete -c passkeep -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c passkeep -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c passkeep -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
