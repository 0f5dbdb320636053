package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one flag for the completion generators. Every
// generator reads completionFlags, so a new flag only needs an entry here.
type completionFlag struct {
	Name   string   // flag name without the dash
	Alias  string   // alternative name, e.g. "d" for "details"
	Help   string   // one-line description
	Values []string // suggested values; nil for boolean flags
	Arg    string   // value label; empty for boolean flags
	File   bool     // value is a file path
	Algo   bool     // values are calculator names
}

var completionFlags = []completionFlag{
	{Name: "n", Help: "Fibonacci index", Arg: "index", Values: []string{"1000", "100000", "1000000", "10000000"}},
	{Name: "algo", Help: "Calculator name, auto or all", Arg: "algorithm", Algo: true},
	{Name: "limb", Help: "Limb width in bits", Arg: "bits", Values: []string{"8", "16", "32", "64"}},
	{Name: "karatsuba", Help: "Karatsuba threshold in limbs", Arg: "limbs", Values: []string{"16", "32", "64", "100"}},
	{Name: "timeout", Help: "Maximum execution time", Arg: "duration", Values: []string{"30s", "1m", "5m", "30m"}},
	{Name: "v", Help: "Display the full result"},
	{Name: "details", Alias: "d", Help: "Display result metadata"},
	{Name: "debug", Help: "Enable debug logging"},
	{Name: "quiet", Alias: "q", Help: "Minimal output for scripts"},
	{Name: "cross-check", Alias: "c", Help: "Verify against the math/big reference"},
	{Name: "output", Alias: "o", Help: "Write the result to a file", Arg: "file", File: true},
	{Name: "hex", Help: "Display the result in hexadecimal"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "interactive", Help: "Start the bignum REPL"},
	{Name: "tui", Help: "Start the dashboard"},
	{Name: "metrics-file", Help: "Write prometheus metrics to a file", Arg: "file", File: true},
	{Name: "calibrate", Help: "Measure the Karatsuba crossover"},
	{Name: "calibration-profile", Help: "Calibration profile path", Arg: "file", File: true},
	{Name: "gc-control", Help: "Garbage collector mode", Arg: "mode", Values: []string{"auto", "aggressive", "disabled"}},
	{Name: "completion", Help: "Generate a completion script", Arg: "shell", Values: []string{"bash", "zsh", "fish"}},
	{Name: "version", Help: "Print version information"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish"). algorithms are offered as values of -algo.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := append([]string{"auto", "all"}, algorithms...)
	switch shell {
	case "bash":
		return writeBashCompletion(out, algos)
	case "zsh":
		return writeZshCompletion(out, algos)
	case "fish":
		return writeFishCompletion(out, algos)
	}
	return fmt.Errorf("unsupported shell: %q (accepted values: bash, zsh, fish)", shell)
}

func (f completionFlag) names() []string {
	if f.Alias == "" {
		return []string{f.Name}
	}
	return []string{f.Name, f.Alias}
}

func (f completionFlag) values(algos []string) []string {
	if f.Algo {
		return algos
	}
	return f.Values
}

func writeBashCompletion(out io.Writer, algos []string) error {
	var all []string
	for _, f := range completionFlags {
		for _, name := range f.names() {
			all = append(all, "-"+name, "--"+name)
		}
	}

	var b strings.Builder
	b.WriteString("# bash completion for fibnum\n_fibnum() {\n")
	b.WriteString("    local cur prev\n    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev#-}\" in\n")
	for _, f := range completionFlags {
		if f.Arg == "" {
			continue
		}
		var patterns []string
		for _, name := range f.names() {
			patterns = append(patterns, name, "-"+name)
		}
		fmt.Fprintf(&b, "        %s)\n", strings.Join(patterns, "|"))
		if f.File {
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		} else {
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.values(algos), " "))
		}
		b.WriteString("            return 0\n            ;;\n")
	}
	b.WriteString("    esac\n\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(all, " "))
	b.WriteString("}\ncomplete -F _fibnum fibnum\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func zshEscape(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`, ":", `\:`, "'", `'\''`).Replace(s)
}

func writeZshCompletion(out io.Writer, algos []string) error {
	var b strings.Builder
	b.WriteString("#compdef fibnum\n\n_fibnum() {\n    _arguments -s \\\n")
	for _, f := range completionFlags {
		for _, name := range f.names() {
			argSpec := fmt.Sprintf("-%s[%s]", name, zshEscape(f.Help))
			switch {
			case f.File:
				argSpec += fmt.Sprintf(":%s:_files", f.Arg)
			case f.Arg != "":
				argSpec += fmt.Sprintf(":%s:(%s)", f.Arg, strings.Join(f.values(algos), " "))
			}
			fmt.Fprintf(&b, "        '%s' \\\n", argSpec)
		}
	}
	b.WriteString("        && return 0\n}\n\n_fibnum \"$@\"\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func writeFishCompletion(out io.Writer, algos []string) error {
	var b strings.Builder
	b.WriteString("# fish completion for fibnum\n")
	for _, f := range completionFlags {
		for _, name := range f.names() {
			opt := "-o " + name
			if len(name) == 1 {
				opt = "-s " + name
			}
			line := fmt.Sprintf("complete -c fibnum %s -d '%s'", opt, strings.ReplaceAll(f.Help, "'", `\'`))
			switch {
			case f.File:
				line += " -r -F"
			case f.Arg != "":
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.values(algos), " "))
			}
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(out, b.String())
	return err
}
