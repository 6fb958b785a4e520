package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/ui"
)

// contentSource selects where a command reads free text from.
type contentSource struct {
	stdin bool
	file  string
}

func (s *contentSource) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.stdin, "stdin", false, "Read text from stdin")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Read text from a file")
}

// read returns the text from --file, --stdin or args (joined with sep).
func (s *contentSource) read(cmd *cobra.Command, args []string, sep string) (string, error) {
	switch {
	case s.file != "" && s.stdin:
		return "", errors.New("use either --file or --stdin, not both")
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", s.file, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	case s.stdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return strings.Join(args, sep), nil
}

// isTerminal reports whether f is an *os.File attached to a terminal.
func isTerminal(f interface{}) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// canPrompt reports whether the command may ask questions on stdin.
// Readers other than files (tests, pipes set up in-process) are allowed.
func (a *app) canPrompt(cmd *cobra.Command) bool {
	if a.opts.JSON {
		return false
	}
	if _, ok := cmd.InOrStdin().(*os.File); ok {
		return isTerminal(cmd.InOrStdin())
	}
	return true
}

// prompter reads line answers from the command's stdin.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}
}

// ask prints question with a hint and returns the trimmed answer.
// io.EOF is returned once input is exhausted.
func (p *prompter) ask(question, hint string) (string, error) {
	if hint != "" {
		fmt.Fprintf(p.out, "%s %s ", question, ui.Hint(hint))
	} else {
		fmt.Fprintf(p.out, "%s ", question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readBlock reads lines until an empty line or EOF.
func (p *prompter) readBlock(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	var lines []string
	for {
		line, err := p.in.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" && (err == nil || len(lines) > 0) {
			break
		}
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(lines) > 0 {
				break
			}
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}
