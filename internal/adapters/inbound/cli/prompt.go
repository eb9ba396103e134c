package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/camelgen/camelgen/internal/domain"
)

// prompter asks questions on out and reads answers line by line from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask repeats the question until validate accepts the answer. An empty answer
// takes def. At end of input def is used if it validates.
func (p *prompter) ask(label, def string, validate func(string) error) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.out, "? %s (%s) ", label, def)
		} else {
			fmt.Fprintf(p.out, "? %s ", label)
		}

		line, err := p.in.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return "", err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = def
		}

		if validate == nil {
			return answer, nil
		}
		verr := validate(answer)
		if verr == nil {
			return answer, nil
		}
		if eof {
			return "", fmt.Errorf("%s: %w", strings.ToLower(label), verr)
		}
		fmt.Fprintf(p.out, ">> %v\n", verr)
	}
}

// askChoice asks for a Camel DSL, listing the ones allowed for the mode.
func (p *prompter) askChoice(label, def string, wsdl2rest bool) (string, error) {
	var choices []string
	for _, d := range domain.ValidDSLs {
		if !wsdl2rest || d.SupportsWsdl2Rest() {
			choices = append(choices, string(d))
		}
	}
	return p.ask(fmt.Sprintf("%s [%s]", label, strings.Join(choices, "/")), def, func(s string) error {
		return domain.ValidateCamelDSL(s, wsdl2rest).Err()
	})
}
