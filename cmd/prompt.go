package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line from the command's input.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the next line without its newline.
// io.EOF means the input is exhausted.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (p *prompter) confirm(label string) bool {
	ans, err := p.ask(label + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes":
		return true
	}
	return false
}

// value returns flag if set, otherwise asks for it.
func (p *prompter) value(flag, label string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return p.ask(label)
}
