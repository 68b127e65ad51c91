package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/geocode"
)

// Prompter reads interactive answers line by line. All helpers accept an
// empty line as "use the default". Invalid numeric input is an error, not a
// re-prompt, so scripted input fails loudly instead of looping.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter wraps a reader/writer pair for prompting.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine reads one trimmed line. EOF yields an empty string.
func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// YesNo asks a y/n question with a default.
func (p *Prompter) YesNo(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s] ", question, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	if line == "" {
		return def, nil
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: expected y or n", line)
	}
}

// Float asks for a number with a default shown in the prompt.
func (p *Prompter) Float(question string, def float64) (float64, error) {
	fmt.Fprintf(p.out, "%s [%g] ", question, def)

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}

	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", line)
	}
	return v, nil
}

// Choice asks the user to pick one of the listed options by number or by
// exact name. The default is the option at defIdx.
func (p *Prompter) Choice(question string, options []string, defIdx int) (string, error) {
	fmt.Fprintln(p.out, question)
	for i, opt := range options {
		marker := " "
		if i == defIdx {
			marker = "*"
		}
		fmt.Fprintf(p.out, " %s %d) %s\n", marker, i+1, opt)
	}
	fmt.Fprintf(p.out, "> ")

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return options[defIdx], nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choice %d out of range 1..%d", n, len(options))
		}
		return options[n-1], nil
	}

	for _, opt := range options {
		if strings.EqualFold(opt, line) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q", line)
}

// Location asks for a place ("lat,lon" or free text resolved through the
// geocoder). An empty answer returns the default location.
func (p *Prompter) Location(
	ctx context.Context,
	question string,
	resolver geocode.Resolver,
	def engine.Location,
) (engine.Location, error) {
	fmt.Fprintf(p.out, "%s [%.4f,%.4f] ", question, def.Lat, def.Lon)

	line, err := p.readLine()
	if err != nil {
		return engine.Location{}, err
	}
	if line == "" {
		return def, nil
	}

	loc, err := resolver.Resolve(ctx, line)
	if err != nil {
		return engine.Location{}, fmt.Errorf("resolving %q: %w", line, err)
	}
	return loc, nil
}
