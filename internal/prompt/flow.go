// Package prompt drives the interactive questions of project initialization.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
	"github.com/shuttle-hq/shuttle-cli/internal/output"
)

// Prompt texts.
const (
	NameQuestion      = "What do you want to name your project?"
	NameLabel         = "Project name"
	DirectoryQuestion = "Where should we create this project?"
	DirectoryLabel    = "Directory"
	FrameworkQuestion = "Shuttle works with a range of web frameworks. Which one do you want to use?"
	FrameworkLabel    = "Framework"
	ConfirmQuestion   = "Do you want to create the project environment on Shuttle?"
)

// State is a step of the flow.
type State int

// Flow states, in the order they run.
const (
	AskName State = iota
	AskDirectory
	AskFramework
	Confirm
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case AskName:
		return "AskName"
	case AskDirectory:
		return "AskDirectory"
	case AskFramework:
		return "AskFramework"
	case Confirm:
		return "Confirm"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Known holds the values supplied before the flow starts. A step is asked
// only when its value is missing.
type Known struct {
	Name      string
	Directory string

	// HasTemplate is true when --template or --from was given.
	HasTemplate bool

	// Deploy is the --create-env choice, nil when not given.
	Deploy *bool
}

// Answers is the outcome of a completed flow.
type Answers struct {
	Name      string
	Directory string

	// Entry is the chosen framework, nil when the step was skipped.
	Entry *catalog.Entry

	Deploy bool

	// Asked lists the states that prompted, in order.
	Asked []State
}

// Flow asks the questions. It is single-use.
type Flow struct {
	In      io.Reader
	Out     io.Writer
	Catalog *catalog.Catalog

	// DefaultDir is offered at the directory prompt. Empty means ./<name>.
	DefaultDir string

	reader *lineReader
}

// Run walks AskName, AskDirectory, AskFramework and Confirm in order,
// skipping the steps whose value is known. A known name that fails
// validation is asked for again. End of input or a done ctx
// aborts with errors.ErrCancelled.
func (f *Flow) Run(ctx context.Context, known Known) (Answers, error) {
	if f.Catalog == nil {
		f.Catalog = catalog.Default()
	}
	f.reader = newLineReader(f.In)
	defer f.reader.stop()

	ans := Answers{Name: strings.TrimSpace(known.Name), Directory: known.Directory}
	if known.Deploy != nil {
		ans.Deploy = *known.Deploy
	}

	for state := AskName; state != Done; state++ {
		var err error
		switch state {
		case AskName:
			if ans.Name != "" {
				verr := manifest.ValidateProjectName(ans.Name)
				if verr == nil {
					continue
				}
				f.reject(verr.Error())
			}
			ans.Name, err = f.askName(ctx)
		case AskDirectory:
			if ans.Directory != "" {
				continue
			}
			ans.Directory, err = f.askDirectory(ctx, ans.Name)
		case AskFramework:
			if known.HasTemplate {
				continue
			}
			ans.Entry, err = f.askFramework(ctx)
		case Confirm:
			if known.Deploy != nil {
				continue
			}
			ans.Deploy, err = f.askConfirm(ctx)
		}
		if err != nil {
			return Answers{}, err
		}
		ans.Asked = append(ans.Asked, state)
		output.Debug("prompt answered", "state", state)
	}
	return ans, nil
}

func (f *Flow) askName(ctx context.Context) (string, error) {
	f.question(NameQuestion)
	for {
		text, err := f.read(ctx, NameLabel, "")
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(text)
		if err := manifest.ValidateProjectName(name); err != nil {
			f.reject(err.Error())
			continue
		}
		return name, nil
	}
}

func (f *Flow) askDirectory(ctx context.Context, name string) (string, error) {
	def := f.DefaultDir
	if def == "" {
		def = "." + string(filepath.Separator) + name
	}
	f.question(DirectoryQuestion)
	for {
		text, err := f.read(ctx, DirectoryLabel, def)
		if err != nil {
			return "", err
		}
		dir := strings.TrimSpace(text)
		if dir == "" {
			return def, nil
		}
		if strings.ContainsRune(dir, 0) {
			f.reject("directory contains a NUL byte")
			continue
		}
		return dir, nil
	}
}

func (f *Flow) askFramework(ctx context.Context) (*catalog.Entry, error) {
	f.question(FrameworkQuestion)
	f.list(f.Catalog.Entries())
	for {
		text, err := f.read(ctx, FrameworkLabel, "")
		if err != nil {
			return nil, err
		}
		entry, candidates, ok := f.Catalog.Match(text)
		if ok {
			fmt.Fprintf(f.Out, "%s\n", output.StyleNoun.Render(entry.DisplayName))
			return &entry, nil
		}
		if len(candidates) == 0 {
			f.reject(fmt.Sprintf("no framework matches %q", strings.TrimSpace(text)))
			candidates = f.Catalog.Entries()
		}
		f.list(candidates)
	}
}

func (f *Flow) askConfirm(ctx context.Context) (bool, error) {
	f.question(ConfirmQuestion)
	for {
		text, err := f.read(ctx, "[y/N]", "")
		if err != nil {
			return false, err
		}
		var yes bool
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "", "n", "no":
		case "y", "yes":
			yes = true
		default:
			f.reject("please answer yes or no")
			continue
		}
		answer := "no"
		if yes {
			answer = "yes"
		}
		fmt.Fprintf(f.Out, "%s\n", output.StyleDim.Render(answer))
		return yes, nil
	}
}

// read shows label and waits for one line.
func (f *Flow) read(ctx context.Context, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(f.Out, "%s %s: ", label, output.StyleDim.Render("("+def+")"))
	} else {
		fmt.Fprintf(f.Out, "%s: ", label)
	}
	text, err := f.reader.next(ctx)
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, io.EOF):
		fmt.Fprintln(f.Out)
		return "", fmt.Errorf("input closed: %w", oerrors.ErrCancelled)
	case ctx.Err() != nil:
		fmt.Fprintln(f.Out)
		return "", fmt.Errorf("%w: %w", oerrors.ErrCancelled, ctx.Err())
	default:
		return "", fmt.Errorf("reading answer: %w", err)
	}
}

func (f *Flow) question(q string) {
	fmt.Fprintln(f.Out, output.StyleQuestion.Render(q))
}

func (f *Flow) reject(msg string) {
	fmt.Fprintln(f.Out, output.StyleReject.Render(msg))
}

func (f *Flow) list(entries []catalog.Entry) {
	for _, e := range entries {
		fmt.Fprintf(f.Out, "  %s %s\n", output.StyleNoun.Render(fmt.Sprintf("%-12s", e.DisplayName)), output.StyleDim.Render(e.Description))
	}
}
