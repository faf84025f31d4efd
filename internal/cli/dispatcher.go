// Package cli implements the interactive menu as a finite-state machine.
//
// The machine moves between the menu, collecting-input, requesting, printing and error-display
// states and only ever leaves through the exit state. It is driven by one input line at a
// time through Feed, so it can be exercised with scripted input; Run connects it to a reader
// and, on a terminal, to a Selector for picking entries of a listing.
package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/printer"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/logger"
)

type State int

const (
	StateMenu State = iota
	StateCollecting
	StateRequesting
	StatePrinting
	StateErrorDisplay
	StateExit
)

func (s State) String() string {
	return [...]string{"menu", "collecting-input", "requesting", "printing", "error-display", "exit"}[s]
}

type Dispatcher struct {
	explorer Explorer
	out      *printer.Printer
	selector Selector

	state    State
	current  *operation
	fieldIdx int
	inputs   map[string]string
	followUp *followUp
}

func NewDispatcher(explorer Explorer, out *printer.Printer) *Dispatcher {
	return &Dispatcher{
		explorer: explorer,
		out:      out,
		state:    StateMenu,
	}
}

// UseSelector makes Run answer listing follow-ups through s instead of reading a number.
func (d *Dispatcher) UseSelector(s Selector) {
	d.selector = s
}

func (d *Dispatcher) State() State {
	return d.state
}

// Start shows the menu. Call it once before feeding input.
func (d *Dispatcher) Start() {
	d.followUp = nil
	d.state = StateMenu
	d.showMenu()
}

// Feed handles one line of user input and leaves the machine waiting for the next one.
func (d *Dispatcher) Feed(ctx context.Context, line string) {
	input := strings.TrimSpace(line)

	switch d.state {
	case StateMenu:
		d.choose(input)
	case StateCollecting:
		if d.followUp != nil {
			d.answer(input)
			return
		}
		d.collect(ctx, input)
	case StateExit:
		logger.Debug("input %q ignored after exit", input)
	default:
		// * requesting/printing/error-display complete within a single Feed call
		logger.Warn("input %q received in transient state %s", input, d.state)
	}
}

func (d *Dispatcher) showMenu() {
	d.out.Line("")
	d.out.Heading("GitHub Utility Tool")
	d.out.Line("--------------------")
	for _, op := range operations {
		d.out.Line("%s. %s", op.choice, op.title)
	}
	d.out.Line("%s. Exit", exitChoice)
	d.out.Prompt("Choose an option (1-" + exitChoice + ")")
}

func (d *Dispatcher) choose(choice string) {
	if choice == exitChoice {
		d.exit()
		return
	}

	op := findOperation(choice)
	if op == nil {
		d.out.Warning("Invalid choice. Please select an option from 1 to %s.", exitChoice)
		d.showMenu()
		return
	}

	logger.Debug("operation %q selected", op.title)
	d.current = op
	d.fieldIdx = 0
	d.inputs = make(map[string]string, len(op.fields))
	d.state = StateCollecting
	d.promptField()
}

func (d *Dispatcher) promptField() {
	d.out.Prompt(d.current.fields[d.fieldIdx].label)
}

func (d *Dispatcher) collect(ctx context.Context, value string) {
	f := d.current.fields[d.fieldIdx]
	if err := f.validate(value); err != nil {
		d.reject(err)
		d.promptField()
		return
	}

	d.inputs[f.key] = value
	d.fieldIdx++

	if d.fieldIdx < len(d.current.fields) {
		d.promptField()
		return
	}

	d.request(ctx)
}

func (d *Dispatcher) request(ctx context.Context) {
	d.state = StateRequesting
	d.out.Line("")

	res, err := d.current.run(ctx, d.explorer, d.inputs)
	if err != nil {
		d.state = StateErrorDisplay
		logger.Debug("%s failed: %+v", d.current.title, err)
		d.out.Error(err)
	} else {
		d.state = StatePrinting
		res.show(d.out)
	}

	d.current = nil
	d.inputs = nil

	if err == nil && res.next != nil {
		d.followUp = res.next
		d.state = StateCollecting
		d.promptFollowUp()
		return
	}
	d.backToMenu()
}

// answer handles one reply to a follow-up. An empty reply ends it.
func (d *Dispatcher) answer(input string) {
	if input == "" {
		d.followUp = nil
		d.backToMenu()
		return
	}

	d.state = StatePrinting
	if err := d.followUp.answer(d.out, input); err != nil {
		d.reject(err)
	}
	d.state = StateCollecting
	d.promptFollowUp()
}

func (d *Dispatcher) promptFollowUp() {
	if d.picking() {
		return
	}
	d.out.Line("")
	d.out.Prompt(d.followUp.prompt)
}

// picking reports whether the next answer comes from the selector rather than a line.
func (d *Dispatcher) picking() bool {
	return d.selector != nil && d.followUp != nil && len(d.followUp.options) > 0
}

func (d *Dispatcher) backToMenu() {
	d.state = StateMenu
	d.showMenu()
}

func (d *Dispatcher) reject(err error) {
	logger.Debug("input rejected: %v", err)
	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		d.out.Warning("%s", appErr.Summary())
		return
	}
	d.out.Warning("%s", err.Error())
}

func (d *Dispatcher) exit() {
	d.state = StateExit
	d.out.Line("")
	d.out.Line("Exiting the application. Goodbye!")
}

// pick asks the selector for the next follow-up answer and turns the choice into the line a
// user would have typed.
func (d *Dispatcher) pick(ctx context.Context) (string, error) {
	index, ok, err := d.selector.Select(ctx, d.followUp.prompt, d.followUp.options)
	if err != nil || !ok {
		return "", err
	}
	return strconv.Itoa(index + 1), nil
}

// Run shows the menu and feeds lines from in until the user exits, the input ends or ctx is
// cancelled. A line is only read once the machine asks for one, so a Selector can own the
// terminal in between. The returned error is a read or terminal write failure.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	want := make(chan struct{})
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for {
			select {
			case <-want:
			case <-ctx.Done():
				return
			}
			if !scanner.Scan() {
				readErr <- scanner.Err()
				return
			}
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	d.Start()
	if err := d.out.Err(); err != nil {
		return err
	}

	for {
		if d.picking() {
			line, err := d.pick(ctx)
			switch {
			case errors.Is(err, ErrInterrupted) || ctx.Err() != nil:
				d.exit()
				return d.out.Err()
			case err != nil:
				logger.Warn("picker unavailable, reading numbers instead: %v", err)
				d.selector = nil
				d.promptFollowUp()
			default:
				d.Feed(ctx, line)
			}
		} else {
			select {
			case want <- struct{}{}:
			case <-ctx.Done():
				d.exit()
				return d.out.Err()
			}

			select {
			case <-ctx.Done():
				d.exit()
				return d.out.Err()
			case line, ok := <-lines:
				if !ok {
					d.exit()
					if err := d.out.Err(); err != nil {
						return err
					}
					select {
					case err := <-readErr:
						return err
					default:
						return nil
					}
				}
				d.Feed(ctx, line)
			}
		}

		if err := d.out.Err(); err != nil {
			return err
		}
		if d.state == StateExit {
			return nil
		}
	}
}
