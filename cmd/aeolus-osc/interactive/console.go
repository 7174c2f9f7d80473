// Package interactive provides the interactive command-line interface
// of aeolus-osc.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/aeolus-osc/aeolus-go/pkg/bridge"
	"github.com/aeolus-osc/aeolus-go/pkg/control"
	"github.com/aeolus-osc/aeolus-go/pkg/resolver"
	"github.com/aeolus-osc/aeolus-go/pkg/route"
	"github.com/aeolus-osc/aeolus-go/pkg/seq"
)

// Sender is recorded as the remote address of console commands.
const Sender = "console"

var (
	errDropped      = errors.New("dropped: no destination")
	errUnrecognized = errors.New("address not recognized")
)

// Console handles interactive mode for aeolus-osc. Commands travel
// through the session loop like OSC messages do.
type Console struct {
	session *bridge.Session
	out     io.Writer
	rl      *readline.Instance
}

// New creates a console for session.
func New(session *bridge.Session) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "aeolus> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{session: session, out: rl.Stdout(), rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.Exec(ctx, line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the console should
// exit.
func (c *Console) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "button", "b":
		c.cmdButton(ctx, args)

	case "preset", "p":
		c.cmdPreset(ctx, args)

	case "cancel", "c":
		c.cmdCancel(ctx, args)

	case "send":
		c.cmdSend(ctx, args)

	case "group", "g":
		c.cmdGroup(ctx, args)

	case "select":
		c.cmdSelect(ctx, args)

	case "resolve":
		c.cmdResolve(ctx)

	case "forget":
		c.cmdForget(ctx)

	case "status", "s":
		c.cmdStatus(ctx)

	case "participants", "ls":
		c.cmdParticipants(ctx)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Aeolus OSC Commands:
  Organ:
    button <g> <b> [on|off] - Press (default) or release button b of group g
    preset <n>              - Select preset n
    cancel [groups]         - Reset the first groups (default 8)
    send <address> [args]   - Process a raw OSC message

  Selectors:
    group <g> <mode>        - Select group g with mode reset|on|off|toggle
    select <b>              - Apply the selected group's mode to button b

  Instrument:
    resolve                 - Look for the instrument now
    forget                  - Drop the cached destination
    participants            - List sequencer clients
    status                  - Show session status

  General:
    help                    - Show this help
    quit                    - Exit

  Indices are 1-based, as in OSC addresses.`)
}

func (c *Console) cmdButton(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: button <group> <button> [on|off]")
		return
	}
	g, err1 := strconv.Atoi(args[0])
	b, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(c.out, "Group and button must be numbers")
		return
	}
	v := int32(1)
	if len(args) > 2 {
		switch strings.ToLower(args[2]) {
		case "on", "1":
		case "off", "0":
			v = 0
		default:
			fmt.Fprintf(c.out, "Invalid state: %s (use on or off)\n", args[2])
			return
		}
	}
	c.submit(ctx, route.ButtonAddress(g, b), v)
}

func (c *Console) cmdPreset(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: preset <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid preset: %s\n", args[0])
		return
	}
	c.submit(ctx, route.PresetAddress(n), int32(1))
}

func (c *Console) cmdCancel(ctx context.Context, args []string) {
	n := control.MaxGroup + 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(c.out, "Invalid group count: %s\n", args[0])
			return
		}
		n = v
	}
	c.submit(ctx, route.CancelAddress, int32(n))
}

func (c *Console) cmdSend(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: send <address> [args...]")
		fmt.Fprintln(c.out, "  Example: send /aeolus/button/1/3 1")
		return
	}
	values := make([]any, 0, len(args)-1)
	for _, a := range args[1:] {
		values = append(values, parseArg(a))
	}
	c.submit(ctx, args[0], values...)
}

func (c *Console) cmdGroup(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: group <g> <reset|on|off|toggle>")
		return
	}
	g, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid group: %s\n", args[0])
		return
	}
	mode, err := control.ParseMode(strings.ToLower(args[1]))
	if err != nil {
		fmt.Fprintf(c.out, "Invalid mode: %v\n", err)
		return
	}
	c.execute(ctx, fmt.Sprintf("group %d %s", g, mode), func(r control.Route, enc *control.Encoder) ([]seq.Event, error) {
		return enc.SelectAndSetGroup(r, g-1, mode)
	})
}

func (c *Console) cmdSelect(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: select <b>")
		return
	}
	b, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid button: %s\n", args[0])
		return
	}
	c.execute(ctx, fmt.Sprintf("select %d", b), func(r control.Route, enc *control.Encoder) ([]seq.Event, error) {
		return enc.SelectButton(r, b-1)
	})
}

// execute sends the events built by fn, bypassing the OSC router.
func (c *Console) execute(ctx context.Context, label string, fn bridge.BuildFunc) {
	err := c.session.Do(ctx, func(s *bridge.Session) error {
		before := s.Stats().Sent
		if err := s.Execute(fn); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s: %d event(s) sent\n", label, s.Stats().Sent-before)
		return nil
	})
	if errors.Is(err, resolver.ErrNotFound) {
		err = errDropped
	}
	if err != nil {
		fmt.Fprintf(c.out, "%s: %v\n", label, err)
	}
}

// parseArg converts a console word to an OSC argument: int32, then
// float32, then string.
func parseArg(s string) any {
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(v)
	}
	if v, err := strconv.ParseFloat(s, 32); err == nil {
		return float32(v)
	}
	return strings.Trim(s, "\"'")
}

func (c *Console) submit(ctx context.Context, address string, args ...any) {
	msg := bridge.Message{Address: address, Args: args, Sender: Sender}
	err := c.session.Do(ctx, func(s *bridge.Session) error {
		before := s.Stats()
		if err := s.Handle(msg); err != nil {
			return err
		}
		after := s.Stats()
		switch {
		case after.Unrecognized > before.Unrecognized:
			return errUnrecognized
		case after.Dropped > before.Dropped:
			return errDropped
		}
		fmt.Fprintf(c.out, "%s: %d event(s) sent\n", address, after.Sent-before.Sent)
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "%s: %v\n", address, err)
	}
}

func (c *Console) cmdResolve(ctx context.Context) {
	err := c.session.Do(ctx, func(s *bridge.Session) error {
		ep, err := s.Resolve()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Destination: %s\n", ep)
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "Resolve failed: %v\n", err)
	}
}

func (c *Console) cmdForget(ctx context.Context) {
	err := c.session.Do(ctx, func(s *bridge.Session) error {
		s.Forget("console")
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Destination forgotten")
}

func (c *Console) cmdStatus(ctx context.Context) {
	err := c.session.Do(ctx, func(s *bridge.Session) error {
		dest := "none"
		if ep, ok := s.Destination(); ok {
			dest = ep.String()
		}
		st := s.Stats()

		fmt.Fprintln(c.out, "\nSession Status")
		fmt.Fprintln(c.out, "-------------------------------------------")
		fmt.Fprintf(c.out, "  Session ID:   %s\n", s.ID())
		fmt.Fprintf(c.out, "  State:        %s\n", s.State())
		fmt.Fprintf(c.out, "  Source:       %s\n", s.Transport().Source())
		fmt.Fprintf(c.out, "  Destination:  %s\n", dest)
		fmt.Fprintf(c.out, "  Channel:      %d\n", s.Channel())
		fmt.Fprintf(c.out, "  Received:     %d\n", st.Received)
		fmt.Fprintf(c.out, "  Sent:         %d\n", st.Sent)
		fmt.Fprintf(c.out, "  Dropped:      %d\n", st.Dropped)
		fmt.Fprintf(c.out, "  Unrecognized: %d\n", st.Unrecognized)
		fmt.Fprintf(c.out, "  Errors:       %d\n", st.Errors)
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) cmdParticipants(ctx context.Context) {
	err := c.session.Do(ctx, func(s *bridge.Session) error {
		ps, err := s.Transport().Participants()
		if err != nil {
			return err
		}
		if len(ps) == 0 {
			fmt.Fprintln(c.out, "No sequencer clients")
			return nil
		}
		fmt.Fprintf(c.out, "\nSequencer Clients (%d):\n", len(ps))
		for _, p := range ps {
			ports := make([]string, len(p.Ports))
			for i, port := range p.Ports {
				ports[i] = strconv.Itoa(port)
			}
			fmt.Fprintf(c.out, "  %3d  %-24s ports %s\n", p.Client, p.Name, strings.Join(ports, ","))
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}
