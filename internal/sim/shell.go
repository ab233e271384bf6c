package sim

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"ringsim/internal/movement"
	"ringsim/internal/ring"
)

// ErrUnknownCommand is returned for a command the shell does not recognise.
var ErrUnknownCommand = errors.New("unknown command")

// Shell applies text commands to a ring and writes results to out.
type Shell struct {
	ring   *ring.Ring
	out    io.Writer
	logger *log.Logger
}

// NewShell creates a shell over r. A nil logger discards log output.
func NewShell(r *ring.Ring, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Shell{ring: r, out: out, logger: logger}
}

// Run executes commands from in, one per line, until EOF or ctx is done.
// Blank lines and lines starting with '#' are skipped. A failing command is
// reported to out and the shell moves on to the next line.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.Exec(line); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			s.logger.Printf("[sim] line %d: %v", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

// Exec executes a single command line.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "add-server":
		id, err := intArg(cmd, args)
		if err != nil {
			return err
		}
		return s.topology(fmt.Sprintf("added server %d", id), func() error {
			return s.ring.AddServer(id)
		})
	case "remove-server":
		id, err := intArg(cmd, args)
		if err != nil {
			return err
		}
		return s.topology(fmt.Sprintf("removed server %d", id), func() error {
			s.ring.RemoveServer(id)
			return nil
		})
	case "weight":
		w, err := intArg(cmd, args)
		if err != nil {
			return err
		}
		if w < 1 {
			fmt.Fprintf(s.out, "weight %d ignored (minimum is 1)\n", w)
			return nil
		}
		return s.topology(fmt.Sprintf("set weight %d", w), func() error {
			return s.ring.SetGlobalWeight(w)
		})
	case "add-blob":
		content, err := contentArg(cmd, args)
		if err != nil {
			return err
		}
		if err := s.ring.AddBlob(content); err != nil {
			return err
		}
		owner, _ := s.ring.Owner(content)
		fmt.Fprintf(s.out, "%s (angle %d) -> server %d\n", content, s.ring.Angle(content), owner.ID)
		return nil
	case "remove-blob":
		content, err := contentArg(cmd, args)
		if err != nil {
			return err
		}
		s.ring.RemoveBlob(content)
		fmt.Fprintf(s.out, "removed %s\n", content)
		return nil
	case "owner":
		angle, err := intArg(cmd, args)
		if err != nil {
			return err
		}
		server, ok := s.ring.ServerForAngle(angle)
		if !ok {
			fmt.Fprintf(s.out, "angle %d -> no servers\n", angle)
			return nil
		}
		fmt.Fprintf(s.out, "angle %d -> server %d\n", angle, server.ID)
		return nil
	case "locate":
		content, err := contentArg(cmd, args)
		if err != nil {
			return err
		}
		s.locate(content)
		return nil
	case "replicas":
		if len(args) < 2 {
			return fmt.Errorf("use the syntax: %s <n> <content>", cmd)
		}
		n, err := intArg(cmd, args[:1])
		if err != nil {
			return err
		}
		content := strings.Join(args[1:], " ")
		ids := s.ring.PreferenceList(content, n)
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(s.out, "%s (angle %d) -> servers [%s]\n", content, s.ring.Angle(content), strings.Join(parts, " "))
		return nil
	case "servers":
		return RenderServers(s.out, s.ring.Servers())
	case "vnodes":
		return RenderVirtualNodes(s.out, s.ring.VirtualNodes())
	case "stats":
		return RenderStats(s.out, s.ring.Stats())
	case "unassigned":
		return RenderUnassigned(s.out, s.ring.Unassigned())
	case "help":
		_, err := io.WriteString(s.out, helpText)
		return err
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// topology applies a rebuild-triggering change and reports how many blobs
// changed owner, next to what a classic ring would have moved.
func (s *Shell) topology(what string, apply func() error) error {
	before := s.ring.Servers()
	if err := apply(); err != nil {
		return err
	}
	after := s.ring.Servers()

	rebuilt := movement.Diff(before, after)
	classic := movement.ClassicDiff(before, after)
	s.logger.Printf("[sim] %s: %d servers, %d virtual nodes", what, len(after), len(s.ring.VirtualNodes()))

	fmt.Fprintf(s.out, "%s: rebuild moved %d/%d blobs (classic ring: %d/%d)\n",
		what, len(rebuilt.Moves), rebuilt.Total, len(classic.Moves), classic.Total)
	for _, m := range rebuilt.Moves {
		fmt.Fprintf(s.out, "  %s: server %d -> server %d\n", m.Content, m.From, m.To)
	}
	if n := len(s.ring.Unassigned()); n > 0 {
		fmt.Fprintf(s.out, "  %d blobs unassigned until a server is added\n", n)
	}
	return nil
}

func (s *Shell) locate(content string) {
	angle := s.ring.Angle(content)
	if owner, ok := s.ring.Owner(content); ok {
		fmt.Fprintf(s.out, "%s (angle %d) -> server %d\n", content, angle, owner.ID)
		return
	}
	if s.ring.Contains(content) {
		fmt.Fprintf(s.out, "%s (angle %d) -> unassigned\n", content, angle)
		return
	}
	fmt.Fprintf(s.out, "%s (angle %d) -> not stored\n", content, angle)
}

func intArg(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("use the syntax: %s <number>", cmd)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", cmd, args[0])
	}
	return v, nil
}

func contentArg(cmd string, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("use the syntax: %s <content>", cmd)
	}
	return strings.Join(args, " "), nil
}

const helpText = `Commands:
  add-server <id>        add a server and rebuild the ring
  remove-server <id>     remove a server and rebuild the ring
  weight <n>             set virtual nodes per server and rebuild the ring
  add-blob <content>     place a blob on its responsible server
  remove-blob <content>  remove a blob
  owner <angle>          show the server responsible for an angle
  locate <content>       show where a blob is stored
  replicas <n> <content> list the first n distinct servers clockwise
  servers                list servers and their blobs
  vnodes                 list virtual nodes by angle
  stats                  show per-server load and ring coverage
  unassigned             list blobs waiting for a server
  help                   show this text
`
