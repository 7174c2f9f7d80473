package definition

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefinitionFile is the name of the definition file inside an instrument
// directory.
const DefinitionFile = "definition"

// Parse errors.
var (
	ErrNoDivision = errors.New("no open division")
	ErrNoGroup    = errors.New("no open group")
	ErrArgument   = errors.New("invalid argument")
	ErrReference  = errors.New("reference out of range")
	ErrRankFile   = errors.New("unreadable rank file")
)

// ParseError reports a definition line that could not be applied.
type ParseError struct {
	Line      int
	Directive string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Directive, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// handler applies one directive. args excludes the directive itself.
type handler func(p *parser, args []string) error

var directives = map[string]handler{
	"/tuning":     (*parser).tuning,
	"/manual/new": (*parser).manual,
	"/pedal/new":  (*parser).pedal,
	"/divis/new":  (*parser).divisionNew,
	"/rank":       (*parser).rank,
	"/swell":      (*parser).swell,
	"/divis/end":  (*parser).divisionEnd,
	"/group/new":  (*parser).groupNew,
	"/group/end":  (*parser).groupEnd,
	"/stop":       (*parser).stop,
	"/tremul":     (*parser).tremul,
	"/coupler":    (*parser).coupler,
	"/instr/end":  (*parser).end,
}

type parser struct {
	baseDir string
	inst    *Instrument

	// div and grp index the open division and group, -1 when none.
	div int
	grp int

	done    bool
	headers map[string]RankHeader
}

func newParser(baseDir string) *parser {
	return &parser{
		baseDir: baseDir,
		inst:    &Instrument{},
		div:     -1,
		grp:     -1,
		headers: make(map[string]RankHeader),
	}
}

// Parse reads a definition from r. Rank files named by /stop directives
// are resolved against baseDir.
func Parse(r io.Reader, baseDir string) (*Instrument, error) {
	p := newParser(baseDir)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for !p.done && scanner.Scan() {
		lineNum++
		if err := p.line(scanner.Text(), lineNum); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return p.inst, nil
}

// ParseLines parses a definition given as individual lines.
func ParseLines(lines []string, baseDir string) (*Instrument, error) {
	p := newParser(baseDir)
	for i, line := range lines {
		if p.done {
			break
		}
		if err := p.line(line, i+1); err != nil {
			return nil, err
		}
	}
	return p.inst, nil
}

// ParseDir parses <dir>/definition. The instrument is labelled with the
// directory name and rank files are looked up in the directory's parent.
func ParseDir(dir string) (*Instrument, error) {
	dir = filepath.Clean(dir)
	f, err := os.Open(filepath.Join(dir, DefinitionFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Parse(f, filepath.Dir(dir))
	if err != nil {
		return nil, err
	}
	inst.Label = filepath.Base(dir)
	return inst, nil
}

func (p *parser) line(line string, num int) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	h, ok := directives[fields[0]]
	if !ok {
		return nil
	}
	if err := h(p, fields[1:]); err != nil {
		return &ParseError{Line: num, Directive: fields[0], Err: err}
	}
	return nil
}

func (p *parser) tuning(args []string) error {
	if err := arity(args, 2); err != nil {
		return err
	}
	base, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: base %q", ErrArgument, args[0])
	}
	temp, err := atoi(args[1], "temperament")
	if err != nil {
		return err
	}
	p.inst.Tuning = &Tuning{Base: base, Temperament: temp}
	return nil
}

func (p *parser) manual(args []string) error {
	return p.keyboard(TypeManual, args)
}

func (p *parser) pedal(args []string) error {
	return p.keyboard(TypePedal, args)
}

func (p *parser) keyboard(t KeyboardType, args []string) error {
	if err := arity(args, 1); err != nil {
		return err
	}
	p.inst.Keyboards = append(p.inst.Keyboards, Keyboard{
		Type:  t,
		Label: args[0],
		Index: len(p.inst.Keyboards) + 1,
	})
	return nil
}

func (p *parser) divisionNew(args []string) error {
	if err := arity(args, 1); err != nil {
		return err
	}
	d := Division{Label: args[0], Index: len(p.inst.Divisions) + 1}

	// Keyboard and section are optional.
	var err error
	if len(args) > 1 {
		if d.Keyboard, err = atoi(args[1], "keyboard"); err != nil {
			return err
		}
	}
	if len(args) > 2 {
		if d.Section, err = atoi(args[2], "section"); err != nil {
			return err
		}
	}

	p.inst.Divisions = append(p.inst.Divisions, d)
	p.div = len(p.inst.Divisions) - 1
	return nil
}

func (p *parser) rank(args []string) error {
	if p.div < 0 {
		return ErrNoDivision
	}
	if err := arity(args, 3); err != nil {
		return err
	}
	delay, err := atoi(args[1], "delay")
	if err != nil {
		return err
	}
	d := &p.inst.Divisions[p.div]
	d.Ranks = append(d.Ranks, Rank{
		Index: len(d.Ranks) + 1,
		Pan:   args[0],
		Delay: delay,
		File:  args[2],
	})
	return nil
}

func (p *parser) swell(args []string) error {
	if p.div < 0 {
		return ErrNoDivision
	}
	p.inst.Divisions[p.div].Swell = true
	return nil
}

func (p *parser) divisionEnd(args []string) error {
	p.div = -1
	return nil
}

func (p *parser) groupNew(args []string) error {
	if err := arity(args, 1); err != nil {
		return err
	}
	p.inst.Groups = append(p.inst.Groups, Group{
		Label: args[0],
		Index: len(p.inst.Groups) + 1,
	})
	p.grp = len(p.inst.Groups) - 1
	return nil
}

func (p *parser) groupEnd(args []string) error {
	p.grp = -1
	return nil
}

func (p *parser) stop(args []string) error {
	if p.grp < 0 {
		return ErrNoGroup
	}
	refs, err := ints(args, "keyboard", "division", "rank")
	if err != nil {
		return err
	}
	kbd, div, rank := refs[0], refs[1], refs[2]

	r, err := p.lookupRank(div, rank)
	if err != nil {
		return err
	}
	path := filepath.Join(p.baseDir, r.File)
	hdr, err := p.rankHeader(path)
	if err != nil {
		return err
	}

	p.addButton(Button{
		Kind:     KindStop,
		Label:    hdr.Label,
		Mnemonic: hdr.Mnemonic,
		Keyboard: kbd,
		Division: div,
		Rank:     rank,
	})
	return nil
}

func (p *parser) tremul(args []string) error {
	// Tremulants outside a group have no button.
	if p.grp < 0 {
		return nil
	}
	if err := arity(args, 3); err != nil {
		return err
	}
	div, err := atoi(args[0], "division")
	if err != nil {
		return err
	}
	if err := p.checkDivision(div); err != nil {
		return err
	}
	p.addButton(Button{
		Kind:     KindTremul,
		Mnemonic: args[1],
		Label:    label(args[2]),
		Division: div,
	})
	return nil
}

func (p *parser) coupler(args []string) error {
	if p.grp < 0 {
		return ErrNoGroup
	}
	if err := arity(args, 4); err != nil {
		return err
	}
	refs, err := ints(args[:2], "keyboard", "division")
	if err != nil {
		return err
	}
	if err := p.checkDivision(refs[1]); err != nil {
		return err
	}
	p.addButton(Button{
		Kind:     KindCoupler,
		Mnemonic: args[2],
		Label:    label(args[3]),
		Keyboard: refs[0],
		Division: refs[1],
	})
	return nil
}

func (p *parser) end(args []string) error {
	p.done = true
	return nil
}

func (p *parser) addButton(b Button) {
	g := &p.inst.Groups[p.grp]
	b.Index = len(g.Buttons) + 1
	g.Buttons = append(g.Buttons, b)
}

func (p *parser) checkDivision(div int) error {
	if div < 1 || div > len(p.inst.Divisions) {
		return fmt.Errorf("%w: division %d of %d", ErrReference, div, len(p.inst.Divisions))
	}
	return nil
}

func (p *parser) lookupRank(div, rank int) (*Rank, error) {
	if err := p.checkDivision(div); err != nil {
		return nil, err
	}
	d := &p.inst.Divisions[div-1]
	if rank < 1 || rank > len(d.Ranks) {
		return nil, fmt.Errorf("%w: rank %d of %d in division %s", ErrReference, rank, len(d.Ranks), d.Label)
	}
	return &d.Ranks[rank-1], nil
}

func (p *parser) rankHeader(path string) (RankHeader, error) {
	if hdr, ok := p.headers[path]; ok {
		return hdr, nil
	}
	hdr, err := ReadRankFile(path)
	if err != nil {
		return RankHeader{}, fmt.Errorf("%w: %s: %v", ErrRankFile, path, err)
	}
	p.headers[path] = hdr
	return hdr, nil
}

func arity(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: want %d arguments, got %d", ErrArgument, n, len(args))
	}
	return nil
}

func atoi(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrArgument, name, s)
	}
	return v, nil
}

func ints(args []string, names ...string) ([]int, error) {
	if err := arity(args, len(names)); err != nil {
		return nil, err
	}
	out := make([]int, len(names))
	for i, name := range names {
		v, err := atoi(args[i], name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// label decodes a label token; '$' stands for a line break. Tokens after
// the label are ignored.
func label(tok string) string {
	return strings.ReplaceAll(tok, "$", "\n")
}
