package repl

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
	"github.com/leengari/tabledb/internal/search"
	"github.com/leengari/tabledb/internal/storage"
	"github.com/leengari/tabledb/internal/storage/writer"
)

type command struct {
	name  string
	usage string
	help  string
	run   func(r *REPL, args []string) error
}

var (
	commandList []command
	commands    map[string]command
)

func init() {
	commandList = []command{
		{"create", "create <name:int|text>...", "create a new empty table, replacing the active one", runCreate},
		{"add", "add <value>...", "append a record, one value per column", runAdd},
		{"show", "show", "print all records", runShow},
		{"get", "get <pos>", "print the record at a position", runGet},
		{"delete", "delete <pos> | delete where <col> <op> [arg] [--index] [--all|--pick N]",
			"delete by position, or the records a search finds", runDelete},
		{"update", "update <pos> <value>... | update where <col> <op> [arg] [--index] [--pick N] --set <value>...",
			"replace by position, or the record a search finds", runUpdate},
		{"find", "find <col> <op> [arg] [--index]", "search; ops: max min eq ge le contains top bottom", runFind},
		{"compare", "compare <col> <op> [arg]", "run a search by scan and by index side by side", runCompare},
		{"save", "save [file]", "write the table as JSON", runSave},
		{"load", "load [file]", "read a table from JSON, replacing the active one", runLoad},
		{"autodisplay", "autodisplay [on|off]", "print the table after each change", runAutoDisplay},
		{"help", "help", "show this help", runHelp},
		{"exit", "exit", "leave", runExit},
	}

	commands = make(map[string]command, len(commandList)+2)
	for _, c := range commandList {
		commands[c.name] = c
	}
	commands["quit"] = commands["exit"]
}

const helpWidth = 34

func runHelp(r *REPL, _ []string) error {
	for _, c := range commandList {
		if len(c.usage) > helpWidth {
			fmt.Fprintf(r.out, "  %s\n  %-*s %s\n", c.usage, helpWidth, "", c.help)
			continue
		}
		fmt.Fprintf(r.out, "  %-*s %s\n", helpWidth, c.usage, c.help)
	}
	fmt.Fprintln(r.out, `  values containing spaces or quotes must be quoted, e.g. "bob smith" or "O'Brien"`)
	return nil
}

func runExit(r *REPL, _ []string) error {
	if t, err := r.session.Table(); err == nil && t.Dirty() {
		fmt.Fprintln(r.out, "Warning: unsaved changes are discarded.")
	}
	return ErrQuit
}

func runCreate(r *REPL, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: create <name:int|text>...")
	}

	cols := make([]schema.Column, 0, len(args))
	for _, arg := range args {
		name, kind, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("column %q: expected name:type", arg)
		}
		k, err := schema.ParseKind(kind)
		if err != nil {
			return err
		}
		cols = append(cols, schema.Column{Name: name, Kind: k})
	}

	sc, err := schema.New(cols...)
	if err != nil {
		return err
	}
	if _, err := r.session.Create(sc); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Table created with %d column(s).\n", len(cols))
	return nil
}

func runAdd(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	row, err := data.ParseRow(t.Schema(), args)
	if err != nil {
		return err
	}
	if _, err := t.Append(row); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Record added at position %d.\n", t.Len())
	r.afterMutation(t)
	return nil
}

func runShow(r *REPL, _ []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	PrintTable(r.out, t)
	return nil
}

func parsePosition(raw string) (int, error) {
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", raw)
	}
	return pos, nil
}

func runGet(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: get <pos>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	rec := t.GetAt(pos)
	if rec == nil {
		return t.CheckPosition(pos)
	}
	rs := search.NewResultSet()
	rs.Add(rec, pos)
	PrintResults(r.out, t.Schema(), rs, r.displayLimit)
	return nil
}

func runDelete(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	if len(args) > 0 && strings.EqualFold(args[0], "where") {
		return runDeleteWhere(r, t, args[1:])
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <pos>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	if !t.DeleteAt(pos) {
		return t.CheckPosition(pos)
	}
	fmt.Fprintf(r.out, "Record %d deleted.\n", pos)
	r.afterMutation(t)
	return nil
}

func runUpdate(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	if len(args) > 0 && strings.EqualFold(args[0], "where") {
		return runUpdateWhere(r, t, args[1:])
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: update <pos> <value>...")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	row, err := data.ParseRow(t.Schema(), args[1:])
	if err != nil {
		return err
	}
	ok, err := t.UpdateAt(pos, row)
	if err != nil {
		return err
	}
	if !ok {
		return t.CheckPosition(pos)
	}
	fmt.Fprintf(r.out, "Record %d updated.\n", pos)
	r.afterMutation(t)
	return nil
}

// buildPredicate turns "<col> <op> [arg]" into a predicate. The argument is
// parsed with the column's kind, except for contains which is always text.
func buildPredicate(t *table.Table, args []string) (search.Predicate, error) {
	if len(args) < 2 {
		return search.Predicate{}, fmt.Errorf("usage: <col> <op> [arg]")
	}

	col, err := t.ColumnIndex(args[0])
	if err != nil {
		return search.Predicate{}, err
	}
	op, err := search.ParseOp(args[1])
	if err != nil {
		return search.Predicate{}, err
	}

	p := search.Predicate{Op: op, Column: args[0]}
	rest := args[2:]

	switch {
	case op.NeedsValue():
		if len(rest) != 1 {
			return p, fmt.Errorf("%s needs exactly one value", op)
		}
		kind := t.Schema().Columns[col].Kind
		if op == search.OpContains {
			kind = schema.KindText
		}
		v, err := data.Parse(kind, rest[0])
		if err != nil {
			return p, err
		}
		p.Value = v
	case op.NeedsCount():
		if len(rest) != 1 {
			return p, fmt.Errorf("%s needs N", op)
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return p, fmt.Errorf("invalid N %q", rest[0])
		}
		p.N = n
	default:
		if len(rest) != 0 {
			return p, fmt.Errorf("%s takes no argument", op)
		}
	}
	return p, nil
}

// splitFlag removes flag from args and reports whether it was present
func splitFlag(args []string, flag string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == flag {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

// takeValueFlag removes "flag value" from args and returns the value
func takeValueFlag(args []string, flag string) ([]string, string, bool, error) {
	for i, a := range args {
		if a != flag {
			continue
		}
		if i+1 >= len(args) {
			return args, "", false, fmt.Errorf("%s needs a value", flag)
		}
		out := append(slices.Clone(args[:i]), args[i+2:]...)
		return out, args[i+1], true, nil
	}
	return args, "", false, nil
}

// runSearch evaluates "<col> <op> [arg] [--index]" against the active table
func (r *REPL) runSearch(t *table.Table, args []string) (*search.ResultSet, search.Predicate, search.Mode, error) {
	args, useIndex := splitFlag(args, "--index")
	mode := search.Linear
	if useIndex {
		mode = search.Indexed
	}

	p, err := buildPredicate(t, args)
	if err != nil {
		return nil, p, mode, err
	}
	eng, err := r.session.Search()
	if err != nil {
		return nil, p, mode, err
	}
	rs, err := eng.Run(p, mode)
	if err != nil {
		return nil, p, mode, err
	}
	return rs, p, mode, nil
}

func runFind(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	rs, p, mode, err := r.runSearch(t, args)
	if err != nil {
		return err
	}

	PrintResults(r.out, t.Schema(), rs, r.displayLimit)
	if mode == search.Indexed && p.Op == search.OpEqual {
		fmt.Fprintln(r.out, "Note: the index keeps one record per distinct value; use a linear search for every match.")
	}
	return nil
}

// pickTarget chooses the single entry of rs a command acts on: the entry
// named by --pick, or the only match. ok is false when the choice is
// ambiguous; the matches are then printed for the user to pick from.
func (r *REPL) pickTarget(t *table.Table, rs *search.ResultSet, pickRaw string, hasPick bool) (search.Entry, bool, error) {
	if hasPick {
		n, err := strconv.Atoi(pickRaw)
		if err != nil {
			return search.Entry{}, false, fmt.Errorf("invalid --pick %q", pickRaw)
		}
		e, ok := search.Pick(rs, n)
		if !ok {
			return search.Entry{}, false, fmt.Errorf("--pick must be between 1 and %d", rs.Len())
		}
		return e, true, nil
	}
	if rs.Len() == 1 {
		return rs.At(0), true, nil
	}

	PrintResults(r.out, t.Schema(), rs, r.displayLimit)
	return search.Entry{}, false, nil
}

func runDeleteWhere(r *REPL, t *table.Table, args []string) error {
	args, all := splitFlag(args, "--all")
	args, pickRaw, hasPick, err := takeValueFlag(args, "--pick")
	if err != nil {
		return err
	}
	if all && hasPick {
		return fmt.Errorf("use either --all or --pick, not both")
	}

	rs, _, _, err := r.runSearch(t, args)
	if err != nil {
		return err
	}
	if rs.Empty() {
		fmt.Fprintln(r.out, "No matching records.")
		return nil
	}

	if all {
		n := search.DeleteMatches(t, rs)
		fmt.Fprintf(r.out, "Deleted %d record(s). Remaining rows: %d.\n", n, t.Len())
		r.afterMutation(t)
		return nil
	}

	target, ok, err := r.pickTarget(t, rs, pickRaw, hasPick)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(r.out, "%d records match; add --all to delete them or --pick N to delete one.\n", rs.Len())
		return nil
	}
	if !t.DeleteAt(target.Position) {
		return t.CheckPosition(target.Position)
	}
	fmt.Fprintf(r.out, "Record %d deleted. Remaining rows: %d.\n", target.Position, t.Len())
	r.afterMutation(t)
	return nil
}

func runUpdateWhere(r *REPL, t *table.Table, args []string) error {
	set := slices.Index(args, "--set")
	if set < 0 {
		return fmt.Errorf("usage: update where <col> <op> [arg] [--index] [--pick N] --set <value>...")
	}
	args, values := args[:set], args[set+1:]

	// the new row is checked before anything is searched or changed
	row, err := data.ParseRow(t.Schema(), values)
	if err != nil {
		return err
	}

	args, pickRaw, hasPick, err := takeValueFlag(args, "--pick")
	if err != nil {
		return err
	}
	rs, _, _, err := r.runSearch(t, args)
	if err != nil {
		return err
	}
	if rs.Empty() {
		fmt.Fprintln(r.out, "No matching records.")
		return nil
	}

	target, ok, err := r.pickTarget(t, rs, pickRaw, hasPick)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(r.out, "%d records match; add --pick N to choose one.\n", rs.Len())
		return nil
	}
	updated, err := t.UpdateAt(target.Position, row)
	if err != nil {
		return err
	}
	if !updated {
		return t.CheckPosition(target.Position)
	}
	fmt.Fprintf(r.out, "Record %d updated.\n", target.Position)
	r.afterMutation(t)
	return nil
}

func runCompare(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	p, err := buildPredicate(t, args)
	if err != nil {
		return err
	}
	eng, err := r.session.Search()
	if err != nil {
		return err
	}
	cmp, err := eng.Compare(p)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "linear:  %d match(es)\n", cmp.Linear.Len())
	if cmp.IndexErr != nil {
		fmt.Fprintf(r.out, "indexed: unavailable (%v)\n", cmp.IndexErr)
		return nil
	}
	fmt.Fprintf(r.out, "indexed: %d match(es)\n", cmp.Indexed.Len())
	if missing := cmp.Missing(); missing > 0 {
		fmt.Fprintf(r.out, "indexed search skipped %d record(s) sharing a key with an earlier record\n", missing)
	}
	return nil
}

func runSave(r *REPL, args []string) error {
	t, err := r.session.Table()
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("usage: save [file]")
	}
	path := r.cfg.ResolvePath(firstOr(args, ""))
	if err := writer.SaveTable(path, t); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Saved %d record(s) to %s.\n", t.Len(), path)
	return nil
}

func runLoad(r *REPL, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: load [file]")
	}
	path := r.cfg.ResolvePath(firstOr(args, ""))
	t, err := storage.LoadTable(path)
	if err != nil {
		return err
	}
	r.session.Replace(t)
	fmt.Fprintf(r.out, "Loaded %d record(s) from %s.\n", t.Len(), path)
	if r.autoDisplay {
		PrintTable(r.out, t)
	}
	return nil
}

func runAutoDisplay(r *REPL, args []string) error {
	switch {
	case len(args) == 0:
		r.autoDisplay = !r.autoDisplay
	case strings.EqualFold(args[0], "on"):
		r.autoDisplay = true
	case strings.EqualFold(args[0], "off"):
		r.autoDisplay = false
	default:
		return fmt.Errorf("usage: autodisplay [on|off]")
	}
	state := "off"
	if r.autoDisplay {
		state = "on"
	}
	fmt.Fprintf(r.out, "Auto display is %s.\n", state)
	return nil
}

func (r *REPL) afterMutation(t *table.Table) {
	r.logger.Debug("table changed", slog.Int("rows", t.Len()))
	if r.autoDisplay {
		PrintTable(r.out, t)
	}
}

func firstOr(args []string, def string) string {
	if len(args) == 0 {
		return def
	}
	return args[0]
}
