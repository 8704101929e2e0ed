package parseopt

// Behavior flags alter how a Context treats tokens it does not consume.
type Behavior uint8

const (
	// KeepDashDash leaves a "--" terminator in the output.
	KeepDashDash Behavior = 1 << iota
	// StopAtNonOption stops at the first operand instead of collecting it.
	StopAtNonOption
	// KeepUnknown forwards unknown options into the output.
	KeepUnknown
	// NoInternalHelp disables -h, --help and --help-all.
	NoInternalHelp
	// ShellEval wraps requested help in a here-document for eval.
	ShellEval
)

// State is the outcome of one Step.
type State int

const (
	StateScanning State = iota
	StateDone
	StateError
	StateNonOption
	StateHelp
	StateComplete
	StateUnknown
)

func (s State) String() string {
	switch s { // exhaustive over State
	case StateScanning:
		return "scanning"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	case StateNonOption:
		return "non-option"
	case StateHelp:
		return "help"
	case StateComplete:
		return "complete"
	case StateUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// CompletionHelper is the sole argument that asks for a completion listing.
const CompletionHelper = "--completion-helper"

// Context holds the cursor of one parse. The argument slice given to Start
// doubles as output storage: recognized tokens are written back from the
// front, never past the token being read.
type Context struct {
	table    *Table
	args     []string
	pos      int // token being read
	out      int // next recognized slot
	total    int
	prefix   string
	behavior Behavior
	state    State

	// pending is the value split off --name=value.
	pending    string
	hasPending bool

	// cluster is the short-option token being consumed and off the index
	// of its next unread byte.
	cluster string
	off     int

	showHidden bool
}

// Start creates a Context over args. prefix, when non-empty, is joined to
// relative filename values. args is reused as the output of End.
func Start(t *Table, args []string, prefix string, b Behavior) (*Context, error) {
	if b&KeepUnknown != 0 && b&StopAtNonOption != 0 {
		return nil, &TableError{Bugs: []string{"BUG: StopAtNonOption and KeepUnknown don't go together"}}
	}
	return &Context{
		table:    t,
		args:     args,
		total:    len(args),
		prefix:   prefix,
		behavior: b,
	}, nil
}

// State returns the outcome of the last Step.
func (c *Context) State() State { return c.state }

// Table returns the table being parsed against.
func (c *Context) Table() *Table { return c.table }

// ShowHidden reports whether help was requested with --help-all.
func (c *Context) ShowHidden() bool { return c.showHidden }

// Recognized returns how many leading output slots have been written:
// forwarded options and the operands collected so far.
func (c *Context) Recognized() int { return c.out }

// Remaining returns the number of tokens not yet read, current one included.
func (c *Context) Remaining() int { return len(c.args) - c.pos }

// Current returns the token under the cursor. After StateUnknown in the
// middle of a cluster it is the unmatched rest with a fresh dash.
func (c *Context) Current() string {
	if c.pos >= len(c.args) {
		return ""
	}
	return c.args[c.pos]
}

// Skip drops the next n tokens, current one included.
func (c *Context) Skip(n int) {
	c.pos = min(c.pos+n, len(c.args))
	c.resetToken()
}

// Keep forwards the current token into the recognized region.
func (c *Context) Keep() {
	if c.pos >= len(c.args) {
		return
	}
	c.forward(c.args[c.pos])
	c.pos++
	c.resetToken()
}

// NextArg resolves a value for opt in the usual order: attached value,
// last-argument default, next token. Low-level callbacks use it to take a
// value of their own.
func (c *Context) NextArg(opt *Option) (string, error) {
	return c.getArg(opt, 0)
}

// End moves the unread tokens behind the recognized ones and returns the
// result: [recognized][operands].
func (c *Context) End() []string {
	n := copy(c.args[c.out:], c.args[c.pos:])
	c.args = c.args[:c.out+n]
	c.pos = len(c.args)
	return c.args
}

func (c *Context) forward(tok string) {
	c.args[c.out] = tok
	c.out++
}

func (c *Context) resetToken() {
	c.pending, c.hasPending = "", false
	c.cluster, c.off = "", 0
}

func (c *Context) setPending(v string) {
	c.pending, c.hasPending = v, true
}

func (c *Context) inCluster() bool {
	return c.off > 0 && c.off < len(c.cluster)
}

// hasInline reports whether a value is attached to the current token.
func (c *Context) hasInline() bool {
	return c.hasPending || c.inCluster()
}
