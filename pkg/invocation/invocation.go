package invocation

import "sort"

// Invocation is a mutable description of one command line: a command
// name, the order in which known long options should be printed when
// present, a long-to-short option table, the value-bearing options
// actually set, a set of boolean (valueless) flags, and an optional
// nested sub-command rendered after this command's own tokens.
type Invocation struct {
	CommandName string
	Order       []string
	ShortForm   map[string]string
	Args        map[string]string
	BoolFlags   map[string]bool
	SubCommand  *Invocation
}

// New returns an empty Invocation for the given command name.
func New(commandName string) *Invocation {
	return &Invocation{
		CommandName: commandName,
		ShortForm:   map[string]string{},
		Args:        map[string]string{},
		BoolFlags:   map[string]bool{},
	}
}

// Clone returns a deep copy, so callers (pkg/reproduce) can mutate the
// copy without disturbing the invocation that actually ran.
func (inv *Invocation) Clone() *Invocation {
	if inv == nil {
		return nil
	}
	out := &Invocation{
		CommandName: inv.CommandName,
		Order:       append([]string(nil), inv.Order...),
		ShortForm:   make(map[string]string, len(inv.ShortForm)),
		Args:        make(map[string]string, len(inv.Args)),
		BoolFlags:   make(map[string]bool, len(inv.BoolFlags)),
		SubCommand:  inv.SubCommand.Clone(),
	}
	for k, v := range inv.ShortForm {
		out.ShortForm[k] = v
	}
	for k, v := range inv.Args {
		out.Args[k] = v
	}
	for k, v := range inv.BoolFlags {
		out.BoolFlags[k] = v
	}
	return out
}

// IsPresent reports whether key is set, either as a value-bearing
// argument or as a boolean flag.
func (inv *Invocation) IsPresent(key string) bool {
	if _, ok := inv.Args[key]; ok {
		return true
	}
	return inv.BoolFlags[key]
}

// SetArg sets a value-bearing option, clearing any bool flag of the
// same name.
func (inv *Invocation) SetArg(key, value string) {
	inv.Args[key] = value
	delete(inv.BoolFlags, key)
}

// RemoveArg clears key whether it was a value-bearing argument or a
// boolean flag.
func (inv *Invocation) RemoveArg(key string) {
	delete(inv.Args, key)
	delete(inv.BoolFlags, key)
}

// SetBool sets or clears a boolean flag.
func (inv *Invocation) SetBool(key string, on bool) {
	if on {
		inv.BoolFlags[key] = true
		delete(inv.Args, key)
	} else {
		delete(inv.BoolFlags, key)
	}
}

// Tokens renders this invocation (and any sub-command) into an
// unescaped token list: the command name, then each option named in
// Order that is present, then any remaining present options not named
// in Order (value-bearing first, then bool flags, both in sorted
// order for determinism), then the sub-command's tokens.
func (inv *Invocation) Tokens() []string {
	var tokens []string
	inv.appendTokens(&tokens)
	return tokens
}

func (inv *Invocation) appendTokens(tokens *[]string) {
	*tokens = append(*tokens, inv.CommandName)

	inserted := make(map[string]bool, len(inv.Order))
	for _, key := range inv.Order {
		if inv.IsPresent(key) {
			inv.pushOption(key, tokens)
			inserted[key] = true
		}
	}

	remainingArgs := make([]string, 0, len(inv.Args))
	for key := range inv.Args {
		if !inserted[key] {
			remainingArgs = append(remainingArgs, key)
		}
	}
	sort.Strings(remainingArgs)
	for _, key := range remainingArgs {
		inv.pushOption(key, tokens)
	}

	remainingBools := make([]string, 0, len(inv.BoolFlags))
	for key := range inv.BoolFlags {
		if !inserted[key] {
			remainingBools = append(remainingBools, key)
		}
	}
	sort.Strings(remainingBools)
	for _, key := range remainingBools {
		inv.pushOption(key, tokens)
	}

	if inv.SubCommand != nil {
		inv.SubCommand.appendTokens(tokens)
	}
}

func (inv *Invocation) pushOption(key string, tokens *[]string) {
	if short, ok := inv.ShortForm[key]; ok {
		*tokens = append(*tokens, "-"+short)
	} else {
		*tokens = append(*tokens, "--"+key)
	}
	if value, ok := inv.Args[key]; ok {
		*tokens = append(*tokens, value)
	}
}
