package command

import (
	"fmt"
	"slices"
	"strings"
)

// Registry maps command tokens to Command definitions. Lookups are
// case-insensitive.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a name, compared case-insensitively.
// Postcondition: Returns a Registry or an error on name collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{commands: make(map[string]*Command, len(cmds))}
	for i := range cmds {
		cmd := &cmds[i]
		name := strings.ToLower(cmd.Name)
		if _, exists := r.commands[name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		r.commands[name] = cmd
	}
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by token, ignoring case and surrounding
// whitespace.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(token string) (*Command, bool) {
	cmd, ok := r.commands[strings.ToLower(strings.TrimSpace(token))]
	return cmd, ok
}

// Commands returns all registered commands ordered by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	slices.SortFunc(result, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })
	return result
}

// CommandsByCategory returns commands grouped by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}

// Section is one category of a help listing.
type Section struct {
	Category string     `json:"category"`
	Commands []HelpLine `json:"commands"`
}

// HelpLine describes one command in a help listing.
type HelpLine struct {
	Name    string `json:"name"`
	Help    string `json:"help"`
	MinArgs int    `json:"min_args"`
}

// Help lists the registered commands by category, in CategoryOrder followed
// by any other categories alphabetically.
func (r *Registry) Help() []Section {
	byCat := r.CommandsByCategory()
	order := slices.Clone(CategoryOrder)
	var extra []string
	for cat := range byCat {
		if !slices.Contains(order, cat) {
			extra = append(extra, cat)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	var sections []Section
	for _, cat := range order {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		sec := Section{Category: cat}
		for _, c := range cmds {
			sec.Commands = append(sec.Commands, HelpLine{Name: c.Name, Help: c.Help, MinArgs: c.MinArgs})
		}
		sections = append(sections, sec)
	}
	return sections
}
