package cmds

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	fmt.Fprintln(os.Stderr, "commands:")
	printCommands(p.commands, 1)
}

func printCommands(commands map[string]*Command, depth int) {
	names := make(map[*Command][]string)
	for name, command := range commands {
		names[command] = append(names[command], name)
	}
	var cmds []*Command
	for command := range names {
		slices.Sort(names[command])
		cmds = append(cmds, command)
	}
	slices.SortFunc(cmds, func(a, b *Command) int {
		return strings.Compare(names[a][0], names[b][0])
	})
	indent := strings.Repeat("  ", depth)
	for _, command := range cmds {
		line := indent + strings.Join(names[command], ", ")
		if command != nil && command.Description != "" {
			line += "\n" + indent + "  " + command.Description
		}
		fmt.Fprintln(os.Stderr, line)
		if command != nil && len(command.Subs) > 0 {
			printCommands(command.Subs, depth+1)
		}
	}
}
