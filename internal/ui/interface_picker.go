package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/netbwmon/internal/errors"
)

// InterfaceOption is one choice in the interface picker.
type InterfaceOption struct {
	Name  string
	Label string // shown next to the name, e.g. current totals
}

// interfaceOptions builds the huh options; split out so it can be tested
// without a terminal.
func interfaceOptions(choices []InterfaceOption) []huh.Option[string] {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		label := c.Name
		if c.Label != "" {
			label = fmt.Sprintf("%-15s  %s", c.Name, c.Label)
		}
		opts[i] = huh.NewOption(label, c.Name)
	}
	return opts
}

// PickInterface asks the user to choose an interface. preselect, when it
// matches a choice, is highlighted first.
func PickInterface(choices []InterfaceOption, preselect string) (string, error) {
	if len(choices) == 0 {
		return "", errors.InterfaceNotFound("", nil)
	}

	selected := preselect
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which interface should netbwmon watch?").
				Options(interfaceOptions(choices)...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Interface selection cancelled",
			"Pass the interface directly with -i.")
	}
	return selected, nil
}
