package main

import (
	"fmt"
	"strings"
)

// menuItem is a single choice in the palette.
type menuItem struct {
	name     string // what the session is set from
	label    string
	shortcut string
}

// menuCategory groups related palette items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// palette lists the named gates and states. Shortcuts mirror keyMap.
var palette = []menuCategory{
	{
		name: "Gates",
		items: []menuItem{
			{name: "I", label: "Identity", shortcut: "i"},
			{name: "X", label: "Pauli-X (NOT)", shortcut: "x"},
			{name: "Y", label: "Pauli-Y", shortcut: "y"},
			{name: "Z", label: "Pauli-Z", shortcut: "z"},
			{name: "H", label: "Hadamard", shortcut: "h"},
			{name: "S", label: "Phase (S)", shortcut: "s"},
			{name: "T", label: "T Gate", shortcut: "t"},
			{name: "S†", label: "S Dagger", shortcut: "S"},
			{name: "T†", label: "T Dagger", shortcut: "T"},
		},
	},
	{
		name: "States",
		items: []menuItem{
			{name: "|0>", label: "Zero", shortcut: "0"},
			{name: "|1>", label: "One", shortcut: "1"},
			{name: "|+>", label: "Plus", shortcut: "+"},
			{name: "|->", label: "Minus", shortcut: "-"},
		},
	},
}

const (
	menuGates = iota
	menuStates
)

// renderMenu renders the floating palette popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Palette"))
	sb.WriteString("\n")

	for i, cat := range palette {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(palette)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 30)))
	sb.WriteString("\n")

	cat := palette[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.label)))
			sb.WriteString(gateStyle.Render(fmt.Sprintf("%-4s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.label)))
			sb.WriteString(dimStyle.Render(fmt.Sprintf("%-4s", item.name)))
		}
		sb.WriteString(dimStyle.Render(" [" + item.shortcut + "]"))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Tab  ⏎ Set  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
