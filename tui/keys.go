package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

type keyMap struct {
	Up, Down, Left, Right key.Binding

	Toggle    key.Binding
	Duration  key.Binding
	Rest      key.Binding
	Dotted    key.Binding
	Triplet   key.Binding
	Sharp     key.Binding
	Flat      key.Binding
	Natural   key.Binding
	AddRows   key.Binding
	RemoveRow key.Binding

	Play      key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding

	Title key.Binding
	Save  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:    Key("earlier row", "k", "up"),
		Down:  Key("later row", "j", "down"),
		Left:  Key("tine left", "h", "left"),
		Right: Key("tine right", "l", "right"),

		Toggle: key.NewBinding(key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle cell")),
		Duration: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "whole..sixteenth")),
		Rest:      Key("rest mode", "r"),
		Dotted:    Key("dotted", "d"),
		Triplet:   Key("triplet", "t"),
		Sharp:     Key("sharp", "s"),
		Flat:      Key("flat", "f"),
		Natural:   Key("natural", "n"),
		AddRows:   Key("add rows", "a"),
		RemoveRow: Key("remove row", "x"),

		Play:      Key("play/stop", "p"),
		TempoUp:   Key("tempo +5", "+", "="),
		TempoDown: Key("tempo -5", "-", "_"),

		Title: Key("edit title", "e"),
		Save:  Key("save", "ctrl+s"),
		Help:  Key("more", "?"),
		Quit:  Key("quit", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Duration, k.Rest, k.Play, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Duration, k.Rest, k.Dotted, k.Triplet},
		{k.Sharp, k.Flat, k.Natural, k.AddRows, k.RemoveRow},
		{k.Play, k.TempoUp, k.TempoDown, k.Title, k.Save, k.Help, k.Quit},
	}
}
