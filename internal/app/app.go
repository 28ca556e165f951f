// Package app wires the terminal session, menu tree, renderer, and
// navigation engine together.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/tty-menu/internal/action"
	"github.com/atomicstack/tty-menu/internal/logging/events"
	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/atomicstack/tty-menu/internal/nav"
	"github.com/atomicstack/tty-menu/internal/render"
	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/atomicstack/tty-menu/internal/theme"
)

// Config describes user-provided application options.
type Config struct {
	MenuFile string
	Width    int
	Height   int
	Verbose  bool
}

// Run opens a raw terminal session and drives the menu loop until the user
// exits.
func Run(cfg Config) error {
	session, err := term.OpenSession(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("open terminal session: %w", err)
	}
	defer session.Close()

	root, err := BuildTree(cfg)
	if err != nil {
		return err
	}
	containers, items := menu.Count(root)
	source := cfg.MenuFile
	if source == "" {
		source = "builtin"
	}
	events.App.TreeLoaded(source, containers, items)

	styles := theme.Default()
	renderer := render.New(session.Surface, styles)
	boundary := action.New(renderer, session.Keys, styles)
	engine := nav.New(root, renderer, session.Keys, boundary)
	return engine.Run()
}

// BuildTree constructs the menu tree, either from the configured JSON file
// or from the built-in demo menu.
func BuildTree(cfg Config) (*menu.Container, error) {
	if cfg.MenuFile != "" {
		root, err := menu.LoadFile(cfg.MenuFile, Actions())
		if err != nil {
			return nil, fmt.Errorf("load menu %s: %w", cfg.MenuFile, err)
		}
		return root, nil
	}
	return demoTree()
}

// Actions returns the registry of named actions available to declarative
// menu files.
func Actions() menu.Registry {
	return menu.Registry{
		"hello":    helloAction,
		"echo":     echoAction,
		"readfile": readFileAction,
		"about":    aboutAction,
		"exit":     exitAction,
	}
}

func helloAction(out io.Writer, args []interface{}) error {
	_, err := fmt.Fprintln(out, "Hello, World!")
	return err
}

func echoAction(out io.Writer, args []interface{}) error {
	for _, arg := range args {
		if _, err := fmt.Fprintln(out, fmt.Sprint(arg)); err != nil {
			return err
		}
	}
	return nil
}

func readFileAction(out io.Writer, args []interface{}) error {
	if len(args) != 1 {
		return fmt.Errorf("readfile expects one path argument, got %d", len(args))
	}
	path, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("readfile path must be a string, got %T", args[0])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func exitAction(out io.Writer, args []interface{}) error {
	return action.ErrExit
}

func aboutAction(out io.Writer, args []interface{}) error {
	_, err := fmt.Fprintln(out, "tty-menu: hierarchical menus for character terminals")
	return err
}

// demoTree mirrors the menu shipped as the default demonstration: a top bar
// with File, Edit, View, and Help drop-downs, including nested submenus
// under Edit.
func demoTree() (*menu.Container, error) {
	root := menu.NewContainer("Main Menu", menu.Horizontal)

	file := submenu("File", 'F')
	edit := submenu("Edit", 'E')
	view := submenu("View", 'V')
	help := submenu("Help", 'H')

	sub := submenu("More Tools", 'M')
	inner := submenu("Extras", 0)

	hello := leaf("Hello World", 'W', helloAction)
	greeting := leaf("Show Greeting", 0, helloAction)
	echo := leaf("Echo Numbers", 0, echoAction)
	echo.Args = []interface{}{1, 2, 3}
	readText := leaf("Read Text File", 'R', readFileAction)
	readText.PromptForArgs = true
	about := leaf("About", 'A', aboutAction)
	exit := leaf("Exit", 'X', exitAction)
	exit.Pause = false

	steps := []error{
		root.Attach(file),
		root.Attach(edit),
		root.Attach(view),
		root.Attach(help),

		file.Attach(hello),
		file.Attach(exit),

		edit.Attach(readText),
		edit.Attach(echo),
		edit.Attach(sub),

		sub.Attach(leaf("Say Hello", 0, helloAction)),
		sub.Attach(inner),
		inner.Attach(leaf("Deep Hello", 0, helloAction)),

		view.Attach(greeting),

		help.Attach(about),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}
	return root, nil
}

func submenu(name string, hotkey rune) *menu.Container {
	c := menu.NewContainer(name, menu.Vertical)
	c.Hotkey = hotkey
	return c
}

func leaf(name string, hotkey rune, fn menu.ActionFunc) *menu.Item {
	item := menu.NewItem(name, fn)
	item.Hotkey = hotkey
	item.Pause = true
	return item
}
