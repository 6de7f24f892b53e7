package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerCommand runs the ov pager over a document. It implements
// tea.ExecCommand so Bubble Tea releases the terminal while ov owns it.
type pagerCommand struct {
	open func() (io.ReadCloser, error)
}

var _ tea.ExecCommand = (*pagerCommand)(nil)

func (c *pagerCommand) Run() error {
	r, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()

	root, err := oviewer.NewRoot(r)
	if err != nil {
		return fmt.Errorf("start pager: %w", err)
	}
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)
	return root.Run()
}

// ov drives the terminal itself.
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// pagerClosedMsg reports how the pager exited.
type pagerClosedMsg struct {
	what string
	err  error
}

func pageText(what, text string) tea.Cmd {
	cmd := &pagerCommand{open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(text)), nil
	}}
	return tea.Exec(cmd, func(err error) tea.Msg {
		return pagerClosedMsg{what: what, err: err}
	})
}

func pageFile(what, path string) tea.Cmd {
	cmd := &pagerCommand{open: func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", what, err)
		}
		return f, nil
	}}
	return tea.Exec(cmd, func(err error) tea.Msg {
		return pagerClosedMsg{what: what, err: err}
	})
}
