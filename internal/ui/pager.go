package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long text outside the main view
type Pager interface {
	Show(content string) error
}

// OvPager runs the ov pager with the terminal released by the program
type OvPager struct {
	program *tea.Program
}

// NewOvPager creates a pager; SetProgram must be called before Show
func NewOvPager() *OvPager {
	return &OvPager{}
}

// SetProgram sets the program reference for terminal management
func (p *OvPager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages content with ov
func (p *OvPager) Show(content string) error {
	if p.program == nil {
		return errors.New("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// give ov time to leave the alternate screen before bubbletea takes it back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
