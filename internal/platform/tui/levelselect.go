package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/puzzle"
)

// levelsPerRow is the width of the level grid.
const levelsPerRow = 5

// LevelSelectModel lets the player choose where a session starts:
// continue after the furthest level, start over, or pick any level.
type LevelSelectModel struct {
	title         string
	furthest      int
	options       []levelOption
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	level         int // chosen level, 0 while choosing
	quitting      bool
	back          bool
}

type levelOption struct {
	label string
	level int // 0 opens the level grid
}

// NewLevelSelectModel creates the start level picker for a game.
func NewLevelSelectModel(title string, furthest, width, height int) LevelSelectModel {
	var options []levelOption
	if furthest > 0 && furthest < puzzle.MaxLevel {
		options = append(options, levelOption{
			label: fmt.Sprintf("Continue at level %d", furthest+1),
			level: furthest + 1,
		})
	}
	options = append(options,
		levelOption{label: "Start from level 1", level: 1},
		levelOption{label: "Choose a level..."},
	)

	return LevelSelectModel{
		title:     title,
		furthest:  furthest,
		options:   options,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelGridKey(action)
	}
	return m.handleOptionKey(action)
}

func (m LevelSelectModel) handleOptionKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		opt := m.options[m.cursor]
		if opt.level == 0 {
			m.inLevelSelect = true
			m.levelCursor = core.Clamp(m.furthest, 0, puzzle.MaxLevel-1)
			return m, nil
		}
		m.level = opt.level
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelSelectModel) handleLevelGridKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionLeft:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionRight:
		if m.levelCursor < puzzle.MaxLevel-1 {
			m.levelCursor++
		}
	case MenuActionUp:
		if m.levelCursor >= levelsPerRow {
			m.levelCursor -= levelsPerRow
		}
	case MenuActionDown:
		if m.levelCursor+levelsPerRow < puzzle.MaxLevel {
			m.levelCursor += levelsPerRow
		}
	case MenuActionSelect:
		m.level = m.levelCursor + 1 // 1-indexed
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the option list or the level grid.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelGrid()
	}
	return m.viewOptions()
}

func (m LevelSelectModel) viewOptions() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(progressLabel(m.furthest), m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m LevelSelectModel) viewLevelGrid() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for row := 0; row*levelsPerRow < puzzle.MaxLevel; row++ {
		var line strings.Builder
		for col := range levelsPerRow {
			i := row*levelsPerRow + col
			if i >= puzzle.MaxLevel {
				break
			}
			mark := " "
			if i < m.furthest {
				mark = "✓"
			}
			cell := fmt.Sprintf(" %2d%s ", i+1, mark)
			if i == m.levelCursor {
				cell = fmt.Sprintf("[%2d%s]", i+1, mark)
			}
			line.WriteString(cell)
		}
		b.WriteString(centerText(line.String(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Arrows: Move  |  Enter: Play  |  Esc: Back", m.width))

	return b.String()
}

// Level returns the chosen start level, or 0 if still choosing.
func (m LevelSelectModel) Level() int {
	return m.level
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelect asks where to start a game.
// It returns 0 when the player backs out, and quit when they quit.
func RunLevelSelect(title string, furthest int, cfg core.RuntimeConfig) (level int, quit bool, err error) {
	model := NewLevelSelectModel(title, furthest, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return 0, true, nil
	}

	if m.IsQuitting() {
		return 0, true, nil
	}
	return m.Level(), false, nil
}
