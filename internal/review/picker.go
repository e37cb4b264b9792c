package review

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobscout/internal/model"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// BoardChoice is one row of the board picker. An empty Source means all boards.
type BoardChoice struct {
	Source  string
	Total   int
	Pending int // listings still in status new
}

func (c BoardChoice) label() string {
	name := c.Source
	if name == "" {
		name = "All boards"
	}
	return fmt.Sprintf("%s (%d listings, %d to review)", name, c.Total, c.Pending)
}

// BoardChoices groups listings by source, busiest board first, behind an
// "all boards" entry.
func BoardChoices(listings []model.Listing) []BoardChoice {
	all := BoardChoice{}
	bySource := make(map[string]*BoardChoice)
	for _, l := range listings {
		c, ok := bySource[l.Source]
		if !ok {
			c = &BoardChoice{Source: l.Source}
			bySource[l.Source] = c
		}
		c.Total++
		all.Total++
		if l.Status == model.StatusNew {
			c.Pending++
			all.Pending++
		}
	}

	boards := make([]BoardChoice, 0, len(bySource))
	for _, c := range bySource {
		boards = append(boards, *c)
	}
	sort.Slice(boards, func(i, j int) bool {
		if boards[i].Pending != boards[j].Pending {
			return boards[i].Pending > boards[j].Pending
		}
		return boards[i].Source < boards[j].Source
	})
	return append([]BoardChoice{all}, boards...)
}

type pickerModel struct {
	choices []BoardChoice
	cursor  int
	chosen  int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.chosen = -2
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.choices)-1)
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render("Review listings: pick a board") + "\n"
	for i, c := range m.choices {
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+c.label()) + "\n"
		} else {
			s += pickerItemStyle.Render(c.label()) + "\n"
		}
	}
	return s + pickerHintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
}

// RunBoardPicker shows an interactive board selector over the stored
// listings. ok is false if the user quit.
func RunBoardPicker(listings []model.Listing) (choice BoardChoice, ok bool, err error) {
	m := pickerModel{choices: BoardChoices(listings), chosen: -1}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return BoardChoice{}, false, err
	}
	final := result.(pickerModel)
	if final.chosen < 0 {
		return BoardChoice{}, false, nil
	}
	return final.choices[final.chosen], true, nil
}
