// Package review is the interactive terminal UI for working through stored listings.
package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobscout/internal/filter"
	"github.com/amishk599/jobscout/internal/model"
)

// Lines per listing in the list view (title + subtitle + blank separator).
const itemHeight = 3

const (
	paneOpen = 0 // listings still in status new
	paneDone = 1 // applied or reviewed
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	paneHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(16)

	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	flashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Actions changes the status of a stored listing. Both methods report false
// when the ID is unknown.
type Actions interface {
	MarkApplied(id string) (bool, error)
	MarkReviewed(id string) (bool, error)
}

// markedMsg is sent when an async status change completes.
type markedMsg struct {
	id     string
	status model.Status
	ok     bool
	err    error
}

type reviewModel struct {
	lists         [2][]model.Listing
	viewports     [2]viewport.Model
	cursors       [2]int
	activePane    int
	width, height int
	ready         bool

	view            viewState
	detail          model.Listing
	detailViewport  viewport.Model
	showDescription bool

	actions Actions
	busy    bool
	flash   string
	isError bool

	now      func() time.Time
	openURL  func(string)
	wantQuit bool
}

func newReviewModel(listings []model.Listing, actions Actions) reviewModel {
	m := reviewModel{
		actions: actions,
		now:     time.Now,
		openURL: openInBrowser,
	}
	for _, l := range listings {
		m.lists[paneFor(l.Status)] = append(m.lists[paneFor(l.Status)], l)
	}
	filter.SortForReport(m.lists[paneOpen])
	filter.SortForReport(m.lists[paneDone])
	return m
}

func paneFor(s model.Status) int {
	if s == model.StatusNew || s == "" {
		return paneOpen
	}
	return paneDone
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case markedMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.setFlash(fmt.Sprintf("update failed: %v", msg.err), true)
		case !msg.ok:
			m.setFlash("listing not found in store", true)
		default:
			m.applyStatus(msg.id, msg.status)
			m.setFlash(fmt.Sprintf("marked %s", msg.status), false)
		}
		m.recalcContent()
		if m.view == viewDetail {
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m reviewModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "enter":
		if l, ok := m.selected(); ok {
			m.openDetail(l)
		}
		return m, nil
	case "a":
		if l, ok := m.selected(); ok {
			return m.mark(l, model.StatusApplied)
		}
		return m, nil
	case "d":
		if l, ok := m.selected(); ok {
			return m.mark(l, model.StatusReviewed)
		}
		return m, nil
	case "o":
		if l, ok := m.selected(); ok {
			m.openURL(l.ApplyURL())
		}
		return m, nil
	}

	// pgup/pgdn/home/end scroll the active pane.
	var cmd tea.Cmd
	m.viewports[m.activePane], cmd = m.viewports[m.activePane].Update(msg)
	return m, cmd
}

func (m reviewModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		m.openURL(m.detail.ApplyURL())
		return m, nil
	case "a":
		return m.mark(m.detail, model.StatusApplied)
	case "d":
		return m.mark(m.detail, model.StatusReviewed)
	case "r":
		if m.detail.Description != "" {
			m.showDescription = !m.showDescription
			m.detailViewport.SetContent(m.renderDetail())
			m.detailViewport.SetYOffset(0)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// mark starts an async status change unless one is already running or the
// listing already has that status.
func (m reviewModel) mark(l model.Listing, status model.Status) (tea.Model, tea.Cmd) {
	if m.busy || m.actions == nil {
		return m, nil
	}
	if l.Status == status {
		m.setFlash(fmt.Sprintf("already %s", status), false)
		return m, nil
	}
	m.busy = true
	actions := m.actions
	return m, func() tea.Msg {
		var (
			ok  bool
			err error
		)
		if status == model.StatusApplied {
			ok, err = actions.MarkApplied(l.ID)
		} else {
			ok, err = actions.MarkReviewed(l.ID)
		}
		return markedMsg{id: l.ID, status: status, ok: ok, err: err}
	}
}

// applyStatus moves the listing into the pane matching its new status.
func (m *reviewModel) applyStatus(id string, status model.Status) {
	for p := range m.lists {
		for i, l := range m.lists[p] {
			if l.ID != id {
				continue
			}
			l.Status = status
			if status == model.StatusApplied {
				at := m.now()
				l.AppliedAt = &at
			}
			m.lists[p] = append(m.lists[p][:i:i], m.lists[p][i+1:]...)
			dst := paneFor(status)
			m.lists[dst] = append(m.lists[dst], l)
			filter.SortForReport(m.lists[dst])
			m.clampCursors()
			if m.detail.ID == id {
				m.detail = l
			}
			return
		}
	}
}

func (m *reviewModel) setFlash(msg string, isError bool) {
	m.flash = msg
	m.isError = isError
}

func (m *reviewModel) selected() (model.Listing, bool) {
	list := m.lists[m.activePane]
	if len(list) == 0 {
		return model.Listing{}, false
	}
	return list[m.cursors[m.activePane]], true
}

func (m *reviewModel) openDetail(l model.Listing) {
	m.view = viewDetail
	m.detail = l
	m.showDescription = false
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
}

func (m *reviewModel) moveCursor(delta int) {
	p := m.activePane
	m.cursors[p] = clamp(m.cursors[p]+delta, 0, max(len(m.lists[p])-1, 0))
	m.recalcContent()

	vp := &m.viewports[p]
	top := m.cursors[p] * itemHeight
	bottom := top + itemHeight - 1
	if top < vp.YOffset {
		vp.SetYOffset(top)
	} else if bottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(bottom - vp.Height + 1)
	}
}

func (m *reviewModel) clampCursors() {
	for p := range m.cursors {
		m.cursors[p] = clamp(m.cursors[p], 0, max(len(m.lists[p])-1, 0))
	}
}

func (m *reviewModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)
	// Header + border top/bottom + status bar.
	paneHeight := max(m.height-4, 5)

	for p := range m.viewports {
		if !m.ready {
			m.viewports[p] = viewport.New(paneWidth, paneHeight)
			continue
		}
		m.viewports[p].Width = paneWidth
		m.viewports[p].Height = paneHeight
	}
	m.ready = true
	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	if !m.ready {
		return
	}
	for p := range m.viewports {
		m.viewports[p].SetContent(renderListings(m.lists[p], m.cursors[p], m.activePane == p))
	}
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m reviewModel) viewList() string {
	paneWidth := m.viewports[paneOpen].Width
	headers := [2]string{
		fmt.Sprintf(" To Review (%d)", len(m.lists[paneOpen])),
		fmt.Sprintf(" Applied / Decided (%d)", len(m.lists[paneDone])),
	}

	var headerCells, paneCells []string
	for p := range m.viewports {
		border, header := inactiveBorderStyle, paneHeaderStyle.Foreground(lipgloss.Color("240"))
		if p == m.activePane {
			border, header = activeBorderStyle, paneHeaderStyle.Foreground(lipgloss.Color("39"))
		}
		if p > 0 {
			headerCells = append(headerCells, " ")
			paneCells = append(paneCells, " ")
		}
		headerCells = append(headerCells, lipgloss.NewStyle().Width(paneWidth+2).Render(header.Render(headers[p])))
		paneCells = append(paneCells, border.Width(paneWidth).Render(m.viewports[p].View()))
	}

	status := " ←/→/Tab switch  ↑/↓ cursor  Enter detail  a applied  d decided  o open  Esc back  q quit"
	return lipgloss.JoinHorizontal(lipgloss.Top, headerCells...) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, paneCells...) + "\n" +
		m.statusBar(status)
}

func (m reviewModel) viewDetail() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("Listing Details")
	if m.busy {
		title += "  (saving...)"
	}
	content := activeBorderStyle.Width(m.width - 2).Render(m.detailViewport.View())

	status := " a applied  d decided  o open  esc back  ↑/↓ scroll  q quit"
	if m.detail.Description != "" {
		status = " a applied  d decided  o open  r description  esc back  ↑/↓ scroll  q quit"
	}
	return title + "\n" + content + "\n" + m.statusBar(status)
}

func (m reviewModel) statusBar(keys string) string {
	if m.flash != "" {
		style := flashStyle
		if m.isError {
			style = errorStyle
		}
		keys = " " + style.Render(m.flash) + "   " + keys
	}
	return statusBarStyle.Width(m.width).Render(keys)
}

func (m reviewModel) renderDetail() string {
	l := m.detail
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	field("Title", l.Title)
	field("Company", l.Company)
	field("Location", l.Location)
	field("Source", l.Source)
	field("Job Type", string(l.JobType))
	field("Salary", l.SalaryRange)
	field("Posted", l.DatePosted)
	if !l.DiscoveredAt.IsZero() {
		field("Discovered", l.DiscoveredAt.Local().Format("2006-01-02 15:04"))
	}
	field("Status", string(l.Status))
	if l.AppliedAt != nil {
		field("Applied", l.AppliedAt.Local().Format("2006-01-02 15:04"))
	}
	field("Score", fmt.Sprintf("%d/100", l.RelevanceScore))
	if len(l.Tags) > 0 {
		field("Tags", strings.Join(l.Tags, ", "))
	}

	b.WriteByte('\n')
	field("Link", l.Link)
	if l.ApplyURL() != l.Link {
		field("Apply URL", l.ApplyURL())
	}

	wrapWidth := max(m.width-8, 20)
	divider := func(label string) string {
		return dividerStyle.Render(label + strings.Repeat("─", max(wrapWidth-len(label), 3)))
	}
	bullets := func(heading string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(labelStyle.Render(heading) + "\n")
		for _, it := range items {
			b.WriteString("  • " + wordWrap(it, wrapWidth-4) + "\n")
		}
		b.WriteByte('\n')
	}

	if a := l.Analysis; a != nil {
		b.WriteByte('\n')
		b.WriteString(divider("── Fit Analysis ") + "\n\n")
		if a.Failed() {
			b.WriteString(errorStyle.Render("⚠ "+a.Error) + "\n\n")
		}
		field("Verdict", a.OverallRecommendation)
		b.WriteString(wordWrap(a.SummaryForCandidate, wrapWidth) + "\n\n")
		bullets("Strengths", a.KeyStrengths)
		bullets("Gaps", a.PotentialGaps)
		bullets("Strategy", a.ApplicationStrategy)
	} else {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render("  not scored") + "\n")
	}

	if l.Description != "" {
		b.WriteByte('\n')
		if m.showDescription {
			b.WriteString(divider("── Description ") + "\n\n")
			b.WriteString(wordWrap(l.Description, wrapWidth) + "\n")
		} else {
			b.WriteString(hintStyle.Render("  press r to read the description") + "\n")
		}
	}

	return b.String()
}

func renderListings(listings []model.Listing, cursor int, isActive bool) string {
	if len(listings) == 0 {
		return "  (nothing here)"
	}

	var b strings.Builder
	for i, l := range listings {
		title, subtitle, prefix := titleStyle, subtitleStyle, "  "
		if isActive && i == cursor {
			title, subtitle, prefix = selectedTitleStyle, selectedSubtitleStyle, "> "
		}

		b.WriteString(prefix)
		b.WriteString(title.Render(fmt.Sprintf("%3d  %s", l.RelevanceScore, l.Title)))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitle.Render(fmt.Sprintf("     %s · %s · %s", l.Company, l.Location, l.Source)))
		b.WriteByte('\n')

		if i < len(listings)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// openInBrowser opens url in the default system browser, fire-and-forget.
func openInBrowser(url string) {
	if url == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunReviewTUI launches the split-pane review UI over listings. Status
// changes go through actions as they happen. wantQuit is true if the user
// pressed q/ctrl+c, false if they pressed esc to go back to the board picker.
func RunReviewTUI(listings []model.Listing, actions Actions) (wantQuit bool, err error) {
	p := tea.NewProgram(newReviewModel(listings, actions), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	return result.(reviewModel).wantQuit, nil
}
