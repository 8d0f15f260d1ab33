package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	cl "devcap/internal/cli"
	"devcap/internal/engine"
	"devcap/internal/syncq"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const autosaveEvery = 30 * time.Second

func newPlayCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start an interactive game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			client := newClient(apiBase)

			eng, offlineOK, err := setupEngine(cmd.Context(), client, sess)
			if err != nil {
				return err
			}
			if !offlineOK {
				printWarn("Server unreachable, playing from the local cache. Saves will queue until `dvc sync`.")
			}

			m := newPlayModel(eng, client, sess)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return err
			}

			// Final save outside the event loop so quitting always persists.
			payload := eng.SavePayload(sess.UserID)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := client.SaveGame(ctx, sess.AccessToken, payload); err != nil {
				if qErr := syncq.Push(payload); qErr != nil {
					return fmt.Errorf("save failed and could not be queued: %v (queue: %w)", err, qErr)
				}
				printWarn("Save failed, queued locally. Run `dvc sync` when the API is back.")
				return nil
			}
			printSuccess("Progress saved.")
			return nil
		},
	}
}

// setupEngine fetches the catalog and save, falling back to the local cache
// when the API is unreachable. The second return is false on fallback.
func setupEngine(ctx context.Context, client *cl.Client, sess cl.Session) (*engine.Engine, bool, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	eng := engine.New(logger)

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cat, catErr := client.GameData(fetchCtx, sess.AccessToken)
	if catErr == nil {
		data, loadErr := client.LoadGame(fetchCtx, sess.AccessToken)
		if loadErr == nil {
			if err := eng.Initialize(cat); err != nil {
				return nil, false, err
			}
			eng.ApplyLoaded(data)
			eng.ReconcileOffline()
			if err := cl.SaveCache(cl.Cache{
				CachedAt: time.Now(),
				UserID:   sess.UserID,
				Catalog:  cat,
				Data:     data,
			}); err != nil {
				logger.Warn("cache write failed", "err", err)
			}
			return eng, true, nil
		}
		catErr = loadErr
	}

	cache, ok, cacheErr := cl.LoadCache(sess.UserID)
	if cacheErr != nil || !ok {
		return nil, false, fmt.Errorf("load game: %w (no usable local cache)", catErr)
	}
	if err := eng.Initialize(cache.Catalog); err != nil {
		return nil, false, err
	}
	eng.ApplyLoaded(cache.Data)
	eng.MarkLoadFailed()
	eng.ReconcileOffline()
	return eng, false, nil
}

type pane int

const (
	paneBusinesses pane = iota
	paneTeam
	paneUpgrades
	paneAchievements
	paneCount
)

func (p pane) title() string {
	switch p {
	case paneBusinesses:
		return "Businesses"
	case paneTeam:
		return "Team"
	case paneUpgrades:
		return "Upgrades"
	case paneAchievements:
		return "Achievements"
	}
	return ""
}

type tickMsg time.Time

type saveDoneMsg struct{ err error }

type keymap struct {
	Click    key.Binding
	NextPane key.Binding
	Up       key.Binding
	Down     key.Binding
	Buy      key.Binding
	Assign   key.Binding
	Unassign key.Binding
	Collect  key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func newKeymap() keymap {
	return keymap{
		Click:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "write code")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Buy:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buy")),
		Assign:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assign manager")),
		Unassign: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unassign manager")),
		Collect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collect offline")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save and quit")),
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.NextPane, k.Buy, k.Collect, k.Save, k.Quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.NextPane, k.Up, k.Down},
		{k.Buy, k.Assign, k.Unassign, k.Collect},
		{k.Save, k.Quit},
	}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ownedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	offlineNotice = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

type playModel struct {
	eng    *engine.Engine
	client *cl.Client
	sess   cl.Session

	keys   keymap
	help   help.Model
	pane   pane
	cursor int

	saving    bool
	lastSave  time.Time
	status    string
	noticeAge int
}

func newPlayModel(eng *engine.Engine, client *cl.Client, sess cl.Session) playModel {
	return playModel{
		eng:      eng,
		client:   client,
		sess:     sess,
		keys:     newKeymap(),
		help:     help.New(),
		lastSave: time.Now(),
	}
}

func (m playModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m playModel) save() tea.Cmd {
	payload := m.eng.SavePayload(m.sess.UserID)
	client := m.client
	token := m.sess.AccessToken
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := client.SaveGame(ctx, token, payload); err != nil {
			if qErr := syncq.Push(payload); qErr != nil {
				return saveDoneMsg{err: fmt.Errorf("%v (queue: %v)", err, qErr)}
			}
			return saveDoneMsg{err: err}
		}
		return saveDoneMsg{}
	}
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.eng.Tick(time.Second)
		if a := m.eng.LatestAchievement(); a != nil {
			m.noticeAge++
			if m.noticeAge > 6 {
				m.eng.AcknowledgeAchievement()
				m.noticeAge = 0
			}
		}
		var cmd tea.Cmd
		if !m.saving && time.Since(m.lastSave) >= autosaveEvery {
			m.saving = true
			cmd = m.save()
		}
		return m, tea.Batch(tick(), cmd)

	case saveDoneMsg:
		m.saving = false
		m.lastSave = time.Now()
		if msg.err != nil {
			m.status = "save failed, queued locally"
		} else {
			m.status = "saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Click):
		m.eng.Click()

	case key.Matches(msg, m.keys.NextPane):
		m.pane = (m.pane + 1) % paneCount
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.paneLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Buy):
		m.buySelected()

	case key.Matches(msg, m.keys.Assign):
		m.assignSelected()

	case key.Matches(msg, m.keys.Unassign):
		m.unassignSelected()

	case key.Matches(msg, m.keys.Collect):
		if earned := m.eng.CollectOffline(); earned > 0 {
			m.status = fmt.Sprintf("collected %s offline LoC", formatLoC(earned))
		}

	case key.Matches(msg, m.keys.Save):
		if !m.saving {
			m.saving = true
			return m, m.save()
		}
	}
	return m, nil
}

func (m *playModel) paneLen() int {
	snap := m.eng.Snapshot()
	switch m.pane {
	case paneBusinesses:
		return len(snap.Businesses)
	case paneTeam:
		return len(snap.TeamMembers)
	case paneUpgrades:
		return len(snap.Upgrades)
	case paneAchievements:
		return len(snap.Achievements)
	}
	return 0
}

func (m *playModel) buySelected() {
	snap := m.eng.Snapshot()
	switch m.pane {
	case paneBusinesses:
		if m.cursor < len(snap.Businesses) {
			b := snap.Businesses[m.cursor]
			if m.eng.PurchaseBusiness(b.ID) {
				m.status = fmt.Sprintf("bought %s (lv %d)", b.Name, b.Level+1)
			}
		}
	case paneTeam:
		if m.cursor < len(snap.TeamMembers) {
			t := snap.TeamMembers[m.cursor]
			if m.eng.HireTeamMember(t.ID) {
				m.status = fmt.Sprintf("hired %s", t.Name)
			}
		}
	case paneUpgrades:
		if m.cursor < len(snap.Upgrades) {
			u := snap.Upgrades[m.cursor]
			if m.eng.PurchaseUpgrade(u.ID) {
				m.status = fmt.Sprintf("purchased %s", u.Name)
			}
		}
	}
}

// assignSelected puts the first team member type with availability in charge
// of the selected business.
func (m *playModel) assignSelected() {
	if m.pane != paneBusinesses {
		return
	}
	snap := m.eng.Snapshot()
	if m.cursor >= len(snap.Businesses) {
		return
	}
	b := snap.Businesses[m.cursor]
	for _, t := range snap.TeamMembers {
		if t.AvailableCount > 0 && m.eng.AssignManager(b.ID, t.ID) {
			m.status = fmt.Sprintf("%s now managing %s", t.Name, b.Name)
			return
		}
	}
	m.status = "no available team members"
}

func (m *playModel) unassignSelected() {
	if m.pane != paneBusinesses {
		return
	}
	snap := m.eng.Snapshot()
	if m.cursor >= len(snap.Businesses) {
		return
	}
	b := snap.Businesses[m.cursor]
	for teamID := range b.Managers {
		if m.eng.UnassignManager(b.ID, teamID) {
			m.status = fmt.Sprintf("manager released from %s", b.Name)
			return
		}
	}
}

func (m playModel) View() string {
	snap := m.eng.Snapshot()
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Dev Capitalist"))
	sb.WriteString("  ")
	sb.WriteString(fmt.Sprintf("%s LoC  (%s/s, +%s per keystroke)",
		formatLoC(snap.Progress.CurrentLoC),
		formatLoC(snap.Progress.PassiveRate),
		formatLoC(snap.Progress.LoCPerClick)))
	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render(fmt.Sprintf("lifetime %s LoC", formatLoC(snap.Progress.TotalLoC))))
	sb.WriteString("\n\n")

	if snap.Progress.OfflineEarnings > 0 {
		sb.WriteString(offlineNotice.Render(fmt.Sprintf(
			"While you were away you earned %s LoC. Press c to collect.",
			formatLoC(snap.Progress.OfflineEarnings))))
		sb.WriteString("\n\n")
	}
	if a := m.eng.LatestAchievement(); a != nil {
		sb.WriteString(noticeStyle.Render(fmt.Sprintf("Achievement unlocked: %s (+%s LoC)", a.Name, formatLoC(a.Reward))))
		sb.WriteString("\n\n")
	}

	for p := pane(0); p < paneCount; p++ {
		if p == m.pane {
			sb.WriteString(activeTab.Render(p.title()))
		} else {
			sb.WriteString(tabStyle.Render(p.title()))
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.renderPane(snap))
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
		sb.WriteString("\n")
	}
	if m.saving {
		sb.WriteString(faintStyle.Render("saving..."))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m playModel) renderPane(snap engine.Snapshot) string {
	var lines []string
	total := snap.Progress.TotalLoC

	line := func(i int, s string, locked bool) {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		if locked {
			s = lockedStyle.Render(s)
		}
		lines = append(lines, prefix+s)
	}

	switch m.pane {
	case paneBusinesses:
		for i, b := range snap.Businesses {
			if !b.Unlocked(total) {
				line(i, fmt.Sprintf("%-24s locked (unlocks at %s LoC)", b.Name, formatLoC(b.UnlockRequirement)), true)
				continue
			}
			owned := ""
			if b.Level > 0 {
				owned = ownedStyle.Render(fmt.Sprintf(" lv %d", b.Level))
				if n := b.AssignedManagers(); n > 0 {
					owned += faintStyle.Render(fmt.Sprintf(" (%d mgr)", n))
				}
			}
			line(i, fmt.Sprintf("%-24s %s/s each, next %s LoC%s",
				b.Name, formatLoC(b.BaseProduction), formatLoC(b.Cost()), owned), false)
		}
	case paneTeam:
		for i, t := range snap.TeamMembers {
			if !t.Unlocked(total) {
				line(i, fmt.Sprintf("%-24s locked (unlocks at %s LoC)", t.Name, formatLoC(t.UnlockRequirement)), true)
				continue
			}
			owned := ""
			if t.Count > 0 {
				owned = ownedStyle.Render(fmt.Sprintf(" x%d (%d free)", t.Count, t.AvailableCount))
			}
			line(i, fmt.Sprintf("%-24s %s/s each, next %s LoC%s",
				t.Name, formatLoC(t.BaseProduction), formatLoC(t.Cost()), owned), false)
		}
	case paneUpgrades:
		for i, u := range snap.Upgrades {
			if u.Purchased {
				line(i, fmt.Sprintf("%-24s %s", u.Name, ownedStyle.Render("owned")), false)
				continue
			}
			if !u.Unlocked(total) {
				line(i, fmt.Sprintf("%-24s locked (unlocks at %s LoC)", u.Name, formatLoC(u.UnlockRequirement)), true)
				continue
			}
			line(i, fmt.Sprintf("%-24s %s, %s LoC", u.Name, u.Description, formatLoC(u.Cost)), false)
		}
	case paneAchievements:
		for i, a := range snap.Achievements {
			if a.Unlocked {
				line(i, fmt.Sprintf("%-24s %s", a.Name, ownedStyle.Render("✓ "+a.UnlockedAt.Local().Format("Jan 2 15:04"))), false)
				continue
			}
			line(i, fmt.Sprintf("%-24s %s (+%s LoC)", a.Name, a.Description, formatLoC(a.Reward)), true)
		}
	}
	if len(lines) == 0 {
		return faintStyle.Render("  nothing here yet")
	}
	return strings.Join(lines, "\n")
}

// formatLoC renders a LoC amount compactly: whole numbers below 1k, then
// k/M/B/T suffixes with one decimal.
func formatLoC(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.1fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
